// Package scan implements the ARP sweep engine.
//
// A scan runs two concurrent activities against one capture handle: a sender
// that walks the target sequence in fixed-size batches with a pause between
// batches, and a listener that reads and decodes inbound frames for the full
// scan window. The listener starts before the first batch and outlives the
// sender; the window timer is the only thing that ends a scan.
//
// # State machine
//
//	Idle -> Sending&Listening -> Draining -> Done
//
// Draining is the remainder of the window after the sender exhausts its
// targets. Done is always reached via the window timer.
//
// # Concurrency
//
// The discovery map is owned by the listener goroutine and handed to the
// caller only after the terminal state, so callers read it without
// synchronization. Cancellation is cooperative and time-based: in-flight
// sends and receives at the boundary complete rather than being aborted,
// which also means a reply already in flight when the window closes is
// included in the result.
//
// # Failure model
//
// Opening the capture handle or an irrecoverable transmit fails the scan
// with *ScanError. A single undecodable or foreign frame never does; those
// are dropped and, at debug level, logged.
package scan
