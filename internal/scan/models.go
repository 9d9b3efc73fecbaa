package scan

import (
	"net"
	"net/netip"
	"time"
)

// Discovery records one live host found during a scan: who answered, with
// what hardware address, and how far into the scan window the reply landed.
// At most one Discovery exists per IP per scan; the first reply wins.
type Discovery struct {
	IP  netip.Addr
	MAC net.HardwareAddr
	Age time.Duration
}

// Targets is the sequence of candidate addresses to probe, in the order the
// sender will walk them. iprange.Iter satisfies it.
type Targets interface {
	Next() (netip.Addr, bool)
}

// Options tunes one scan invocation. Zero fields fall back to the defaults,
// which match the normal (non-fast) network profile.
type Options struct {
	// Window bounds the total wall-clock scan time, measured from scan
	// start. The listener runs for the whole window even when the sender
	// finishes early; fast networks still stagger replies.
	Window time.Duration

	// BatchSize is how many requests go out back-to-back before the sender
	// pauses.
	BatchSize int

	// BatchPause is the pause between batches. It spreads replies over time
	// and keeps the local link's buffers from overflowing.
	BatchPause time.Duration
}

const (
	defaultWindow     = 2 * time.Second
	defaultBatchSize  = 32
	defaultBatchPause = 10 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = defaultWindow
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.BatchPause <= 0 {
		o.BatchPause = defaultBatchPause
	}
	return o
}
