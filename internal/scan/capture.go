package scan

import (
	"errors"
	"time"

	"github.com/google/gopacket/pcap"
)

// Capture is the raw link-layer handle the engine drives. Transmit sends one
// frame; Receive blocks up to the handle's read timeout and returns
// (nil, nil) when the timeout elapses without traffic, so the listener can
// poll its deadline between reads.
//
// A Capture must tolerate one concurrent transmitter and one concurrent
// receiver; it does not need to support more, and the engine never creates
// more.
type Capture interface {
	Transmit(frame []byte) error
	Receive() ([]byte, error)
	Close()
}

const snapshotLen = 65536

// OpenCapture opens a live pcap handle on the named interface, restricted to
// ARP traffic. readTimeout bounds how long a single Receive call can block;
// it is the granularity at which the listener notices the scan window has
// closed.
func OpenCapture(iface string, readTimeout time.Duration) (Capture, error) {
	if readTimeout <= 0 {
		readTimeout = 10 * time.Millisecond
	}

	handle, err := pcap.OpenLive(iface, snapshotLen, true, readTimeout)
	if err != nil {
		return nil, NewOpenError(iface, err)
	}

	if err := handle.SetBPFFilter("arp"); err != nil {
		handle.Close()
		return nil, &ScanError{
			Type:      ErrTypeFilter,
			Message:   "could not install ARP filter",
			Interface: iface,
			Err:       err,
		}
	}

	return &pcapCapture{handle: handle, iface: iface}, nil
}

// pcapCapture adapts a *pcap.Handle to the Capture interface. pcap handles
// support one reader and one writer concurrently, which matches the engine's
// sender/listener split.
type pcapCapture struct {
	handle *pcap.Handle
	iface  string
}

func (c *pcapCapture) Transmit(frame []byte) error {
	if err := c.handle.WritePacketData(frame); err != nil {
		return NewTransmitError(c.iface, err)
	}
	return nil
}

func (c *pcapCapture) Receive() ([]byte, error) {
	data, _, err := c.handle.ReadPacketData()
	if err != nil {
		if errors.Is(err, pcap.NextErrorTimeoutExpired) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *pcapCapture) Close() {
	c.handle.Close()
}
