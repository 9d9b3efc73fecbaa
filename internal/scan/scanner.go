package scan

import (
	"context"
	"net"
	"net/netip"
	"sort"
	"time"

	"go.uber.org/zap"

	"arpscan/internal/arp"
	"arpscan/internal/logging"
)

// Scanner drives one ARP sweep: a sender walking the target sequence in
// batches and a listener collecting replies, both bounded by the scan window.
type Scanner struct {
	LocalIP  netip.Addr
	LocalMAC net.HardwareAddr
}

// New creates a Scanner sending from the given local address and hardware
// address.
func New(localIP netip.Addr, localMAC net.HardwareAddr) *Scanner {
	return &Scanner{LocalIP: localIP, LocalMAC: localMAC}
}

// Scan probes every target and returns the hosts that answered within the
// window. The listener starts before the first batch goes out and keeps
// reading until the window closes regardless of sender progress, so late
// replies to early batches are still captured. The scan always ends via the
// window timer, never by exhausting targets early.
//
// The local host itself is seeded into the result: it will not answer its
// own broadcast but it is provably alive.
//
// Capture open and transmit failures surface as *ScanError; individual
// unreadable frames never do.
func (s *Scanner) Scan(ctx context.Context, targets Targets, capture Capture, opts Options) ([]Discovery, error) {
	opts = opts.withDefaults()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.Window)
	defer cancel()

	found := make(map[netip.Addr]Discovery)
	if s.LocalIP.IsValid() && len(s.LocalMAC) == 6 {
		found[s.LocalIP] = Discovery{IP: s.LocalIP, MAC: s.LocalMAC, Age: 0}
	}

	sendErr := make(chan error, 1)
	go func() {
		err := s.send(ctx, targets, capture, opts)
		if err != nil {
			// An irrecoverable transmit aborts the whole scan.
			cancel()
		}
		sendErr <- err
	}()

	// The listener owns the discovery map. Nothing else touches it until
	// the terminal state is reached, so no locking is needed.
	s.listen(ctx, capture, start, found)

	if err := <-sendErr; err != nil {
		return nil, err
	}

	result := make([]Discovery, 0, len(found))
	for _, d := range found {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IP.Compare(result[j].IP) < 0
	})

	logging.Info("Scan complete",
		zap.Int("hosts", len(result)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// send transmits one request per target in batches, pausing between batches.
func (s *Scanner) send(ctx context.Context, targets Targets, capture Capture, opts Options) error {
	batch := 0
	sent := 0
	inBatch := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		target, ok := targets.Next()
		if !ok {
			logging.LogBatch(batch, sent, sent)
			return nil
		}
		if target == s.LocalIP {
			continue
		}

		frame, err := arp.BuildRequest(s.LocalMAC, s.LocalIP, target)
		if err != nil {
			return NewTransmitError("", err)
		}
		if err := capture.Transmit(frame); err != nil {
			return err
		}
		sent++
		inBatch++

		if inBatch >= opts.BatchSize {
			batch++
			inBatch = 0
			logging.LogBatch(batch, sent, -1)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(opts.BatchPause):
			}
		}
	}
}

// listen reads frames until the window closes, recording the first reply per
// IP. An in-flight receive at the window boundary is allowed to complete, so
// a reply that was already on its way in is still counted.
func (s *Scanner) listen(ctx context.Context, capture Capture, start time.Time, found map[netip.Addr]Discovery) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := capture.Receive()
		if err != nil {
			logging.LogFrameDropped("receive: "+err.Error(), 0)
			// Keep the loop from spinning hot if the handle turns sour.
			time.Sleep(time.Millisecond)
			continue
		}
		if frame == nil {
			// Read timeout tick; loop around and re-check the window.
			continue
		}

		reply, ok := arp.ParseReply(frame, s.LocalIP)
		if !ok {
			logging.LogFrameDropped("not an ARP reply for us", len(frame))
			continue
		}

		if _, seen := found[reply.IP]; seen {
			continue
		}
		d := Discovery{IP: reply.IP, MAC: reply.MAC, Age: time.Since(start)}
		found[reply.IP] = d
		logging.LogDiscovery(net.IP(reply.IP.AsSlice()), reply.MAC, d.Age)
	}
}
