package mdns

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// serviceType is the mDNS service most LAN hosts advertise a
	// workstation presence under.
	serviceType = "_workstation._tcp"

	// serviceDomain is the mDNS domain (typically "local.")
	serviceDomain = "local."

	// DefaultTimeout is the default browse window for hostname resolution
	DefaultTimeout = 3 * time.Second
)

// Resolver browses mDNS for hostnames of nearby IPv4 hosts.
type Resolver struct {
	// Timeout is the maximum time to spend browsing
	Timeout time.Duration
}

// NewResolver creates a Resolver with default settings
func NewResolver() *Resolver {
	return &Resolver{Timeout: DefaultTimeout}
}

// Resolve browses the local network and returns a map of IPv4 address to
// advertised hostname. The map only ever grows more complete; a host that
// does not advertise simply stays absent. Resolution failure is a
// degradation, not a scan failure, and callers treat the error as a warning.
func (r *Resolver) Resolve(ctx context.Context) (map[netip.Addr]string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	names := make(map[netip.Addr]string)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			collectEntry(names, entry)
		}
	}()

	if err := resolver.Browse(ctx, serviceType, serviceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// The entries channel closes when the context ends; wait for the
	// collector to drain it before handing the map out.
	<-ctx.Done()
	<-done

	return names, nil
}

// collectEntry records the entry's hostname for each of its IPv4 addresses.
func collectEntry(names map[netip.Addr]string, entry *zeroconf.ServiceEntry) {
	if entry == nil {
		return
	}
	hostname := normalizeHost(entry.HostName)
	if hostname == "" {
		return
	}
	for _, ip := range entry.AddrIPv4 {
		ip4 := ip.To4()
		if ip4 == nil {
			continue
		}
		addr, ok := netip.AddrFromSlice(ip4)
		if !ok {
			continue
		}
		if _, seen := names[addr]; !seen {
			names[addr] = hostname
		}
	}
}

// normalizeHost trims the trailing root dot mDNS appends to hostnames.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimSuffix(host, ".")
	return host
}

// Resolve is a convenience function using a default resolver with the given
// timeout.
func Resolve(ctx context.Context, timeout time.Duration) (map[netip.Addr]string, error) {
	r := NewResolver()
	r.Timeout = timeout
	return r.Resolve(ctx)
}
