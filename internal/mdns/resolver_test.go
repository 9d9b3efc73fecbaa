package mdns

import (
	"net"
	"net/netip"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Trailing root dot", "printer.local.", "printer.local"},
		{"No trailing dot", "printer.local", "printer.local"},
		{"Whitespace", "  printer.local. ", "printer.local"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeHost(tt.input); got != tt.want {
				t.Errorf("normalizeHost(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollectEntry(t *testing.T) {
	names := make(map[netip.Addr]string)

	collectEntry(names, &zeroconf.ServiceEntry{
		HostName: "nas.local.",
		AddrIPv4: []net.IP{net.IPv4(192, 168, 0, 2)},
	})

	addr := netip.MustParseAddr("192.168.0.2")
	if names[addr] != "nas.local" {
		t.Errorf("names[%v] = %q, want nas.local", addr, names[addr])
	}

	// First advertisement wins for an address.
	collectEntry(names, &zeroconf.ServiceEntry{
		HostName: "other.local.",
		AddrIPv4: []net.IP{net.IPv4(192, 168, 0, 2)},
	})
	if names[addr] != "nas.local" {
		t.Errorf("names[%v] = %q, first advertisement should win", addr, names[addr])
	}
}

func TestCollectEntryIgnoresUnusable(t *testing.T) {
	names := make(map[netip.Addr]string)

	collectEntry(names, nil)
	collectEntry(names, &zeroconf.ServiceEntry{HostName: "", AddrIPv4: []net.IP{net.IPv4(10, 0, 0, 1)}})
	collectEntry(names, &zeroconf.ServiceEntry{HostName: "v6only.local.", AddrIPv4: nil})

	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}
}
