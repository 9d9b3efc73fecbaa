package netif

import (
	"net"
	"testing"
)

func TestFirstIPv4(t *testing.T) {
	tests := []struct {
		name   string
		addrs  []net.Addr
		want   string
		wantOK bool
	}{
		{
			name: "IPv4 only",
			addrs: []net.Addr{
				&net.IPNet{IP: net.IPv4(192, 168, 1, 10), Mask: net.CIDRMask(24, 32)},
			},
			want:   "192.168.1.10",
			wantOK: true,
		},
		{
			name: "IPv6 before IPv4",
			addrs: []net.Addr{
				&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
				&net.IPNet{IP: net.IPv4(10, 0, 0, 5), Mask: net.CIDRMask(16, 32)},
			},
			want:   "10.0.0.5",
			wantOK: true,
		},
		{
			name: "IPv6 only",
			addrs: []net.Addr{
				&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
			},
			wantOK: false,
		},
		{
			name:   "Empty",
			addrs:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, mask, ok := firstIPv4(tt.addrs)
			if ok != tt.wantOK {
				t.Fatalf("firstIPv4() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ip.String() != tt.want {
				t.Errorf("firstIPv4() ip = %v, want %v", ip, tt.want)
			}
			if len(mask) != 4 {
				t.Errorf("mask length = %d, want 4", len(mask))
			}
		})
	}
}

func TestUsable(t *testing.T) {
	mac := net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}

	tests := []struct {
		name  string
		iface net.Interface
		want  bool
	}{
		{"Up with MAC", net.Interface{Flags: net.FlagUp, HardwareAddr: mac}, true},
		{"Down", net.Interface{HardwareAddr: mac}, false},
		{"Loopback", net.Interface{Flags: net.FlagUp | net.FlagLoopback, HardwareAddr: mac}, false},
		{"No MAC", net.Interface{Flags: net.FlagUp}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usable(tt.iface); got != tt.want {
				t.Errorf("usable() = %v, want %v", got, tt.want)
			}
		})
	}
}
