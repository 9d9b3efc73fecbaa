package netif

import (
	"fmt"
	"net"
	"net/netip"
)

// Info describes the network interface a scan runs on.
type Info struct {
	Name    string
	IP      netip.Addr
	Netmask net.IPMask
	MAC     net.HardwareAddr
}

// String returns a human-readable one-liner for verbose output.
func (i Info) String() string {
	ones, _ := i.Netmask.Size()
	return fmt.Sprintf("%s (%s/%d, %s)", i.Name, i.IP, ones, i.MAC)
}

// Active picks the interface the scan should run on: the first interface
// that is up, not loopback, and carries both an IPv4 address and a hardware
// address.
func Active() (Info, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Info{}, fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if !usable(iface) {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip, mask, ok := firstIPv4(addrs); ok {
			return Info{Name: iface.Name, IP: ip, Netmask: mask, MAC: iface.HardwareAddr}, nil
		}
	}

	return Info{}, fmt.Errorf("no usable IPv4 interface found")
}

// ByName resolves a specific interface, for installations that pin the
// scanner to one NIC in the config file.
func ByName(name string) (Info, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return Info{}, fmt.Errorf("failed to get interface %s: %w", name, err)
	}
	if !usable(*iface) {
		return Info{}, fmt.Errorf("interface %s is down, loopback, or has no hardware address", name)
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return Info{}, fmt.Errorf("failed to get addresses for %s: %w", name, err)
	}
	ip, mask, ok := firstIPv4(addrs)
	if !ok {
		return Info{}, fmt.Errorf("no IPv4 address found on interface %s", name)
	}
	return Info{Name: iface.Name, IP: ip, Netmask: mask, MAC: iface.HardwareAddr}, nil
}

func usable(iface net.Interface) bool {
	if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
		return false
	}
	return len(iface.HardwareAddr) == 6
}

// firstIPv4 extracts the first IPv4 address and its mask from an interface
// address list.
func firstIPv4(addrs []net.Addr) (netip.Addr, net.IPMask, bool) {
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipnet.IP.To4()
		if ip4 == nil {
			continue
		}
		nip, ok := netip.AddrFromSlice(ip4)
		if !ok {
			continue
		}
		mask := ipnet.Mask
		if len(mask) == 16 {
			mask = mask[12:]
		}
		return nip, mask, true
	}
	return netip.Addr{}, nil, false
}
