package arp

import (
	"net"
	"net/netip"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// broadcastMAC is the Ethernet broadcast destination used by ARP requests.
var broadcastMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// zeroMAC is the all-zero target hardware address of an ARP request.
var zeroMAC = net.HardwareAddr{0, 0, 0, 0, 0, 0}

// Reply holds the semantic fields of an accepted ARP reply: who answered.
type Reply struct {
	IP  netip.Addr
	MAC net.HardwareAddr
}

// BuildRequest serializes an Ethernet broadcast frame carrying an ARP
// who-has request for targetIP, sent from srcMAC/srcIP. The target hardware
// address is all-zero, as the protocol requires for requests.
func BuildRequest(srcMAC net.HardwareAddr, srcIP, targetIP netip.Addr) ([]byte, error) {
	src4 := srcIP.As4()
	dst4 := targetIP.As4()

	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       broadcastMAC,
		EthernetType: layers.EthernetTypeARP,
	}
	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte(srcMAC),
		SourceProtAddress: src4[:],
		DstHwAddress:      []byte(zeroMAC),
		DstProtAddress:    dst4[:],
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &arp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReply serializes a unicast ARP reply from srcMAC/srcIP to
// dstMAC/dstIP. The scanner itself never answers queries; this exists so the
// codec is symmetric and reply frames can be synthesized in tests and dummy
// runs.
func BuildReply(srcMAC net.HardwareAddr, srcIP netip.Addr, dstMAC net.HardwareAddr, dstIP netip.Addr) ([]byte, error) {
	src4 := srcIP.As4()
	dst4 := dstIP.As4()

	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeARP,
	}
	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPReply,
		SourceHwAddress:   []byte(srcMAC),
		SourceProtAddress: src4[:],
		DstHwAddress:      []byte(dstMAC),
		DstProtAddress:    dst4[:],
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &arp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseReply decodes a raw frame and extracts the responder if it is an ARP
// reply addressed to localIP. Short, non-ARP, non-reply, and foreign-target
// frames all return ok=false; a scan sees plenty of those and none of them
// are errors.
func ParseReply(frame []byte, localIP netip.Addr) (Reply, bool) {
	packet := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.NoCopy)
	arpLayer := packet.Layer(layers.LayerTypeARP)
	if arpLayer == nil {
		return Reply{}, false
	}
	arp, ok := arpLayer.(*layers.ARP)
	if !ok || arp.Operation != layers.ARPReply {
		return Reply{}, false
	}
	if len(arp.SourceProtAddress) != 4 || len(arp.DstProtAddress) != 4 || len(arp.SourceHwAddress) != 6 {
		return Reply{}, false
	}

	// Replies destined elsewhere belong to someone else's exchange.
	target := netip.AddrFrom4([4]byte(arp.DstProtAddress))
	if target != localIP {
		return Reply{}, false
	}

	mac := make(net.HardwareAddr, 6)
	copy(mac, arp.SourceHwAddress)
	return Reply{
		IP:  netip.AddrFrom4([4]byte(arp.SourceProtAddress)),
		MAC: mac,
	}, true
}

// ParseRequest decodes a raw frame as an ARP who-has request, recovering
// the sender and the probed target. Used by round-trip verification and the
// dummy capture.
func ParseRequest(frame []byte) (sender Reply, target netip.Addr, ok bool) {
	packet := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.NoCopy)
	arpLayer := packet.Layer(layers.LayerTypeARP)
	if arpLayer == nil {
		return Reply{}, netip.Addr{}, false
	}
	arp, isARP := arpLayer.(*layers.ARP)
	if !isARP || arp.Operation != layers.ARPRequest {
		return Reply{}, netip.Addr{}, false
	}
	if len(arp.SourceProtAddress) != 4 || len(arp.DstProtAddress) != 4 || len(arp.SourceHwAddress) != 6 {
		return Reply{}, netip.Addr{}, false
	}

	mac := make(net.HardwareAddr, 6)
	copy(mac, arp.SourceHwAddress)
	sender = Reply{
		IP:  netip.AddrFrom4([4]byte(arp.SourceProtAddress)),
		MAC: mac,
	}
	return sender, netip.AddrFrom4([4]byte(arp.DstProtAddress)), true
}

// FormatMAC renders a hardware address in the canonical form used everywhere
// in the scanner's output: colon-separated uppercase hex.
func FormatMAC(mac net.HardwareAddr) string {
	return strings.ToUpper(mac.String())
}

// ParseMAC parses a textual MAC address case-insensitively, accepting the
// usual colon and dash separated forms.
func ParseMAC(s string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(mac) != 6 {
		return nil, &net.AddrError{Err: "not a 6-byte hardware address", Addr: s}
	}
	return mac, nil
}
