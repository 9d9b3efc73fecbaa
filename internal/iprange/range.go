package iprange

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
)

// Range is an IPv4 network whose usable host addresses can be enumerated in
// ascending order.
type Range struct {
	prefix netip.Prefix
	first  uint32 // first usable host address
	last   uint32 // last usable host address, inclusive
}

// Parse builds a Range from CIDR notation (e.g. "192.168.1.0/24"). The
// address is masked down to the network base so "192.168.1.5/24" and
// "192.168.1.0/24" describe the same range.
func Parse(cidr string) (*Range, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, &RangeError{Kind: ErrMalformed, Input: cidr, Err: err}
	}
	return fromPrefix(prefix.Masked(), cidr)
}

// FromIPNet builds a Range from an interface address and netmask, as reported
// by interface auto-detection.
func FromIPNet(ip net.IP, mask net.IPMask) (*Range, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, &RangeError{Kind: ErrNotIPv4, Input: ip.String()}
	}
	ones, bits := mask.Size()
	if bits != 32 {
		return nil, &RangeError{Kind: ErrNotIPv4, Input: (&net.IPNet{IP: ip, Mask: mask}).String()}
	}
	addr, _ := netip.AddrFromSlice(ip4)
	prefix := netip.PrefixFrom(addr, ones).Masked()
	return fromPrefix(prefix, prefix.String())
}

func fromPrefix(prefix netip.Prefix, input string) (*Range, error) {
	if !prefix.Addr().Is4() {
		return nil, &RangeError{Kind: ErrNotIPv4, Input: input}
	}

	base := addrToUint32(prefix.Addr())
	bits := prefix.Bits()
	size := uint32(1)
	if bits < 32 {
		size = uint32(1) << (32 - bits)
	}

	r := &Range{prefix: prefix}
	switch {
	case bits >= 31:
		// /31 point-to-point pairs and /32 single hosts have no network or
		// broadcast address to exclude.
		r.first = base
		r.last = base + size - 1
	default:
		r.first = base + 1
		r.last = base + size - 2
	}

	if r.last < r.first {
		return nil, &RangeError{Kind: ErrNoHosts, Input: input}
	}
	return r, nil
}

// Size returns the number of usable host addresses in the range.
func (r *Range) Size() int {
	return int(r.last-r.first) + 1
}

// Contains reports whether addr falls inside the network, including the
// network and broadcast addresses.
func (r *Range) Contains(addr netip.Addr) bool {
	return r.prefix.Contains(addr)
}

// String returns the range in CIDR notation.
func (r *Range) String() string {
	return r.prefix.String()
}

// Hosts returns an iterator over the usable host addresses in ascending
// numeric order. The iterator is lazy and single-use; the cursor cannot be
// rewound. Batch scheduling in the scan engine relies on this ordering being
// deterministic.
func (r *Range) Hosts() *Iter {
	return &Iter{next: r.first, last: r.last}
}

// Iter walks a Range's host addresses once, in ascending order.
type Iter struct {
	next uint32
	last uint32
	done bool
}

// Next returns the next host address. The second return value is false once
// the range is exhausted.
func (it *Iter) Next() (netip.Addr, bool) {
	if it.done {
		return netip.Addr{}, false
	}
	addr := uint32ToAddr(it.next)
	if it.next == it.last {
		it.done = true
	} else {
		it.next++
	}
	return addr, true
}

func addrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uint32ToAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// ErrKind classifies range parsing failures.
type ErrKind int

const (
	// ErrMalformed indicates CIDR text that could not be parsed
	ErrMalformed ErrKind = iota
	// ErrNotIPv4 indicates a syntactically valid but non-IPv4 range
	ErrNotIPv4
	// ErrNoHosts indicates a range with no usable host addresses
	ErrNoHosts
)

// RangeError reports an invalid scan range. It is fatal to the scan.
type RangeError struct {
	Kind  ErrKind
	Input string
	Err   error
}

// Error implements the error interface
func (e *RangeError) Error() string {
	var what string
	switch e.Kind {
	case ErrMalformed:
		what = "malformed CIDR"
	case ErrNotIPv4:
		what = "not an IPv4 range"
	case ErrNoHosts:
		what = "no usable host addresses"
	default:
		what = fmt.Sprintf("range error (%d)", e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid range %q: %s: %v", e.Input, what, e.Err)
	}
	return fmt.Sprintf("invalid range %q: %s", e.Input, what)
}

// Unwrap returns the underlying error for error chain inspection
func (e *RangeError) Unwrap() error {
	return e.Err
}
