// Package iprange expands an IPv4 network range into the ordered sequence of
// candidate host addresses to probe.
//
// A Range comes either from explicit CIDR notation (the -r flag) or from the
// active interface's address and netmask. Hosts() yields every usable host
// address in ascending numeric order, excluding the network and broadcast
// addresses for prefixes of /30 and shorter; /31 yields both addresses and
// /32 yields the single address. The iterator is lazy, so a /16 sweep does
// not allocate 65534 addresses up front.
package iprange
