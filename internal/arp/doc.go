// Package arp builds and parses the raw Ethernet+ARP frames the scanner
// exchanges with the local link.
//
// Construction and parsing are symmetric: ParseRequest recovers exactly the
// semantic fields BuildRequest serialized, and ParseReply accepts the frames
// BuildReply produces. ParseReply additionally filters: only ARP replies
// whose target protocol address is the scanning host's own IP are accepted,
// and everything else is discarded without an error, because a busy link
// delivers plenty of frames that simply are not for us.
package arp
