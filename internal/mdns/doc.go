// Package mdns provides optional hostname enrichment via multicast DNS.
//
// ARP replies carry no names. When the --mdns flag is set, the scanner
// additionally browses the "_workstation._tcp" service for a few seconds and
// uses the advertised hostnames to fill otherwise-empty hostname columns in
// the report. The names are display-only: hosts file entries always come
// from the label file, never from mDNS.
//
// mDNS requires multicast support on the interface and UDP port 5353; when
// browsing fails the scanner logs a warning and the report simply lacks the
// extra names.
package mdns
