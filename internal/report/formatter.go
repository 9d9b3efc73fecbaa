package report

import (
	"fmt"
	"io"
	"net"
	"net/netip"
	"sort"
	"strings"

	"arpscan/internal/arp"
	"arpscan/internal/hosts"
	"arpscan/internal/labels"
	"arpscan/internal/scan"
)

// Row is one line of the report: a discovery left-joined with its label
// entry by MAC.
type Row struct {
	IP       netip.Addr
	MAC      net.HardwareAddr
	Hostname string
	Label    string

	// hostnameFromLabel distinguishes a hostname that came from the label
	// file from one filled in by mDNS enrichment. Only label hostnames are
	// eligible for the hosts file.
	hostnameFromLabel bool
}

// Build joins discoveries with label entries and returns rows sorted by
// ascending numeric IP. When lookup is false the store is not consulted and
// rows carry no optional columns.
func Build(discoveries []scan.Discovery, store *labels.Store, lookup bool) []Row {
	rows := make([]Row, 0, len(discoveries))
	for _, d := range discoveries {
		row := Row{IP: d.IP, MAC: d.MAC}
		if lookup && store != nil {
			if entry, ok := store.Lookup(d.MAC); ok {
				row.Label = entry.Label
				row.Hostname = entry.Hostname
				row.hostnameFromLabel = entry.Hostname != ""
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].IP.Compare(rows[j].IP) < 0
	})
	return rows
}

// EnrichHostnames fills empty hostname columns from an mDNS name map. These
// names are display-only; HostEntries ignores them.
func EnrichHostnames(rows []Row, names map[netip.Addr]string) {
	for i := range rows {
		if rows[i].Hostname != "" {
			continue
		}
		if name, ok := names[rows[i].IP]; ok && !strings.ContainsAny(name, "\t\n\r") {
			rows[i].Hostname = name
		}
	}
}

// Render writes the report, one tab-separated line per row: IP, MAC, then
// hostname and label when present. Absent optional fields are omitted
// rather than rendered as empty placeholders.
func Render(w io.Writer, rows []Row) error {
	for _, row := range rows {
		fields := []string{row.IP.String(), arp.FormatMAC(row.MAC)}
		if row.Hostname != "" {
			fields = append(fields, row.Hostname)
		}
		if row.Label != "" {
			fields = append(fields, row.Label)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// HostEntries extracts the (ip, hostname) pairs destined for the hosts
// file: only rows whose label entry carried a non-empty hostname qualify.
func HostEntries(rows []Row) []hosts.Entry {
	var entries []hosts.Entry
	for _, row := range rows {
		if row.hostnameFromLabel && row.Hostname != "" {
			entries = append(entries, hosts.Entry{IP: row.IP, Hostname: row.Hostname})
		}
	}
	return entries
}
