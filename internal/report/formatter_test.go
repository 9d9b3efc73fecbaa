package report

import (
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arpscan/internal/labels"
	"arpscan/internal/scan"
)

func loadStore(t *testing.T, content string) *labels.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := labels.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func discovery(ip, mac string) scan.Discovery {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		panic(err)
	}
	return scan.Discovery{IP: netip.MustParseAddr(ip), MAC: hw}
}

func render(t *testing.T, rows []Row) string {
	t.Helper()
	var b strings.Builder
	if err := Render(&b, rows); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestRenderWithLabelAndHostname(t *testing.T) {
	store := loadStore(t, "40:0D:10:88:92:90=Router=router.local\n")
	rows := Build([]scan.Discovery{discovery("192.168.0.1", "40:0d:10:88:92:90")}, store, true)

	got := render(t, rows)
	want := "192.168.0.1\t40:0D:10:88:92:90\trouter.local\tRouter\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderColumnOmission(t *testing.T) {
	store := loadStore(t, strings.Join([]string{
		"40:0D:10:88:92:90=Router=router.local",
		"00:12:41:89:3F:4C=NAS",
	}, "\n")+"\n")

	tests := []struct {
		name   string
		d      scan.Discovery
		lookup bool
		want   string
	}{
		{
			name:   "Hostname and label",
			d:      discovery("192.168.0.1", "40:0D:10:88:92:90"),
			lookup: true,
			want:   "192.168.0.1\t40:0D:10:88:92:90\trouter.local\tRouter\n",
		},
		{
			name:   "Label without hostname",
			d:      discovery("192.168.0.2", "00:12:41:89:3F:4C"),
			lookup: true,
			want:   "192.168.0.2\t00:12:41:89:3F:4C\tNAS\n",
		},
		{
			name:   "Unlabeled host",
			d:      discovery("192.168.0.3", "aa:bb:cc:dd:ee:ff"),
			lookup: true,
			want:   "192.168.0.3\tAA:BB:CC:DD:EE:FF\n",
		},
		{
			name:   "Lookup disabled",
			d:      discovery("192.168.0.1", "40:0D:10:88:92:90"),
			lookup: false,
			want:   "192.168.0.1\t40:0D:10:88:92:90\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Build([]scan.Discovery{tt.d}, store, tt.lookup)
			if got := render(t, rows); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSortsByNumericIP(t *testing.T) {
	ds := []scan.Discovery{
		discovery("192.168.0.100", "aa:00:00:00:00:03"),
		discovery("192.168.0.2", "aa:00:00:00:00:01"),
		discovery("192.168.0.20", "aa:00:00:00:00:02"),
	}
	rows := Build(ds, nil, false)

	want := []string{"192.168.0.2", "192.168.0.20", "192.168.0.100"}
	for i, ip := range want {
		if rows[i].IP.String() != ip {
			t.Errorf("row[%d].IP = %s, want %s (numeric order)", i, rows[i].IP, ip)
		}
	}
}

func TestHostEntriesOnlyLabelHostnames(t *testing.T) {
	store := loadStore(t, strings.Join([]string{
		"40:0D:10:88:92:90=Router=router.local",
		"00:12:41:89:3F:4C=NAS",
	}, "\n")+"\n")

	rows := Build([]scan.Discovery{
		discovery("192.168.0.1", "40:0D:10:88:92:90"),
		discovery("192.168.0.2", "00:12:41:89:3F:4C"),
		discovery("192.168.0.3", "aa:bb:cc:dd:ee:ff"),
	}, store, true)

	// mDNS enrichment fills a display hostname for the NAS, but that must
	// not leak into the hosts file.
	EnrichHostnames(rows, map[netip.Addr]string{
		netip.MustParseAddr("192.168.0.2"): "nas.lan",
	})

	entries := HostEntries(rows)
	if len(entries) != 1 {
		t.Fatalf("HostEntries() = %d entries, want 1", len(entries))
	}
	if entries[0].Hostname != "router.local" || entries[0].IP.String() != "192.168.0.1" {
		t.Errorf("entry = %+v, want router.local@192.168.0.1", entries[0])
	}
}

func TestEnrichHostnames(t *testing.T) {
	store := loadStore(t, "40:0D:10:88:92:90=Router=router.local\n")
	rows := Build([]scan.Discovery{
		discovery("192.168.0.1", "40:0D:10:88:92:90"),
		discovery("192.168.0.2", "00:12:41:89:3F:4C"),
	}, store, true)

	EnrichHostnames(rows, map[netip.Addr]string{
		netip.MustParseAddr("192.168.0.1"): "mdns-name.lan", // label hostname wins
		netip.MustParseAddr("192.168.0.2"): "nas.lan",
	})

	if rows[0].Hostname != "router.local" {
		t.Errorf("label hostname overwritten: %q", rows[0].Hostname)
	}
	if rows[1].Hostname != "nas.lan" {
		t.Errorf("empty hostname not enriched: %q", rows[1].Hostname)
	}
}

func TestEnrichHostnamesRejectsSeparators(t *testing.T) {
	rows := Build([]scan.Discovery{discovery("192.168.0.2", "00:12:41:89:3F:4C")}, nil, false)
	EnrichHostnames(rows, map[netip.Addr]string{
		netip.MustParseAddr("192.168.0.2"): "bad\tname",
	})
	if rows[0].Hostname != "" {
		t.Errorf("hostname with tab must be rejected, got %q", rows[0].Hostname)
	}
}
