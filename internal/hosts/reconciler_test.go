package hosts

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeHosts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func entry(ip, hostname string) Entry {
	return Entry{IP: netip.MustParseAddr(ip), Hostname: hostname}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestApplyPreservesForeignLines(t *testing.T) {
	path := writeHosts(t, "127.0.0.1\tlocalhost\n")
	r := New(path)

	diff, err := r.Apply([]Entry{entry("192.168.0.1", "router.local")}, false)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(diff.Removed) != 0 {
		t.Errorf("Removed = %v, want none", diff.Removed)
	}

	got := readFile(t, path)
	want := "127.0.0.1\tlocalhost\n192.168.0.1 \t\trouter.local\n"
	if got != want {
		t.Errorf("file =\n%q\nwant\n%q", got, want)
	}
}

func TestApplyPadding(t *testing.T) {
	path := writeHosts(t, "")
	r := New(path)

	// Batch mixes short and long IP literals; all lines pad to the longest
	// plus one space.
	entries := []Entry{
		entry("10.0.0.200", "nas.local"),
		entry("10.0.0.1", "router.local"),
	}
	if _, err := r.Apply(entries, false); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got := readFile(t, path)
	want := "10.0.0.1   \t\trouter.local\n10.0.0.200 \t\tnas.local\n"
	if got != want {
		t.Errorf("file =\n%q\nwant\n%q", got, want)
	}
}

func TestApplySortsByIP(t *testing.T) {
	path := writeHosts(t, "")
	r := New(path)

	entries := []Entry{
		entry("192.168.0.20", "b.local"),
		entry("192.168.0.3", "a.local"),
		entry("192.168.0.100", "c.local"),
	}
	if _, err := r.Apply(entries, false); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(readFile(t, path), "\n"), "\n")
	wantOrder := []string{"192.168.0.3", "192.168.0.20", "192.168.0.100"}
	for i, prefix := range wantOrder {
		if !strings.HasPrefix(lines[i], prefix+" ") {
			t.Errorf("line %d = %q, want IP %s (numeric order, not lexicographic)", i, lines[i], prefix)
		}
	}
}

func TestApplyReplacesCollisions(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		batch    []Entry
		wantGone string
	}{
		{
			name:     "Same IP, different hostname",
			existing: "192.168.0.1 \t\told-name.local\n",
			batch:    []Entry{entry("192.168.0.1", "router.local")},
			wantGone: "old-name.local",
		},
		{
			name:     "Same hostname, different IP",
			existing: "192.168.0.99 \t\trouter.local\n",
			batch:    []Entry{entry("192.168.0.1", "router.local")},
			wantGone: "192.168.0.99",
		},
		{
			name:     "Hostname collision on an alias",
			existing: "192.168.0.99\tgateway router.local\n",
			batch:    []Entry{entry("192.168.0.1", "router.local")},
			wantGone: "192.168.0.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeHosts(t, "127.0.0.1\tlocalhost\n"+tt.existing)
			r := New(path)

			diff, err := r.Apply(tt.batch, false)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if len(diff.Removed) != 1 {
				t.Fatalf("Removed = %v, want exactly the colliding line", diff.Removed)
			}

			got := readFile(t, path)
			if strings.Contains(got, tt.wantGone) {
				t.Errorf("file still contains %q:\n%s", tt.wantGone, got)
			}
			if !strings.Contains(got, "127.0.0.1\tlocalhost") {
				t.Error("unrelated localhost line must survive verbatim")
			}
			if !strings.Contains(got, "192.168.0.1 \t\trouter.local") {
				t.Errorf("replacement line missing:\n%s", got)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	path := writeHosts(t, "# managed by hand\n127.0.0.1\tlocalhost\n\n10.0.0.5\tprinter\n")
	r := New(path)

	batch := []Entry{
		entry("192.168.0.1", "router.local"),
		entry("192.168.0.2", "nas.local"),
	}

	if _, err := r.Apply(batch, false); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, path)

	if _, err := r.Apply(batch, false); err != nil {
		t.Fatal(err)
	}
	second := readFile(t, path)

	if first != second {
		t.Errorf("second application changed the file:\nfirst:\n%q\nsecond:\n%q", first, second)
	}
}

func TestApplyCommentsUntouched(t *testing.T) {
	content := "# 192.168.0.1 router.local -- disabled on purpose\n127.0.0.1\tlocalhost\n"
	path := writeHosts(t, content)
	r := New(path)

	if _, err := r.Apply([]Entry{entry("192.168.0.1", "router.local")}, false); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, path)
	if !strings.Contains(got, "# 192.168.0.1 router.local -- disabled on purpose") {
		t.Error("comment mentioning a managed IP must be preserved verbatim")
	}
}

func TestApplyDryRun(t *testing.T) {
	content := "127.0.0.1\tlocalhost\n192.168.0.1 \t\tstale.local\n"
	path := writeHosts(t, content)
	r := New(path)

	diff, err := r.Apply([]Entry{entry("192.168.0.1", "router.local")}, true)
	if err != nil {
		t.Fatalf("Apply(dryRun) error = %v", err)
	}

	if readFile(t, path) != content {
		t.Error("dry run must not modify the file")
	}
	if len(diff.Removed) != 1 || len(diff.Added) != 1 {
		t.Errorf("diff = %+v, want 1 removed and 1 added", diff)
	}
	if !diff.Changed() {
		t.Error("Changed() should be true")
	}
	if !strings.Contains(diff.Summary(), "router.local") {
		t.Errorf("Summary() should mention the new entry:\n%s", diff.Summary())
	}
}

func TestApplyMissingFile(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope", "hosts"))

	_, err := r.Apply([]Entry{entry("192.168.0.1", "router.local")}, false)
	if err == nil {
		t.Fatal("Apply() on missing file should fail")
	}
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Errorf("expected *FileError, got %T", err)
	}

	// Dry run against a missing file previews from an empty starting point.
	diff, err := r.Apply([]Entry{entry("192.168.0.1", "router.local")}, true)
	if err != nil {
		t.Fatalf("Apply(dryRun) on missing file error = %v", err)
	}
	if len(diff.Added) != 1 {
		t.Errorf("dry-run Added = %v, want 1 entry", diff.Added)
	}
}

func TestDefaultPath(t *testing.T) {
	if DefaultPath() == "" {
		t.Error("DefaultPath() should never be empty")
	}
	if New("").Path != DefaultPath() {
		t.Error("New(\"\") should fall back to the system path")
	}
}
