package hosts

import (
	"fmt"
	"net/netip"
	"os"
	"runtime"
	"sort"
	"strings"
)

// Entry is one hostname mapping the reconciler manages.
type Entry struct {
	IP       netip.Addr
	Hostname string
}

// FileError reports an I/O failure on the hosts file. It is fatal to the
// --add-hosts step only; the scan report has already been produced by the
// time the reconciler runs.
type FileError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("hosts file %s: %s failed: %v", e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FileError) Unwrap() error {
	return e.Err
}

// DefaultPath returns the platform's system hosts file location.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		return `C:\Windows\System32\drivers\etc\hosts`
	}
	return "/etc/hosts"
}

// Diff describes what a reconciliation did (or, in dry-run mode, would do).
type Diff struct {
	Removed []string // managed lines dropped from their original positions
	Added   []string // freshly formatted lines appended at the end
}

// Changed reports whether the file content would differ.
func (d *Diff) Changed() bool {
	return len(d.Removed) > 0 || len(d.Added) > 0
}

// Summary renders the diff for dry-run output.
func (d *Diff) Summary() string {
	if !d.Changed() {
		return "No changes would be made to hosts file.\n"
	}
	var b strings.Builder
	if len(d.Removed) > 0 {
		b.WriteString("Entries to be removed:\n")
		for _, line := range d.Removed {
			b.WriteString("  " + line + "\n")
		}
	}
	if len(d.Added) > 0 {
		b.WriteString("Entries to be added:\n")
		for _, line := range d.Added {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

// Reconciler synchronizes hostname mappings into a hosts file while leaving
// all unrelated content untouched.
type Reconciler struct {
	Path string
}

// New creates a Reconciler for the given hosts file path, defaulting to the
// system location when path is empty.
func New(path string) *Reconciler {
	if path == "" {
		path = DefaultPath()
	}
	return &Reconciler{Path: path}
}

// Apply merges the entries into the hosts file. Comment and blank lines,
// and mapping lines that collide with no entry, are preserved byte-for-byte
// in place. Lines whose IP or hostname collides with the batch are removed,
// and one freshly formatted line per entry is appended, sorted ascending by
// IP. Applying the same batch twice yields an identical file, which makes
// repeated scan-and-update runs safe.
//
// In dry-run mode the same diff is computed and returned but the file is
// left untouched. A missing file is an error for a live run but an empty
// starting point for a dry run.
func (r *Reconciler) Apply(entries []Entry, dryRun bool) (*Diff, error) {
	content, err := os.ReadFile(r.Path)
	if err != nil {
		if dryRun && os.IsNotExist(err) {
			content = nil
		} else {
			return nil, &FileError{Path: r.Path, Op: "read", Err: err}
		}
	}

	ips := make(map[netip.Addr]bool, len(entries))
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		ips[e.IP] = true
		names[e.Hostname] = true
	}

	var kept []string
	diff := &Diff{}
	for _, line := range splitLines(string(content)) {
		if isManaged(line, ips, names) {
			diff.Removed = append(diff.Removed, line)
			continue
		}
		kept = append(kept, line)
	}

	diff.Added = formatEntries(entries)

	if dryRun {
		return diff, nil
	}

	out := strings.Join(append(kept, diff.Added...), "\n")
	if out != "" {
		out += "\n"
	}
	if err := os.WriteFile(r.Path, []byte(out), 0644); err != nil {
		return nil, &FileError{Path: r.Path, Op: "write", Err: err}
	}
	return diff, nil
}

// splitLines breaks file content into lines without inventing a trailing
// empty line for the final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isManaged decides whether a line belongs to the reconciler: a host
// mapping whose IP or any hostname collides with the new batch. Comments,
// blanks, and unparseable lines are always foreign.
func isManaged(line string, ips map[netip.Addr]bool, names map[string]bool) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return false
	}
	ip, err := netip.ParseAddr(fields[0])
	if err != nil || !ip.Is4() {
		return false
	}
	if ips[ip] {
		return true
	}
	for _, name := range fields[1:] {
		if names[name] {
			return true
		}
	}
	return false
}

// formatEntries renders the managed lines: IP left-aligned and padded to the
// longest IP literal in the batch plus one, then two tabs, then the hostname.
func formatEntries(entries []Entry) []string {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].IP.Compare(sorted[j].IP) < 0
	})

	width := 0
	for _, e := range sorted {
		if l := len(e.IP.String()); l > width {
			width = l
		}
	}

	lines := make([]string, 0, len(sorted))
	for _, e := range sorted {
		lines = append(lines, fmt.Sprintf("%-*s\t\t%s", width+1, e.IP.String(), e.Hostname))
	}
	return lines
}
