package labels

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"arpscan/internal/arp"
	"arpscan/internal/logging"
)

// Entry is one MAC-keyed label record from the label file.
type Entry struct {
	MAC      string // canonical uppercase colon form
	Label    string
	Hostname string // empty means no hostname
}

// SkippedLine records a label-file line that could not be used and why.
// Skipped lines are warnings, never failures.
type SkippedLine struct {
	LineNo int
	Reason string
}

// Store holds the loaded MAC-to-label mapping. Lookup is case-insensitive on
// MAC input because keys are canonicalized at load time.
type Store struct {
	path    string
	entries map[string]Entry
	skipped []SkippedLine
	present bool // whether the file existed at load time
}

// Load reads a label file of MAC=LABEL=HOSTNAME lines. The hostname segment
// is optional; a trailing "=" with nothing after it means "no hostname". A
// malformed line (wrong segment count, bad MAC, separator characters inside
// a field) is skipped with a warning so one bad line never aborts the run.
// A missing file yields an empty store and no error.
func Load(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]Entry),
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open label file %s: %w", path, err)
	}
	defer f.Close()
	s.present = true

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, reason := parseLine(line)
		if reason != "" {
			s.skipped = append(s.skipped, SkippedLine{LineNo: lineNo, Reason: reason})
			logging.LogSkippedLine(path, lineNo, reason)
			continue
		}
		// Last entry for a duplicate MAC wins.
		s.entries[entry.MAC] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label file %s: %w", path, err)
	}

	return s, nil
}

// parseLine classifies one line as a valid entry or a skip reason.
func parseLine(line string) (Entry, string) {
	parts := strings.Split(line, "=")
	if len(parts) < 2 || len(parts) > 3 {
		return Entry{}, fmt.Sprintf("expected MAC=LABEL or MAC=LABEL=HOSTNAME, got %d segments", len(parts))
	}

	mac, err := arp.ParseMAC(parts[0])
	if err != nil {
		return Entry{}, "invalid MAC address"
	}

	entry := Entry{
		MAC:   arp.FormatMAC(mac),
		Label: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		entry.Hostname = strings.TrimSpace(parts[2])
	}

	if containsSeparator(entry.Label) || containsSeparator(entry.Hostname) {
		return Entry{}, "label or hostname contains a tab or newline"
	}
	return entry, ""
}

// containsSeparator reports whether a field would corrupt the tab-separated
// report or the hosts file if rendered.
func containsSeparator(field string) bool {
	return strings.ContainsAny(field, "\t\n\r")
}

// Lookup returns the entry for a hardware address, if any.
func (s *Store) Lookup(mac net.HardwareAddr) (Entry, bool) {
	entry, ok := s.entries[arp.FormatMAC(mac)]
	return entry, ok
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Present reports whether the label file existed at load time. Lookup mode
// is a caller decision (the -l flag); an absent file just means an empty
// store.
func (s *Store) Present() bool {
	return s.present
}

// Skipped returns the lines that were rejected during load.
func (s *Store) Skipped() []SkippedLine {
	return s.skipped
}

// Ensure appends placeholder "MAC==" lines for any of the given hardware
// addresses not yet mentioned in the label file, so newly discovered hosts
// show up ready to be labeled. Existing lines are preserved verbatim.
func (s *Store) Ensure(macs []net.HardwareAddr) error {
	var lines []string
	if data, err := os.ReadFile(s.path); err == nil {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read label file %s: %w", s.path, err)
	}

	added := 0
	for _, mac := range macs {
		canonical := arp.FormatMAC(mac)
		if hasLineFor(lines, canonical) {
			continue
		}
		lines = append(lines, canonical+"==")
		added++
	}
	if added == 0 {
		return nil
	}

	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to update label file %s: %w", s.path, err)
	}
	return nil
}

func hasLineFor(lines []string, canonicalMAC string) bool {
	for _, line := range lines {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(line)), canonicalMAC) {
			return true
		}
	}
	return false
}
