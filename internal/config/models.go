package config

import "time"

// Preferences represents the on-disk configuration file. Every field is
// optional; zero values fall back to the built-in defaults, so a missing or
// partial file is always usable.
type Preferences struct {
	Version int `yaml:"version"`

	// Scan holds the timing knobs for the ARP sweep.
	Scan *ScanPrefs `yaml:"scan,omitempty"`

	// Paths overrides the default file locations.
	Paths *PathPrefs `yaml:"paths,omitempty"`

	// Interface pins scanning to a named network interface instead of
	// auto-detecting the one carrying the primary local IPv4 address.
	Interface string `yaml:"interface,omitempty"`
}

// ScanPrefs holds scan timing preferences. Durations are YAML duration
// strings ("2s", "10ms").
type ScanPrefs struct {
	Window      time.Duration `yaml:"window,omitempty"`       // full scan window
	FastWindow  time.Duration `yaml:"fast_window,omitempty"`  // window under --fast
	BatchSize   int           `yaml:"batch_size,omitempty"`   // requests per batch
	BatchPause  time.Duration `yaml:"batch_pause,omitempty"`  // pause between batches
	FastPause   time.Duration `yaml:"fast_pause,omitempty"`   // pause under --fast
	MDNSTimeout time.Duration `yaml:"mdns_timeout,omitempty"` // hostname enrichment browse time
}

// PathPrefs holds file location preferences.
type PathPrefs struct {
	Labels string `yaml:"labels,omitempty"` // label file, default "labels.txt"
	Hosts  string `yaml:"hosts,omitempty"`  // hosts file, default per-OS
}

// Default scan timing values. The slow/fast split mirrors the two network
// profiles the scanner targets: a 2s window with 10ms batch pauses for
// ordinary networks, halved-or-better for networks known to answer quickly.
const (
	DefaultWindow      = 2 * time.Second
	DefaultFastWindow  = 500 * time.Millisecond
	DefaultBatchSize   = 32
	DefaultBatchPause  = 10 * time.Millisecond
	DefaultFastPause   = 5 * time.Millisecond
	DefaultMDNSTimeout = 3 * time.Second

	// DefaultLabelsPath is resolved relative to the working directory,
	// matching where operators keep their label inventory.
	DefaultLabelsPath = "labels.txt"
)

// NewPreferences returns a Preferences populated with defaults.
func NewPreferences() *Preferences {
	return &Preferences{
		Version: 1,
		Scan: &ScanPrefs{
			Window:      DefaultWindow,
			FastWindow:  DefaultFastWindow,
			BatchSize:   DefaultBatchSize,
			BatchPause:  DefaultBatchPause,
			FastPause:   DefaultFastPause,
			MDNSTimeout: DefaultMDNSTimeout,
		},
		Paths: &PathPrefs{
			Labels: DefaultLabelsPath,
		},
	}
}

// normalize fills in defaults for any unset field so callers never have to
// re-check for zero values.
func (p *Preferences) normalize() {
	def := NewPreferences()
	if p.Scan == nil {
		p.Scan = def.Scan
	} else {
		if p.Scan.Window <= 0 {
			p.Scan.Window = def.Scan.Window
		}
		if p.Scan.FastWindow <= 0 {
			p.Scan.FastWindow = def.Scan.FastWindow
		}
		if p.Scan.BatchSize <= 0 {
			p.Scan.BatchSize = def.Scan.BatchSize
		}
		if p.Scan.BatchPause <= 0 {
			p.Scan.BatchPause = def.Scan.BatchPause
		}
		if p.Scan.FastPause <= 0 {
			p.Scan.FastPause = def.Scan.FastPause
		}
		if p.Scan.MDNSTimeout <= 0 {
			p.Scan.MDNSTimeout = def.Scan.MDNSTimeout
		}
	}
	if p.Paths == nil {
		p.Paths = def.Paths
	} else if p.Paths.Labels == "" {
		p.Paths.Labels = def.Paths.Labels
	}
}

// Timings returns the effective scan window and inter-batch pause for the
// requested mode.
func (p *Preferences) Timings(fast bool) (window, pause time.Duration) {
	if fast {
		return p.Scan.FastWindow, p.Scan.FastPause
	}
	return p.Scan.Window, p.Scan.BatchPause
}
