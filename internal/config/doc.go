// Package config loads optional user preferences for the scanner.
//
// Preferences live in a YAML file in the OS-appropriate configuration
// directory (Linux: ~/.config/arpscan/config.yaml) and cover the scan timing
// knobs, default file locations, and an optional interface pin. A missing
// file is not an error: the built-in defaults apply, and command-line flags
// always win over file values.
//
// Example file:
//
//	version: 1
//	scan:
//	  window: 2s
//	  fast_window: 500ms
//	  batch_size: 32
//	  batch_pause: 10ms
//	paths:
//	  labels: labels.txt
//	interface: eth0
package config
