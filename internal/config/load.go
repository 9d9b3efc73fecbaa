package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "arpscan"
	configFile = "config.yaml"
)

var (
	// Global preferences instance (loaded lazily)
	globalPrefs     *Preferences
	globalPrefsOnce sync.Once
	globalPrefsErr  error
)

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/arpscan or $HOME/.config/arpscan
//   - macOS: $HOME/.config/arpscan (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\arpscan
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			// Fallback to USERPROFILE\AppData\Local if LOCALAPPDATA not set
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		// Unix-like systems: use XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load loads preferences from disk. A missing file is not an error; the
// built-in defaults are returned. Thread-safe; repeated calls return the same
// instance.
func Load() (*Preferences, error) {
	globalPrefsOnce.Do(func() {
		globalPrefs, globalPrefsErr = loadFromDisk()
	})
	return globalPrefs, globalPrefsErr
}

func loadFromDisk() (*Preferences, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(configPath)
}

// LoadFile loads preferences from an explicit path. A missing file yields
// defaults; a present but unparseable file is an error so a typo in the config
// does not silently revert the scanner to defaults.
func LoadFile(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	prefs := &Preferences{}
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	prefs.normalize()
	return prefs, nil
}
