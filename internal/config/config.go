// Package config loads gitc configuration from ~/.config/gitc/config.toml.
// A missing file is not an error; an unreadable or invalid file is.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// SearchConfig controls how `gitc search` interprets its keyword.
type SearchConfig struct {
	// Regex switches from literal substring matching to git's regexp
	// grep semantics as the default for the search command.
	Regex bool `toml:"regex"`
	// IgnoreCase makes searches case-insensitive by default.
	IgnoreCase bool `toml:"ignore_case"`
}

// StaleConfig holds defaults for the stale command.
type StaleConfig struct {
	// Age is the default staleness threshold (e.g. "12w") used when the
	// command line omits one.
	Age string `toml:"age"`
}

// Config holds the gitc configuration.
type Config struct {
	// ProtectedBranches extends the built-in protection set
	// (main/master/develop/dev) for every invocation.
	ProtectedBranches []string `toml:"protected_branches"`
	// CommandTimeout bounds a whole gitc run, as a Go duration string
	// ("30s", "2m"). Empty means no timeout.
	CommandTimeout string `toml:"command_timeout"`

	Search SearchConfig `toml:"search"`
	Stale  StaleConfig  `toml:"stale"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

// Timeout parses CommandTimeout. Zero duration means unbounded.
func (c *Config) Timeout() (time.Duration, error) {
	if c.CommandTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid command_timeout %q: %w", c.CommandTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid command_timeout %q: must not be negative", c.CommandTimeout)
	}
	return d, nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitc", "config.toml"), nil
}

// Load reads config from ~/.config/gitc/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path, with the same missing-file
// semantics as Load.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, err := cfg.Timeout(); err != nil {
		return Default(), err
	}

	return cfg, nil
}
