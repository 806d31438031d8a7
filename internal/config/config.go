package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultDebounceMillis is the quiet period after the last input event
// before a recompute fires.
const DefaultDebounceMillis = 300

// Config represents the application configuration
type Config struct {
	Version     int        `toml:"version"`
	CatalogPath string     `toml:"catalog_path"` // optional TOML catalog; empty means built-in
	LogPath     string     `toml:"log_path"`
	UISettings  UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DebounceMillis  int  `toml:"debounce_millis"`
	ShowSuggestions bool `toml:"show_suggestions"`
}

// Debounce returns the debounce window as a duration, falling back to
// the default when the configured value is missing or nonsensical.
func (c *Config) Debounce() time.Duration {
	ms := c.UISettings.DebounceMillis
	if ms <= 0 {
		ms = DefaultDebounceMillis
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadFromPath loads configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func SaveToPath(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		LogPath: "dinegrip.log",
		UISettings: UISettings{
			DebounceMillis:  DefaultDebounceMillis,
			ShowSuggestions: true,
		},
	}
}

// LoadOrCreate loads config from path, writing defaults there when the
// file does not exist yet.
func LoadOrCreate(path string) *Config {
	if _, err := os.Stat(path); err == nil {
		if cfg, err := LoadFromPath(path); err == nil {
			return cfg
		}
	}

	cfg := Default()
	_ = SaveToPath(cfg, path) // best effort; defaults work without a file
	return cfg
}
