// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
	Log   LogConfig   `toml:"log"`
}

// DrillConfig maps cue timing settings.
type DrillConfig struct {
	Interval *Duration `toml:"interval"`
	Jitter   *Duration `toml:"jitter"`
	NoJitter *bool     `toml:"no-jitter"`
	Lead     *Duration `toml:"lead"`
	Visible  *Duration `toml:"visible"`
	Hold     *Duration `toml:"hold"`
	FPS      *int      `toml:"fps"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// Duration decodes Go duration strings such as "3s" or "150ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// Value returns the wrapped duration, or nil when unset.
func (d *Duration) Value() *time.Duration {
	if d == nil {
		return nil
	}
	v := d.Duration
	return &v
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
