// Package config loads the yaml configuration file, fills defaults and
// validates the result before anything touches a renderer or a device.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output holds the program raster every target receives.
type Output struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Screen configures the fullscreen output surface.
type Screen struct {
	Enabled bool `yaml:"enabled"`
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
}

// Sdi configures the external-keying device pair.
type Sdi struct {
	Enabled      bool   `yaml:"enabled"`
	LibraryPath  string `yaml:"library_path"`
	FillDevice   int    `yaml:"fill_device"`
	KeyDevice    int    `yaml:"key_device"`
	FrameRateNum int64  `yaml:"frame_rate_num"`
	FrameRateDen int64  `yaml:"frame_rate_den"`
	KeyerLevel   int    `yaml:"keyer_level"`
}

// Templates points at the layout/style collections and font files.
type Templates struct {
	Path     string `yaml:"path"`
	FontsDir string `yaml:"fonts_dir"`
}

type Config struct {
	Output    Output    `yaml:"output"`
	Screen    Screen    `yaml:"screen"`
	Sdi       Sdi       `yaml:"sdi"`
	Templates Templates `yaml:"templates"`
	LogLevel  string    `yaml:"log_level"`
}

// Load reads path, applies defaults and validates. A missing file is
// not an error: the defaults alone form a working configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plucky.yaml"
	}
	return filepath.Join(dir, "plucky", "config.yaml")
}

// Write saves the configuration as yaml, creating parent directories.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
