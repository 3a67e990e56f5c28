package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme selects the UI palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Tiles holds the default zoom range offered by the PMTiles popup.
type Tiles struct {
	MinZoom int `yaml:"min_zoom"`
	MaxZoom int `yaml:"max_zoom"`
}

// Config is the runtime configuration. Values come from the config file
// overlaid with DATASPECT_* environment variables.
type Config struct {
	Theme    Theme  `yaml:"theme"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	Tiles    Tiles  `yaml:"tiles"`

	// StartPath is the positional argument, never read from the file.
	StartPath string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:    ThemeDark,
		LogLevel: "warn",
		Tiles:    Tiles{MinZoom: 0, MaxZoom: 14},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "dataspect", "config.yaml"), nil
}

// Load reads the default config file when present, then applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads path when present, then applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATASPECT_THEME"); v != "" {
		cfg.Theme = Theme(v)
	}
	if v := os.Getenv("DATASPECT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DATASPECT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c *Config) validate() error {
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("invalid theme %q (want dark or light)", c.Theme)
	}
	if c.Tiles.MinZoom < 0 || c.Tiles.MaxZoom > 22 || c.Tiles.MaxZoom < c.Tiles.MinZoom {
		return fmt.Errorf("invalid tiles zoom range %d..%d", c.Tiles.MinZoom, c.Tiles.MaxZoom)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("theme=%s logFile=%q logLevel=%s zoom=%d..%d startPath=%q",
		c.Theme, c.LogFile, c.LogLevel, c.Tiles.MinZoom, c.Tiles.MaxZoom, c.StartPath)
}
