// Package tiles wraps the tippecanoe CLI to build PMTiles archives from
// GeoJSON files.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Config holds the settings for one tippecanoe run.
type Config struct {
	MinZoom             int
	MaxZoom             int
	NoFeatureLimit      bool
	NoTileSizeLimit     bool
	DropDensestAsNeeded bool
}

// DefaultConfig returns the zoom range used before any preset is applied.
func DefaultConfig() Config {
	return Config{MinZoom: 0, MaxZoom: 14}
}

// Preset names a zoom range for a common data shape.
type Preset int

const (
	// PresetCustom keeps whatever zooms are already set.
	PresetCustom Preset = iota
	PresetGeneric
	PresetParcels
	PresetPoints
)

// Presets lists the presets in the order the popup cycles them.
var Presets = []Preset{PresetCustom, PresetGeneric, PresetParcels, PresetPoints}

func (p Preset) Label() string {
	switch p {
	case PresetGeneric:
		return "Generic (6-18)"
	case PresetParcels:
		return "Parcels (0-16)"
	case PresetPoints:
		return "Points (0-18)"
	default:
		return "Custom"
	}
}

// Apply overwrites the zoom range with the preset's. PresetCustom keeps the
// current values.
func (c *Config) Apply(p Preset) {
	switch p {
	case PresetGeneric:
		c.MinZoom, c.MaxZoom = 6, 18
	case PresetParcels:
		c.MinZoom, c.MaxZoom = 0, 16
	case PresetPoints:
		c.MinZoom, c.MaxZoom = 0, 18
	}
}

// Installed reports whether tippecanoe responds on PATH.
func Installed() bool {
	return exec.Command("tippecanoe", "--version").Run() == nil
}

// OutputPath derives the .pmtiles path next to input.
func OutputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), stem+".pmtiles")
}

// Args assembles the tippecanoe argument list, input always last.
func Args(input, output string, cfg Config) []string {
	args := []string{
		"--force",
		"--read-parallel",
		fmt.Sprintf("--minimum-zoom=%d", cfg.MinZoom),
		fmt.Sprintf("--maximum-zoom=%d", cfg.MaxZoom),
		"--output=" + output,
	}
	if cfg.NoFeatureLimit {
		args = append(args, "--no-feature-limit")
	}
	if cfg.NoTileSizeLimit {
		args = append(args, "--no-tile-size-limit")
	}
	if cfg.DropDensestAsNeeded {
		args = append(args, "--drop-densest-as-needed")
	}
	return append(args, input)
}

// Run executes tippecanoe on input and returns the generated PMTiles path.
// On a non-zero exit the error carries tippecanoe's stderr.
func Run(ctx context.Context, input string, cfg Config) (string, error) {
	output := OutputPath(input)
	cmd := exec.CommandContext(ctx, "tippecanoe", Args(input, output, cfg)...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = fmt.Sprintf("Failed to spawn tippecanoe: %v", err)
		}
		return "", errors.New(msg)
	}
	return output, nil
}
