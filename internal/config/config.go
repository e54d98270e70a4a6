// Package config handles grid tool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Window  WindowConfig  `yaml:"window"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig describes the grid to build.
type GridConfig struct {
	Rows      int     `yaml:"rows"`
	Columns   int     `yaml:"columns"`
	TileSize  float32 `yaml:"tile_size"`
	Heightmap string  `yaml:"heightmap"` // Optional YAML heightmap; empty builds a flat grid
	UVScale   float32 `yaml:"uv_scale"`  // Texture repeats per tile
	Normals   bool    `yaml:"normals"`
	Colors    bool    `yaml:"colors"`
	TilePos   bool    `yaml:"tile_positions"`
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ExportConfig holds packed buffer export settings.
type ExportConfig struct {
	Output string `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Rows:     16,
			Columns:  16,
			TileSize: 1,
			UVScale:  1,
			Normals:  true,
			Colors:   true,
			TilePos:  true,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Export: ExportConfig{
			Output: "grid.bin",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the values a grid or window cannot be built from.
func (c *Config) Validate() error {
	g := c.Grid
	if g.Heightmap == "" && (g.Rows <= 0 || g.Columns <= 0) {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, g.Rows, g.Columns)
	}
	if g.TileSize < 0 {
		return fmt.Errorf("%w: tile_size %v", ErrInvalidConfig, g.TileSize)
	}
	if g.UVScale < 0 {
		return fmt.Errorf("%w: uv_scale %v", ErrInvalidConfig, g.UVScale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Export.Output == "" {
		return fmt.Errorf("%w: empty export output", ErrInvalidConfig)
	}
	return nil
}
