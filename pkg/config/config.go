// Package config loads polypanel settings from TOML.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/polypanel/pkg/kernel/sdfx"
	"github.com/chazu/polypanel/pkg/render"
)

// Config is the root of a polypanel TOML file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Mesh   MeshConfig   `toml:"mesh"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig controls panel SVG output.
type RenderConfig struct {
	OutputDir string `toml:"output_dir"`
	Scale     int    `toml:"scale"`  // SVG units per voxel edge
	Stroke    string `toml:"stroke"` // style attribute of each line
}

// MeshConfig controls the optional solid preview mesh. An empty Path
// disables it.
type MeshConfig struct {
	Path  string `toml:"path"`
	Cells int    `toml:"cells"`
}

// LogConfig selects log level and an optional rotating log file.
type LogConfig struct {
	Level   string `toml:"level"`
	File    string `toml:"file"`
	MaxSize int    `toml:"max_size"` // megabytes
	MaxAge  int    `toml:"max_age"`  // days
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			OutputDir: "panels",
			Scale:     render.DefaultScale,
			Stroke:    render.DefaultStroke,
		},
		Mesh: MeshConfig{
			Cells: sdfx.DefaultMeshCells,
		},
		Log: LogConfig{
			Level:   "info",
			MaxSize: 10,
			MaxAge:  7,
		},
	}
}

// Load reads a TOML file on top of the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("config: could not decode %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode parses TOML text on top of the defaults, with the same checks as
// Load.
func Decode(data string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("config: could not decode TOML: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// checkUndecoded returns an error naming every key that matched no Config
// field.
func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive, got %d", c.Render.Scale)
	}
	if c.Render.OutputDir == "" {
		return fmt.Errorf("render.output_dir must not be empty")
	}
	if c.Mesh.Cells < 0 {
		return fmt.Errorf("mesh.cells must not be negative, got %d", c.Mesh.Cells)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps Level to a slog level. An empty level is info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level)
}
