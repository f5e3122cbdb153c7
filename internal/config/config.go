// Package config loads the fingerhunt HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration. Every block is optional in
// the file; Load fills missing blocks and attributes from Default.
type Config struct {
	Game    *GameSettings    `hcl:"game,block"`
	Tracker *TrackerSettings `hcl:"tracker,block"`
	Capture *CaptureSettings `hcl:"capture,block"`
	Log     *LogSettings     `hcl:"log,block"`
}

// GameSettings controls the tick loop and the play field.
type GameSettings struct {
	TickHz      int   `hcl:"tick_hz,optional"`
	Seed        int64 `hcl:"seed,optional"`
	FieldWidth  int   `hcl:"field_width,optional"`
	FieldHeight int   `hcl:"field_height,optional"`
	CellWidth   int   `hcl:"cell_width,optional"`
	CellHeight  int   `hcl:"cell_height,optional"`
}

// TrackerSettings configures the tracked-point feed server.
type TrackerSettings struct {
	Address      string `hcl:"address,optional"`
	StaleAfterMs int    `hcl:"stale_after_ms,optional"`
}

// CaptureSettings controls the snapshot written on exit.
type CaptureSettings struct {
	Enabled *bool  `hcl:"enabled,optional"`
	Path    string `hcl:"path,optional"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration.
func Default() *Config {
	enabled := true
	return &Config{
		Game: &GameSettings{
			TickHz:      30,
			Seed:        0,
			FieldWidth:  800,
			FieldHeight: 600,
			CellWidth:   10,
			CellHeight:  20,
		},
		Tracker: &TrackerSettings{
			Address:      "localhost:8765",
			StaleAfterMs: 500,
		},
		Capture: &CaptureSettings{
			Enabled: &enabled,
			Path:    "capture.png",
		},
		Log: &LogSettings{
			Level: "info",
			File:  "fingerhunt.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for anything left unset.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults(Default())
	return &cfg, nil
}

func (c *Config) applyDefaults(d *Config) {
	if c.Game == nil {
		c.Game = d.Game
	} else {
		if c.Game.TickHz == 0 {
			c.Game.TickHz = d.Game.TickHz
		}
		if c.Game.FieldWidth == 0 {
			c.Game.FieldWidth = d.Game.FieldWidth
		}
		if c.Game.FieldHeight == 0 {
			c.Game.FieldHeight = d.Game.FieldHeight
		}
		if c.Game.CellWidth == 0 {
			c.Game.CellWidth = d.Game.CellWidth
		}
		if c.Game.CellHeight == 0 {
			c.Game.CellHeight = d.Game.CellHeight
		}
	}

	if c.Tracker == nil {
		c.Tracker = d.Tracker
	} else {
		if c.Tracker.Address == "" {
			c.Tracker.Address = d.Tracker.Address
		}
		if c.Tracker.StaleAfterMs == 0 {
			c.Tracker.StaleAfterMs = d.Tracker.StaleAfterMs
		}
	}

	if c.Capture == nil {
		c.Capture = d.Capture
	} else {
		if c.Capture.Enabled == nil {
			c.Capture.Enabled = d.Capture.Enabled
		}
		if c.Capture.Path == "" {
			c.Capture.Path = d.Capture.Path
		}
	}

	if c.Log == nil {
		c.Log = d.Log
	} else {
		if c.Log.Level == "" {
			c.Log.Level = d.Log.Level
		}
		if c.Log.File == "" {
			c.Log.File = d.Log.File
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Game.TickHz < 1 || c.Game.TickHz > 240 {
		return fmt.Errorf("invalid tick_hz: %d (must be 1-240)", c.Game.TickHz)
	}
	if c.Game.FieldWidth < 1 || c.Game.FieldHeight < 1 {
		return fmt.Errorf("invalid field size: %dx%d", c.Game.FieldWidth, c.Game.FieldHeight)
	}
	if c.Game.CellWidth < 1 || c.Game.CellHeight < 1 {
		return fmt.Errorf("invalid cell size: %dx%d", c.Game.CellWidth, c.Game.CellHeight)
	}
	if c.Tracker.Address == "" {
		return fmt.Errorf("tracker address is required")
	}
	if c.Tracker.StaleAfterMs < 0 {
		return fmt.Errorf("stale_after_ms cannot be negative")
	}
	if c.CaptureEnabled() && c.Capture.Path == "" {
		return fmt.Errorf("capture path is required when capture is enabled")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// TickInterval returns the time between ticks.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickHz)
}

// StaleAfter returns how long a tracker frame stays current.
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.Tracker.StaleAfterMs) * time.Millisecond
}

// CaptureEnabled reports whether a snapshot should be written on exit.
func (c *Config) CaptureEnabled() bool {
	return c.Capture.Enabled != nil && *c.Capture.Enabled
}

// DisableCapture turns off the exit snapshot.
func (c *Config) DisableCapture() {
	off := false
	c.Capture.Enabled = &off
}
