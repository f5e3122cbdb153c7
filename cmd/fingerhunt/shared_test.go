package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverridesLogLevel(t *testing.T) {
	t.Parallel()

	g := &Globals{
		Config:   filepath.Join(t.TempDir(), "missing.hcl"),
		LogLevel: "debug",
	}
	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Game.TickHz)
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
	}
	for level, want := range tests {
		assert.Equal(t, want, newLogger(io.Discard, level).GetLevel(), "level %q", level)
	}
}
