package main

import (
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/tui"
)

// PlayCmd runs the terminal host.
type PlayCmd struct {
	Seed      *int64 `help:"Deterministic target seed (overrides config)"`
	NoCapture bool   `help:"Don't write a capture on exit"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.NoCapture {
		cfg.DisableCapture()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The terminal belongs to the game, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.Log.Level)

	ctx, cancel := signalContext(logger)
	defer cancel()

	clock := quartz.NewReal()
	model := tui.NewModel(newEngine(cfg, clock, logger), clock, tui.Options{
		Interval:   cfg.TickInterval(),
		CellWidth:  cfg.Game.CellWidth,
		CellHeight: cfg.Game.CellHeight,
	}, logger)

	logger.Info("Starting terminal game", "tickHz", cfg.Game.TickHz)
	final, err := tui.Run(ctx, model)
	if err != nil {
		return err
	}

	frame, ok := final.LastFrame()
	if err := saveCapture(cfg, frame, ok, logger); err != nil {
		return err
	}
	if ok {
		fmt.Printf("Final score: %d\n", frame.Score)
	}
	return nil
}
