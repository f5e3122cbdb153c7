package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/game"
	"github.com/lox/fingerhunt/internal/host"
	"github.com/lox/fingerhunt/internal/tracker"
	"golang.org/x/sync/errgroup"
)

// ServeCmd runs the headless game loop behind the tracker feed.
type ServeCmd struct {
	Addr      string `short:"a" help:"Feed address to bind to (overrides config)"`
	Seed      *int64 `help:"Deterministic target seed (overrides config)"`
	NoCapture bool   `help:"Don't write a capture on exit"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Tracker.Address = c.Addr
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

	logger := newLogger(os.Stderr, cfg.Log.Level)
	ctx, cancel := signalContext(logger)
	defer cancel()

	clock := quartz.NewReal()
	bounds := game.FieldBounds{Width: cfg.Game.FieldWidth, Height: cfg.Game.FieldHeight}
	feed := tracker.NewFeed(bounds, cfg.StaleAfter(), clock, logger)
	loop := host.NewLoop(newEngine(cfg, clock, logger), feed, clock, cfg.TickInterval(), logger, feed)

	srv := &http.Server{
		Addr:              cfg.Tracker.Address,
		Handler:           feed.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Starting fingerhunt server",
		"addr", cfg.Tracker.Address,
		"tickHz", cfg.Game.TickHz,
		"field", fmt.Sprintf("%dx%d", bounds.Width, bounds.Height))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("feed server failed: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		return loop.Run(egCtx)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = feed.Close()
		return srv.Shutdown(shutdownCtx)
	})

	runErr := eg.Wait()

	frame, ok := loop.Last()
	if err := saveCapture(cfg, frame, ok, logger); err != nil {
		logger.Error("Failed to save capture", "error", err)
	}
	return runErr
}
