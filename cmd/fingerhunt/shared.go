package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/capture"
	"github.com/lox/fingerhunt/internal/config"
	"github.com/lox/fingerhunt/internal/game"
	"github.com/lox/fingerhunt/internal/randutil"
)

// loadConfig reads the config file and applies global overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

// newLogger creates the root logger at the configured level.
func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// newEngine builds an engine with a target sequence seeded from config.
func newEngine(cfg *config.Config, clock quartz.Clock, logger *log.Logger) *game.Engine {
	seed := randutil.Resolve(cfg.Game.Seed, clock)
	logger.Info("Seeding targets", "seed", seed)
	return game.NewEngine(game.NewRandomTargets(randutil.New(seed)), game.WithLogger(logger))
}

// signalContext is cancelled on interrupt or terminate.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// saveCapture persists the final frame if capture is enabled.
func saveCapture(cfg *config.Config, frame game.Frame, ok bool, logger *log.Logger) error {
	if !cfg.CaptureEnabled() || !ok {
		return nil
	}
	if err := capture.Save(cfg.Capture.Path, frame); err != nil {
		return err
	}
	logger.Info("Saved capture", "path", cfg.Capture.Path, "state", frame.State, "score", frame.Score)
	return nil
}
