package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/game"
	"github.com/lox/fingerhunt/internal/tracker"
)

var errReplayDone = errors.New("replay finished")

// ReplayCmd pushes a recorded session to a running server.
type ReplayCmd struct {
	File   string `arg:"" type:"existingfile" help:"JSON-lines recording of tracker frames"`
	Server string `short:"s" help:"Feed URL (defaults to the configured tracker address)"`
	Repeat bool   `help:"Loop the recording until interrupted"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.Log.Level)
	ctx, cancel := signalContext(logger)
	defer cancel()

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	recording, err := tracker.ReadRecording(f)
	_ = f.Close()
	if err != nil {
		return err
	}
	if len(recording) == 0 {
		return fmt.Errorf("recording %s has no frames", c.File)
	}

	server := c.Server
	if server == "" {
		server = cfg.Tracker.Address
	}
	client, err := tracker.Dial(ctx, server, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("Replaying recording", "file", c.File, "frames", len(recording), "server", server)

	player := &replayer{frames: recording, repeat: c.Repeat, client: client, logger: logger}
	go player.watch()

	err = player.run(ctx, quartz.NewReal(), cfg.TickInterval())
	if last, ok := player.last(); ok {
		fmt.Printf("Last frame: %s, score %d, %ds remaining\n", last.State, last.Score, last.Remaining)
	}
	return err
}

type replayer struct {
	frames []tracker.PointsData
	repeat bool
	client *tracker.Client
	logger *log.Logger

	next int

	mu        sync.Mutex
	lastFrame *game.Frame
}

func (r *replayer) run(ctx context.Context, clock quartz.Clock, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-r.client.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	w := clock.TickerFunc(ctx, interval, func() error {
		if r.next == len(r.frames) {
			if !r.repeat {
				return errReplayDone
			}
			r.next = 0
		}
		if err := r.client.SendPoints(r.frames[r.next]); err != nil {
			return err
		}
		r.next++
		return nil
	}, "replay")

	err := w.Wait()
	switch {
	case errors.Is(err, errReplayDone), errors.Is(err, context.Canceled):
		r.logger.Info("Replay stopped", "sent", r.next)
		return nil
	default:
		return err
	}
}

// watch keeps the most recent frame broadcast by the server.
func (r *replayer) watch() {
	for frame := range r.client.Frames() {
		r.mu.Lock()
		r.lastFrame = &frame
		r.mu.Unlock()
	}
}

func (r *replayer) last() (game.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastFrame == nil {
		return game.Frame{}, false
	}
	return *r.lastFrame, true
}
