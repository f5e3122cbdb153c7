// Package host runs the game engine against a tracked-point source and fans
// each resulting frame out to renderers.
package host

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/game"
)

// Source supplies the most recent tracker output and field size.
type Source interface {
	Latest(now time.Time) (game.PointSet, game.FieldBounds)
}

// Renderer consumes frames produced by the engine.
type Renderer interface {
	Render(frame game.Frame) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(game.Frame) error

// Render calls f(frame).
func (f RendererFunc) Render(frame game.Frame) error { return f(frame) }

// Loop ticks the engine at a fixed rate.
type Loop struct {
	engine    *game.Engine
	source    Source
	renderers []Renderer
	clock     quartz.Clock
	interval  time.Duration
	logger    *log.Logger
	fps       FPSMeter

	mu      sync.Mutex
	last    game.Frame
	hasLast bool
}

// NewLoop creates a loop that advances engine once per interval.
func NewLoop(engine *game.Engine, source Source, clock quartz.Clock, interval time.Duration, logger *log.Logger, renderers ...Renderer) *Loop {
	return &Loop{
		engine:    engine,
		source:    source,
		renderers: renderers,
		clock:     clock,
		interval:  interval,
		logger:    logger.WithPrefix("loop"),
	}
}

// Run ticks until ctx is cancelled. Cancellation is a clean exit.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("Starting tick loop", "interval", l.interval)

	w := l.clock.TickerFunc(ctx, l.interval, func() error {
		l.Tick()
		return nil
	}, "loop")

	err := w.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		l.logger.Info("Tick loop stopped")
		return nil
	}
	return err
}

// Tick runs a single engine step and renders the result.
func (l *Loop) Tick() game.Frame {
	now := l.clock.Now()
	points, bounds := l.source.Latest(now)

	frame := l.engine.Advance(points, bounds, now)
	frame.FPS = l.fps.Observe(now)

	l.mu.Lock()
	prev := l.last
	hadPrev := l.hasLast
	l.last = frame
	l.hasLast = true
	l.mu.Unlock()

	if !hadPrev || prev.State != frame.State {
		l.logger.Debug("State changed", "state", frame.State, "round", frame.RoundID, "score", frame.Score)
	}

	for _, r := range l.renderers {
		if err := r.Render(frame); err != nil {
			l.logger.Warn("Renderer failed", "error", err)
		}
	}
	return frame
}

// Last returns the most recently rendered frame.
func (l *Loop) Last() (game.Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.hasLast
}

// FPSMeter derives a frame rate from consecutive tick instants.
type FPSMeter struct {
	prev time.Time
}

// Observe records a tick at now and returns the instantaneous rate, or zero
// for the first tick or a clock that did not move.
func (m *FPSMeter) Observe(now time.Time) float64 {
	prev := m.prev
	m.prev = now
	if prev.IsZero() {
		return 0
	}
	dt := now.Sub(prev)
	if dt <= 0 {
		return 0
	}
	return float64(time.Second) / float64(dt)
}
