package host

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/game"
	"github.com/lox/fingerhunt/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	mu     sync.Mutex
	points []game.TrackedPoint
	bounds game.FieldBounds
}

func (s *fixedSource) set(points ...game.TrackedPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = points
}

func (s *fixedSource) Latest(time.Time) (game.PointSet, game.FieldBounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.NewPointSet(s.points), s.bounds
}

type recorder struct {
	mu     sync.Mutex
	frames []game.Frame
}

func (r *recorder) Render(f game.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) all() []game.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.Frame(nil), r.frames...)
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newEngine() *game.Engine {
	return game.NewEngine(game.NewRandomTargets(randutil.New(42)), game.WithLogger(quietLogger()))
}

func TestLoopRunTicksUntilCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &fixedSource{bounds: game.FieldBounds{Width: 800, Height: 600}}
	src.set(game.TrackedPoint{ID: 8, X: 10, Y: 10})
	rec := &recorder{}
	loop := NewLoop(newEngine(), src, quartz.NewReal(), 5*time.Millisecond, quietLogger(), rec)

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	require.Eventually(t, func() bool { return len(rec.all()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	frames := rec.all()
	assert.Equal(t, game.Playing, frames[0].State)
	last, ok := loop.Last()
	require.True(t, ok)
	assert.Equal(t, game.Playing, last.State)
}

func TestLoopTick(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	src := &fixedSource{bounds: game.FieldBounds{Width: 800, Height: 600}}
	rec := &recorder{}
	loop := NewLoop(newEngine(), src, clock, 100*time.Millisecond, quietLogger(), rec)

	loop.Tick()
	src.set(game.TrackedPoint{ID: 8, X: 10, Y: 10})
	clock.Advance(100 * time.Millisecond)
	loop.Tick()
	clock.Advance(100 * time.Millisecond)
	loop.Tick()

	frames := rec.all()
	require.Len(t, frames, 3)
	assert.Equal(t, game.AwaitingHand, frames[0].State)
	assert.Zero(t, frames[0].FPS)
	assert.Equal(t, game.Playing, frames[1].State)
	assert.Equal(t, 20, frames[1].Remaining)
	assert.InDelta(t, 10.0, frames[2].FPS, 0.001)

	last, ok := loop.Last()
	require.True(t, ok)
	assert.Equal(t, frames[2], last)
}

func TestLoopRoundEndsAfterTwentySeconds(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	src := &fixedSource{bounds: game.FieldBounds{Width: 800, Height: 600}}
	src.set(game.TrackedPoint{ID: 8, X: 5, Y: 5})
	loop := NewLoop(newEngine(), src, clock, time.Second, quietLogger())

	f := loop.Tick()
	require.Equal(t, game.Playing, f.State)

	for i := 1; i < 20; i++ {
		clock.Advance(time.Second)
		f = loop.Tick()
		require.Equal(t, game.Playing, f.State, "second %d", i)
		require.Equal(t, 20-i, f.Remaining)
	}

	clock.Advance(time.Second)
	f = loop.Tick()
	assert.Equal(t, game.GameOver, f.State)
}

func TestLoopKeepsGoingWhenRendererFails(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	src := &fixedSource{bounds: game.FieldBounds{Width: 800, Height: 600}}
	rec := &recorder{}
	failing := RendererFunc(func(game.Frame) error { return errors.New("display gone") })
	loop := NewLoop(newEngine(), src, clock, time.Second, quietLogger(), failing, rec)

	loop.Tick()
	clock.Advance(time.Second)
	loop.Tick()

	assert.Len(t, rec.all(), 2)
}

func TestLastBeforeFirstTick(t *testing.T) {
	t.Parallel()

	loop := NewLoop(newEngine(), &fixedSource{}, quartz.NewMock(t), time.Second, quietLogger())
	_, ok := loop.Last()
	assert.False(t, ok)
}

func TestFPSMeter(t *testing.T) {
	t.Parallel()

	var m FPSMeter
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Zero(t, m.Observe(start))
	assert.InDelta(t, 30.0, m.Observe(start.Add(time.Second/30)), 0.01)
	assert.Zero(t, m.Observe(start.Add(time.Second/30)))
}
