package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// scriptedTargets hands out targets in order and counts Generate calls.
type scriptedTargets struct {
	queue []Target
	calls int
	seen  []FieldBounds
}

func (s *scriptedTargets) Generate(bounds FieldBounds) Target {
	s.calls++
	s.seen = append(s.seen, bounds)
	if len(s.queue) == 0 {
		return Target{Finger: Index, X: 200, Y: 200, Tolerance: TargetTolerance}
	}
	t := s.queue[0]
	s.queue = s.queue[1:]
	return t
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestEngine(t *testing.T, targets TargetGenerator) *Engine {
	t.Helper()
	n := 0
	return NewEngine(targets,
		WithLogger(quietLogger()),
		WithRoundIDs(func() string {
			n++
			return "round-" + string(rune('0'+n))
		}))
}

func index(x, y int) PointSet {
	return NewPointSet([]TrackedPoint{{ID: Index.Landmark(), X: x, Y: y}})
}
