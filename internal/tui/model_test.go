package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedTargets always places the target at the same spot.
type fixedTargets struct{ t game.Target }

func (f fixedTargets) Generate(game.FieldBounds) game.Target { return f.t }

func newTestModel(t *testing.T, tgt game.Target) (*Model, *quartz.Mock) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	clock := quartz.NewMock(t)
	engine := game.NewEngine(fixedTargets{tgt}, game.WithLogger(logger))
	m := NewModel(engine, clock, Options{Interval: time.Second / 30, CellWidth: 10, CellHeight: 20}, logger)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, clock
}

func mouse(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func tick(m *Model, clock *quartz.Mock) game.Frame {
	_, cmd := m.Update(TickMsg(clock.Now()))
	if cmd == nil {
		panic("tick must schedule the next tick")
	}
	f, _ := m.LastFrame()
	return f
}

func TestModelBounds(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, game.Target{})
	assert.Equal(t, game.FieldBounds{Width: 800, Height: 440}, m.Bounds())
}

func TestModelPointerIsFingertip(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, game.Target{})
	assert.Empty(t, m.Points(), "no pointer seen yet")

	m.Update(mouse(30, 11))
	assert.Equal(t, []game.TrackedPoint{{ID: 8, X: 305, Y: 210}}, m.Points())

	m.Update(keyPress('1'))
	assert.Equal(t, game.Thumb, m.Finger())
	assert.Equal(t, 4, m.Points()[0].ID)

	m.Update(mouse(30, 0))
	assert.Empty(t, m.Points(), "header row is outside the field")

	m.Update(mouse(30, 23))
	assert.Empty(t, m.Points(), "footer row is outside the field")

	m.Update(mouse(30, 5))
	m.Update(keyPress('h'))
	assert.Empty(t, m.Points(), "hidden hand reports nothing")
	m.Update(keyPress('h'))
	assert.Len(t, m.Points(), 1)
}

func TestModelPlaysARound(t *testing.T) {
	t.Parallel()

	tgt := game.Target{Finger: game.Index, X: 405, Y: 210, Tolerance: game.TargetTolerance}
	m, clock := newTestModel(t, tgt)

	f := tick(m, clock)
	assert.Equal(t, game.AwaitingHand, f.State)
	assert.Contains(t, m.View(), game.TitleText)

	m.Update(mouse(5, 5))
	clock.Advance(time.Second)
	f = tick(m, clock)
	require.Equal(t, game.Playing, f.State)
	assert.Equal(t, 20, f.Remaining)

	m.Update(mouse(40, 11))
	clock.Advance(time.Second)
	f = tick(m, clock)
	assert.Equal(t, 1, f.Score)
	assert.Contains(t, m.View(), "Score: 1")

	clock.Advance(20 * time.Second)
	f = tick(m, clock)
	require.Equal(t, game.GameOver, f.State)
	assert.Contains(t, m.View(), "Final score: 1")

	// Hotspot sits at (650, 340): column 65, field row 17, terminal row 18.
	m.Update(keyPress('3'))
	m.Update(mouse(65, 18))
	clock.Advance(time.Second)
	f = tick(m, clock)
	assert.Equal(t, game.GameOver, f.State, "only the index finger restarts")

	m.Update(keyPress('2'))
	clock.Advance(time.Second)
	f = tick(m, clock)
	assert.Equal(t, game.Playing, f.State)
	assert.Equal(t, 0, f.Score)
	assert.Equal(t, 20, f.Remaining)
}

func TestFieldDrawsEngineHighlight(t *testing.T) {
	t.Parallel()

	tgt := game.Target{Finger: game.Index, X: 405, Y: 210, Tolerance: game.TargetTolerance}
	m, clock := newTestModel(t, tgt)

	// Column 5, terminal row 5 is field row 4: pixel (55, 90).
	m.Update(mouse(5, 5))
	f := tick(m, clock)
	require.Equal(t, game.Playing, f.State)
	require.NotNil(t, f.Highlight)

	c := m.field()
	assert.Equal(t, '◉', c.runes[4][5])
	assert.Equal(t, fingertip, c.styles[4][5])

	// Any other finger is only a cursor; the engine highlights Index alone.
	m.Update(keyPress('1'))
	m.Update(mouse(10, 5))
	clock.Advance(time.Second)
	f = tick(m, clock)
	require.Equal(t, game.Playing, f.State)
	assert.Nil(t, f.Highlight)

	c = m.field()
	assert.Equal(t, '+', c.runes[4][10])
	assert.Equal(t, cursor, c.styles[4][10])
	for y := range c.styles {
		assert.NotContains(t, c.styles[y], fingertip, "row %d", y)
	}
}

func TestFieldGameOverBanner(t *testing.T) {
	t.Parallel()

	m, clock := newTestModel(t, game.Target{Finger: game.Pinky, X: 405, Y: 210, Tolerance: game.TargetTolerance})
	m.Update(mouse(5, 5))
	tick(m, clock)
	clock.Advance(game.RoundDuration)
	require.Equal(t, game.GameOver, tick(m, clock).State)

	c := m.field()
	row := len(c.runes)/2 - 1
	assert.Contains(t, string(c.runes[row]), "Time's up!")
	assert.Contains(t, c.styles[row], warning)
}

func TestModelQuit(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, game.Target{})
	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestViewBeforeSize(t *testing.T) {
	t.Parallel()

	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	engine := game.NewEngine(fixedTargets{}, game.WithLogger(logger))
	m := NewModel(engine, quartz.NewMock(t), Options{}, logger)
	assert.Equal(t, "Loading...", m.View())
}

func TestCanvasCircle(t *testing.T) {
	t.Parallel()

	c := newCanvas(20, 10, 10, 20)
	c.circle(game.Circle{Label: "Ring", X: 100, Y: 100, Radius: 25}, '●', target)

	assert.Equal(t, '●', c.runes[5][10])
	assert.Equal(t, target, c.styles[5][10])
	assert.Equal(t, "Ring", string(c.runes[7][8:12]))
	assert.Equal(t, ' ', c.runes[0][0])

	// Off-canvas circles are clipped, not a panic.
	c.circle(game.Circle{X: -500, Y: 9000, Radius: 25}, 'x', target)
}
