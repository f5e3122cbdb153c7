package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/fingerhunt/internal/game"
	"github.com/lox/fingerhunt/internal/host"
)

const (
	headerLines = 1
	footerLines = 1
)

// TickMsg drives one engine step.
type TickMsg time.Time

// Options configures a Model.
type Options struct {
	Interval   time.Duration
	CellWidth  int
	CellHeight int
}

// Model is a terminal host for the game. The mouse pointer stands in for the
// tracked fingertip of the currently selected finger.
type Model struct {
	engine *game.Engine
	clock  quartz.Clock
	logger *log.Logger
	opts   Options
	keys   keyMap
	help   help.Model

	// Terminal size in cells
	width  int
	height int

	finger    game.FingerID
	cursorX   int
	cursorY   int
	hasCursor bool
	hidden    bool

	frame    game.Frame
	hasFrame bool
	fps      host.FPSMeter
	quitting bool
}

// NewModel creates a terminal host around engine.
func NewModel(engine *game.Engine, clock quartz.Clock, opts Options, logger *log.Logger) *Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	if opts.CellWidth < 1 {
		opts.CellWidth = 10
	}
	if opts.CellHeight < 1 {
		opts.CellHeight = 20
	}
	return &Model{
		engine: engine,
		clock:  clock,
		logger: logger.WithPrefix("tui"),
		opts:   opts,
		keys:   defaultKeyMap(),
		help:   help.New(),
		finger: game.Index,
	}
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height, "field", m.Bounds())

	case tea.MouseMsg:
		m.cursorX = msg.X
		m.cursorY = msg.Y
		m.hasCursor = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Hide):
			m.hidden = !m.hidden
		default:
			for i, b := range m.keys.Fingers {
				if key.Matches(msg, b) {
					m.finger = game.Fingers[i]
					m.logger.Debug("Selected finger", "finger", m.finger)
				}
			}
		}

	case TickMsg:
		m.step()
		return m, m.tick()
	}

	return m, nil
}

// step advances the engine by one tick.
func (m *Model) step() {
	now := m.clock.Now()
	frame := m.engine.Advance(game.NewPointSet(m.Points()), m.Bounds(), now)
	frame.FPS = m.fps.Observe(now)

	if !m.hasFrame || frame.State != m.frame.State {
		m.logger.Info("State changed", "state", frame.State, "score", frame.Score, "round", frame.RoundID)
	}
	m.frame = frame
	m.hasFrame = true
}

// Bounds returns the play field in pixels for the current terminal size.
func (m *Model) Bounds() game.FieldBounds {
	rows := m.height - headerLines - footerLines
	return game.FieldBounds{
		Width:  m.width * m.opts.CellWidth,
		Height: rows * m.opts.CellHeight,
	}
}

// Points reports the pointer as a tracked fingertip, or nothing when the
// hand is hidden, the pointer has not been seen, or it sits outside the field.
func (m *Model) Points() []game.TrackedPoint {
	if !m.hasCursor || m.hidden {
		return nil
	}
	row := m.cursorY - headerLines
	if row < 0 || row >= m.height-headerLines-footerLines || m.cursorX < 0 || m.cursorX >= m.width {
		return nil
	}
	return []game.TrackedPoint{{
		ID: m.finger.Landmark(),
		X:  m.cursorX*m.opts.CellWidth + m.opts.CellWidth/2,
		Y:  row*m.opts.CellHeight + m.opts.CellHeight/2,
	}}
}

// Finger returns the finger the pointer currently represents.
func (m *Model) Finger() game.FingerID { return m.finger }

// LastFrame returns the most recent frame.
func (m *Model) LastFrame() (game.Frame, bool) {
	return m.frame, m.hasFrame
}

// Run starts the terminal program and blocks until the player quits or ctx
// is cancelled. It returns the final model.
func Run(ctx context.Context, m *Model) (*Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	final, err := p.Run()
	if err != nil && ctx.Err() == nil {
		return m, fmt.Errorf("terminal program failed: %w", err)
	}
	if fm, ok := final.(*Model); ok {
		return fm, nil
	}
	return m, nil
}
