package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Session is the single mutable game state owned by an Engine.
type Session struct {
	State             RoundState
	Score             int
	RoundStart        time.Time
	Target            *Target
	AwaitingNewTarget bool
	RoundID           string
}

// Engine drives the game across ticks. It is not safe for concurrent use;
// the host must serialize calls to Advance.
type Engine struct {
	targets TargetGenerator
	logger  *log.Logger
	roundID func() string

	state      RoundState
	score      Score
	roundStart time.Time
	target     *Target
	awaiting   bool
	round      string
	ticks      uint64
}

// NewEngine creates an engine in the AwaitingHand state.
//
//	rng := randutil.New(42)
//	e := game.NewEngine(game.NewRandomTargets(rng), game.WithLogger(logger))
//	frame := e.Advance(points, bounds, clock.Now())
func NewEngine(targets TargetGenerator, opts ...EngineOption) *Engine {
	if targets == nil {
		panic("target generator is required")
	}
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{
		targets: targets,
		logger:  cfg.logger.WithPrefix("engine"),
		roundID: cfg.roundID,
		state:   AwaitingHand,
	}
}

// Session returns a snapshot of the current session.
func (e *Engine) Session() Session {
	s := Session{
		State:             e.state,
		Score:             e.score.Points(),
		RoundStart:        e.roundStart,
		AwaitingNewTarget: e.awaiting,
		RoundID:           e.round,
	}
	if e.target != nil {
		t := *e.target
		s.Target = &t
	}
	return s
}

// Advance consumes one tick of tracker input and returns what to draw.
// It never fails.
func (e *Engine) Advance(points PointSet, bounds FieldBounds, now time.Time) Frame {
	bounds = bounds.normalized()
	e.ticks++

	switch e.state {
	case AwaitingHand:
		if !points.Empty() {
			e.startRound(now)
			e.logger.Info("Hand detected, round started", "round", e.round)
			e.refreshTarget(bounds)
		}

	case Playing:
		if Remaining(e.roundStart, now) <= 0 {
			e.state = GameOver
			e.logger.Info("Round over", "round", e.round, "score", e.score.Points())
			break
		}
		if e.target != nil && IsHit(points, *e.target) {
			e.score.Increment()
			e.awaiting = true
			e.logger.Debug("Target hit",
				"round", e.round,
				"finger", e.target.Finger,
				"x", e.target.X,
				"y", e.target.Y,
				"score", e.score.Points())
			e.refreshTarget(bounds)
		}

	case GameOver:
		if IsHit(points, HotspotFor(bounds).Target()) {
			prev := e.score.Points()
			e.startRound(now)
			e.logger.Info("Restart hotspot hit", "round", e.round, "previousScore", prev)
			e.refreshTarget(bounds)
		}
	}

	return e.frame(points, bounds, now)
}

func (e *Engine) startRound(now time.Time) {
	e.state = Playing
	e.roundStart = now
	e.score.Reset()
	e.awaiting = true
	e.round = e.roundID()
}

// refreshTarget generates a target only when the previous one was consumed.
func (e *Engine) refreshTarget(bounds FieldBounds) {
	if !e.awaiting {
		return
	}
	t := e.targets.Generate(bounds)
	e.target = &t
	e.awaiting = false
}

func (e *Engine) frame(points PointSet, bounds FieldBounds, now time.Time) Frame {
	f := Frame{
		State:   e.state,
		Bounds:  bounds,
		RoundID: e.round,
		Tick:    e.ticks,
		At:      now,
		Score:   e.score.Points(),
	}

	switch e.state {
	case AwaitingHand:
		f.Title = TitleText
		f.Instructions = InstructionsText

	case Playing:
		f.Remaining = Remaining(e.roundStart, now)
		if e.target != nil {
			f.Target = &Circle{
				Label:  e.target.Finger.String(),
				X:      e.target.X,
				Y:      e.target.Y,
				Radius: TargetRadius,
			}
		}
		if p, ok := points.Get(Index); ok {
			f.Highlight = &Circle{X: p.X, Y: p.Y, Radius: HighlightRadius}
		}

	case GameOver:
		h := HotspotFor(bounds)
		f.Hotspot = &Circle{Label: RestartLabel, X: h.X, Y: h.Y, Radius: h.Tolerance}
		f.Label = RestartLabel
	}
	return f
}
