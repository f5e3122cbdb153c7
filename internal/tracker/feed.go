// Package tracker receives tracked fingertip positions from an external pose
// tracker over a WebSocket and streams rendered frames back to any connected
// display.
package tracker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/lox/fingerhunt/internal/game"
)

// Feed is the meeting point between the tracker socket and the tick loop.
// It implements host.Source and host.Renderer.
type Feed struct {
	clock      quartz.Clock
	logger     *log.Logger
	upgrader   websocket.Upgrader
	staleAfter time.Duration

	mu         sync.RWMutex
	latest     PointsData
	receivedAt time.Time
	hasPoints  bool
	bounds     game.FieldBounds
	lastFrame  *game.Frame
	conns      map[*Connection]struct{}
}

// NewFeed creates a feed. Until a tracker reports a frame size the field is
// assumed to be defaultBounds. Points older than staleAfter are treated as
// absent; zero disables the check.
func NewFeed(defaultBounds game.FieldBounds, staleAfter time.Duration, clock quartz.Clock, logger *log.Logger) *Feed {
	return &Feed{
		clock:  clock,
		logger: logger.WithPrefix("feed"),
		upgrader: websocket.Upgrader{
			// Trackers and displays run locally and connect from arbitrary origins.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		staleAfter: staleAfter,
		bounds:     defaultBounds,
		conns:      make(map[*Connection]struct{}),
	}
}

// Routes returns the HTTP handler serving the feed.
func (f *Feed) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ws", f.handleWebSocket)
	r.Get("/health", f.handleHealth)
	r.Get("/frame", f.handleFrame)
	return r
}

// Latest returns the newest tracked points and the field they were measured
// in. Stale points read as an empty set so a lost tracker looks like a
// missing hand.
func (f *Feed) Latest(now time.Time) (game.PointSet, game.FieldBounds) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.hasPoints {
		return game.PointSet{}, f.bounds
	}
	if f.staleAfter > 0 && now.Sub(f.receivedAt) > f.staleAfter {
		return game.PointSet{}, f.bounds
	}
	return game.NewPointSet(f.latest.Points), f.bounds
}

// Update records a frame of tracker output. Frames that fail Validate are
// dropped.
func (f *Feed) Update(data PointsData) {
	if err := data.Validate(); err != nil {
		f.logger.Warn("Dropping tracker frame", "error", err)
		return
	}
	now := f.clock.Now()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = data
	f.receivedAt = now
	f.hasPoints = true
	if data.Width > 0 && data.Height > 0 {
		f.bounds = data.Bounds()
	}
}

// Render stores frame and broadcasts it to every connected client.
func (f *Feed) Render(frame game.Frame) error {
	msg, err := NewMessage(MessageTypeFrame, frame, frame.At)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	f.mu.Lock()
	f.lastFrame = &frame
	conns := make([]*Connection, 0, len(f.conns))
	for c := range f.conns {
		conns = append(conns, c)
	}
	f.mu.Unlock()

	for _, c := range conns {
		if err := c.Send(msg); err != nil {
			f.logger.Debug("Dropping frame for client", "remote", c.remote, "error", err)
		}
	}
	return nil
}

// Clients returns the number of connected sockets.
func (f *Feed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.conns)
}

// Close disconnects every client.
func (f *Feed) Close() error {
	f.mu.Lock()
	conns := f.conns
	f.conns = make(map[*Connection]struct{})
	f.mu.Unlock()

	for c := range conns {
		_ = c.Close()
	}
	return nil
}

func (f *Feed) register(c *Connection) {
	f.mu.Lock()
	f.conns[c] = struct{}{}
	total := len(f.conns)
	f.mu.Unlock()
	f.logger.Info("Client connected", "remote", c.remote, "total", total)
}

func (f *Feed) unregister(c *Connection) {
	f.mu.Lock()
	_, ok := f.conns[c]
	delete(f.conns, c)
	total := len(f.conns)
	f.mu.Unlock()
	if ok {
		f.logger.Info("Client disconnected", "remote", c.remote, "total", total)
	}
}

func (f *Feed) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newConnection(ws, r.RemoteAddr, f, f.logger)
	f.register(c)
	c.Start()

	go func() {
		<-c.ctx.Done()
		f.unregister(c)
	}()
}

func (f *Feed) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (f *Feed) handleFrame(w http.ResponseWriter, r *http.Request) {
	f.mu.RLock()
	frame := f.lastFrame
	f.mu.RUnlock()

	if frame == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		f.logger.Error("Failed to write frame", "error", err)
	}
}
