package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/fingerhunt/internal/game"
)

// MessageType identifies the payload carried by a Message.
type MessageType string

const (
	// Tracker → feed
	MessageTypePoints MessageType = "points"

	// Feed → clients
	MessageTypeFrame MessageType = "frame"
	MessageTypeError MessageType = "error"
)

func (t MessageType) String() string { return string(t) }

// Message is the envelope for everything sent over the feed socket.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps data in an envelope stamped with at.
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: at,
	}, nil
}

// PointsData is one frame of tracker output.
type PointsData struct {
	Width  int                 `json:"width"`
	Height int                 `json:"height"`
	Points []game.TrackedPoint `json:"points"`
}

// Validate rejects frame sizes that are negative or larger than
// game.MaxFieldExtent. A zero size means "unchanged" and is allowed.
func (d PointsData) Validate() error {
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("invalid frame size %dx%d", d.Width, d.Height)
	}
	if d.Width > game.MaxFieldExtent || d.Height > game.MaxFieldExtent {
		return fmt.Errorf("frame size %dx%d exceeds %d", d.Width, d.Height, game.MaxFieldExtent)
	}
	return nil
}

// Bounds returns the frame size as field bounds.
func (d PointsData) Bounds() game.FieldBounds {
	return game.FieldBounds{Width: d.Width, Height: d.Height}
}

// ErrorData reports a rejected message back to the sender.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
