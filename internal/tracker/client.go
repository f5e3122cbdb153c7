package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/fingerhunt/internal/game"
)

// Client connects to a Feed. Trackers use it to push points; displays use
// it to receive frames.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger
	frames chan game.Frame
	errs   chan ErrorData
	done   chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial connects to the feed at serverURL. http(s) URLs are rewritten to
// ws(s) and a bare host:port gets the /ws path.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := feedURL(serverURL)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u, err)
	}

	c := &Client{
		conn:   conn,
		logger: logger.WithPrefix("feed-client"),
		frames: make(chan game.Frame, 16),
		errs:   make(chan ErrorData, 16),
		done:   make(chan struct{}),
	}
	go c.readMessages()
	return c, nil
}

func feedURL(serverURL string) (string, error) {
	if !strings.Contains(serverURL, "://") {
		serverURL = "ws://" + serverURL
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// SendPoints pushes one frame of tracker output.
func (c *Client) SendPoints(data PointsData) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	msg, err := NewMessage(MessageTypePoints, data, time.Now())
	if err != nil {
		return fmt.Errorf("failed to encode points: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send points: %w", err)
	}
	return nil
}

// Frames delivers frames broadcast by the feed. Frames are dropped when the
// reader falls behind. The channel is closed when the connection ends.
func (c *Client) Frames() <-chan game.Frame { return c.frames }

// Errors delivers rejections reported by the feed.
func (c *Client) Errors() <-chan ErrorData { return c.errs }

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close sends a close frame and tears down the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readMessages() {
	defer func() {
		close(c.done)
		close(c.frames)
		close(c.errs)
		_ = c.Close()
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeFrame:
			var frame game.Frame
			if err := json.Unmarshal(msg.Data, &frame); err != nil {
				c.logger.Warn("Failed to decode frame", "error", err)
				continue
			}
			select {
			case c.frames <- frame:
			default:
			}

		case MessageTypeError:
			var data ErrorData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.logger.Warn("Failed to decode error", "error", err)
				continue
			}
			c.logger.Warn("Feed rejected message", "code", data.Code, "message", data.Message)
			select {
			case c.errs <- data:
			default:
			}

		default:
			c.logger.Debug("Ignoring message", "type", msg.Type)
		}
	}
}
