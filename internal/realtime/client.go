package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
	handlerTimeout = 10 * time.Second
)

// Client is one websocket connection registered with a Hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	claims *auth.Claims

	mu     sync.Mutex
	closed bool
	frames chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, claims *auth.Claims) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		claims: claims,
		frames: make(chan []byte, sendBufferSize),
	}
}

// Claims returns the identity the socket authenticated with, or nil for anonymous sockets.
func (c *Client) Claims() *auth.Claims {
	return c.claims
}

// send queues a frame without blocking and reports whether it was accepted.
func (c *Client) send(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	select {
	case c.frames <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.frames)
	}
}

// Reply sends an event to this client only.
func (c *Client) Reply(event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		c.hub.log.Error("Failed to encode reply", "event", event, "error", err)
		return
	}
	if !c.send(frame) {
		c.hub.metrics.EventsDropped.Inc()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("Realtime client read failed", "error", err)
			}
			return
		}
		c.dispatch(message)
	}
}

func (c *Client) dispatch(message []byte) {
	var in Envelope
	if err := json.Unmarshal(message, &in); err != nil || in.Event == "" {
		c.Reply(models.EventError, models.ErrorEvent{Msg: "invalid message"})
		return
	}

	handler, ok := c.hub.handler(in.Event)
	if !ok {
		c.Reply(models.EventError, models.ErrorEvent{Msg: "unknown event"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	if c.claims != nil {
		ctx = auth.WithClaims(ctx, c.claims)
	}

	if err := handler(ctx, c, in.Data); err != nil {
		var clientErr *ClientError
		if errors.As(err, &clientErr) {
			c.Reply(models.EventError, models.ErrorEvent{Msg: clientErr.Msg})
			return
		}
		c.hub.log.ErrorContext(ctx, "Realtime event handler failed", "event", in.Event, "error", err)
		c.Reply(models.EventError, models.ErrorEvent{Msg: "Server error"})
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.frames:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
