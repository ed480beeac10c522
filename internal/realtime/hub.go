package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/gorilla/websocket"
)

const (
	broadcastQueueSize = 256
	readBufferSize     = 1024
	writeBufferSize    = 1024
)

// Envelope is the wire format of every frame exchanged with clients.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// HandlerFunc handles one inbound client event. The context carries the
// client's claims when the socket was opened with a valid token.
type HandlerFunc func(ctx context.Context, client *Client, data json.RawMessage) error

// ClientError is returned by handlers to reject an event with a message the client may see.
type ClientError struct {
	Msg string
}

func (e *ClientError) Error() string {
	return e.Msg
}

// Hub keeps the set of connected clients and fans events out to all of them.
// Delivery is best effort: there is no backlog and slow clients lose frames.
type Hub struct {
	log      *slog.Logger
	metrics  *metrics.Metrics
	verifier auth.Verifier
	upgrader websocket.Upgrader

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stopped    chan struct{}
	clients    map[*Client]struct{}
	count      atomic.Int64

	handlersMu sync.RWMutex
	handlers   map[string]HandlerFunc
}

// NewHub creates a new Hub. A nil verifier makes every socket anonymous.
func NewHub(log *slog.Logger, verifier auth.Verifier, metrics *metrics.Metrics) *Hub {
	return &Hub{
		log:      log,
		metrics:  metrics,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastQueueSize),
		stopped:    make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		handlers:   make(map[string]HandlerFunc),
	}
}

// Run owns the client set until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.remove(client)
			}
			h.log.InfoContext(ctx, "Realtime hub stopped")
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Add(1)
			h.metrics.ClientsConnected.Inc()
			h.log.DebugContext(ctx, "Realtime client connected", "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(client)
				h.log.DebugContext(ctx, "Realtime client disconnected", "clients", len(h.clients))
			}
		case frame := <-h.broadcast:
			for client := range h.clients {
				if !client.send(frame) {
					h.metrics.EventsDropped.Inc()
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	delete(h.clients, client)
	h.count.Add(-1)
	h.metrics.ClientsConnected.Dec()
	client.close()
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Broadcast sends an event to every client connected at this moment. It never blocks.
func (h *Hub) Broadcast(event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		h.log.Error("Failed to encode realtime event", "event", event, "error", err)
		return
	}
	h.metrics.EventsBroadcast.WithLabelValues(event).Inc()
	h.fanOut(frame)
}

// fanOut queues an encoded frame for delivery to local clients.
func (h *Hub) fanOut(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
		h.metrics.EventsDropped.Inc()
		h.log.Warn("Realtime broadcast queue is full, frame dropped")
	}
}

// OnClientEvent registers the handler for inbound events named event, replacing any previous one.
func (h *Hub) OnClientEvent(event string, handler HandlerFunc) {
	h.handlersMu.Lock()
	defer h.handlersMu.Unlock()
	h.handlers[event] = handler
}

func (h *Hub) handler(event string) (HandlerFunc, bool) {
	h.handlersMu.RLock()
	defer h.handlersMu.RUnlock()
	handler, ok := h.handlers[event]

	return handler, ok
}

// ServeWS upgrades the request to a websocket. A token passed as ?token= or as a bearer
// header authenticates the socket; an invalid token is rejected with 401.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	claims, err := h.authenticate(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "Websocket upgrade failed", "error", err)
		return
	}

	client := newClient(h, conn, claims)
	select {
	case h.register <- client:
	case <-h.stopped:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

var errNoVerifier = errors.New("token verification is not configured")

func (h *Hub) authenticate(r *http.Request) (*auth.Claims, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = auth.BearerToken(r.Header.Get("Authorization"))
	}
	if token == "" {
		return nil, nil
	}
	if h.verifier == nil {
		return nil, errNoVerifier
	}

	return h.verifier.Verify(token)
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopped:
	}
}

func encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	return json.Marshal(Envelope{Event: event, Data: data})
}
