package realtime_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/realtime"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "realtime-secret"

type harness struct {
	hub     *realtime.Hub
	metrics *metrics.Metrics
	tokens  *auth.TokenManager
	server  *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := &harness{
		metrics: metrics.NewMetrics(prometheus.NewRegistry()),
		tokens:  auth.NewTokenManager(testSecret, time.Hour),
	}
	h.hub = realtime.NewHub(slog.Default(), h.tokens, h.metrics)
	go h.hub.Run(ctx)

	h.server = httptest.NewServer(http.HandlerFunc(h.hub.ServeWS))
	t.Cleanup(h.server.Close)

	return h
}

func (h *harness) url(query string) string {
	return "ws" + strings.TrimPrefix(h.server.URL, "http") + query
}

// connect dials the hub and waits until it has registered want clients.
func (h *harness) connect(t *testing.T, query string, want int) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(h.url(query), nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return h.hub.ClientCount() == want }, time.Second, 5*time.Millisecond)

	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) realtime.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env realtime.Envelope
	require.NoError(t, conn.ReadJSON(&env))

	return env
}

func TestHub_Broadcast(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	first := h.connect(t, "", 1)
	second := h.connect(t, "", 2)

	h.hub.Broadcast(models.EventSOSUpdate, models.UpdateEvent{ID: "sos-1", Status: models.SOSStatusClosed})

	for _, conn := range []*websocket.Conn{first, second} {
		env := readEnvelope(t, conn)
		assert.Equal(t, models.EventSOSUpdate, env.Event)
		assert.JSONEq(t, `{"id":"sos-1","status":"closed"}`, string(env.Data))
	}
	assert.InDelta(t, 2, testutil.ToFloat64(h.metrics.ClientsConnected), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.EventsBroadcast.WithLabelValues(models.EventSOSUpdate)), 0)
}

func TestHub_LateClientMissesEarlierEvents(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	early := h.connect(t, "", 1)
	h.hub.Broadcast(models.EventSOSAlert, models.AlertEvent{ID: "first"})
	assert.Equal(t, models.EventSOSAlert, readEnvelope(t, early).Event)

	late := h.connect(t, "", 2)
	h.hub.Broadcast(models.EventSOSUpdate, models.UpdateEvent{ID: "second", Status: models.SOSStatusOpen})

	env := readEnvelope(t, late)
	assert.Equal(t, models.EventSOSUpdate, env.Event)
	assert.JSONEq(t, `{"id":"second","status":"open"}`, string(env.Data))
}

func TestHub_Disconnect(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	conn := h.connect(t, "", 1)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return h.hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	h.hub.Broadcast(models.EventSOSAlert, models.AlertEvent{ID: "nobody listens"})
}

func TestHub_ServeWSRejectsInvalidToken(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, resp, err := websocket.DefaultDialer.Dial(h.url("?token=garbage"), nil)

	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, h.hub.ClientCount())
}

func TestHub_OnClientEvent(t *testing.T) {
	t.Parallel()

	t.Run("handler sees the socket claims", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		got := make(chan string, 1)
		h.hub.OnClientEvent("ping", func(ctx context.Context, c *realtime.Client, data json.RawMessage) error {
			claims, ok := auth.ClaimsFromContext(ctx)
			if ok && c.Claims() == claims {
				got <- claims.Email + " " + string(data)
			}
			c.Reply("pong", map[string]bool{"ok": true})
			return nil
		})
		token, err := h.tokens.Issue("adm-1", "ops@example.org", "admin")
		require.NoError(t, err)

		conn := h.connect(t, "?token="+token, 1)
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "ping", "data": 1}))

		env := readEnvelope(t, conn)
		assert.Equal(t, "pong", env.Event)
		assert.Equal(t, "ops@example.org 1", <-got)
	})

	t.Run("bearer header authenticates too", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.hub.OnClientEvent("whoami", func(ctx context.Context, c *realtime.Client, _ json.RawMessage) error {
			claims, _ := auth.ClaimsFromContext(ctx)
			c.Reply("whoami", map[string]string{"id": claims.ID})
			return nil
		})
		token, err := h.tokens.Issue("adm-2", "ops@example.org", "admin")
		require.NoError(t, err)

		header := http.Header{"Authorization": []string{"Bearer " + token}}
		conn, resp, err := websocket.DefaultDialer.Dial(h.url(""), header)
		require.NoError(t, err)
		resp.Body.Close()
		defer conn.Close()
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "whoami"}))

		env := readEnvelope(t, conn)
		assert.JSONEq(t, `{"id":"adm-2"}`, string(env.Data))
	})

	t.Run("client errors go back to the sender only", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.hub.OnClientEvent(models.EventAckSOS, func(context.Context, *realtime.Client, json.RawMessage) error {
			return &realtime.ClientError{Msg: "Unauthorized"}
		})

		sender := h.connect(t, "", 1)
		other := h.connect(t, "", 2)
		require.NoError(t, sender.WriteJSON(map[string]any{"event": models.EventAckSOS, "data": map[string]string{}}))

		env := readEnvelope(t, sender)
		assert.Equal(t, models.EventError, env.Event)
		assert.JSONEq(t, `{"msg":"Unauthorized"}`, string(env.Data))

		require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
		_, _, err := other.ReadMessage()
		require.Error(t, err)
	})

	t.Run("unexpected handler errors are hidden", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.hub.OnClientEvent("boom", func(context.Context, *realtime.Client, json.RawMessage) error {
			return assert.AnError
		})

		conn := h.connect(t, "", 1)
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "boom"}))

		env := readEnvelope(t, conn)
		assert.JSONEq(t, `{"msg":"Server error"}`, string(env.Data))
	})

	t.Run("unknown event", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		conn := h.connect(t, "", 1)
		require.NoError(t, conn.WriteJSON(map[string]any{"event": "nope"}))

		env := readEnvelope(t, conn)
		assert.Equal(t, models.EventError, env.Event)
		assert.JSONEq(t, `{"msg":"unknown event"}`, string(env.Data))
	})

	t.Run("malformed frame", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		conn := h.connect(t, "", 1)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

		env := readEnvelope(t, conn)
		assert.JSONEq(t, `{"msg":"invalid message"}`, string(env.Data))
	})
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	m := metrics.NewMetrics(prometheus.NewRegistry())
	hub := realtime.NewHub(slog.Default(), nil, m)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
	assert.InDelta(t, 0, testutil.ToFloat64(m.ClientsConnected), 0)
}
