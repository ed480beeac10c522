package realtime_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/realtime"
	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relayChannel = "inclusion:events"

func TestRelay(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	hub := realtime.NewHub(slog.Default(), nil, m)
	go hub.Run(ctx)
	relay := realtime.NewRelay(slog.Default(), hub, client, relayChannel, m)
	go func() { _ = relay.Run(ctx) }()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(server.Close)
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1 && srv.PubSubNumSub(relayChannel)[relayChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	t.Run("local broadcasts go through redis", func(t *testing.T) {
		relay.Broadcast(models.EventSOSAlert, models.AlertEvent{ID: "sos-1", Lat: 28.6139, Lng: 77.209})

		env := readEnvelope(t, conn)
		assert.Equal(t, models.EventSOSAlert, env.Event)
		assert.Contains(t, string(env.Data), `"lng":77.209`)
	})

	t.Run("events from other replicas reach local clients", func(t *testing.T) {
		frame := `{"event":"sosUpdate","data":{"id":"sos-2","status":"closed"}}`
		require.NoError(t, client.Publish(ctx, relayChannel, frame).Err())

		env := readEnvelope(t, conn)
		assert.Equal(t, models.EventSOSUpdate, env.Event)
		assert.JSONEq(t, `{"id":"sos-2","status":"closed"}`, string(env.Data))
	})
}

func TestRelay_SubscribeFailure(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	relay := realtime.NewRelay(slog.Default(), realtime.NewHub(slog.Default(), nil, m), client, relayChannel, m)

	require.Error(t, relay.Run(ctx))
}
