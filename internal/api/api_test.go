package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/api"
	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/realtime"
	"github.com/UnknownOlympus/inclusion/internal/service"
	"github.com/UnknownOlympus/inclusion/test/mocks"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	sosID       = "7d8f1c52-3a60-4f57-9a59-3b8f0e7f2a11"
	volunteerID = "0b9a4c1e-57d2-4e43-8d7c-2f4b1a6e9c30"
	placeID     = "5c3e0d1f-8a2b-4c6d-9e7f-1a2b3c4d5e6f"
	adminID     = "9f8e7d6c-5b4a-4392-8172-6a5b4c3d2e1f"
)

type harness struct {
	alerts     *mocks.SOSStore
	volunteers *mocks.VolunteerStore
	places     *mocks.PlaceStore
	schemes    *mocks.SchemeStore
	admins     *mocks.AdminStore
	tokens     *auth.TokenManager
	hub        *realtime.Hub
	metrics    *metrics.Metrics
	server     *httptest.Server
}

func newHarness(t *testing.T, opts api.Options) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &harness{
		alerts:     mocks.NewSOSStore(t),
		volunteers: mocks.NewVolunteerStore(t),
		places:     mocks.NewPlaceStore(t),
		schemes:    mocks.NewSchemeStore(t),
		admins:     mocks.NewAdminStore(t),
		tokens:     auth.NewTokenManager("api-secret", time.Hour),
		metrics:    metrics.NewMetrics(prometheus.NewRegistry()),
	}
	h.hub = realtime.NewHub(log, h.tokens, h.metrics)
	go h.hub.Run(ctx)

	svc := api.Services{
		SOS:        service.NewSOSService(log, h.alerts, h.volunteers, h.hub, h.metrics),
		Volunteers: service.NewVolunteerService(log, h.volunteers),
		Places:     service.NewPlaceService(log, h.places, true),
		Schemes:    service.NewSchemeService(log, h.schemes),
		Admins:     service.NewAdminService(log, h.admins, h.tokens),
	}
	h.server = httptest.NewServer(api.NewRouter(log, svc, h.tokens, h.hub, h.metrics, opts))
	t.Cleanup(h.server.Close)

	return h
}

func (h *harness) token(t *testing.T) string {
	t.Helper()
	token, err := h.tokens.Issue(adminID, "ops@example.org", models.DefaultAdminRole)
	require.NoError(t, err)

	return token
}

// do sends a request with an optional JSON body and bearer token and returns the status and body.
func (h *harness) do(t *testing.T, method, path string, body any, token string) (int, string) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, h.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

// listen opens a websocket and waits until the hub has registered want clients.
func (h *harness) listen(t *testing.T, token string, want int) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return h.hub.ClientCount() == want }, time.Second, 5*time.Millisecond)

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) realtime.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env realtime.Envelope
	require.NoError(t, conn.ReadJSON(&env))

	return env
}

func openAlert() *models.SOS {
	return &models.SOS{
		ID:        sosID,
		Message:   "need help",
		Location:  models.NewPoint(77.209, 28.6139),
		Status:    models.SOSStatusOpen,
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}
