package api

import (
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/realtime"
	"github.com/UnknownOlympus/inclusion/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"
)

// Services groups the domain services exposed over HTTP.
type Services struct {
	SOS        *service.SOSService
	Volunteers *service.VolunteerService
	Places     *service.PlaceService
	Schemes    *service.SchemeService
	Admins     *service.AdminService
}

// Options configures cross-cutting behavior of the router.
type Options struct {
	CORSOrigins []string
	// SOSLimiter throttles alert submissions per client IP. Nil disables throttling.
	SOSLimiter *limiter.Limiter
}

// API holds the dependencies shared by every handler.
type API struct {
	log      *slog.Logger
	svc      Services
	verifier auth.Verifier
	hub      *realtime.Hub
	metrics  *metrics.Metrics
}

// NewRouter builds the HTTP handler of the service. When hub is not nil the
// websocket endpoint is mounted at /ws and the ackSos client event is handled.
func NewRouter(
	log *slog.Logger,
	svc Services,
	verifier auth.Verifier,
	hub *realtime.Hub,
	m *metrics.Metrics,
	opts Options,
) http.Handler {
	a := &API{log: log, svc: svc, verifier: verifier, hub: hub, metrics: m}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	r.Get("/", a.root)
	if hub != nil {
		hub.OnClientEvent(models.EventAckSOS, a.ackSOSEvent)
		r.Get("/ws", hub.ServeWS)
	}

	requireToken := auth.Middleware(verifier)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", a.root)

		r.Route("/sos", func(r chi.Router) {
			r.With(a.rateLimit(opts.SOSLimiter)).Post("/", a.createSOS)
			r.Get("/public", a.listPublicSOS)

			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Get("/", a.listSOS)
				r.Patch("/{id}/status", a.updateSOSStatus)
				r.Post("/{id}/ack", a.ackSOS)
			})
		})

		r.Route("/volunteers", func(r chi.Router) {
			r.Post("/", a.registerVolunteer)
			r.Post("/register", a.registerVolunteer)
			r.Get("/", a.listVolunteers)
			r.Get("/nearby", a.nearbyVolunteers)
		})

		r.Route("/places", func(r chi.Router) {
			r.With(a.optionalToken).Post("/", a.createPlace)
			r.Get("/", a.listPlaces)
			r.Get("/nearby", a.nearbyPlaces)
			r.Get("/{id}", a.getPlace)
			r.With(requireToken).Delete("/{id}", a.deletePlace)
		})

		r.Route("/schemes", func(r chi.Router) {
			r.Get("/", a.listSchemes)
			r.Get("/{id}", a.getScheme)
			r.With(requireToken).Post("/", a.createScheme)
			r.With(requireToken).Delete("/{id}", a.deleteScheme)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/register", a.registerAdmin)
			r.Post("/login", a.loginAdmin)
		})
	})

	return r
}

func (a *API) root(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, http.StatusOK, map[string]any{"ok": true, "msg": "Smart Inclusion API"})
}
