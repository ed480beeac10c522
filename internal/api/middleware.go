package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
)

// accessLog logs every request and records its duration by route pattern.
func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		a.metrics.HTTPDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
		a.log.InfoContext(r.Context(), "HTTP request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// optionalToken attaches the caller's claims when a valid bearer token is present
// and lets anonymous requests through unchanged.
func (a *API) optionalToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
			if claims, err := a.verifier.Verify(token); err == nil {
				r = r.WithContext(auth.WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit throttles requests per client IP. A nil limiter disables it. When the
// limiter store is unreachable the request is let through, so alerts are never lost
// to a cache outage.
func (a *API) rateLimit(lim *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if lim == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lctx, err := lim.Get(r.Context(), lim.GetIPKey(r))
			if err != nil {
				a.log.WarnContext(r.Context(), "Rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
			if lctx.Reached {
				a.respond(w, r, http.StatusTooManyRequests, msgBody{Msg: "Too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
