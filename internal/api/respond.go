package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/inclusion/internal/service"
)

const maxBodyBytes = 1 << 20

type msgBody struct {
	Msg string `json:"msg"`
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (a *API) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	a.respond(w, r, http.StatusBadRequest, msgBody{Msg: msg})
}

// fail maps a service error onto its status code. Unexpected errors are logged and
// reported as a generic 500.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		a.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}
	a.respond(w, r, status, msgBody{Msg: msg})
}

func classify(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Msg
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, "invalid status transition"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// decode reads a JSON object body into dst. Unknown fields are ignored.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}

	return nil
}

// mistypedField returns the JSON field whose value had the wrong type, if that is why decoding failed.
func mistypedField(err error) (string, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field, true
	}

	return "", false
}

// queryFloat parses an optional float query parameter. A missing parameter yields nil.
func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	return &v, nil
}

// nearbyQuery reads lng, lat, radius and the comma separated tags parameter.
func nearbyQuery(r *http.Request) (service.NearbyQuery, error) {
	var (
		q   service.NearbyQuery
		err error
	)
	if q.Lng, err = queryFloat(r, "lng"); err != nil {
		return q, err
	}
	if q.Lat, err = queryFloat(r, "lat"); err != nil {
		return q, err
	}
	if q.Radius, err = queryFloat(r, "radius"); err != nil {
		return q, err
	}
	for _, tag := range strings.Split(r.URL.Query().Get("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			q.Tags = append(q.Tags, tag)
		}
	}

	return q, nil
}
