package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/UnknownOlympus/inclusion/internal/models"
	"github.com/UnknownOlympus/inclusion/internal/realtime"
	"github.com/UnknownOlympus/inclusion/internal/service"
	"github.com/go-chi/chi/v5"
)

type createSOSResponse struct {
	OK  bool        `json:"ok"`
	SOS *models.SOS `json:"sos"`
}

func (a *API) createSOS(w http.ResponseWriter, r *http.Request) {
	var in service.CreateAlertInput
	if err := decode(w, r, &in); err != nil {
		if field, ok := mistypedField(err); ok && (field == "lat" || field == "lng") {
			a.badRequest(w, r, "lat & lng required")
			return
		}
		a.badRequest(w, r, "invalid payload")
		return
	}

	sos, err := a.svc.SOS.CreateAlert(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusCreated, createSOSResponse{OK: true, SOS: sos})
}

func (a *API) listSOS(w http.ResponseWriter, r *http.Request) {
	var status models.SOSStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := models.ParseSOSStatus(raw)
		if err != nil {
			a.badRequest(w, r, "status must be one of open, acknowledged, closed")
			return
		}
		status = parsed
	}

	alerts, err := a.svc.SOS.ListAlerts(r.Context(), status)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, alerts)
}

func (a *API) listPublicSOS(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.svc.SOS.ListPublic(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, alerts)
}

func (a *API) updateSOSStatus(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateStatusInput
	if err := decode(w, r, &in); err != nil {
		a.badRequest(w, r, "status required")
		return
	}

	sos, err := a.svc.SOS.UpdateStatus(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, sos)
}

func (a *API) ackSOS(w http.ResponseWriter, r *http.Request) {
	var in service.AckInput
	if err := decode(w, r, &in); err != nil {
		a.badRequest(w, r, "sosId & volunteerId required")
		return
	}
	in.SOSID = chi.URLParam(r, "id")

	sos, err := a.svc.SOS.Acknowledge(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, sos)
}

// ackSOSEvent handles the ackSos event sent by a volunteer's socket.
func (a *API) ackSOSEvent(ctx context.Context, _ *realtime.Client, data json.RawMessage) error {
	var in service.AckInput
	if err := json.Unmarshal(data, &in); err != nil {
		return &realtime.ClientError{Msg: "sosId & volunteerId required"}
	}

	if _, err := a.svc.SOS.Acknowledge(ctx, in); err != nil {
		status, msg := classify(err)
		if status == http.StatusInternalServerError {
			return err
		}
		return &realtime.ClientError{Msg: msg}
	}

	return nil
}

func (a *API) nearbyVolunteers(w http.ResponseWriter, r *http.Request) {
	q, err := nearbyQuery(r)
	if err != nil {
		a.badRequest(w, r, "lng & lat required")
		return
	}

	volunteers, err := a.svc.SOS.FindNearbyVolunteers(r.Context(), q)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, volunteers)
}
