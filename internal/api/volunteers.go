package api

import (
	"net/http"

	"github.com/UnknownOlympus/inclusion/internal/service"
)

func (a *API) registerVolunteer(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterVolunteerInput
	if err := decode(w, r, &in); err != nil {
		a.badRequest(w, r, "invalid volunteer payload")
		return
	}

	volunteer, err := a.svc.Volunteers.Register(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusCreated, volunteer)
}

func (a *API) listVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := a.svc.Volunteers.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, volunteers)
}
