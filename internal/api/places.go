package api

import (
	"net/http"

	"github.com/UnknownOlympus/inclusion/internal/service"
	"github.com/go-chi/chi/v5"
)

func (a *API) createPlace(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePlaceInput
	if err := decode(w, r, &in); err != nil {
		a.badRequest(w, r, "name, lat, lng required")
		return
	}

	place, err := a.svc.Places.Create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusCreated, place)
}

func (a *API) nearbyPlaces(w http.ResponseWriter, r *http.Request) {
	q, err := nearbyQuery(r)
	if err != nil {
		a.badRequest(w, r, "lng and lat required")
		return
	}

	places, err := a.svc.Places.Nearby(r.Context(), q)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, places)
}

func (a *API) listPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := a.svc.Places.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, places)
}

func (a *API) getPlace(w http.ResponseWriter, r *http.Request) {
	place, err := a.svc.Places.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, place)
}

func (a *API) deletePlace(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Places.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, msgBody{Msg: "Deleted"})
}
