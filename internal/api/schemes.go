package api

import (
	"net/http"

	"github.com/UnknownOlympus/inclusion/internal/service"
	"github.com/go-chi/chi/v5"
)

func (a *API) createScheme(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSchemeInput
	if err := decode(w, r, &in); err != nil {
		a.badRequest(w, r, "invalid scheme payload")
		return
	}

	scheme, err := a.svc.Schemes.Create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusCreated, scheme)
}

func (a *API) listSchemes(w http.ResponseWriter, r *http.Request) {
	schemes, err := a.svc.Schemes.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, schemes)
}

func (a *API) getScheme(w http.ResponseWriter, r *http.Request) {
	scheme, err := a.svc.Schemes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, scheme)
}

func (a *API) deleteScheme(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Schemes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, msgBody{Msg: "Deleted"})
}
