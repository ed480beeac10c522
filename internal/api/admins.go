package api

import (
	"net/http"

	"github.com/UnknownOlympus/inclusion/internal/service"
)

type adminSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type registerAdminResponse struct {
	OK    bool         `json:"ok"`
	Admin adminSummary `json:"admin"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (a *API) registerAdmin(w http.ResponseWriter, r *http.Request) {
	var in service.AdminCredentials
	if err := decode(w, r, &in); err != nil {
		a.badRequest(w, r, "email & password required")
		return
	}

	admin, err := a.svc.Admins.Register(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusCreated, registerAdminResponse{
		OK:    true,
		Admin: adminSummary{ID: admin.ID, Email: admin.Email},
	})
}

func (a *API) loginAdmin(w http.ResponseWriter, r *http.Request) {
	var in service.AdminCredentials
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, service.ErrInvalidCredentials)
		return
	}

	token, err := a.svc.Admins.Login(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.respond(w, r, http.StatusOK, loginResponse{Token: token})
}
