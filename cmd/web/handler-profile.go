package main

import (
	"errors"
	"net/http"

	"github.com/myrjola/coachapp/internal/plan"
)

// profileGET returns the user's equipment profile.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	profile, err := app.planService.Profile(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

// profilePOST saves the user's equipment profile.
func (app *application) profilePOST(w http.ResponseWriter, r *http.Request) {
	var profile plan.Profile
	if err := readJSON(r, &profile); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := app.planService.SetProfile(r.Context(), profile); err != nil {
		if errors.Is(err, plan.ErrInvalidInput) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}
