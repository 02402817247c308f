package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/myrjola/coachapp/internal/plan"
)

type loginRequest struct {
	DisplayName string `json:"display_name"`
}

// loginPOST resolves a display name to a user, creating it on first login,
// and binds the user to the session.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := app.planService.Authenticate(r.Context(), req.DisplayName)
	if err != nil {
		if errors.Is(err, plan.ErrInvalidInput) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	// Renew the session token on privilege change.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("renew session token: %w", err))
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, userID)

	app.writeJSON(w, r, http.StatusOK, map[string]int{"user_id": userID})
}

// logoutPOST destroys the session.
func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("destroy session: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "logged out"})
}
