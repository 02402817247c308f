package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/myrjola/coachapp/internal/plan"
)

type recoveryRequest struct {
	Date          string `json:"date"`
	RecoveryScore int    `json:"recovery_score"`
	SleepSummary  string `json:"sleep_summary"`
}

// recoveryPOST ingests a physiological recovery snapshot for a date.
func (app *application) recoveryPOST(w http.ResponseWriter, r *http.Request) {
	var req recoveryRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	snapshot := plan.RecoverySnapshot{
		Date:          date,
		RecoveryScore: req.RecoveryScore,
		SleepSummary:  req.SleepSummary,
	}
	if err = app.planService.SaveRecoverySnapshot(r.Context(), snapshot); err != nil {
		if errors.Is(err, plan.ErrInvalidInput) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, snapshot)
}
