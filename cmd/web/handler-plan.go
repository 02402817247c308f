package main

import (
	"errors"
	"net/http"

	"github.com/myrjola/coachapp/internal/plan"
)

// planGeneratePOST runs the planning pipeline for a date and stores the
// result, replacing any earlier plan.
func (app *application) planGeneratePOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	generated, err := app.planService.GenerateDailyPlan(r.Context(), date)
	if err != nil {
		if errors.Is(err, plan.ErrNoOptions) {
			app.clientError(w, r, http.StatusConflict, "no options available")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, generated)
}

// planGET returns the stored plan for a date.
func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	p, err := app.planService.Plan(r.Context(), date)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			app.clientError(w, r, http.StatusNotFound, "plan not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, p)
}

// planSummaryGET returns the stored plan rendered as the morning message.
func (app *application) planSummaryGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	summary, err := app.planService.Summary(r.Context(), date)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			app.clientError(w, r, http.StatusNotFound, "plan not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"summary": summary})
}

type selectOptionRequest struct {
	OptionID string `json:"option_id"`
}

// planSelectPOST records which option the user picked from the day's plan.
func (app *application) planSelectPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	var req selectOptionRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := app.planService.SelectOption(r.Context(), date, req.OptionID); err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			app.clientError(w, r, http.StatusNotFound, "plan or option not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"selected_option_id": req.OptionID})
}
