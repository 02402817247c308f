package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/myrjola/coachapp/internal/plan"
)

type checkInRequest struct {
	Date          string   `json:"date"`
	Soreness      int      `json:"soreness"`
	PainLocations []string `json:"pain_locations"`
}

// checkInPOST saves the morning soreness report.
func (app *application) checkInPOST(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	checkIn := plan.MorningCheckIn{
		Date:          date,
		Soreness:      req.Soreness,
		PainLocations: req.PainLocations,
	}
	if err = app.planService.SaveMorningCheckIn(r.Context(), checkIn); err != nil {
		if errors.Is(err, plan.ErrInvalidInput) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, checkIn)
}
