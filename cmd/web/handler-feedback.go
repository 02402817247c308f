package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/myrjola/coachapp/internal/plan"
)

type feedbackRequest struct {
	Effort      int    `json:"effort"`
	WorkoutDate string `json:"workout_date"`
}

// feedbackPOST saves a post-workout effort rating.
func (app *application) feedbackPOST(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	workoutDate, err := time.Parse(time.DateOnly, req.WorkoutDate)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid workout date")
		return
	}

	feedback := plan.WorkoutFeedback{
		Effort:      req.Effort,
		WorkoutDate: workoutDate,
		CreatedAt:   time.Now(),
	}
	if err = app.planService.SaveWorkoutFeedback(r.Context(), feedback); err != nil {
		if errors.Is(err, plan.ErrInvalidInput) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, feedback)
}
