package main

import (
	"net/http"
	"os"

	"github.com/myrjola/coachapp/internal/contexthelpers"
)

// exportUserDataGET exports all of the user's data as a downloadable SQLite
// database.
func (app *application) exportUserDataGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.AuthenticatedUserID(r.Context())

	tempDir, err := os.MkdirTemp("", "coachapp-export")
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	defer func() {
		_ = os.RemoveAll(tempDir)
	}()

	exportPath, err := app.db.ExportUserData(r.Context(), userID, tempDir)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.sqlite3")
	w.Header().Set("Content-Disposition", `attachment; filename="coachapp-data.sqlite3"`)
	http.ServeFile(w, r, exportPath)
}
