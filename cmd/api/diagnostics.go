package main

import (
	"net/http"

	"github.com/chngkx/programme-tracker/internal/diag"
)

// diagnosticsHandler reports which required variables are configured. Values
// themselves are never echoed back.
func (app *application) diagnosticsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := diag.Take(app.lookupEnv, app.now())

	err := app.writeJSON(w, http.StatusOK, nil, snapshot)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
