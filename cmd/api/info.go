package main

import (
	"net/http"

	"github.com/chngkx/programme-tracker/internal/service"
)

func (app *application) infoHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, nil, service.Describe())
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
