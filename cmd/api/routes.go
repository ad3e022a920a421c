package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/chngkx/programme-tracker/internal/service"
)

var registeredMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.HandleOPTIONS = false
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.anyMethodHandler)
	router.PanicHandler = app.recoverPanic

	for _, method := range registeredMethods {
		router.HandlerFunc(method, "/", app.infoHandler)
		router.HandlerFunc(method, service.InfoPath, app.infoHandler)
		router.HandlerFunc(method, service.TestPath, app.diagnosticsHandler)
	}

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return app.metrics(app.logRequest(app.enableCORS(app.rateLimit(router))))
}

// anyMethodHandler serves methods the router has no tree for, such as TRACE
// or WebDAV extensions. httprouter only calls it for paths routed under some
// other method.
func (app *application) anyMethodHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/", service.InfoPath:
		w.Header().Del("Allow")
		app.infoHandler(w, r)
	case service.TestPath:
		w.Header().Del("Allow")
		app.diagnosticsHandler(w, r)
	default:
		app.methodNotAllowedResponse(w, r)
	}
}
