package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chngkx/programme-tracker/internal/diag"
	"github.com/chngkx/programme-tracker/internal/jsonlog"
)

func lookupFrom(env map[string]string) diag.LookupFunc {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func newTestApplication(t *testing.T, env map[string]string) *application {
	t.Helper()

	var cfg config
	cfg.port = defaultPort
	cfg.env = "testing"
	cfg.logLevel = "off"
	cfg.limiter.rps = 2
	cfg.limiter.burst = 4

	app := &application{
		cfg:       cfg,
		logger:    jsonlog.New(io.Discard, jsonlog.OffLevel),
		lookupEnv: lookupFrom(env),
		now:       time.Now,
		done:      make(chan struct{}),
	}
	done := app.done
	t.Cleanup(func() { close(done) })

	return app
}

func do(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for key, vals := range header {
		req.Header[key] = vals
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type mismatch: %q", ct)
	}
	dec := json.NewDecoder(bytes.NewReader(rec.Body.Bytes()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
