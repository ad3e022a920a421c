package main

import (
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/chngkx/programme-tracker/internal/diag"
)

func fullEnv() map[string]string {
	return map[string]string{
		"SUPABASE_URL":         "https://example.supabase.co",
		"SUPABASE_SERVICE_KEY": "service-key",
		"TELEGRAM_BOT_TOKEN":   "123:abc",
		"TELEGRAM_CHAT_ID":     "-1001",
	}
}

func TestDiagnosticsHandler(t *testing.T) {
	t.Parallel()

	noServiceKey := fullEnv()
	delete(noServiceKey, "SUPABASE_SERVICE_KEY")

	withEnv := fullEnv()
	withEnv["NODE_ENV"] = "development"

	tests := []struct {
		name    string
		env     map[string]string
		wantEnv string
		want    map[string]string
	}{
		{
			name:    "all set",
			env:     fullEnv(),
			wantEnv: "production",
			want: map[string]string{
				"SUPABASE_URL":         "✅ Set",
				"SUPABASE_SERVICE_KEY": "✅ Set",
				"TELEGRAM_BOT_TOKEN":   "✅ Set",
				"TELEGRAM_CHAT_ID":     "✅ Set",
			},
		},
		{
			name:    "service key unset",
			env:     noServiceKey,
			wantEnv: "production",
			want: map[string]string{
				"SUPABASE_URL":         "✅ Set",
				"SUPABASE_SERVICE_KEY": "❌ Missing",
				"TELEGRAM_BOT_TOKEN":   "✅ Set",
				"TELEGRAM_CHAT_ID":     "✅ Set",
			},
		},
		{
			name:    "nothing set",
			env:     map[string]string{},
			wantEnv: "production",
			want: map[string]string{
				"SUPABASE_URL":         "❌ Missing",
				"SUPABASE_SERVICE_KEY": "❌ Missing",
				"TELEGRAM_BOT_TOKEN":   "❌ Missing",
				"TELEGRAM_CHAT_ID":     "❌ Missing",
			},
		},
		{
			name:    "explicit environment",
			env:     withEnv,
			wantEnv: "development",
			want: map[string]string{
				"SUPABASE_URL":         "✅ Set",
				"SUPABASE_SERVICE_KEY": "✅ Set",
				"TELEGRAM_BOT_TOKEN":   "✅ Set",
				"TELEGRAM_CHAT_ID":     "✅ Set",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApplication(t, tt.env)
			before := time.Now()
			rec := do(t, app.routes(), http.MethodGet, "/api/test", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status mismatch: %d", rec.Code)
			}

			var got diag.Snapshot
			decodeBody(t, rec, &got)

			if got.Message != "Test endpoint" {
				t.Fatalf("message mismatch: %q", got.Message)
			}
			if got.Environment != tt.wantEnv {
				t.Fatalf("environment mismatch: got %q want %q", got.Environment, tt.wantEnv)
			}
			if !reflect.DeepEqual(got.EnvironmentVariables, tt.want) {
				t.Fatalf("variables mismatch: got %v want %v", got.EnvironmentVariables, tt.want)
			}

			ts, err := time.Parse(time.RFC3339Nano, got.Timestamp)
			if err != nil {
				t.Fatalf("timestamp %q: %v", got.Timestamp, err)
			}
			if d := ts.Sub(before); d < -time.Second || d > 5*time.Second {
				t.Fatalf("timestamp %s too far from invocation time %s", ts, before)
			}
		})
	}
}

func TestDiagnosticsHandlerAnyMethod(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, fullEnv())
	h := app.routes()

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := do(t, h, method, "/api/test", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", method, rec.Code)
		}
	}
}

func TestDiagnosticsHandlerIsStable(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, fullEnv())
	h := app.routes()

	var first, second diag.Snapshot
	decodeBody(t, do(t, h, http.MethodGet, "/api/test", nil), &first)
	decodeBody(t, do(t, h, http.MethodGet, "/api/test", nil), &second)

	first.Timestamp, second.Timestamp = "", ""
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("responses differ: %+v vs %+v", first, second)
	}
}

func TestDiagnosticsHandlerUsesInvocationTime(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, nil)
	app.now = func() time.Time { return time.Date(2024, time.June, 30, 23, 59, 59, 999_000_000, time.UTC) }

	var got diag.Snapshot
	decodeBody(t, do(t, app.routes(), http.MethodGet, "/api/test", nil), &got)

	if got.Timestamp != "2024-06-30T23:59:59.999Z" {
		t.Fatalf("timestamp mismatch: %q", got.Timestamp)
	}
}

func TestDiagnosticsHandlerDoesNotLeakValues(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, fullEnv())
	body := do(t, app.routes(), http.MethodGet, "/api/test", nil).Body.String()

	for key, val := range fullEnv() {
		if strings.Contains(body, val) {
			t.Fatalf("value of %s leaked into response", key)
		}
	}
}
