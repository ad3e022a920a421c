// Package diag reports which of the service's required configuration
// variables are present in the process environment.
package diag

import "time"

const (
	StatusSet     = "✅ Set"
	StatusMissing = "❌ Missing"

	EnvironmentVar     = "NODE_ENV"
	DefaultEnvironment = "production"

	Message = "Test endpoint"

	// TimestampFormat is ISO-8601 in UTC with millisecond precision.
	TimestampFormat = "2006-01-02T15:04:05.000Z"
)

// Variables holds the names of the required variables in reporting order.
var Variables = [...]string{
	"SUPABASE_URL",
	"SUPABASE_SERVICE_KEY",
	"TELEGRAM_BOT_TOKEN",
	"TELEGRAM_CHAT_ID",
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type Snapshot struct {
	Message              string            `json:"message"`
	Environment          string            `json:"environment"`
	EnvironmentVariables map[string]string `json:"environmentVariables"`
	Timestamp            string            `json:"timestamp"`
}

func isSet(lookup LookupFunc, key string) bool {
	val, ok := lookup(key)
	return ok && val != ""
}

func Check(lookup LookupFunc) map[string]string {
	vars := make(map[string]string, len(Variables))
	for _, key := range Variables {
		if isSet(lookup, key) {
			vars[key] = StatusSet
		} else {
			vars[key] = StatusMissing
		}
	}

	return vars
}

// Missing lists the unset variables in reporting order.
func Missing(lookup LookupFunc) []string {
	var missing []string
	for _, key := range Variables {
		if !isSet(lookup, key) {
			missing = append(missing, key)
		}
	}

	return missing
}

func Environment(lookup LookupFunc) string {
	if env, ok := lookup(EnvironmentVar); ok && env != "" {
		return env
	}

	return DefaultEnvironment
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

func Take(lookup LookupFunc, now time.Time) Snapshot {
	return Snapshot{
		Message:              Message,
		Environment:          Environment(lookup),
		EnvironmentVariables: Check(lookup),
		Timestamp:            FormatTimestamp(now),
	}
}
