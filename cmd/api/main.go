package main

import (
	"expvar"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/chngkx/programme-tracker/internal/diag"
	"github.com/chngkx/programme-tracker/internal/jsonlog"
	"github.com/chngkx/programme-tracker/internal/service"
	"github.com/chngkx/programme-tracker/internal/validator"
	"github.com/chngkx/programme-tracker/internal/vcs"
)

const defaultPort = 4000

type config struct {
	port     int
	env      string
	logLevel string
	limiter  struct {
		rps     float64
		burst   int
		enabled bool
	}
	cors struct {
		trustedOrigins []string
	}
}

type application struct {
	cfg       config
	logger    *jsonlog.Logger
	lookupEnv diag.LookupFunc
	now       func() time.Time
	// done stops background goroutines started by middleware.
	done chan struct{}
}

func (cfg config) properties() map[string]string {
	return map[string]string{
		"port":                 strconv.Itoa(cfg.port),
		"env":                  cfg.env,
		"log_level":            cfg.logLevel,
		"limiter_enabled":      strconv.FormatBool(cfg.limiter.enabled),
		"limiter_rps":          strconv.FormatFloat(cfg.limiter.rps, 'f', -1, 64),
		"limiter_burst":        strconv.Itoa(cfg.limiter.burst),
		"cors_trusted_origins": strings.Join(cfg.cors.trustedOrigins, " "),
	}
}

func main() {
	cfg, showVersion, err := parseConfig(os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	build := vcs.Read()
	if showVersion {
		fmt.Printf("Version:\t%s\nRevision:\t%s\nBuild time:\t%s\n", service.Version, build, build.Time)
		os.Exit(0)
	}

	level, _ := jsonlog.ParseLevel(cfg.logLevel)
	logger := jsonlog.New(os.Stdout, level)
	logger.Debug("resolved configuration", cfg.properties())

	if missing := diag.Missing(os.LookupEnv); len(missing) > 0 {
		logger.Info("required environment variables missing", map[string]string{
			"missing": strings.Join(missing, ","),
		})
	}

	expvar.NewString("version").Set(service.Version)
	expvar.NewString("revision").Set(build.String())
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	app := &application{
		cfg:       cfg,
		logger:    logger,
		lookupEnv: os.LookupEnv,
		now:       time.Now,
		done:      make(chan struct{}),
	}

	err = app.serve()
	if err != nil {
		logger.FatalErr(err, nil)
	}
}

// parseConfig reads flags from args; defaults that depend on the
// environment are resolved through lookup.
func parseConfig(args []string, lookup diag.LookupFunc, output io.Writer) (config, bool, error) {
	var cfg config

	port := defaultPort
	rawPort, hasPort := lookup("PORT")
	validPort := true
	if hasPort && rawPort != "" {
		p, err := strconv.Atoi(rawPort)
		if err == nil {
			port = p
		}
		validPort = err == nil
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.port, "port", port, "API server's port")
	fs.StringVar(&cfg.env, "env", diag.Environment(lookup), "Environment (development|staging|production)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Minimum log level (debug|info|error|fatal|off)")
	fs.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	fs.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")
	fs.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(s string) error {
		cfg.cors.trustedOrigins = strings.Fields(s)
		return nil
	})
	showVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return config{}, false, err
	}

	portFlagSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "port" {
			portFlagSet = true
		}
	})

	v := validator.New()
	v.CheckError(validPort || portFlagSet, "PORT", fmt.Sprintf("must be an integer, got %q", rawPort))
	validateConfig(v, cfg)
	if err := v.Err(); err != nil {
		return config{}, false, err
	}

	return cfg, *showVersion, nil
}

func validateConfig(v *validator.Validator, cfg config) {
	v.CheckError(validator.InRange(cfg.port, 1, 65535), "port", "must be between 1 and 65535")
	v.CheckError(cfg.env != "", "env", "must be provided")
	v.CheckError(validator.PermittedValue(strings.ToLower(cfg.logLevel), "debug", "info", "error", "fatal", "off"),
		"log-level", "must be one of debug, info, error, fatal, off")
	v.CheckError(cfg.limiter.rps > 0, "limiter-rps", "must be greater than zero")
	v.CheckError(cfg.limiter.burst > 0, "limiter-burst", "must be greater than zero")
	v.CheckError(validator.Unique(cfg.cors.trustedOrigins), "cors-trusted-origins", "must not contain duplicates")
	for _, origin := range cfg.cors.trustedOrigins {
		v.CheckError(validator.IsOrigin(origin), "cors-trusted-origins", fmt.Sprintf("invalid origin %q", origin))
	}
}
