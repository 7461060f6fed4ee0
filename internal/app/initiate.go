package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/rs/cors"

	"github.com/shandysiswandi/folio/internal/pkg/clock"
	"github.com/shandysiswandi/folio/internal/pkg/config"
	"github.com/shandysiswandi/folio/internal/pkg/goroutine"
	"github.com/shandysiswandi/folio/internal/pkg/instrument"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
	"github.com/shandysiswandi/folio/internal/pkg/router"
	"github.com/shandysiswandi/folio/internal/pkg/uid"
	"github.com/shandysiswandi/folio/internal/pkg/validator"
)

var defaults = map[string]any{
	"app.server.http.address":                     ":3000",
	"app.server.http.read_timeout_seconds":        15,
	"app.server.http.read_header_timeout_seconds": 5,
	"app.server.http.write_timeout_seconds":       30,
	"app.server.http.idle_timeout_seconds":        60,
	"app.server.max_goroutine":                    16,
	"app.server.cors":                             "",
	"app.maintenance.endpoints":                   "",

	"static.dir":   "public",
	"static.index": "index.html",

	"contact.validation_mode": "all",
	"debug.enabled":           false,

	mail.KeyUseSandbox:  false,
	mail.KeyFromName:    "Portfolio",
	mail.KeySendTimeout: 15,

	"instrument.enabled":                 false,
	"instrument.service_name":            "folio",
	"instrument.env":                     "development",
	"instrument.trace_sample_ratio":      1.0,
	"instrument.metric_interval_seconds": 30,
	"instrument.log_level":               "info",
	"instrument.log_mask_fields":         "pass,password,authorization,cookie,name,email,company,message,honeypot",
}

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(config.Options{
		File:     path,
		DotEnv:   []string{".env"},
		Defaults: defaults,
	})
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

// initMail never fails the process. The transport is built and verified in
// the background; until then submissions answer "not configured".
func (a *App) initMail() {
	a.mail = mail.NewHolder(func() (mail.Mail, error) {
		cfg, err := mail.Resolve(a.config)
		if err != nil {
			return nil, err
		}

		return mail.NewSMTP(cfg, a.clock, a.uuid)
	})

	a.goroutine.Go(a.ctx, func(ctx context.Context) error {
		profile, _ := mail.Presence(a.config)
		ctx, cancel := context.WithTimeout(ctx, mail.SendTimeout(a.config))
		defer cancel()

		if err := a.mail.Rebuild(ctx); err != nil {
			slog.ErrorContext(ctx, "mail transport not ready", "profile", profile, "reason", mail.Classify(err).String(), "error", err)
			return nil
		}

		slog.InfoContext(ctx, "mail transport verified", "profile", profile)
		return nil
	})
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	corsOptions := cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", router.HeaderCorrelationID},
	}
	if len(corsOptions.AllowedOrigins) == 0 {
		// rs/cors treats an empty list as "*".
		corsOptions.AllowOriginFunc = func(string) bool { return false }
	}

	a.httpServer = &http.Server{
		Addr:              a.address(),
		Handler:           cors.New(corsOptions).Handler(a.router),
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

// address prefers PORT, which hosting platforms set, over the configured address.
func (a *App) address() string {
	if port := strings.TrimSpace(a.config.GetString("port")); port != "" {
		return ":" + port
	}
	return a.config.GetString("app.server.http.address")
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
