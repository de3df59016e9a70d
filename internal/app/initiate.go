package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/rs/cors"
	"github.com/shandysiswandi/reqguard/internal/pkg/clock"
	"github.com/shandysiswandi/reqguard/internal/pkg/config"
	"github.com/shandysiswandi/reqguard/internal/pkg/instrument"
	"github.com/shandysiswandi/reqguard/internal/pkg/router"
	"github.com/shandysiswandi/reqguard/internal/pkg/uid"
	"github.com/shandysiswandi/reqguard/internal/pkg/validator"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, newInstrumentConfig(a.config))
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func newInstrumentConfig(cfg config.Config) *instrument.Config {
	return &instrument.Config{
		Enabled:          cfg.GetBool("instrument.enabled"),
		ServiceName:      cfg.GetString("instrument.service_name"),
		ServiceVersion:   cfg.GetString("instrument.service_version"),
		Environment:      cfg.GetString("instrument.env"),
		OTLPEndpoint:     cfg.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       cfg.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: cfg.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  cfg.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       cfg.GetArray("instrument.log_mask_fields"),
		LogLevel:         cfg.GetString("instrument.log_level"),
	}
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()

	v, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.address"),
		Handler:           withCORS(a.config, a.router),
		ReadTimeout:       a.config.GetSecond("app.server.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.read_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.write_timeout_seconds"),
	}
}

func withCORS(cfg config.Config, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.GetArray("app.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{router.HeaderCorrelationID},
	}).Handler(h)
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
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
