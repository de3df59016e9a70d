// Package validation provides HTTP middleware that checks one slice of an
// incoming request (body, query or headers) against a schema.
//
// On success the request continues to the next handler untouched. On failure
// the error is translated into a goerror.Error (400 BAD_REQUEST for schema
// violations, 500 INTERNAL_SERVER_ERROR for anything else) and either written
// as JSON or handed to the pipeline's error handler, depending on
// Config.NextOnError.
package validation

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// ErrorHandler is the pipeline's error path. It owns the response for err.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config holds everything the middleware needs besides the schema and target.
// The zero value validates with default engine options and responds directly.
type Config struct {
	// Engine is passed to the schema untouched.
	Engine schema.Options
	// NextOnError hands translated errors to ErrorHandler instead of writing them.
	NextOnError bool
	// ErrorHandler receives translated errors when NextOnError is set.
	ErrorHandler ErrorHandler
	// MaxBodyBytes limits the body read for validation. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// Meter records validation outcomes. Nil disables metrics.
	Meter metric.Meter
}

const (
	outcomeValid      = "valid"
	outcomeInvalid    = "invalid"
	outcomeUnexpected = "unexpected"
)

// New returns middleware validating the target slice of each request against s.
//
// It panics if cfg.NextOnError is set without an ErrorHandler.
func New(s schema.Schema, target Target, cfg Config) func(http.Handler) http.Handler {
	if cfg.NextOnError && cfg.ErrorHandler == nil {
		panic("validation: NextOnError requires an ErrorHandler")
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	record := outcomeRecorder(cfg.Meter, target)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := Extract(r, target, maxBody)
			if err == nil {
				err = schema.Assert(r.Context(), data, s, cfg.Engine)
			}

			if err != nil {
				if schema.Classify(err).Kind == schema.KindInvalid {
					record(r.Context(), outcomeInvalid)
				} else {
					record(r.Context(), outcomeUnexpected)
				}
				Translate(w, r, err, cfg)
				return
			}

			record(r.Context(), outcomeValid)
			next.ServeHTTP(w, r)
		})
	}
}

func outcomeRecorder(meter metric.Meter, target Target) func(ctx context.Context, outcome string) {
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("validation")
	}

	counter, err := meter.Int64Counter("http.server.validation",
		metric.WithDescription("Number of request validations by target and outcome"))
	if err != nil {
		return func(context.Context, string) {}
	}

	return func(ctx context.Context, outcome string) {
		counter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("target", target.String()),
			attribute.String("outcome", outcome),
		))
	}
}
