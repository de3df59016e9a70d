package validation

import (
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/reqguard/internal/pkg/goerror"
	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Translate turns a validation failure into a goerror.Error and delivers it:
// to cfg.ErrorHandler when cfg.NextOnError is set, otherwise as a JSON response.
//
// Only schema violations keep their message. Any other failure becomes the
// generic 500; its cause is logged and recorded on the active span, never sent.
func Translate(w http.ResponseWriter, r *http.Request, failure error, cfg Config) {
	terr := translate(r, failure)

	if cfg.NextOnError && cfg.ErrorHandler != nil {
		cfg.ErrorHandler(w, r, terr)
		return
	}

	goerror.WriteJSON(w, terr)
}

func translate(r *http.Request, failure error) *goerror.Error {
	f := schema.Classify(failure)
	if f != nil && f.Kind == schema.KindInvalid {
		return goerror.NewBadRequest(f.Message)
	}

	ctx := r.Context()
	slog.ErrorContext(ctx, "validation: unexpected failure",
		"method", r.Method,
		"uri", r.RequestURI,
		"error", failure,
	)

	if span := trace.SpanFromContext(ctx); span.IsRecording() && failure != nil {
		span.RecordError(failure)
		span.SetStatus(codes.Error, "request validation failed unexpectedly")
	}

	return goerror.NewInternal()
}
