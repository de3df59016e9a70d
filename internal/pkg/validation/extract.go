package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
)

// DefaultMaxBodyBytes caps how much of a body is read for validation.
const DefaultMaxBodyBytes int64 = 1 << 20 // 1MB

// Extract returns the request slice named by target in the shape a schema
// engine expects: decoded JSON for the body, maps for query and headers.
//
// The body is restored after reading so later handlers can decode it again.
// An empty body yields nil. An unknown target yields nil data and no error.
func Extract(r *http.Request, target Target, maxBody int64) (any, error) {
	switch target {
	case TargetBody:
		return extractBody(r, maxBody)
	case TargetQuery:
		return extractQuery(r), nil
	case TargetHeaders:
		return extractHeaders(r), nil
	default:
		return nil, nil
	}
}

func extractBody(r *http.Request, maxBody int64) (any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return nil, schema.Invalid("failed to read request body")
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))

	if int64(len(raw)) > maxBody {
		return nil, schema.Invalid("request body is too large")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, schema.Invalid("request body must be valid JSON")
	}

	return data, nil
}

func extractQuery(r *http.Request) map[string]any {
	values := r.URL.Query()
	out := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			out[k] = v[0]
			continue
		}
		list := make([]any, len(v))
		for i := range v {
			list[i] = v[i]
		}
		out[k] = list
	}
	return out
}

func extractHeaders(r *http.Request) map[string]any {
	out := make(map[string]any, len(r.Header)+1)
	for k, v := range r.Header {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	if r.Host != "" {
		out["host"] = r.Host
	}
	return out
}
