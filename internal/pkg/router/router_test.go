package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/reqguard/internal/pkg/config"
	"github.com/shandysiswandi/reqguard/internal/pkg/goerror"
	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
	"github.com/shandysiswandi/reqguard/internal/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type created struct {
	ID string `json:"id"`
}

func (created) StatusCode() int { return http.StatusCreated }
func (created) Message() string { return "Created" }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	return NewRouter(Config{Config: cfg, UUID: fixedID("cid-1")})
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) goerror.Body {
	t.Helper()

	var body goerror.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func requireName() schema.Schema {
	return schema.Func(func(_ context.Context, data any, _ schema.Options) error {
		m, _ := data.(map[string]any)
		if _, ok := m["name"]; !ok {
			return schema.Invalid(`"name" is required`)
		}
		return nil
	})
}

func TestRouter_Welcome(t *testing.T) {
	r := newTestRouter(t, "app:\n  name: demo\n")

	rec := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to API demo"}`, rec.Body.String())
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, "{}")
	r.GET("/ping", func(*Request) (any, error) { return "pong", nil })

	rec := serve(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, goerror.CodeNotFound, errorBody(t, rec).Code)

	rec = serve(r, http.MethodDelete, "/ping", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, goerror.CodeMethodNotAllowed, errorBody(t, rec).Code)
}

func TestRouter_SuccessEnvelope(t *testing.T) {
	r := newTestRouter(t, "{}")
	r.GET("/ping", func(*Request) (any, error) { return map[string]string{"pong": "yes"}, nil })
	r.POST("/things", func(*Request) (any, error) { return created{ID: "1"}, nil })
	r.DELETE("/things/:id", func(*Request) (any, error) { return nil, nil })

	rec := serve(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Success","data":{"pong":"yes"}}`, rec.Body.String())

	rec = serve(r, http.MethodPost, "/things", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Created","data":{"id":"1"}}`, rec.Body.String())

	rec = serve(r, http.MethodDelete, "/things/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_ErrorCodec(t *testing.T) {
	r := newTestRouter(t, "{}")
	r.GET("/bad", func(*Request) (any, error) { return nil, goerror.NewBadRequest("nope") })
	r.GET("/boom", func(*Request) (any, error) { return nil, errors.New("db password leaked") })

	rec := serve(r, http.MethodGet, "/bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, goerror.Body{Code: goerror.CodeBadRequest, Status: 400, Message: "nope"}, errorBody(t, rec))

	rec = serve(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, goerror.MsgInternal, errorBody(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := newTestRouter(t, "{}")
	r.GET("/panic", func(*Request) (any, error) { panic("kaboom") })

	rec := serve(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, goerror.CodeInternal, errorBody(t, rec).Code)
}

func TestRouter_CorrelationID(t *testing.T) {
	r := newTestRouter(t, "{}")
	r.GET("/ping", func(*Request) (any, error) { return "pong", nil })

	rec := serve(r, http.MethodGet, "/ping", "")
	assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "  upstream-7 ")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-7", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /things/:id\n")
	r.GET("/things/:id", func(*Request) (any, error) { return "ok", nil })
	r.GET("/ping", func(*Request) (any, error) { return "pong", nil })

	rec := serve(r, http.MethodGet, "/things/9", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, goerror.CodeUnavailable, errorBody(t, rec).Code)

	rec = serve(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Validate(t *testing.T) {
	r := newTestRouter(t, "{}")

	var reached bool
	h := func(req *Request) (any, error) {
		reached = true
		var in map[string]any
		if err := req.DecodeBody(&in); err != nil {
			return nil, err
		}
		return in, nil
	}

	r.POST("/direct", h, r.Validate(requireName(), validation.TargetBody, validation.Config{}))
	r.POST("/piped", h, r.Validate(requireName(), validation.TargetBody, validation.Config{NextOnError: true}))

	for _, path := range []string{"/direct", "/piped"} {
		reached = false
		rec := serve(r, http.MethodPost, path, `{"email":"a@b.co"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, `"name" is required`, errorBody(t, rec).Message, path)
		assert.False(t, reached, path)
	}

	rec := serve(r, http.MethodPost, "/direct", `{"name":"Jo"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Success","data":{"name":"Jo"}}`, rec.Body.String())
	assert.True(t, reached)
}

func TestRouter_ValidateUsesConfiguredBodyLimit(t *testing.T) {
	r := newTestRouter(t, "validation:\n  max_body_bytes: 8\n")
	r.POST("/small", func(*Request) (any, error) { return "ok", nil },
		r.Validate(requireName(), validation.TargetBody, validation.Config{}))

	rec := serve(r, http.MethodPost, "/small", `{"name":"a long name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is too large", errorBody(t, rec).Message)
}

func TestRouter_ValidateGlobalEngineOptions(t *testing.T) {
	r := newTestRouter(t, "validation:\n  all_errors: true\n")

	var got schema.Options
	spy := schema.Func(func(_ context.Context, _ any, opts schema.Options) error {
		got = opts
		return nil
	})
	r.GET("/spy", func(*Request) (any, error) { return "ok", nil },
		r.Validate(spy, validation.TargetQuery, validation.Config{Engine: schema.Options{AllowUnknown: true}}))

	rec := serve(r, http.MethodGet, "/spy?a=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schema.Options{AllErrors: true, AllowUnknown: true}, got)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", realIP(req))

	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "10.0.0.1", realIP(req))
}
