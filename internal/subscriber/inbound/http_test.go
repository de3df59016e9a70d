package inbound_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/reqguard/internal/pkg/clock"
	"github.com/shandysiswandi/reqguard/internal/pkg/goerror"
	"github.com/shandysiswandi/reqguard/internal/pkg/instrument"
	"github.com/shandysiswandi/reqguard/internal/pkg/router"
	"github.com/shandysiswandi/reqguard/internal/pkg/uid"
	"github.com/shandysiswandi/reqguard/internal/pkg/validator"
	"github.com/shandysiswandi/reqguard/internal/subscriber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

type subscriberJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

var now = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	ins := instrument.NewNoop()
	r := router.NewRouter(router.Config{UUID: uid.NewUUID(), Instrument: ins})

	require.NoError(t, subscriber.New(subscriber.Dependency{
		Router:     r,
		Instrument: ins,
		UUID:       uid.NewUUID(),
		Clock:      clock.Fixed(now),
		Validator:  v,
	}))

	return r
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func post(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscribers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) goerror.Body {
	t.Helper()

	var body goerror.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeOK(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestCreate_MissingEmail(t *testing.T) {
	h := newServer(t)

	rec := do(h, post(`{"name":"John Doe"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, goerror.CodeBadRequest, body.Code)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.Regexp(t, `.*email.* is required`, body.Message)
}

func TestCreate_InvalidInputs(t *testing.T) {
	h := newServer(t)

	tests := map[string]struct {
		body string
		want string
	}{
		"bad email":     {`{"name":"John","email":"nope"}`, `"email" must be a valid email`},
		"missing name":  {`{"email":"john@example.com"}`, `"name" is required`},
		"unknown field": {`{"name":"John","email":"john@example.com","age":3}`, `"age" is not allowed`},
		"number name":   {`{"name":123,"email":"john@example.com"}`, `"name" must be a string`},
		"boolean name":  {`{"name":true,"email":"john@example.com"}`, `"name" must be a string`},
		"not json":      {`{"name":`, "request body must be valid JSON"},
		"empty body":    {``, `"name" is required`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(h, post(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeError(t, rec).Message, tt.want)
		})
	}
}

func TestCreate_ThenDetailAndList(t *testing.T) {
	h := newServer(t)

	rec := do(h, post(`{"name":"John Doe","email":"john.doe@example.com"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var created subscriberJSON
	env := decodeOK(t, rec, &created)
	assert.Equal(t, "Success", env.Message)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "John Doe", created.Name)
	assert.Equal(t, now, created.CreatedAt)

	rec = do(h, post(`{"name":"Again","email":"JOHN.DOE@example.com"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscribers/"+created.ID, nil)
	req.Header.Set("X-Api-Version", "v1")
	rec = do(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var got subscriberJSON
	decodeOK(t, rec, &got)
	assert.Equal(t, created, got)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/subscribers?page=1&size=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []subscriberJSON `json:"items"`
	}
	env = decodeOK(t, rec, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
	assert.InDelta(t, 1, env.Meta["total"], 0)
	assert.InDelta(t, 5, env.Meta["size"], 0)
}

func TestList_InvalidQuery(t *testing.T) {
	h := newServer(t)

	tests := map[string]string{
		"zero page":     "/api/v1/subscribers?page=0",
		"huge size":     "/api/v1/subscribers?size=1000",
		"repeated page": "/api/v1/subscribers?page=1&page=2",
		"unknown key":   "/api/v1/subscribers?sort=name",
	}

	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(h, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, goerror.CodeBadRequest, decodeError(t, rec).Code)
		})
	}
}

func TestDetail_HeadersGoThroughErrorPath(t *testing.T) {
	h := newServer(t)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/subscribers/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"x-api-version" is required`, decodeError(t, rec).Message)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscribers/abc", nil)
	req.Header.Set("X-Api-Version", "v2")
	rec = do(h, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "x-api-version")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/subscribers/abc", nil)
	req.Header.Set("X-Api-Version", "v1")
	rec = do(h, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, goerror.CodeNotFound, decodeError(t, rec).Code)
}
