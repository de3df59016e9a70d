package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app:
  name: reqguard-test
  maintenance:
    endpoints: /maintenance
instrument:
  enabled: false
  log_level: error
`

func startApp(t *testing.T) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(testConfig), 0o600))
	t.Setenv("CONFIG_PATH", file)

	application := New()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	errChan := application.Serve(l)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		application.Stop(ctx)
		assert.ErrorIs(t, <-errChan, http.ErrServerClosed)
	})

	return "http://" + l.Addr().String()
}

func call(t *testing.T, method, url, body string, headers map[string]string) (int, string, http.Header) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw), resp.Header
}

func TestApp_EndToEnd(t *testing.T) {
	base := startApp(t)
	jsonCT := map[string]string{"Content-Type": "application/json"}

	code, body, _ := call(t, http.MethodGet, base+"/", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Welcome to API reqguard-test"}`, body)

	code, body, hdr := call(t, http.MethodPost, base+"/api/v1/subscribers", `{"name":"John Doe"}`, jsonCT)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"code":"BAD_REQUEST","status":400,"message":"\"email\" is required"}`, body)
	assert.NotEmpty(t, hdr.Get("X-Correlation-ID"))

	code, body, _ = call(t, http.MethodPost, base+"/api/v1/subscribers",
		`{"name":"John Doe","email":"john.doe@example.com"}`, jsonCT)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"message":"Success"`)

	code, _, _ = call(t, http.MethodGet, base+"/api/v1/subscribers/unknown", "", map[string]string{"X-Api-Version": "v1"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestApp_CORSPreflight(t *testing.T) {
	base := startApp(t)

	code, _, hdr := call(t, http.MethodOptions, base+"/api/v1/subscribers", "", map[string]string{
		"Origin":                        "https://example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Less(t, code, 300)
	assert.Equal(t, "*", hdr.Get("Access-Control-Allow-Origin"))
}
