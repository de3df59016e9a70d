package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  server:
    address: ":9090"
    read_timeout_seconds: 5
  maintenance:
    endpoints: "/api/v1/subscribers, ,/health"
validation:
  all_errors: true
  max_body_bytes: 2048
instrument:
  trace_sample_ratio: 0.5
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetString("app.server.address"))
	assert.Equal(t, 5*time.Second, cfg.GetSecond("app.server.read_timeout_seconds"))
	assert.Equal(t, 10*time.Second, cfg.GetSecond("app.server.write_timeout_seconds"), "default")
	assert.Equal(t, []string{"/api/v1/subscribers", "/health"}, cfg.GetArray("app.maintenance.endpoints"))
	assert.True(t, cfg.GetBool("validation.all_errors"))
	assert.Equal(t, int64(2048), cfg.GetInt64("validation.max_body_bytes"))
	assert.Equal(t, 1<<20, newDefaultsOnly(t).GetInt("validation.max_body_bytes"))
	assert.InDelta(t, 0.5, cfg.GetFloat64("instrument.trace_sample_ratio"), 0.0001)
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_RequiresType(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.Error(t, err)
}

func TestNewViper_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o600))

	t.Setenv("REQGUARD_APP_SERVER_ADDRESS", ":7070")

	cfg, err := NewViper(file)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.GetString("app.server.address"))
	assert.Equal(t, "reqguard", cfg.GetString("app.name"))
}

func TestNewViper_MissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func newDefaultsOnly(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte("{}"))
	require.NoError(t, err)
	return cfg
}
