package config

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "/", cfg.StartPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, defaultServeAddr, cfg.ServeAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.UseFragment)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api-base-url: http://backend.test:4000/api
start-path: /dashboard
log-level: debug
request-timeout: 3s
`), 0o644))

	t.Setenv("LOBSTER_SERVE_ADDR", "0.0.0.0:9000")
	t.Setenv("LOBSTER_USE_FRAGMENT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.test:4000/api", cfg.APIBaseURL)
	assert.Equal(t, "/dashboard", cfg.StartPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServeAddr)
	assert.True(t, cfg.UseFragment)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.StartPath)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tclist := []struct {
		env, value string
	}{
		{"LOBSTER_API_BASE_URL", "not a url"},
		{"LOBSTER_START_PATH", "dashboard"},
		{"LOBSTER_LOG_LEVEL", "loud"},
		{"LOBSTER_REQUEST_TIMEOUT", "0s"},
	}

	for _, tc := range tclist {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv(tc.env, tc.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
