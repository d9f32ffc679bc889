package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "rfp-console/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"RFP_API_BASE_URL", "REDIS_PASSWORD", "API_BASE_URL", "API_TIMEOUT",
		"SERVER_ADDRESS", "SERVER_COOKIE_NAME", "SERVER_SESSION_TTL",
		"SESSION_STORE", "SESSION_KEY_PREFIX", "DATABASE_REDIS_ADDRESS",
		"LOGGING_LEVEL", "LOGGING_FORMAT", "LOGGING_OUTPUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "app:\n  name: console-under-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "console-under-test", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.API.TimeoutDuration())
	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, DefaultCookieName, cfg.Server.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTLDuration())
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, "rfp-console:session:", cfg.Session.KeyPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("RFP_API_BASE_URL", "http://rfp.internal:9000/")
	t.Setenv("REDIS_PASSWORD", "s3cret")

	path := writeConfig(t, `
api:
  base_url: ${RFP_API_BASE_URL}
  timeout: 1500
session:
  store: redis
database:
  redis:
    address: localhost:6379
    password: ${REDIS_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://rfp.internal:9000", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 1500*time.Millisecond, cfg.API.TimeoutDuration())
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, "s3cret", cfg.Database.Redis.Password)
}

func TestLoadFromFile_UnsetVariableFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api:\n  base_url: ${RFP_API_BASE_URL}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("LOGGING_LEVEL", "debug")

	path := writeConfig(t, "server:\n  address: \":8080\"\nlogging:\n  level: info\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown session store", body: "session:\n  store: disk\n"},
		{name: "redis without address", body: "session:\n  store: redis\n"},
		{name: "non-http base url", body: "api:\n  base_url: ftp://files.example.com\n"},
		{name: "negative ttl", body: "server:\n  session_ttl: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, apperrors.ErrCodeConfigInvalid, stdErr.Code)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, GetDuration(250))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
