package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Zero(t, cfg.BackendTimeout)
	assert.Equal(t, 30*time.Second, cfg.TrackingPollInterval)
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.Timezone)
	assert.Equal(t, AuthModeDev, cfg.AuthMode)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("CHAT_POLL_INTERVAL", "10s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("IMAGE_HOST_CLOUD_NAME", "pets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "https://api.example.com", cfg.BackendBaseURL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 10*time.Second, cfg.ChatPollInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "pets", cfg.ImageHost.CloudName)
}

func TestLoad_JoinsAllErrors(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "soon")
	t.Setenv("TRACKING_POLL_INTERVAL", "0s")
	t.Setenv("AUTH_MODE", "jwt")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_TIMEOUT")
	assert.Contains(t, err.Error(), "TRACKING_POLL_INTERVAL")
	assert.Contains(t, err.Error(), "AUTH_MODE")
}

func TestLoadDevBackend(t *testing.T) {
	t.Setenv("DEVBACKEND_ADDR", ":7000")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadDevBackend()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.RouteTTL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PETWALKS_TEST_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PETWALKS_TEST_KEY") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("PETWALKS_TEST_KEY"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
