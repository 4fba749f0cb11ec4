package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "jwt:\n  secret: s3cret\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5, cfg.Backend.Breaker.Failures)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TopicTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileEnvironmentOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadFile(writeConfig(t, "jwt:\n  secret: s3cret\nbackend:\n  timeout: 3s\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)

	bc := cfg.ToBackendConfig()
	assert.Equal(t, "https://api.example.com", bc.BaseURL)
	assert.Equal(t, 3*time.Second, bc.Timeout)
}

func TestLoadFileRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadFile(writeConfig(t, "server:\n  port: 8081\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}
