package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.HTTPPort)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[app]
environment = "production"

[server]
http_port = 8080

[database]
host = "db"
port = 5433
dbname = "spots"

[rate_limit]
enabled = true
requests = 10
window_ms = 1000
trust_proxy = true

[cors]
allowed_origins = ["http://localhost:3000"]
`)
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, time.Second, cfg.RateLimitWindow())
	assert.True(t, cfg.RateLimit.TrustProxy)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "host=db port=5433 user=postgres password=secret dbname=spots sslmode=disable", cfg.Database.DSN())
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	t.Setenv("PORT", "fivethousand")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.Requests = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRateLimit)

	cfg = Default()
	cfg.RateLimit.WindowMs = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRateLimit)

	cfg = Default()
	cfg.Database.DBName = ""
	assert.ErrorIs(t, cfg.Validate(), ErrEmptyDBName)

	cfg = Default()
	cfg.Server.HTTPPort = 70000
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidPort)

	assert.NoError(t, Default().Validate())
}
