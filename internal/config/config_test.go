package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigLayers(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: production
database:
  driver: memory
jwt:
  secret: from-file
rate_limit:
  requests: 50
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://school.edu, https://admin.school.edu,")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, []string{"https://school.edu", "https://admin.school.edu"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.RateLimit.Requests)
	assert.Equal(t, 2, cfg.Redis.DB)

	// untouched defaults
	assert.Equal(t, "15m", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "no secret", yaml: "database:\n  driver: memory\n", env: map[string]string{"JWT_SECRET": ""}},
		{name: "unknown driver", yaml: "database:\n  driver: sqlite\njwt:\n  secret: s\n"},
		{name: "bad duration", yaml: "jwt:\n  secret: s\n  access_token_expiration: soon\n"},
		{name: "bad yaml", yaml: "server: [\n"},
		{name: "bad env int", yaml: "jwt:\n  secret: s\n", env: map[string]string{"REDIS_DB": "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SCHOOLHUB_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("SCHOOLHUB_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SCHOOLHUB_TEST_UNSET", "fallback"))
}
