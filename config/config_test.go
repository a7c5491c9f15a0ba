package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-manager/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "vacation.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("VACATION_ADDR", ":3000")
	t.Setenv("VACATION_DATABASE_PATH", ":memory:")
	t.Setenv("VACATION_JWT_SECRET", "env-secret")
	t.Setenv("VACATION_SESSION_TTL_MINUTES", "30")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	// Untouched keys keep their defaults
	assert.Equal(t, "admin", cfg.AdminUsername)
}

func TestLoadYAMLFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "addr: \":4000\"\nlog_level: debug\nadmin_username: ops\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	// Env wins over the file
	t.Setenv("VACATION_ADDR", ":5000")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ops", cfg.AdminUsername)
}

func TestLoadPathFromEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))
	t.Setenv("VACATION_CONFIG", path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty addr", "VACATION_ADDR", ""},
		{"empty database path", "VACATION_DATABASE_PATH", ""},
		{"empty jwt secret", "VACATION_JWT_SECRET", ""},
		{"zero session ttl", "VACATION_SESSION_TTL_MINUTES", "0"},
		{"empty admin username", "VACATION_ADMIN_USERNAME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}
