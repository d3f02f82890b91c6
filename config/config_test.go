package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var configKeys = []string{"APP_PORT", "APP_ENV", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET", "TOKEN_TTL", "COOKIE_SECURE", "UPLOAD_DIR", "CORS_ORIGINS"}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, configKeys...)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "http://localhost:3000,http://localhost:5173", cfg.CORSOrigins)
	assert.Equal(t, "root:@tcp(127.0.0.1:3306)/office_records?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func TestLoad_Postgres(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_USER", "office")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Contains(t, cfg.DSN(), "port=5432")
	assert.Contains(t, cfg.DSN(), "user=office")
}

func TestLoad_Errors(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.Error(t, err)

	unsetEnv(t, "DB_DRIVER")
	t.Setenv("APP_ENV", "production")
	_, err = Load()
	assert.Error(t, err, "production without JWT_SECRET")

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "42")
	t.Setenv("X_BAD_INT", "forty")
	t.Setenv("X_BOOL", "true")
	t.Setenv("X_DURATION", "-5m")

	assert.Equal(t, 42, GetEnvAsInt("X_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("X_BAD_INT", 1))
	assert.True(t, GetEnvAsBool("X_BOOL", false))
	assert.Equal(t, time.Hour, GetEnvAsDuration("X_DURATION", time.Hour))
}
