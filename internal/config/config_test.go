package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimal environment Load needs
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "worklog")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "worklog")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("JWT_REFRESH_TOKEN_EXPIRY", "")
	t.Setenv("ROLES", "")
	t.Setenv("UPLOAD_BASE_PATH", "")
	t.Setenv("PRODUCTION", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8800, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, []string{"employee", "admin", "accountant"}, cfg.Roles)
	assert.Equal(t, "uploads", cfg.Upload.BasePath)
	assert.False(t, cfg.Production)
}

func TestLoad_RequiredVariables(t *testing.T) {
	tests := []struct {
		name     string
		unsetVar string
	}{
		{name: "missing DB_HOST", unsetVar: "DB_HOST"},
		{name: "missing DB_PORT", unsetVar: "DB_PORT"},
		{name: "missing DB_USER", unsetVar: "DB_USER"},
		{name: "missing DB_PASSWORD", unsetVar: "DB_PASSWORD"},
		{name: "missing DB_NAME", unsetVar: "DB_NAME"},
		{name: "missing JWT_ACCESS_SECRET", unsetVar: "JWT_ACCESS_SECRET"},
		{name: "missing JWT_REFRESH_SECRET", unsetVar: "JWT_REFRESH_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unsetVar, "")

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.unsetVar)
		})
	}
}

func TestLoad_RejectsSharedSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_REFRESH_SECRET", "access-secret")

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoad_ParsesOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("JWT_REFRESH_TOKEN_EXPIRY", "72h")
	t.Setenv("ROLES", "employee, admin")
	t.Setenv("PRODUCTION", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 72*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, []string{"employee", "admin"}, cfg.Roles)
	assert.True(t, cfg.Production)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "invalid DB_PORT", key: "DB_PORT", value: "not-a-port"},
		{name: "invalid SERVER_PORT", key: "SERVER_PORT", value: "abc"},
		{name: "invalid access expiry", key: "JWT_ACCESS_TOKEN_EXPIRY", value: "15 minutes"},
		{name: "invalid refresh expiry", key: "JWT_REFRESH_TOKEN_EXPIRY", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "worklog",
			Password: "secret",
			DBName:   "worklog",
		},
	}

	assert.Equal(t, "worklog:secret@tcp(localhost:3306)/worklog?parseTime=true&charset=utf8mb4", cfg.DSN())
}
