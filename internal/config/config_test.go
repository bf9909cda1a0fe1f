package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("AUTH_MIN_PASSWORD_LENGTH", "")
	t.Setenv("SEASON_CACHE_REFRESH_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 10, cfg.Auth.MinPasswordLength)
	assert.Equal(t, "@every 1m", cfg.Season.RefreshCron)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoadRejectsDevSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	assert.Zero(t, AppConfig{}.RequestTimeout())
	assert.Equal(t, 5*time.Minute, SeasonConfig{CacheTTLSeconds: 300}.CacheTTL())
	assert.Equal(t, time.Minute, RateLimitConfig{}.AuthWindow())
	assert.Equal(t, "0.0.0.0:8080", AppConfig{Host: "0.0.0.0", Port: "8080"}.Addr())
}

func TestInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoggerInheritsAppSettings(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_NAME", "recruitment-test")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Logger.Development)
	assert.Equal(t, "recruitment-test", cfg.Logger.Service)
	assert.Equal(t, "console", cfg.Logger.Format)
}
