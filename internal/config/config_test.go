package config

import (
	"testing"
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("SUPABASE_DB_URL", "")
	t.Setenv("CI", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://www.floorball.lv", cfg.ScrapeBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.ScrapeMinGap)
	assert.Equal(t, 3, cfg.ScrapeMaxRetries)
	assert.True(t, cfg.CacheEnabled)
	assert.Empty(t, cfg.DBURL)
	assert.False(t, cfg.CI)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_SEASON", "2025/2026")
	t.Setenv("SUPABASE_DB_URL", "postgres://pooler.example/db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.lv, https://admin.example.lv")
	t.Setenv("SCRAPE_BASE_URL", "https://staging.floorball.lv/")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("CI", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.AppEnv)
	assert.Equal(t, "2025/2026", cfg.Season)
	assert.Equal(t, "postgres://pooler.example/db", cfg.DBURL)
	assert.Equal(t, []string{"https://app.example.lv", "https://admin.example.lv"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://staging.floorball.lv", cfg.ScrapeBaseURL)
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.CI)
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SCRAPE_MIN_GAP", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestCurrentSeason(t *testing.T) {
	assert.Equal(t, "2024/2025", currentSeason(time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024/2025", currentSeason(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025/2026", currentSeason(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)))
}
