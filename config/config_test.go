package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, BackendSQLite, cfg.DBBackend)
	assert.Equal(t, "apsrtc.db", cfg.SQLitePath)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.RoutesCacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.StationsCacheTTL)
	assert.Equal(t, time.Minute, cfg.DashboardCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.SimInterval)
	assert.False(t, cfg.SimEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ROUTES_CACHE_TTL_SEC", "30")
	t.Setenv("SIM_ENABLED", "true")
	t.Setenv("SIM_INTERVAL_SEC", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.RoutesCacheTTL)
	assert.True(t, cfg.SimEnabled)
	assert.Equal(t, 2*time.Second, cfg.SimInterval)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DB_BACKEND", "oracle")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid DB_BACKEND")
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_BACKEND", BackendPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("STATIONS_CACHE_TTL_SEC", "-5")

	_, err := Load()
	assert.ErrorContains(t, err, "STATIONS_CACHE_TTL_SEC")
}
