package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted in DB_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config carries every runtime knob for the server and the auxiliary
// processes. Values come from the environment, optionally preloaded from a
// .env file.
type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	DBBackend   string
	SQLitePath  string
	DatabaseURL string

	RoutesCacheTTL    time.Duration
	StationsCacheTTL  time.Duration
	DashboardCacheTTL time.Duration

	// SimEnabled switches the process into demo mode: the background
	// simulator runs and driver position reports are rejected. The two
	// writers must never share a fleet.
	SimEnabled  bool
	SimInterval time.Duration

	NATSURL     string
	MetricsAddr string
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		DBBackend:   getenvDefault("DB_BACKEND", BackendSQLite),
		SQLitePath:  getenvDefault("SQLITE_PATH", "apsrtc.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		NATSURL:     os.Getenv("NATS_URL"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}

	switch cfg.DBBackend {
	case BackendSQLite, BackendPostgres:
	default:
		return nil, fmt.Errorf("invalid DB_BACKEND: %q", cfg.DBBackend)
	}
	if cfg.DBBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set when DB_BACKEND=postgres")
	}

	if v := getenvDefault("CORS_ORIGINS", "*"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	var err error
	if cfg.RoutesCacheTTL, err = durationEnv("ROUTES_CACHE_TTL_SEC", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StationsCacheTTL, err = durationEnv("STATIONS_CACHE_TTL_SEC", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DashboardCacheTTL, err = durationEnv("DASHBOARD_CACHE_TTL_SEC", time.Minute); err != nil {
		return nil, err
	}
	if cfg.SimInterval, err = durationEnv("SIM_INTERVAL_SEC", 5*time.Second); err != nil {
		return nil, err
	}

	cfg.SimEnabled = boolEnv("SIM_ENABLED")

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", k, v)
	}
	return time.Duration(sec) * time.Second, nil
}

func boolEnv(k string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}
