package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	DBPath        string
	Addr          string
	LogPath       string
	PurgeInterval time.Duration
}

// Load reads configuration from the environment with reasonable defaults,
// picking up a .env file if one is present. Command-line flags override
// these values.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:        envOr("FRESHSTOCK_DB", "freshstock.sqlite3"),
		Addr:          envOr("FRESHSTOCK_ADDR", ":8080"),
		LogPath:       os.Getenv("FRESHSTOCK_LOG"),
		PurgeInterval: 24 * time.Hour,
	}

	if raw := os.Getenv("FRESHSTOCK_PURGE_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			slog.Warn("invalid FRESHSTOCK_PURGE_INTERVAL, using default", "value", raw)
		} else {
			cfg.PurgeInterval = interval
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
