package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// No env set in the test environment beyond what t.Setenv clears.
	t.Setenv("FRESHSTOCK_DB", "")
	t.Setenv("FRESHSTOCK_ADDR", "")
	t.Setenv("FRESHSTOCK_PURGE_INTERVAL", "")

	cfg := Load()
	if cfg.DBPath != "freshstock.sqlite3" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.PurgeInterval != 24*time.Hour {
		t.Errorf("expected default purge interval, got %v", cfg.PurgeInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FRESHSTOCK_DB", "/tmp/stock.sqlite3")
	t.Setenv("FRESHSTOCK_ADDR", ":9090")
	t.Setenv("FRESHSTOCK_PURGE_INTERVAL", "1h30m")

	cfg := Load()
	if cfg.DBPath != "/tmp/stock.sqlite3" {
		t.Errorf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.PurgeInterval != 90*time.Minute {
		t.Errorf("expected 1h30m purge interval, got %v", cfg.PurgeInterval)
	}
}

func TestLoadRejectsBadPurgeInterval(t *testing.T) {
	for _, bad := range []string{"soon", "-1h", "0"} {
		t.Setenv("FRESHSTOCK_PURGE_INTERVAL", bad)
		cfg := Load()
		if cfg.PurgeInterval != 24*time.Hour {
			t.Errorf("interval %q: expected fallback to default, got %v", bad, cfg.PurgeInterval)
		}
	}
}
