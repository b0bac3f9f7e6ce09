package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsFillMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "yoga.db" {
		t.Errorf("expected default db path, got %q", cfg.Database.Path)
	}
	if cfg.Sync.Timeout != 30*time.Second || cfg.Sync.ConnectivityTimeout != 3*time.Second {
		t.Errorf("unexpected sync timeouts: %v / %v", cfg.Sync.Timeout, cfg.Sync.ConnectivityTimeout)
	}
	if cfg.Decision.TTL != 0 {
		t.Errorf("expected decisions to never expire by default, got %v", cfg.Decision.TTL)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "sync:\n  base_url: http://file.example/api/sync\n")
	t.Setenv("YOGA_SYNC_BASE_URL", "https://env.example/api/sync")
	t.Setenv("YOGA_DECISION_TTL", "15m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Sync.BaseURL != "https://env.example/api/sync" {
		t.Errorf("expected env base url, got %q", cfg.Sync.BaseURL)
	}
	if cfg.Decision.TTL != 15*time.Minute {
		t.Errorf("expected 15m ttl, got %v", cfg.Decision.TTL)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [unclosed\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_RejectsRelativeSyncURL(t *testing.T) {
	if _, err := Load(writeConfig(t, "sync:\n  base_url: api/sync\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Path: "yoga.db"},
			Sync:     SyncConfig{BaseURL: "http://10.0.2.2:3000/api/sync"},
		}
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg = valid()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range port")
	}

	cfg = valid()
	cfg.Database.Path = "  "
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for blank db path")
	}

	cfg = valid()
	cfg.Decision.TTL = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative ttl")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Path: "/tmp/yoga.db", BusyTimeout: 5000, JournalMode: "WAL"}

	want := "file:/tmp/yoga.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL"
	if got := c.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
