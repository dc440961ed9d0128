package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BACKEND_TIMEOUT", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackendURL != "http://localhost:3000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 15*time.Second {
		t.Errorf("BackendTimeout = %s", cfg.BackendTimeout)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if Get() != cfg {
		t.Error("Get should return the loaded config")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("BACKEND_RATE_LIMIT", "nope")
	t.Setenv("JWT_EXPIRES_IN", "bad")

	cfg, _ := Load()
	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Errorf("BackendTimeout = %s", cfg.BackendTimeout)
	}
	if cfg.BackendRateLimit != 10 {
		t.Errorf("BackendRateLimit = %d, want fallback 10", cfg.BackendRateLimit)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("JWTExpirationDur = %s, want fallback 24h", cfg.JWTExpirationDur)
	}
}
