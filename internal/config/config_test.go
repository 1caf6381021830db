package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
	if cfg.Production() {
		t.Error("default env reported as production")
	}
	if cfg.JWTExpires != 90*24*time.Hour {
		t.Errorf("JWTExpires = %v, want 90 days", cfg.JWTExpires)
	}
}

func TestLoad_PasswordPlaceholder(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:<PASSWORD>@db:5432/app")
	t.Setenv("DATABASE_PASSWORD", "s3cret")

	cfg := Load()
	if cfg.DBUrl != "postgres://app:s3cret@db:5432/app" {
		t.Errorf("DBUrl = %q, placeholder not substituted", cfg.DBUrl)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("RATE_LIMIT_MAX", "50")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("JWT_EXPIRES_IN", "not-a-duration")

	cfg := Load()
	if !cfg.Production() {
		t.Error("production env not detected")
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("Addr() = %q, want :3000", cfg.Addr())
	}
	if cfg.RateLimitMax != 50 {
		t.Errorf("RateLimitMax = %d, want 50", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != 30*time.Minute {
		t.Errorf("RateLimitWindow = %v, want 30m", cfg.RateLimitWindow)
	}
	if cfg.JWTExpires != 90*24*time.Hour {
		t.Errorf("malformed duration should fall back, got %v", cfg.JWTExpires)
	}
}
