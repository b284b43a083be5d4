package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "DATABASE_URL", "PHONE_REGION", "TELEGRAM_BOT_TOKEN", "TELEGRAM_API_BASE_URL", "TELEGRAM_TIMEOUT", "AUTO_MIGRATE", "SEED_ON_START", "PUBLIC_BASE_URL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.PhoneRegion != "SY" {
		t.Fatalf("expected SY region, got %s", cfg.PhoneRegion)
	}
	if cfg.TelegramAPIBaseURL != "https://api.telegram.org" {
		t.Fatalf("unexpected telegram base url %s", cfg.TelegramAPIBaseURL)
	}
	if cfg.TelegramTimeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", cfg.TelegramTimeout)
	}
	if !cfg.AutoMigrate || !cfg.SeedOnStart {
		t.Fatalf("expected migrate and seed enabled by default")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing bot token to fail validation")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", " postgres://user@host/db ")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_TIMEOUT", "3s")
	t.Setenv("PUBLIC_BASE_URL", "https://bot.example.com/")
	t.Setenv("PHONE_REGION", "jo")
	t.Setenv("AUTO_MIGRATE", "off")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected trimmed db url, got %q", cfg.DatabaseURL)
	}
	if cfg.TelegramTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.TelegramTimeout)
	}
	if cfg.PublicBaseURL != "https://bot.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.PublicBaseURL)
	}
	if cfg.PhoneRegion != "JO" {
		t.Fatalf("expected upper-cased region, got %s", cfg.PhoneRegion)
	}
	if cfg.AutoMigrate {
		t.Fatalf("expected auto migrate disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("TELEGRAM_TIMEOUT", "soon")
	if got := Load().TelegramTimeout; got != 10*time.Second {
		t.Fatalf("expected fallback timeout, got %s", got)
	}
}
