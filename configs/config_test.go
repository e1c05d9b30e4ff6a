package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("expected default poll interval 30s, got %s", cfg.PollInterval)
	}
	if cfg.ContentLimit != 3000 {
		t.Fatalf("expected default content limit 3000, got %d", cfg.ContentLimit)
	}
	if cfg.CookieName != "draftflow_session" {
		t.Fatalf("unexpected cookie name %q", cfg.CookieName)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "7")
	t.Setenv("LINKEDIN_CHAR_LIMIT", "1500")
	t.Setenv("N8N_WEBHOOK_URL", "https://hooks.example.com/generate")

	cfg := LoadConfig()

	if cfg.PollInterval != 7*time.Second {
		t.Fatalf("expected poll interval 7s, got %s", cfg.PollInterval)
	}
	if cfg.ContentLimit != 1500 {
		t.Fatalf("expected content limit 1500, got %d", cfg.ContentLimit)
	}
	if cfg.WebhookURL != "https://hooks.example.com/generate" {
		t.Fatalf("unexpected webhook url %q", cfg.WebhookURL)
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-number")

	cfg := LoadConfig()
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("expected fallback to default, got %s", cfg.PollInterval)
	}
}
