package config

import (
	"reflect"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

var allKeys = []string{
	"PORT", "STATIC_DIR", "DEBUG",
	"FIZZY_BASE_URL", "FIZZY_ACCOUNT_SLUG", "FIZZY_TOKEN", "FIZZY_BOARD_ID", "FIZZY_INDEXED_BY",
	"REDIS_URL", "ROADMAP_CACHE_TTL", "ROADMAP_REFRESH_INTERVAL",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_TLS", "MAIL_FROM", "MAIL_TO",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8990" || cfg.StaticDir != "static" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.RefreshInterval != 15*time.Minute {
		t.Fatalf("unexpected durations: ttl=%v interval=%v", cfg.CacheTTL, cfg.RefreshInterval)
	}
	if cfg.Fizzy.IndexedBy != "" {
		t.Fatalf("expected indexed_by unset by default, got %q", cfg.Fizzy.IndexedBy)
	}
	if cfg.Mail.Port != 587 || cfg.Mail.TLS != "starttls" {
		t.Fatalf("unexpected mail defaults: %+v", cfg.Mail)
	}
	want := []string{"FIZZY_BASE_URL", "FIZZY_ACCOUNT_SLUG", "FIZZY_TOKEN", "FIZZY_BOARD_ID"}
	if got := cfg.Fizzy.Missing(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Missing() = %v, want %v", got, want)
	}
}

func TestFromEnvReadsValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIZZY_BASE_URL", "https://app.fizzy.do")
	t.Setenv("FIZZY_ACCOUNT_SLUG", " 123 ")
	t.Setenv("FIZZY_TOKEN", "secret")
	t.Setenv("FIZZY_BOARD_ID", "b1")
	t.Setenv("FIZZY_INDEXED_BY", "closed")
	t.Setenv("ROADMAP_CACHE_TTL", "90s")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_TLS", "TLS")
	t.Setenv("DEBUG", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if len(cfg.Fizzy.Missing()) != 0 {
		t.Fatalf("expected fizzy configured, missing %v", cfg.Fizzy.Missing())
	}
	if cfg.Fizzy.IndexedBy != "closed" {
		t.Fatalf("expected indexed_by closed, got %q", cfg.Fizzy.IndexedBy)
	}
	if cfg.Fizzy.AccountSlug != "123" {
		t.Fatalf("expected trimmed slug, got %q", cfg.Fizzy.AccountSlug)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("expected 90s ttl, got %v", cfg.CacheTTL)
	}
	if cfg.Mail.Port != 465 || cfg.Mail.TLS != "tls" {
		t.Fatalf("unexpected mail config: %+v", cfg.Mail)
	}

	logger := log.New()
	cfg.ApplyLogging(logger)
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %v", logger.GetLevel())
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DEBUG":                    "maybe",
		"ROADMAP_CACHE_TTL":        "soon",
		"ROADMAP_REFRESH_INTERVAL": "-1m",
		"SMTP_PORT":                "70000",
		"SMTP_TLS":                 "ssl3",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
