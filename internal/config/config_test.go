package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.GatherPageSize != 100 {
		t.Fatalf("unexpected GatherPageSize: %d", cfg.GatherPageSize)
	}
	if cfg.GatherWorkers != 4 {
		t.Fatalf("unexpected GatherWorkers: %d", cfg.GatherWorkers)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
}

func TestLoad_ChatRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CHAT_ENABLED", "true")
	t.Setenv("CHAT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when CHAT_ENABLED=true without CHAT_TOKEN")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_GatherPageSizeBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GATHER_PAGE_SIZE", "500")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for GATHER_PAGE_SIZE over the platform page limit")
	}
}

func TestLoad_ChatConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CHAT_ENABLED", "true")
	t.Setenv("CHAT_TOKEN", "token-123")
	t.Setenv("CHAT_TIMEOUT", "5s")
	t.Setenv("CHAT_MAX_RETRIES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.ChatEnabled {
		t.Fatalf("expected ChatEnabled=true")
	}
	if cfg.ChatToken != "token-123" {
		t.Fatalf("unexpected ChatToken")
	}
	if cfg.ChatTimeout != 5*time.Second {
		t.Fatalf("unexpected ChatTimeout: %s", cfg.ChatTimeout)
	}
	if cfg.ChatMaxRetries != 3 {
		t.Fatalf("unexpected ChatMaxRetries: %d", cfg.ChatMaxRetries)
	}
}
