package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func processEnv(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	})
	return &cfg, err
}

func TestConfig_DefaultsApplied(t *testing.T) {
	cfg, err := processEnv(t, map[string]string{
		"SESSION_SECRET":    "s3cret",
		"ADMIN_SIGNUP_CODE": "letmein",
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.Mongo.Database != "research_portal" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
}

func TestConfig_SecretsAreRequired(t *testing.T) {
	// An unset signing key or admin code must fail startup, not silently
	// produce an empty secret.
	if _, err := processEnv(t, map[string]string{"ADMIN_SIGNUP_CODE": "letmein"}); err == nil {
		t.Fatalf("expected error for missing SESSION_SECRET")
	}
	if _, err := processEnv(t, map[string]string{"SESSION_SECRET": "s3cret"}); err == nil {
		t.Fatalf("expected error for missing ADMIN_SIGNUP_CODE")
	}
}
