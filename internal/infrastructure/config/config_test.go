package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

func loadFrom(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return load(context.Background(), zerolog.Nop(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{"JWT_SECRET": "dev-secret"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store != StoreMongo || cfg.Mongo.Database != "agency_dashboard" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Session.Lifetime != 168*time.Hour {
		t.Fatalf("expected 7 day sessions, got %v", cfg.Session.Lifetime)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Lockout != 15*time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("throttling must be off unless REDIS_ADDR is set, got %q", cfg.Redis.Addr)
	}
	if cfg.IsProduction() {
		t.Fatal("default environment must not be production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{
		"JWT_SECRET":           "dev-secret",
		"STORE":                "memory",
		"SESSION_LIFETIME":     "2h",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"AUDIT_WORKERS":        "8",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreMemory || cfg.Session.Lifetime != 2*time.Hour || cfg.Audit.Workers != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET is required"},
		{"short production secret", map[string]string{"JWT_SECRET": "short", "ENV": "production"}, "at least 32 bytes"},
		{"non-positive lifetime", map[string]string{"JWT_SECRET": "s", "SESSION_LIFETIME": "0s"}, "SESSION_LIFETIME"},
		{"unknown store", map[string]string{"JWT_SECRET": "s", "STORE": "postgres"}, "unknown STORE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom(t, tt.env)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_ProductionAcceptsLongSecret(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{
		"JWT_SECRET": strings.Repeat("x", 32),
		"ENV":        "Production",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production")
	}
}
