package config_test

import (
	"testing"

	"github.com/eduflow-app/eduflow/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Dir != "./catalog" {
		t.Errorf("Catalog.Dir = %q, want ./catalog", cfg.Catalog.Dir)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("CORS.AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EDUFLOW_SERVER_PORT", "9999")
	t.Setenv("EDUFLOW_KV_URL", "redis://localhost:6379")
	t.Setenv("EDUFLOW_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.KV.URL != "redis://localhost:6379" {
		t.Errorf("KV.URL = %q", cfg.KV.URL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("EDUFLOW_SERVER_PORT", "not-a-number")

	cfg, _ := config.Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want the 8080 fallback", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults pass", func(*config.Config) {}, false},
		{"missing catalog dir", func(c *config.Config) { c.Catalog.Dir = "" }, true},
		{"bad port", func(c *config.Config) { c.Server.Port = -1 }, true},
		{"zero session ttl", func(c *config.Config) { c.Auth.SessionTTLHours = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := config.Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
