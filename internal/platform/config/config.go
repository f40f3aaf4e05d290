// Package config loads application configuration from environment
// variables. All variables use the EDUFLOW_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	KV       KVConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Locales  LocalesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings for the identity
// and profile store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// KVConfig holds the Redis connection settings for durable per-user
// progress storage. An empty URL selects the in-memory store.
type KVConfig struct {
	URL string
}

// AuthConfig holds session settings.
type AuthConfig struct {
	SessionTTLHours int
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// CatalogConfig points at the topic catalog documents.
type CatalogConfig struct {
	Dir string
}

// LocalesConfig points at the translation tables.
type LocalesConfig struct {
	Dir string
}

// Load reads configuration from environment variables with the
// EDUFLOW_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("EDUFLOW_SERVER_PORT", 8080),
			Host: envStr("EDUFLOW_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("EDUFLOW_DATABASE_URL", ""),
			MaxConns: envInt("EDUFLOW_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("EDUFLOW_DATABASE_MIN_CONNS", 2),
		},
		KV: KVConfig{
			URL: envStr("EDUFLOW_KV_URL", ""),
		},
		Auth: AuthConfig{
			SessionTTLHours: envInt("EDUFLOW_AUTH_SESSION_TTL_HOURS", 168),
		},
		CORS: CORSConfig{
			AllowedOrigins: envList("EDUFLOW_CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  envStr("EDUFLOW_LOG_LEVEL", "info"),
			Format: envStr("EDUFLOW_LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			Dir: envStr("EDUFLOW_CATALOG_DIR", "./catalog"),
		},
		Locales: LocalesConfig{
			Dir: envStr("EDUFLOW_LOCALES_DIR", "./locales"),
		},
	}
	return cfg, nil
}

// Validate checks that required configuration is present and coherent.
func (c *Config) Validate() error {
	if c.Catalog.Dir == "" {
		return fmt.Errorf("EDUFLOW_CATALOG_DIR is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("EDUFLOW_SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}
	if c.Auth.SessionTTLHours <= 0 {
		return fmt.Errorf("EDUFLOW_AUTH_SESSION_TTL_HOURS must be positive, got %d", c.Auth.SessionTTLHours)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
