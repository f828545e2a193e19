// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BIBLIOTECA_DB_PATH" envDefault:"./data/biblioteca.db"`
	SessionSecret string `env:"BIBLIOTECA_SESSION_SECRET,required"`
	ServerHost    string `env:"BIBLIOTECA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BIBLIOTECA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BIBLIOTECA_ENV" envDefault:"development"`
	LogLevel      string `env:"BIBLIOTECA_LOG_LEVEL" envDefault:"info"`
	SiteName      string `env:"BIBLIOTECA_SITE_NAME" envDefault:"Biblioteca"`
	SiteURL       string `env:"BIBLIOTECA_SITE_URL"` // e.g. https://library.example.com

	// Sessions are kept in SQLite and the catalog cache in memory unless a
	// Redis URL is set.
	RedisURL        string        `env:"BIBLIOTECA_REDIS_URL"`
	SessionPrefix   string        `env:"BIBLIOTECA_SESSION_PREFIX" envDefault:"biblioteca:session:"`
	SessionLifetime time.Duration `env:"BIBLIOTECA_SESSION_LIFETIME" envDefault:"24h"`
	CachePrefix     string        `env:"BIBLIOTECA_CACHE_PREFIX" envDefault:"biblioteca:cache:"`
	CacheTTL        time.Duration `env:"BIBLIOTECA_CACHE_TTL" envDefault:"1m"`

	// API rate limit per client IP.
	APIRateLimit float64 `env:"BIBLIOTECA_API_RATE_LIMIT" envDefault:"10"`
	APIRateBurst int     `env:"BIBLIOTECA_API_RATE_BURST" envDefault:"20"`

	DoSeed bool `env:"BIBLIOTECA_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if sessions should be stored in Redis.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum length of the session secret,
// which also keys CSRF protection.
const MinSessionSecretLength = 32

// Load parses the process environment.
func Load() (*Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses configuration from the given variables and validates it.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Env {
	case "development", "production":
	default:
		return nil, fmt.Errorf("BIBLIOTECA_ENV must be development or production, got %q", cfg.Env)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BIBLIOTECA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("BIBLIOTECA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("BIBLIOTECA_CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.SessionLifetime <= 0 {
		return nil, fmt.Errorf("BIBLIOTECA_SESSION_LIFETIME must be positive, got %s", cfg.SessionLifetime)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BIBLIOTECA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
