// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ContentPath string `env:"AKR_CONTENT_PATH" envDefault:"./data/content.json"`
	ServerHost  string `env:"AKR_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"AKR_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"AKR_ENV" envDefault:"development"`
	BaseURL     string `env:"AKR_BASE_URL" envDefault:"https://afrokokoroot.org"`
	LogLevel    string `env:"AKR_LOG_LEVEL" envDefault:"info"`

	// Admin credentials. The defaults exist so a fresh checkout runs out of
	// the box; production deployments are expected to override both. The
	// password may also be supplied as an argon2id hash.
	AdminUsername string `env:"AKR_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"AKR_ADMIN_PASSWORD" envDefault:"password123"`

	// SessionSecret signs issued session cookie values. StrictSessions
	// additionally requires a valid signature at the route guard instead of
	// mere cookie presence.
	SessionSecret  string `env:"AKR_SESSION_SECRET" envDefault:"change-me-to-32-byte-secret-key!"`
	StrictSessions bool   `env:"AKR_STRICT_SESSIONS" envDefault:"false"`

	// Page cache configuration
	RedisURL    string `env:"AKR_REDIS_URL"`                       // Optional Redis URL for the page cache
	CachePrefix string `env:"AKR_CACHE_PREFIX" envDefault:"akr:"`  // Redis key prefix
	CacheTTL    int    `env:"AKR_CACHE_TTL" envDefault:"3600"`     // Default cache TTL in seconds
	CacheMax    int    `env:"AKR_CACHE_MAX_SIZE" envDefault:"512"` // Max memory cache entries

	// Analytics configuration
	AnalyticsDBPath string `env:"AKR_ANALYTICS_DB_PATH" envDefault:"./data/analytics.db"`
	GeoIPDBPath     string `env:"AKR_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Content backup configuration
	BackupDir      string `env:"AKR_BACKUP_DIR" envDefault:"./data/backups"`
	BackupSchedule string `env:"AKR_BACKUP_SCHEDULE" envDefault:"0 3 * * *"`
	BackupKeep     int    `env:"AKR_BACKUP_KEEP" envDefault:"14"`

	// Submissions (newsletter/contact form) storage
	SubmissionsPath string `env:"AKR_SUBMISSIONS_PATH" envDefault:"./data/submissions.jsonl"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if !cfg.IsDevelopment() {
		if cfg.AdminUsername == "admin" && cfg.AdminPassword == "password123" {
			slog.Warn("default admin credentials in use; set AKR_ADMIN_USERNAME and AKR_ADMIN_PASSWORD")
		}
		if cfg.SessionSecret == "change-me-to-32-byte-secret-key!" {
			slog.Warn("default session secret in use; set AKR_SESSION_SECRET")
		}
	}

	return cfg, nil
}
