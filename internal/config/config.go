// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Translation provider names accepted by MSGDEPOT_TRANSLATE_PROVIDER.
const (
	ProviderNone           = "none"
	ProviderLibreTranslate = "libretranslate"
	ProviderOpenAI         = "openai"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"MSGDEPOT_DB_PATH" envDefault:"./data/msgdepot.db"`
	ServerHost string `env:"MSGDEPOT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"MSGDEPOT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"MSGDEPOT_ENV" envDefault:"development"`
	LogLevel   string `env:"MSGDEPOT_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL    string `env:"MSGDEPOT_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix string `env:"MSGDEPOT_CACHE_PREFIX" envDefault:"msgdepot"` // Redis key prefix
	CacheTTL    int    `env:"MSGDEPOT_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds

	// Machine-translation provider configuration
	TranslateProvider string  `env:"MSGDEPOT_TRANSLATE_PROVIDER" envDefault:"none"`
	LibreTranslateURL string  `env:"MSGDEPOT_LIBRETRANSLATE_URL" envDefault:"http://localhost:5000"`
	LibreTranslateKey string  `env:"MSGDEPOT_LIBRETRANSLATE_API_KEY"`
	OpenAIAPIKey      string  `env:"MSGDEPOT_OPENAI_API_KEY"`
	OpenAIModel       string  `env:"MSGDEPOT_OPENAI_MODEL"`
	TranslateRPS      float64 `env:"MSGDEPOT_TRANSLATE_RPS" envDefault:"5"` // Client-side provider rate limit

	// API rate limiting for mutating routes
	APIRateLimit float64 `env:"MSGDEPOT_API_RATE_LIMIT" envDefault:"10"` // Requests per second per client
	APIRateBurst int     `env:"MSGDEPOT_API_RATE_BURST" envDefault:"20"`

	// Completeness snapshot job schedule (cron spec); empty disables the job.
	SnapshotSchedule string `env:"MSGDEPOT_SNAPSHOT_SCHEDULE" envDefault:"@every 15m"`

	// Seeding configuration
	DoSeed bool `env:"MSGDEPOT_DO_SEED" envDefault:"true"` // Seed the default language on startup
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

// SlogLevel maps the configured log level string to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.TranslateProvider {
	case ProviderNone, ProviderLibreTranslate, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("MSGDEPOT_TRANSLATE_PROVIDER must be one of %q, %q, %q; got %q",
			ProviderNone, ProviderLibreTranslate, ProviderOpenAI, cfg.TranslateProvider)
	}
	if cfg.TranslateProvider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("MSGDEPOT_OPENAI_API_KEY is required when MSGDEPOT_TRANSLATE_PROVIDER=openai")
	}
	if cfg.TranslateRPS <= 0 {
		return nil, fmt.Errorf("MSGDEPOT_TRANSLATE_RPS must be positive, got %v", cfg.TranslateRPS)
	}
	if cfg.APIRateLimit <= 0 || cfg.APIRateBurst <= 0 {
		return nil, fmt.Errorf("API rate limit and burst must be positive, got %v/%d",
			cfg.APIRateLimit, cfg.APIRateBurst)
	}

	return cfg, nil
}
