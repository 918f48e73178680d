// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisCache() {
		t.Error("redis should be off by default")
	}
	if cfg.TranslateProvider != ProviderNone {
		t.Errorf("TranslateProvider = %q, want none", cfg.TranslateProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MSGDEPOT_SERVER_HOST", "0.0.0.0")
	t.Setenv("MSGDEPOT_SERVER_PORT", "9090")
	t.Setenv("MSGDEPOT_ENV", "production")
	t.Setenv("MSGDEPOT_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr() != "0.0.0.0:9090" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache should be true with MSGDEPOT_REDIS_URL set")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("MSGDEPOT_TRANSLATE_PROVIDER", "babelfish")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unknown translate provider")
	}
}

func TestLoadOpenAIRequiresKey(t *testing.T) {
	t.Setenv("MSGDEPOT_TRANSLATE_PROVIDER", "openai")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted openai provider without an API key")
	}

	t.Setenv("MSGDEPOT_OPENAI_API_KEY", "sk-test")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with API key: %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.in}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
