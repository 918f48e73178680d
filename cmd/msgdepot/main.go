// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/msgdepot/msgdepot-go/internal/cache"
	"github.com/msgdepot/msgdepot-go/internal/config"
	"github.com/msgdepot/msgdepot-go/internal/handler/api"
	"github.com/msgdepot/msgdepot-go/internal/logging"
	"github.com/msgdepot/msgdepot-go/internal/middleware"
	"github.com/msgdepot/msgdepot-go/internal/scheduler"
	"github.com/msgdepot/msgdepot-go/internal/service"
	"github.com/msgdepot/msgdepot-go/internal/store"
	"github.com/msgdepot/msgdepot-go/internal/translate"
	"github.com/msgdepot/msgdepot-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "msgdepot - translation message management service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MSGDEPOT_DB_PATH              SQLite database path (default: ./data/msgdepot.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MSGDEPOT_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MSGDEPOT_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MSGDEPOT_REDIS_URL            Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MSGDEPOT_TRANSLATE_PROVIDER   none|libretranslate|openai (default: none)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MSGDEPOT_SNAPSHOT_SCHEDULE    Completeness job cron spec (default: @every 15m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("msgdepot %s (commit: %s, built: %s)\n",
			info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records also land in the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Cache backend: Redis when configured, in-process memory otherwise
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	var backend cache.Cache
	if cfg.UseRedisCache() {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CachePrefix, cacheTTL)
		if err != nil {
			slog.Warn("redis unavailable, falling back to memory cache", "error", err)
			backend = cache.NewMemoryCache(cacheTTL, time.Minute)
		} else {
			slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
			backend = redisCache
		}
	} else {
		slog.Info("cache initialized", "backend", "memory")
		backend = cache.NewMemoryCache(cacheTTL, time.Minute)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	svc := service.NewMessageService(db, cache.NewExportCache(backend, cacheTTL), logger)

	translator, err := buildTranslator(cfg)
	if err != nil {
		return err
	}
	if translator != nil {
		slog.Info("translation provider configured", "provider", cfg.TranslateProvider)
	}

	// Completeness snapshot job
	if cfg.SnapshotSchedule != "" {
		sched := scheduler.New(svc, logger, cfg.SnapshotSchedule)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	}

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	rateLimiter := middleware.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst)
	apiHandler := api.NewHandler(svc, translator, logger)
	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Mount("/", apiHandler.Routes())
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// buildTranslator assembles the configured machine-translation provider,
// wrapped in a client-side rate limiter. Returns nil when no provider is
// configured.
func buildTranslator(cfg *config.Config) (translate.Translator, error) {
	switch cfg.TranslateProvider {
	case config.ProviderLibreTranslate:
		t := translate.NewLibreTranslate(cfg.LibreTranslateURL, cfg.LibreTranslateKey)
		return translate.Limited(t, cfg.TranslateRPS), nil
	case config.ProviderOpenAI:
		t := translate.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		return translate.Limited(t, cfg.TranslateRPS), nil
	case config.ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown translate provider %q", cfg.TranslateProvider)
	}
}
