// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command biblioteca serves the library web application.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/cache"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/config"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/handler"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/logging"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/scheduler"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/session"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/store"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/version"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/view"
	"github.com/yuliana343/biblioteca-DS-sub001/web"
)

// Build information, injected via ldflags.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	checkNav := flag.Bool("check-nav", false, "Verify menus against routes, load every page view and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "biblioteca - library management web application\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BIBLIOTECA_SESSION_SECRET    Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BIBLIOTECA_DB_PATH           SQLite database path (default: ./data/biblioteca.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BIBLIOTECA_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BIBLIOTECA_ENV               development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BIBLIOTECA_REDIS_URL         Redis URL for sessions (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BIBLIOTECA_DO_SEED           Create demo accounts and books (default: false)\n")
	}
	flag.Parse()

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("biblioteca %s\n", info)
		os.Exit(0)
	}

	if *checkNav {
		if err := checkNavigation(); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), !cfg.IsDevelopment())
	slog.SetDefault(logger)

	if err := nav.CheckConsistency(); err != nil {
		slog.Warn("navigation menu points outside the route table", "error", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.UseRedis() {
		redisClient, err = session.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("pinging redis: %w", err)
		}
		slog.Info("sessions and cache stored in redis", "session_prefix", cfg.SessionPrefix, "cache_prefix", cfg.CachePrefix)
	}

	catalogCache := cache.New(redisClient, cfg.CachePrefix, cfg.CacheTTL)
	defer func() { _ = catalogCache.Close() }()

	sessions := session.New(session.Options{
		DB:       db,
		Redis:    redisClient,
		Prefix:   cfg.SessionPrefix,
		Lifetime: cfg.SessionLifetime,
		IsDev:    cfg.IsDevelopment(),
	})

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	views := view.NewRegistry(logger)
	if err := handler.RegisterViews(views, templates); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	sched := scheduler.New(logger)
	if err := registerJobs(sched, loginProtection, catalogCache); err != nil {
		return fmt.Errorf("registering jobs: %w", err)
	}
	sched.Start(ctx)
	defer sched.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		DB:              db,
		Cache:           catalogCache,
		Sessions:        sessions,
		Views:           views,
		LoginProtection: loginProtection,
		APILimiter:      middleware.NewIPRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst),
		Scheduler:       sched,
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()),
		Static:          static,
		SiteName:        cfg.SiteName,
		SiteURL:         cfg.SiteURL,
		Version:         info,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// registerJobs adds the periodic maintenance jobs.
func registerJobs(sched *scheduler.Scheduler, lp *middleware.LoginProtection, c cache.Cacher) error {
	if err := sched.Register("login-protection-cleanup", "Drop expired login failure records", "@every 10m",
		func(context.Context) error {
			lp.Cleanup()
			return nil
		}); err != nil {
		return err
	}

	return sched.Register("cache-stats", "Log catalog cache statistics", "@hourly",
		func(ctx context.Context) error {
			if sp, ok := c.(cache.StatsProvider); ok {
				stats := sp.Stats()
				slog.InfoContext(ctx, "cache stats",
					"backend", stats.Backend,
					"hits", stats.Hits,
					"misses", stats.Misses,
					"hit_rate", stats.HitRate,
				)
			}
			return nil
		})
}

// checkNavigation verifies the menus against the route tables and loads the
// view of every page route from the embedded templates.
func checkNavigation() error {
	if err := nav.CheckConsistency(); err != nil {
		return err
	}
	_, _ = fmt.Println("navigation menus are consistent with routes")

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	views := view.NewRegistry(nil)
	if err := handler.RegisterViews(views, templates); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}
	if err := views.LoadAll(context.Background()); err != nil {
		return err
	}
	for _, s := range views.Statuses() {
		_, _ = fmt.Printf("  view %-20s ok\n", s.Key)
	}
	_, _ = fmt.Printf("%d page views loaded\n", len(views.Statuses()))
	return nil
}
