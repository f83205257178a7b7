// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/afrokokoroot/site/internal/analytics"
	"github.com/afrokokoroot/site/internal/backup"
	"github.com/afrokokoroot/site/internal/cache"
	"github.com/afrokokoroot/site/internal/config"
	"github.com/afrokokoroot/site/internal/content"
	"github.com/afrokokoroot/site/internal/geoip"
	"github.com/afrokokoroot/site/internal/handler"
	"github.com/afrokokoroot/site/internal/middleware"
	"github.com/afrokokoroot/site/internal/render"
	"github.com/afrokokoroot/site/internal/session"
	"github.com/afrokokoroot/site/internal/store"
	"github.com/afrokokoroot/site/internal/version"
	"github.com/afrokokoroot/site/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Afrokokoroot Foundation website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_CONTENT_PATH       Content JSON file (default: ./data/content.json)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_SESSION_SECRET     Session signing key (min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_ADMIN_USERNAME     Admin username\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_ADMIN_PASSWORD     Admin password (plain or argon2id hash)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_REDIS_URL          Redis URL for the page cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AKR_GEOIP_DB_PATH      GeoLite2-Country.mmdb path (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("site %s (commit: %s, built: %s)\n", version.Version, version.GitCommit, version.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Content store. Development reads and writes the JSON file directly;
	// production captures a startup snapshot and rejects writes, matching
	// a statically deployed site.
	var contentStore store.Store
	if cfg.IsDevelopment() {
		contentStore = store.NewFileStore(cfg.ContentPath)
		slog.Info("content store initialized", "mode", "file", "path", cfg.ContentPath)
	} else {
		data, err := os.ReadFile(cfg.ContentPath)
		if err != nil {
			slog.Warn("content file unreadable, serving empty content", "path", cfg.ContentPath, "error", err)
		}
		contentStore = store.NewSnapshotStoreFromJSON(data)
		slog.Info("content store initialized", "mode", "snapshot", "path", cfg.ContentPath)
	}
	queries := store.New(contentStore)

	// Page cache over memory or Redis
	backend := cache.NewCache(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMax,
		CleanupInterval: time.Minute,
	})
	pages := cache.NewPageCache(backend)
	defer func() {
		if err := pages.Close(); err != nil {
			slog.Error("error closing page cache", "error", err)
		}
	}()

	contentService := content.NewService(contentStore, pages)

	// Analytics database with privacy-preserving visitor tracking
	var tracker *analytics.Tracker
	analyticsDB, err := analytics.NewDB(cfg.AnalyticsDBPath)
	if err != nil {
		slog.Warn("analytics disabled, database unavailable", "error", err)
	} else {
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				slog.Error("error closing analytics database", "error", err)
			}
		}(analyticsDB)

		if err := analytics.Migrate(analyticsDB); err != nil {
			return fmt.Errorf("migrating analytics database: %w", err)
		}

		geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
		if err != nil {
			slog.Warn("geoip lookups disabled", "error", err)
		}
		defer func() {
			if err := geo.Close(); err != nil {
				slog.Error("error closing geoip database", "error", err)
			}
		}()

		tracker = analytics.NewTracker(analyticsDB, geo)
		slog.Info("analytics initialized", "path", cfg.AnalyticsDBPath, "geoip", geo.IsEnabled())
	}

	// Scheduled content backups (development only; the production snapshot
	// is immutable so there is nothing to back up)
	if cfg.IsDevelopment() {
		backups := backup.New(backup.Config{
			ContentPath: cfg.ContentPath,
			BackupDir:   cfg.BackupDir,
			Keep:        cfg.BackupKeep,
			Schedule:    cfg.BackupSchedule,
		}, logger)
		if err := backups.Start(); err != nil {
			return fmt.Errorf("starting backup scheduler: %w", err)
		}
		defer backups.Stop()
		slog.Info("content backups scheduled", "schedule", cfg.BackupSchedule, "keep", cfg.BackupKeep)
	}

	// Template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Session manager
	sessions := session.New(cfg.SessionSecret, !cfg.IsDevelopment())
	slog.Info("session manager initialized", "strict", cfg.StrictSessions)

	// Login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	// Handlers
	authHandler := handler.NewAuthHandler(renderer, sessions, cfg.AdminUsername, cfg.AdminPassword)
	frontendHandler := handler.NewFrontendHandler(queries, renderer, pages)
	adminHandler := handler.NewAdminHandler(queries, contentService, renderer, tracker)
	seoHandler := handler.NewSEOHandler(queries, cfg.BaseURL, cfg.Env == "staging")
	subscribeHandler := handler.NewSubscribeHandler(cfg.SubmissionsPath, renderer)

	// Router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.RedirectSlashes)
	r.Use(chimw.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	// Static assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/healthz", handler.Healthz)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	// Public pages (tracked)
	r.Group(func(r chi.Router) {
		if tracker != nil {
			r.Use(tracker.Middleware())
		}

		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get("/about", frontendHandler.About)
		r.Get("/programs", frontendHandler.Programs)
		r.Get("/programs/{slug}", frontendHandler.Program)
		r.Get("/events", frontendHandler.Events)
		r.Get("/events/{slug}", frontendHandler.Event)
		r.Get("/blog", frontendHandler.Blog)
		r.Get("/blog/{slug}", frontendHandler.BlogPost)
		r.Get("/impact", frontendHandler.Impact)
		r.Get("/contact", frontendHandler.Contact)
		r.Get("/donate", frontendHandler.Donate)
		r.Get("/get-involved", frontendHandler.GetInvolved)
		r.Get("/privacy", frontendHandler.Privacy)
		r.Get("/terms", frontendHandler.Terms)
		r.Get("/search", frontendHandler.Search)
	})

	// JSON API routes. The login endpoint authenticates with credentials
	// rather than an ambient cookie, so it opts out of the origin check.
	r.Group(func(r chi.Router) {
		r.Use(middleware.SkipCSRF(handler.RouteLogin))
		r.Use(csrfMiddleware)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)
		r.Post("/api/subscribe", subscribeHandler.Subscribe)
		r.Post("/api/contact", subscribeHandler.Contact)
	})

	// Admin routes. The guard redirects unauthenticated requests to the
	// login page; the login page itself bounces authenticated users back.
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(middleware.AuthConfig{
			Sessions: sessions,
			Strict:   cfg.StrictSessions,
		}))

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Get("/", adminHandler.Dashboard)
			r.Get("/login", authHandler.LoginForm)
			r.Post("/logout", authHandler.LogoutRedirect)

			r.Get("/events", adminHandler.EventList)
			r.Get("/events/new", adminHandler.EventForm)
			r.Get("/events/{slug}/edit", adminHandler.EventForm)
			r.Post("/events", adminHandler.EventSave)
			r.Post("/events/{slug}/delete", adminHandler.EventDelete)

			r.Get("/programs", adminHandler.ProgramList)
			r.Get("/programs/new", adminHandler.ProgramForm)
			r.Get("/programs/{slug}/edit", adminHandler.ProgramForm)
			r.Post("/programs", adminHandler.ProgramSave)
			r.Post("/programs/{slug}/delete", adminHandler.ProgramDelete)

			r.Get("/team", adminHandler.TeamList)
			r.Get("/team/new", adminHandler.TeamForm)
			r.Get("/team/{slug}/edit", adminHandler.TeamForm)
			r.Post("/team", adminHandler.TeamSave)
			r.Post("/team/{slug}/delete", adminHandler.TeamDelete)

			r.Get("/blog", adminHandler.BlogList)
			r.Get("/blog/new", adminHandler.BlogForm)
			r.Get("/blog/{slug}/edit", adminHandler.BlogForm)
			r.Post("/blog", adminHandler.BlogSave)
			r.Post("/blog/{slug}/delete", adminHandler.BlogDelete)

			r.Get("/impact", adminHandler.ImpactForm)
			r.Post("/impact", adminHandler.ImpactSave)

			r.Get("/contact", adminHandler.ContactForm)
			r.Post("/contact", adminHandler.ContactSave)

			r.Get("/submissions", subscribeHandler.AdminList)
		})
	})

	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
