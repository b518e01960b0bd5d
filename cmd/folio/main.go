// Package main is the entry point for the Folio server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/email"
	"folio/internal/fallback"
	"folio/internal/handlers"
	"folio/internal/render"
	"folio/internal/router"
	"folio/internal/service"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL. An unreachable database is not fatal: the
	// pool reconnects lazily and the site serves from the local fallback
	// cache in the meantime.
	db, err := database.Connect(cfg.DSN())
	if db == nil {
		slog.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err != nil {
		slog.Warn("database unreachable, serving from fallback cache until it returns", "error", err)
	} else {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Seed starter data in development (no-op if data already exists).
		// Production content comes in through the admin panel or the
		// service-level repair path.
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
	}

	// Connect to Valkey (sessions + full-page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Open the local fallback store used while PostgreSQL is unreachable.
	fb, err := fallback.Open(cfg.FallbackPath)
	if err != nil {
		slog.Error("failed to open fallback cache", "error", err, "path", cfg.FallbackPath)
		os.Exit(1)
	}
	defer fb.Close()

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores and services.
	userStore := store.NewUserStore(db)
	mediaStore := store.NewMediaStore(db)
	projectService := service.NewProjectService(store.NewProjectStore(db), fb, database.SeedProjects())
	homeService := service.NewHomeService(store.NewHomeStore(db), fb, database.SeedHome())
	contactService := service.NewContactService(
		store.NewMessageStore(db), store.NewContactInfoStore(db), fb, database.SeedContactInfo(),
	)

	// Connect to S3-compatible object storage (optional, the app works
	// without it; media uploads are disabled).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Transactional email provider for contact form forwarding.
	sender := email.NewSender(email.Config{
		ServiceID:  cfg.EmailServiceID,
		TemplateID: cfg.EmailTemplateID,
		PublicKey:  cfg.EmailPublicKey,
	})
	if !sender.Configured() {
		slog.Warn("email provider not configured, contact messages are stored only")
	}

	// Full-page HTML cache in Valkey.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Handler groups.
	adminHandlers := handlers.NewAdmin(renderer, projectService, homeService, contactService, mediaStore, storageClient, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(renderer, projectService, homeService, contactService, sender, pageCache)

	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
