package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eduflow-app/eduflow/internal/api"
	"github.com/eduflow-app/eduflow/internal/auth"
	"github.com/eduflow-app/eduflow/internal/catalog"
	"github.com/eduflow-app/eduflow/internal/i18n"
	"github.com/eduflow-app/eduflow/internal/notify"
	"github.com/eduflow-app/eduflow/internal/platform/config"
	"github.com/eduflow-app/eduflow/internal/platform/database"
	"github.com/eduflow-app/eduflow/internal/platform/kv"
	"github.com/eduflow-app/eduflow/internal/progress"
)

func main() {
	// A missing .env file is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	handler, cleanup, err := buildHandler(ctx, cfg)
	if err != nil {
		slog.Error("failed to wire application", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// buildHandler wires the catalog, stores, tracker, auth, translations,
// and the event hub into the HTTP handler. The returned cleanup closes
// whatever connections were opened.
func buildHandler(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	loader, err := catalog.NewLoader(cfg.Catalog.Dir)
	if err != nil {
		return nil, nil, err
	}

	bundle := i18n.NewBundle()
	if cfg.Locales.Dir != "" {
		if err := bundle.LoadDir(cfg.Locales.Dir); err != nil {
			// Built-in English still serves every request.
			slog.Warn("loading locales failed, serving defaults only", "dir", cfg.Locales.Dir, "error", err)
		}
	}

	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	progressStore, ready, err := buildProgressStore(ctx, cfg, &cleanups)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	authStore, err := buildAuthStore(ctx, cfg, &cleanups)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	hub := notify.NewHub()
	tracker, err := progress.NewTracker(progress.TrackerConfig{
		Store:    progressStore,
		Notifier: hub,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	handler, err := api.New(api.Config{
		Catalog:        loader,
		Tracker:        tracker,
		Store:          progressStore,
		Auth:           auth.NewService(auth.ServiceConfig{Store: authStore, SessionTTL: time.Duration(cfg.Auth.SessionTTLHours) * time.Hour}),
		Bundle:         bundle,
		Hub:            hub,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Ready:          ready,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return handler.Routes(), cleanup, nil
}

// buildProgressStore selects Redis when a KV URL is configured and the
// in-memory store otherwise. The readiness probe pings whatever backend
// is in use.
func buildProgressStore(ctx context.Context, cfg *config.Config, cleanups *[]func()) (progress.Store, func(context.Context) error, error) {
	if cfg.KV.URL == "" {
		slog.Info("no KV URL configured, progress is stored in memory")
		return progress.NewMemoryStore(), nil, nil
	}

	client, err := kv.Connect(ctx, cfg.KV.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to kv store: %w", err)
	}
	*cleanups = append(*cleanups, func() { client.Close() })

	store, err := progress.NewRedisStore(client)
	if err != nil {
		return nil, nil, err
	}
	ready := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	slog.Info("progress store connected", "backend", "redis")
	return store, ready, nil
}

func buildAuthStore(ctx context.Context, cfg *config.Config, cleanups *[]func()) (auth.Store, error) {
	if cfg.Database.URL == "" {
		slog.Info("no database URL configured, accounts are stored in memory")
		return auth.NewMemoryStore(nil), nil
	}

	pool, err := database.Connect(ctx, cfg.Database.URL, database.Options{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	*cleanups = append(*cleanups, pool.Close)

	store, err := auth.NewPostgresStore(pool)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrating auth schema: %w", err)
	}
	slog.Info("auth store connected", "backend", "postgres")
	return store, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
