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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daap14/teamdir/internal/api"
	"github.com/daap14/teamdir/internal/auth"
	"github.com/daap14/teamdir/internal/config"
	"github.com/daap14/teamdir/internal/directory/appwrite"
	"github.com/daap14/teamdir/internal/lookup"
	"github.com/daap14/teamdir/internal/postgres"
	"github.com/daap14/teamdir/openapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	client := appwrite.NewClient(
		cfg.AppwriteEndpoint,
		cfg.AppwriteProjectID,
		cfg.AppwriteAPIKey,
		appwrite.WithTimeout(cfg.DirectoryTimeout),
		appwrite.WithVersion(cfg.Version),
	)

	finder := lookup.NewService(client, lookup.WithConcurrency(cfg.LookupConcurrency))

	deps := api.RouterDeps{
		DirectoryChecker: client,
		Version:          cfg.Version,
		Finder:           finder,
		OpenAPISpec:      openapi.Document,
	}

	var pool *pgxpool.Pool
	switch cfg.AuthMode {
	case config.AuthModeAppwrite:
		deps.Authenticator = auth.NewSessionAuthenticator(client, cfg.AdminLabel)
	default:
		pool, err = initDatabase(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		userRepo := auth.NewRepository(pool)
		authService := auth.NewService(userRepo, cfg.BcryptCost)

		bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err = authService.BootstrapAdmin(bootstrapCtx)
		bootstrapCancel()
		if err != nil {
			slog.Error("failed to bootstrap admin user", "error", err)
			os.Exit(1)
		}

		deps.Authenticator = authService
		deps.AuthService = authService
		deps.UserRepo = userRepo
		deps.DBPinger = pool
	}

	router := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting teamdir server",
			"port", cfg.Port,
			"version", cfg.Version,
			"authMode", cfg.AuthMode,
			"directory", client.Endpoint(),
			"lookupConcurrency", cfg.LookupConcurrency,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		if pool != nil {
			pool.Close()
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// initDatabase opens the pool and applies pending migrations.
func initDatabase(dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return pool, nil
}
