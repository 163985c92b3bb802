package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/qrally/qrally/internal/api"
	"github.com/qrally/qrally/internal/factory"
	pgstorage "github.com/qrally/qrally/internal/storage/postgres"
	redisstorage "github.com/qrally/qrally/internal/storage/redis"
	"github.com/qrally/qrally/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure Postgres if storage type is postgres
	if cfg.StorageType == factory.StorageTypePostgres {
		dsn := os.Getenv("DATABASE_DSN")
		if dsn == "" {
			logger.Error("DATABASE_DSN required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = dsn
		cfg.PostgresConfig = &pgCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load seed data if provided
	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		if err := app.SeedService.LoadFromFile(context.Background(), seedFile); err != nil {
			logger.Error("failed to load seed data",
				slog.String("path", seedFile),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		ScanService: app.ScanService,
		Storage:     app.Storage,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		HubManager:  app.HubManager,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
