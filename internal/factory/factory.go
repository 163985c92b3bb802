package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/qrally/qrally/internal/dependencies/clock"
	"github.com/qrally/qrally/internal/services/auth"
	"github.com/qrally/qrally/internal/services/scan"
	"github.com/qrally/qrally/internal/services/seed"
	"github.com/qrally/qrally/internal/storage"
	"github.com/qrally/qrally/internal/storage/memory"
	pgstorage "github.com/qrally/qrally/internal/storage/postgres"
	redisstorage "github.com/qrally/qrally/internal/storage/redis"
	"github.com/qrally/qrally/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService *auth.Service
	ScanService *scan.Service
	SeedService *seed.Service
	HubManager  *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := pgstorage.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, authCfg)
	scanService := scan.New(store, clk, logger)
	seedService := seed.New(store, logger)
	hubManager := sse.NewHubManager(logger)

	// Scan progress flows to the browser through the SSE hubs
	scanService.SetEventSink(sse.NewPublisher(hubManager, logger))

	return &App{
		Storage:     store,
		Clock:       clk,
		AuthService: authService,
		ScanService: scanService,
		SeedService: seedService,
		HubManager:  hubManager,
	}
}
