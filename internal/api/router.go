package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qrally/qrally/internal/api/handler"
	"github.com/qrally/qrally/internal/api/middleware"
	sharedmw "github.com/qrally/qrally/internal/middleware"
	"github.com/qrally/qrally/internal/services/auth"
	"github.com/qrally/qrally/internal/services/scan"
	"github.com/qrally/qrally/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	ScanService *scan.Service
	Storage     storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	scanHandler := handler.NewScanHandler(cfg.ScanService, cfg.AuthService)
	checkpointHandler := handler.NewCheckpointHandler(cfg.Storage)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := sharedmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (login needs no session; logout tolerates a missing one)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	scans := api.PathPrefix("/scans").Subrouter()
	scans.Use(authMiddleware)
	scans.HandleFunc("", scanHandler.Submit).Methods(http.MethodPost)

	checkpoints := api.PathPrefix("/checkpoints").Subrouter()
	checkpoints.Use(authMiddleware)
	checkpoints.HandleFunc("/{cp_id}", checkpointHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
