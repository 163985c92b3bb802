package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	apimw "github.com/qrally/qrally/internal/api/middleware"
	sharedmw "github.com/qrally/qrally/internal/middleware"
	"github.com/qrally/qrally/internal/services/auth"
	"github.com/qrally/qrally/internal/web/sse"
)

//go:embed static
var staticFiles embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	HubManager  *sse.HubManager
}

// NewRouter creates the browser-facing router: the scan app itself
// plus the per-user event stream it subscribes to.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := sharedmw.Logging(cfg.Logger)
	recoveryMiddleware := sharedmw.Recovery(cfg.Logger, panicHandler)
	authMiddleware := apimw.Auth(cfg.AuthService)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	// Scan status stream (requires a session)
	events := r.PathPrefix("/events").Subrouter()
	events.Use(authMiddleware)
	events.HandleFunc("", eventsHandler(hubManager)).Methods(http.MethodGet)

	// Static app
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))

	return r
}

// eventsHandler opens an SSE stream on the authenticated user's hub
func eventsHandler(hubManager *sse.HubManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := apimw.MustGetSession(r.Context())
		hub := hubManager.GetOrCreateHub(session.User.ID)
		sse.ServeSSE(w, r, hub, session.User.ID)
	}
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
