package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/qrally/qrally/internal/api/apierr"
	"github.com/qrally/qrally/internal/api/middleware"
	"github.com/qrally/qrally/internal/api/request"
	"github.com/qrally/qrally/internal/api/response"
	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/services/auth"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.ID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("id is required"))
		return
	}
	if req.Pass == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("pass is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), model.UserID(req.ID), req.Pass)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/auth/logout; idempotent, succeeds even
// when no valid session is presented
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.ExtractToken(r); token != "" {
		h.authService.InvalidateSession(token)
	}

	h.clearSessionCookie(w)
	response.NoContent(w)
}

// GetMe handles GET /api/v1/users/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(&session.User))
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   86400, // matches the default session duration
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
