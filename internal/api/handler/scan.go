package handler

import (
	"io"
	"net/http"

	"github.com/qrally/qrally/internal/api/apierr"
	"github.com/qrally/qrally/internal/api/middleware"
	"github.com/qrally/qrally/internal/api/response"
	"github.com/qrally/qrally/internal/services/auth"
	"github.com/qrally/qrally/internal/services/scan"
)

// maxScanPayloadBytes bounds the decode payload; QR text is tiny
const maxScanPayloadBytes = 64 * 1024

// ScanHandler handles scan submissions
type ScanHandler struct {
	scanService *scan.Service
	authService *auth.Service
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *scan.Service, authService *auth.Service) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		authService: authService,
	}
}

// Submit handles POST /api/v1/scans
//
// The body is the scanning widget's event payload in any of its shapes.
// A payload with no extractable text is discarded with 204 and no state
// change; a scan arriving while the user's workflow is processing gets
// 409 and is dropped, not queued.
func (h *ScanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxScanPayloadBytes))
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("could not read request body"))
		return
	}

	decodedText, err := scan.DecodePayload(body)
	if err != nil {
		response.NoContent(w)
		return
	}

	result, err := h.scanService.Process(r.Context(), session.User, decodedText)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// Keep the session's user copy in step with what we report
	user := session.User
	user.Score = result.Score
	h.authService.RefreshUser(session.Token, user)

	response.JSON(w, http.StatusOK, response.ScanResultFromModel(result))
}
