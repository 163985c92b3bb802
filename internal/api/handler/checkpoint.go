package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qrally/qrally/internal/api/apierr"
	"github.com/qrally/qrally/internal/api/response"
	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// CheckpointHandler handles checkpoint lookups
type CheckpointHandler struct {
	storage storage.Storage
}

// NewCheckpointHandler creates a new checkpoint handler
func NewCheckpointHandler(store storage.Storage) *CheckpointHandler {
	return &CheckpointHandler{
		storage: store,
	}
}

// Get handles GET /api/v1/checkpoints/{cp_id}
func (h *CheckpointHandler) Get(w http.ResponseWriter, r *http.Request) {
	cpID := model.CheckpointID(mux.Vars(r)["cp_id"])

	cp, err := h.storage.GetCheckpoint(r.Context(), cpID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CheckpointFromModel(cp))
}
