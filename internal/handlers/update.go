package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mdledger/internal/contextutil"
	"mdledger/internal/ledger"
	"mdledger/internal/service"
)

// UpdateHandler handles HTTP requests for rewriting a row's text.
type UpdateHandler struct {
	svc *service.Service
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(svc *service.Service) *UpdateHandler {
	return &UpdateHandler{svc: svc}
}

// UpdateRequest represents the request body for the update endpoint.
type UpdateRequest struct {
	Text string `json:"text"`
}

// ServeHTTP rewrites the text column of the row named in the URL, in both
// its source file and the store. Conflicts with the file's current state
// (line gone or missing columns) map to 409; a row or file that no longer
// exists maps to 404.
func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	rowID := chi.URLParam(r, "rowID")
	if rowID == "" {
		writeError(w, http.StatusBadRequest, "row id is required")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	row, err := h.svc.Update(ctx, rowID, req.Text)
	if err != nil {
		logger.ErrorContext(ctx, "row update failed", "row_id", rowID, "error", err)
		writeError(w, updateStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// updateStatus maps update failures to HTTP status codes.
func updateStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrRowNotFound), errors.Is(err, ledger.ErrFileMissing):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrLineOutOfRange), errors.Is(err, ledger.ErrMalformedLine):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
