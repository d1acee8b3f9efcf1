package handlers

import (
	"encoding/json"
	"net/http"

	"mdledger/internal/contextutil"
	"mdledger/internal/service"
)

// IndexHandler handles HTTP requests for indexing files or directories.
type IndexHandler struct {
	svc *service.Service
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(svc *service.Service) *IndexHandler {
	return &IndexHandler{svc: svc}
}

// IndexRequest represents the request body for the index endpoint.
type IndexRequest struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

// ServeHTTP indexes the requested path synchronously and reports what was
// covered. Operations are short-lived, so there is no background mode.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	result, err := h.svc.Index(ctx, req.Path, req.Recursive)
	if err != nil {
		logger.ErrorContext(ctx, "indexing failed", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Indexing failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
