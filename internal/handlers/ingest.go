package handlers

import (
	"encoding/json"
	"net/http"

	"mdledger/internal/contextutil"
	"mdledger/internal/service"
)

// IngestHandler handles HTTP requests for table ingestion.
type IngestHandler struct {
	svc *service.Service
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(svc *service.Service) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// IngestRequest represents the request body for the ingest endpoint. Either
// H2 (a case-insensitive section name fragment) or Full selects which
// sections have their rows ingested.
type IngestRequest struct {
	File string `json:"file"`
	H2   string `json:"h2,omitempty"`
	Full bool   `json:"full,omitempty"`
}

// ServeHTTP ingests pipe-delimited rows from the requested file. Malformed
// rows are reported in the response, not treated as failures.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	report, err := h.svc.Ingest(ctx, req.File, req.H2, req.Full)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "file", req.File, "error", err)
		writeError(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
