package handlers

import (
	"net/http"

	"mdledger/internal/contextutil"
	"mdledger/internal/service"
	"mdledger/internal/storage"
)

// RowsHandler handles HTTP requests for querying ledger rows.
type RowsHandler struct {
	svc *service.Service
}

// NewRowsHandler creates a new RowsHandler.
func NewRowsHandler(svc *service.Service) *RowsHandler {
	return &RowsHandler{svc: svc}
}

// RowsResponse represents the response from the rows endpoint.
type RowsResponse struct {
	Rows []storage.RowRecord `json:"rows"`
}

// ServeHTTP lists ledger rows, filtered by exact match on the "h2" and
// "type" query parameters when given.
func (h *RowsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	rows, err := h.svc.Rows(ctx, r.URL.Query().Get("h2"), r.URL.Query().Get("type"))
	if err != nil {
		logger.ErrorContext(ctx, "rows query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Rows query failed")
		return
	}
	if rows == nil {
		rows = []storage.RowRecord{}
	}
	writeJSON(w, http.StatusOK, RowsResponse{Rows: rows})
}
