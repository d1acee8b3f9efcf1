package handlers

import (
	"net/http"

	"mdledger/internal/contextutil"
	"mdledger/internal/service"
)

// SectionsHandler handles HTTP requests for header search.
type SectionsHandler struct {
	svc *service.Service
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(svc *service.Service) *SectionsHandler {
	return &SectionsHandler{svc: svc}
}

// SectionsResponse represents the response from the sections endpoint.
type SectionsResponse struct {
	Query   string                 `json:"query"`
	Matches []service.SectionMatch `json:"matches"`
}

// ServeHTTP matches indexed headers against the "q" query parameter,
// optionally restricted to one file via "file".
func (h *SectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}
	file := r.URL.Query().Get("file")

	matches, err := h.svc.FindSection(ctx, query, file)
	if err != nil {
		logger.ErrorContext(ctx, "section search failed", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, "Section search failed")
		return
	}
	if matches == nil {
		matches = []service.SectionMatch{}
	}
	writeJSON(w, http.StatusOK, SectionsResponse{Query: query, Matches: matches})
}
