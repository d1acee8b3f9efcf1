package handlers

import (
	"net/http"
	"strconv"

	"mdledger/internal/contextutil"
	"mdledger/internal/service"
)

// defaultContextLines matches the CLI convention of one line of context on
// each side of a match.
const defaultContextLines = 1

// ContentHandler handles HTTP requests for content search.
type ContentHandler struct {
	svc *service.Service
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(svc *service.Service) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// ContentResponse represents the response from the content endpoint.
type ContentResponse struct {
	Query   string                 `json:"query"`
	Matches []service.ContentMatch `json:"matches"`
}

// ServeHTTP searches file content for the "q" query parameter. "context"
// sets the number of surrounding lines included per match and "file"
// restricts the search to one file.
func (h *ContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}
	file := r.URL.Query().Get("file")

	contextLines := defaultContextLines
	if raw := r.URL.Query().Get("context"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "context must be a non-negative integer")
			return
		}
		contextLines = n
	}

	matches, err := h.svc.FindContent(ctx, query, contextLines, file)
	if err != nil {
		logger.ErrorContext(ctx, "content search failed", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, "Content search failed")
		return
	}
	if matches == nil {
		matches = []service.ContentMatch{}
	}
	writeJSON(w, http.StatusOK, ContentResponse{Query: query, Matches: matches})
}
