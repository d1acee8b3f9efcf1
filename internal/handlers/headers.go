package handlers

import (
	"net/http"

	"mdledger/internal/contextutil"
	"mdledger/internal/service"
)

// HeadersHandler handles HTTP requests for a file's section tree.
type HeadersHandler struct {
	svc *service.Service
}

// NewHeadersHandler creates a new HeadersHandler.
func NewHeadersHandler(svc *service.Service) *HeadersHandler {
	return &HeadersHandler{svc: svc}
}

// HeadersResponse represents the response from the headers endpoint.
type HeadersResponse struct {
	File     string                 `json:"file"`
	Sections []*service.SectionNode `json:"sections"`
}

// ServeHTTP returns the ordered section tree for the file named in the
// "file" query parameter, reindexing it first when stale.
func (h *HeadersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	file := r.URL.Query().Get("file")
	if file == "" {
		writeError(w, http.StatusBadRequest, "file query parameter is required")
		return
	}

	sections, err := h.svc.Headers(ctx, file)
	if err != nil {
		logger.ErrorContext(ctx, "headers query failed", "file", file, "error", err)
		writeError(w, http.StatusInternalServerError, "Headers query failed")
		return
	}
	if sections == nil {
		sections = []*service.SectionNode{}
	}
	writeJSON(w, http.StatusOK, HeadersResponse{File: file, Sections: sections})
}
