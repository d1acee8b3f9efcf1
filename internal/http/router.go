package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mdledger/internal/handlers"
	"mdledger/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Service *service.Service
	DB      *sql.DB
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/index", handlers.NewIndexHandler(deps.Service))
		r.Method(http.MethodGet, "/headers", handlers.NewHeadersHandler(deps.Service))
		r.Method(http.MethodGet, "/sections", handlers.NewSectionsHandler(deps.Service))
		r.Method(http.MethodGet, "/content", handlers.NewContentHandler(deps.Service))
		r.Method(http.MethodPost, "/ingest", handlers.NewIngestHandler(deps.Service))
		r.Method(http.MethodGet, "/rows", handlers.NewRowsHandler(deps.Service))
		r.Method(http.MethodPost, "/rows/{rowID}", handlers.NewUpdateHandler(deps.Service))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB))
	})

	return r
}
