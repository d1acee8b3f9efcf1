package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"mdledger/internal/config"
	"mdledger/internal/http"
	"mdledger/internal/service"
	"mdledger/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances and the service layer
	sectionRepo := storage.NewSectionRepo(db)
	ledgerRepo := storage.NewLedgerRepo(db)
	svc := service.New(sectionRepo, ledgerRepo, cfg.DocsDir, logger)
	slog.Info("Service initialized", "docs_dir", cfg.DocsDir)

	// Create router with dependencies. Indexing is lazy: files are indexed
	// on request or when a query finds them stale, so nothing runs in the
	// background.
	router := http.NewRouter(&http.Deps{
		Service: svc,
		DB:      db,
	})

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
