package index

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mdledger/internal/markdown"
	"mdledger/internal/storage"
)

// Indexer parses markdown files and persists their header sections.
type Indexer struct {
	store  storage.SectionStore
	logger *slog.Logger
}

// NewIndexer creates a new Indexer.
func NewIndexer(store storage.SectionStore, logger *slog.Logger) *Indexer {
	return &Indexer{store: store, logger: logger}
}

// IndexFile parses path, replaces its persisted sections and returns how
// many were indexed. The file's modification time is captured before the
// content is read, so a write that lands between stat and read makes the
// record look stale rather than fresh. A file with zero headers is indexed
// as an empty section set, not skipped.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := markdown.SplitLines(string(content))
	sections := markdown.Parse(string(content))

	batch := make([]storage.NewSection, len(sections))
	for i, s := range sections {
		batch[i] = storage.NewSection{
			HeaderText: s.Text,
			Level:      s.Level,
			LineStart:  s.LineStart,
			LineEnd:    s.LineEnd,
			Parent:     s.Parent,
		}
	}

	meta := storage.FileMeta{
		Title:       markdown.Title(content, path),
		LineCount:   len(lines),
		SourceMtime: info.ModTime(),
		IndexedAt:   time.Now().UTC(),
	}
	if err := ix.store.ReplaceSections(ctx, path, meta, batch); err != nil {
		return 0, fmt.Errorf("failed to persist sections for %s: %w", path, err)
	}

	ix.logger.InfoContext(ctx, "indexed file",
		slog.String("path", path),
		slog.Int("sections", len(batch)),
		slog.Int("lines", len(lines)))
	return len(batch), nil
}

// IndexPath indexes a single markdown file, or every markdown file under a
// directory, and returns the counts of files and headers indexed. Per-file
// failures are logged and skipped so one unreadable file does not abort a
// directory walk. When recursive is false, subdirectories of a directory
// path are not descended into.
func (ix *Indexer) IndexPath(ctx context.Context, path string, recursive bool) (files, headers int, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		n, err := ix.IndexFile(ctx, path)
		if err != nil {
			return 0, 0, err
		}
		return 1, n, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			ix.logger.WarnContext(ctx, "skipping unreadable path",
				slog.String("path", p), slog.String("error", err.Error()))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive && p != path {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		n, err := ix.IndexFile(ctx, p)
		if err != nil {
			ix.logger.WarnContext(ctx, "failed to index file",
				slog.String("path", p), slog.String("error", err.Error()))
			return nil
		}
		files++
		headers += n
		return nil
	})
	if err != nil {
		return files, headers, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	return files, headers, nil
}

// EnsureFresh reindexes path when its record is missing or stale and reports
// the freshness observed before any reindex. Queries that must reflect the
// current file call this first; the common case (nothing changed) costs one
// stat and one store read.
func (ix *Indexer) EnsureFresh(ctx context.Context, path string) (Freshness, error) {
	freshness, err := CheckFreshness(ctx, ix.store, path)
	if err != nil {
		return freshness, err
	}
	if freshness == Fresh {
		return freshness, nil
	}

	ix.logger.InfoContext(ctx, "reindexing file",
		slog.String("path", path),
		slog.String("reason", freshness.String()))
	if _, err := ix.IndexFile(ctx, path); err != nil {
		return freshness, err
	}
	return freshness, nil
}
