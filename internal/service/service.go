// Package service wires the index, ingestion and update machinery into the
// operations exposed over HTTP. File arguments are resolved against the
// configured docs directory; queries that target a single file reindex it
// first when stale.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mdledger/internal/index"
	"mdledger/internal/ledger"
	"mdledger/internal/markdown"
	"mdledger/internal/storage"
)

// Service exposes the operations of the markdown ledger.
type Service struct {
	sections storage.SectionStore
	rows     storage.LedgerStore
	indexer  *index.Indexer
	ingester *ledger.Ingester
	updater  *ledger.Updater
	docsDir  string
	logger   *slog.Logger
}

// New creates a new Service rooted at docsDir.
func New(sections storage.SectionStore, rows storage.LedgerStore, docsDir string, logger *slog.Logger) *Service {
	return &Service{
		sections: sections,
		rows:     rows,
		indexer:  index.NewIndexer(sections, logger),
		ingester: ledger.NewIngester(rows, logger),
		updater:  ledger.NewUpdater(rows, logger),
		docsDir:  docsDir,
		logger:   logger,
	}
}

// IndexResult reports what an indexing run covered.
type IndexResult struct {
	FilesIndexed   int `json:"files_indexed"`
	HeadersIndexed int `json:"headers_indexed"`
}

// SectionNode is one header in the section tree returned by Headers.
type SectionNode struct {
	HeaderText string         `json:"header_text"`
	Level      int            `json:"level"`
	LineStart  int            `json:"line_start"`
	LineEnd    int            `json:"line_end"`
	Children   []*SectionNode `json:"children,omitempty"`
}

// SectionMatch is one header matched by FindSection.
type SectionMatch struct {
	File       string `json:"file"`
	HeaderText string `json:"header_text"`
	Level      int    `json:"level"`
	LineStart  int    `json:"line_start"`
	LineEnd    int    `json:"line_end"`
}

// SectionInfo locates a content match within the header hierarchy.
// HeaderPath reads root-first, e.g. "Design > Storage".
type SectionInfo struct {
	HeaderText string `json:"header_text"`
	Level      int    `json:"level"`
	LineStart  int    `json:"line_start"`
	LineEnd    int    `json:"line_end"`
	HeaderPath string `json:"header_path"`
}

// ContentMatch is one matched line from FindContent. MatchText carries the
// matched line with its surrounding context lines.
type ContentMatch struct {
	File      string       `json:"file"`
	LineNo    int          `json:"line_no"`
	MatchText string       `json:"match_text"`
	Section   *SectionInfo `json:"section,omitempty"`
}

// Index indexes one markdown file or every markdown file under a directory.
func (s *Service) Index(ctx context.Context, path string, recursive bool) (*IndexResult, error) {
	files, headers, err := s.indexer.IndexPath(ctx, s.resolvePath(path), recursive)
	if err != nil {
		return nil, err
	}
	return &IndexResult{FilesIndexed: files, HeadersIndexed: headers}, nil
}

// Headers returns the ordered section tree for a file, reindexing it first
// when stale. A file that is neither indexed nor on disk yields an empty
// tree and an advisory log, not an error.
func (s *Service) Headers(ctx context.Context, file string) ([]*SectionNode, error) {
	path := s.resolvePath(file)
	if ok, err := s.ensureFresh(ctx, path); err != nil || !ok {
		return nil, err
	}

	records, err := s.sections.GetSections(ctx, path)
	if err != nil {
		return nil, err
	}
	return buildTree(records), nil
}

// FindSection matches indexed headers by case-insensitive substring. With a
// file filter the file is reindexed first when stale; without one, results
// come from the existing index and may reflect a prior revision of files
// modified since their last index.
func (s *Service) FindSection(ctx context.Context, query, file string) ([]SectionMatch, error) {
	path := ""
	if file != "" {
		path = s.resolvePath(file)
		if ok, err := s.ensureFresh(ctx, path); err != nil || !ok {
			return nil, err
		}
	}

	records, err := s.sections.FindSectionsByText(ctx, query, path)
	if err != nil {
		return nil, err
	}
	matches := make([]SectionMatch, len(records))
	for i, r := range records {
		matches[i] = SectionMatch{
			File:       r.File,
			HeaderText: r.HeaderText,
			Level:      r.Level,
			LineStart:  r.LineStart,
			LineEnd:    r.LineEnd,
		}
	}
	return matches, nil
}

// FindContent searches file content for a case-insensitive substring and
// annotates each match with its enclosing section. With a file filter the
// file is reindexed first when stale; without one, the indexed file set is
// searched as-is for cost reasons, so files changed since their last index
// are searched at their current content but located against prior section
// boundaries. Indexed files no longer present on disk are skipped.
func (s *Service) FindContent(ctx context.Context, query string, contextLines int, file string) ([]ContentMatch, error) {
	var files []string
	if file != "" {
		path := s.resolvePath(file)
		if ok, err := s.ensureFresh(ctx, path); err != nil || !ok {
			return nil, err
		}
		files = []string{path}
	} else {
		var err error
		files, err = s.sections.ListFiles(ctx)
		if err != nil {
			return nil, err
		}
	}

	if contextLines < 0 {
		contextLines = 0
	}
	needle := strings.ToLower(query)

	var matches []ContentMatch
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable indexed file",
				slog.String("file", f), slog.String("error", err.Error()))
			continue
		}
		lines := markdown.SplitLines(string(content))
		for i, line := range lines {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			lineNo := i + 1
			start := max(0, i-contextLines)
			end := min(len(lines), i+contextLines+1)

			info, err := s.sectionInfo(ctx, f, lineNo)
			if err != nil {
				return nil, err
			}
			matches = append(matches, ContentMatch{
				File:      f,
				LineNo:    lineNo,
				MatchText: strings.Join(lines[start:end], "\n"),
				Section:   info,
			})
		}
	}
	return matches, nil
}

// Ingest scans a file for table rows and upserts them into the ledger.
func (s *Service) Ingest(ctx context.Context, file, h2 string, full bool) (*ledger.Report, error) {
	return s.ingester.Ingest(ctx, s.resolvePath(file), h2, full)
}

// Rows lists ledger rows filtered by exact h2 and type when given. The h2
// filter is case-insensitive because section names are stored lowercased.
func (s *Service) Rows(ctx context.Context, h2, rowType string) ([]storage.RowRecord, error) {
	return s.rows.ListRows(ctx, strings.ToLower(h2), rowType)
}

// Update rewrites the text column of one ledger row in its source file and
// in the store.
func (s *Service) Update(ctx context.Context, rowID, newText string) (*storage.RowRecord, error) {
	return s.updater.UpdateRow(ctx, rowID, newText)
}

// ensureFresh reindexes path when stale. It reports ok=false without an
// error when the file is neither indexed nor on disk, which queries treat
// as an empty result.
func (s *Service) ensureFresh(ctx context.Context, path string) (bool, error) {
	_, err := s.indexer.EnsureFresh(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "file is not indexed and does not exist",
			slog.String("file", path))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to refresh index for %s: %w", path, err)
	}
	return true, nil
}

// sectionInfo resolves the deepest section containing a line, with its full
// header path. A line outside every section yields nil.
func (s *Service) sectionInfo(ctx context.Context, file string, line int) (*SectionInfo, error) {
	rec, err := s.sections.SectionForLine(ctx, file, line)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	path, err := s.sections.SectionPath(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return &SectionInfo{
		HeaderText: rec.HeaderText,
		Level:      rec.Level,
		LineStart:  rec.LineStart,
		LineEnd:    rec.LineEnd,
		HeaderPath: strings.Join(path, " > "),
	}, nil
}

// buildTree converts the flat line-ordered section records into a tree.
// Parents always precede their children in line_start order, so a single
// pass with an id lookup suffices.
func buildTree(records []storage.SectionRecord) []*SectionNode {
	byID := make(map[int64]*SectionNode, len(records))
	var roots []*SectionNode
	for _, r := range records {
		node := &SectionNode{
			HeaderText: r.HeaderText,
			Level:      r.Level,
			LineStart:  r.LineStart,
			LineEnd:    r.LineEnd,
		}
		byID[r.ID] = node
		if r.ParentID != nil {
			if parent, ok := byID[*r.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// resolvePath turns a caller-supplied file argument into the absolute path
// used as the store key. Relative paths are rooted at the docs directory.
func (s *Service) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.docsDir, p)
}
