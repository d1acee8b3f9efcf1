package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_store.go -package=mocks mdledger/internal/storage SectionStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrStoreCorruption is returned when persisted data violates an
	// invariant, e.g. partially overlapping sections for one file. The
	// operation aborts; nothing is repaired silently.
	ErrStoreCorruption = errors.New("store corruption detected")
)

// SectionStore defines the interface for header section persistence.
type SectionStore interface {
	// ReplaceSections atomically deletes all existing sections for file and
	// inserts the new set, together with the per-file index record. An
	// empty batch is valid: the file is recorded as indexed with no
	// sections.
	ReplaceSections(ctx context.Context, file string, meta FileMeta, sections []NewSection) error
	// GetSections returns the sections for file ordered by line_start.
	// Fails with ErrStoreCorruption when the persisted set violates the
	// non-overlap invariant.
	GetSections(ctx context.Context, file string) ([]SectionRecord, error)
	// FindSectionsByText matches header texts by case-insensitive substring,
	// optionally restricted to one file ("" means all files).
	FindSectionsByText(ctx context.Context, query, file string) ([]SectionRecord, error)
	// SectionForLine returns the deepest section containing the given line.
	// Returns ErrNotFound when the line is outside every indexed section.
	SectionForLine(ctx context.Context, file string, line int) (*SectionRecord, error)
	// SectionPath returns header texts from the root ancestor down to the
	// section with the given ID.
	SectionPath(ctx context.Context, id int64) ([]string, error)
	// GetFile returns the per-file index record, or ErrNotFound when the
	// file has never been indexed.
	GetFile(ctx context.Context, file string) (*FileRecord, error)
	// ListFiles returns the paths of all indexed files.
	ListFiles(ctx context.Context) ([]string, error)
}

// SectionRepo provides section persistence over SQLite.
// It implements the SectionStore interface.
type SectionRepo struct {
	db *sql.DB
}

// NewSectionRepo creates a new SectionRepo.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// ReplaceSections atomically replaces the indexed sections for a file.
// Parent references are resolved from batch indexes to row IDs as the batch
// is inserted, so every parent_id points to a section inserted earlier in
// the same transaction.
func (r *SectionRepo) ReplaceSections(ctx context.Context, file string, meta FileMeta, sections []NewSection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE file = ?", file); err != nil {
		return fmt.Errorf("failed to delete stale sections: %w", err)
	}

	mtime := sql.NullInt64{}
	if !meta.SourceMtime.IsZero() {
		mtime = sql.NullInt64{Int64: meta.SourceMtime.UnixNano(), Valid: true}
	}
	indexedAt := formatTime(meta.IndexedAt)

	ids := make([]int64, len(sections))
	for i, s := range sections {
		var parentID any
		if s.Parent >= 0 {
			if s.Parent >= i {
				return fmt.Errorf("section %d references parent %d out of document order", i, s.Parent)
			}
			parentID = ids[s.Parent]
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sections (file, header_text, level, line_start, line_end, parent_id, source_mtime, indexed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			file, s.HeaderText, s.Level, s.LineStart, s.LineEnd, parentID, mtime, indexedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert section %q: %w", s.HeaderText, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted section id: %w", err)
		}
		ids[i] = id
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO files (path, title, line_count, source_mtime, indexed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (path) DO UPDATE SET
		 title = excluded.title, line_count = excluded.line_count,
		 source_mtime = excluded.source_mtime, indexed_at = excluded.indexed_at`,
		file, meta.Title, meta.LineCount, mtime, indexedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert file record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit section replace: %w", err)
	}
	return nil
}

// GetSections returns the sections for a file ordered by line_start.
func (r *SectionRepo) GetSections(ctx context.Context, file string) ([]SectionRecord, error) {
	sections, err := r.querySections(ctx,
		selectSections+" WHERE file = ? ORDER BY line_start", file)
	if err != nil {
		return nil, err
	}
	if err := validateSections(file, sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// FindSectionsByText matches header texts by case-insensitive substring.
func (r *SectionRepo) FindSectionsByText(ctx context.Context, query, file string) ([]SectionRecord, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	sqlQuery := selectSections + ` WHERE header_text LIKE ? ESCAPE '\'`
	args := []any{pattern}
	if file != "" {
		sqlQuery += " AND file = ?"
		args = append(args, file)
	}
	sqlQuery += " ORDER BY file, line_start"
	return r.querySections(ctx, sqlQuery, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SectionForLine returns the deepest section containing the given line.
func (r *SectionRepo) SectionForLine(ctx context.Context, file string, line int) (*SectionRecord, error) {
	sections, err := r.querySections(ctx,
		selectSections+` WHERE file = ? AND line_start <= ? AND line_end >= ?
		 ORDER BY level DESC, line_start DESC LIMIT 1`,
		file, line, line)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, ErrNotFound
	}
	return &sections[0], nil
}

// SectionPath walks parent links from the given section up to its root and
// returns the header texts in root-first order.
func (r *SectionRepo) SectionPath(ctx context.Context, id int64) ([]string, error) {
	var path []string
	next := &id
	// A well-formed hierarchy is at most 6 levels deep; anything past that
	// means a parent cycle in persisted data.
	for depth := 0; next != nil; depth++ {
		if depth > 6 {
			return nil, fmt.Errorf("%w: parent cycle at section id %d", ErrStoreCorruption, id)
		}
		var text string
		var parent sql.NullInt64
		err := r.db.QueryRowContext(ctx,
			"SELECT header_text, parent_id FROM sections WHERE id = ?", *next,
		).Scan(&text, &parent)
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query section path: %w", err)
		}
		path = append([]string{text}, path...)
		if parent.Valid {
			next = &parent.Int64
		} else {
			next = nil
		}
	}
	return path, nil
}

// GetFile returns the per-file index record.
func (r *SectionRepo) GetFile(ctx context.Context, file string) (*FileRecord, error) {
	var rec FileRecord
	var mtime sql.NullInt64
	var indexedAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT path, title, line_count, source_mtime, indexed_at FROM files WHERE path = ?",
		file,
	).Scan(&rec.Path, &rec.Title, &rec.LineCount, &mtime, &indexedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file record: %w", err)
	}
	if mtime.Valid {
		rec.SourceMtime = time.Unix(0, mtime.Int64).UTC()
	}
	rec.IndexedAt, err = parseTime(indexedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse indexed_at timestamp: %w", err)
	}
	return &rec, nil
}

// ListFiles returns the paths of all indexed files.
func (r *SectionRepo) ListFiles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT path FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query indexed files: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan file path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return paths, nil
}

const selectSections = `SELECT id, file, header_text, level, line_start, line_end, parent_id, source_mtime, indexed_at FROM sections`

func (r *SectionRepo) querySections(ctx context.Context, query string, args ...any) ([]SectionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sections []SectionRecord
	for rows.Next() {
		var s SectionRecord
		var parent, mtime sql.NullInt64
		var indexedAt string
		if err := rows.Scan(&s.ID, &s.File, &s.HeaderText, &s.Level,
			&s.LineStart, &s.LineEnd, &parent, &mtime, &indexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		if parent.Valid {
			p := parent.Int64
			s.ParentID = &p
		}
		if mtime.Valid {
			s.SourceMtime = time.Unix(0, mtime.Int64).UTC()
		}
		s.IndexedAt, err = parseTime(indexedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse indexed_at timestamp: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sections, nil
}

// validateSections checks the persisted invariant for one file: sections are
// ordered by line_start with valid ranges, and any two sections either nest
// fully or are disjoint.
func validateSections(file string, sections []SectionRecord) error {
	var open []SectionRecord
	for i, s := range sections {
		if s.LineEnd < s.LineStart {
			return fmt.Errorf("%w: section %q in %s has line_end %d before line_start %d",
				ErrStoreCorruption, s.HeaderText, file, s.LineEnd, s.LineStart)
		}
		if i > 0 && s.LineStart <= sections[i-1].LineStart {
			return fmt.Errorf("%w: sections out of order in %s at line %d",
				ErrStoreCorruption, file, s.LineStart)
		}
		for len(open) > 0 && open[len(open)-1].LineEnd < s.LineStart {
			open = open[:len(open)-1]
		}
		if len(open) > 0 && s.LineEnd > open[len(open)-1].LineEnd {
			return fmt.Errorf("%w: sections %q and %q in %s partially overlap",
				ErrStoreCorruption, open[len(open)-1].HeaderText, s.HeaderText, file)
		}
		open = append(open, s)
	}
	return nil
}
