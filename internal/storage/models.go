package storage

import "time"

// RowStatus tracks whether a ledger row still carries its originally
// ingested text or has been rewritten through the updater.
type RowStatus string

const (
	StatusClean   RowStatus = "clean"
	StatusUpdated RowStatus = "updated"
)

// FileRecord is the per-file index snapshot. SourceMtime is the file's
// modification time captured when it was last indexed; the zero value marks
// a legacy record (indexed before mtimes were recorded) and is treated as
// stale by the freshness check.
type FileRecord struct {
	Path        string
	Title       string
	LineCount   int
	SourceMtime time.Time
	IndexedAt   time.Time
}

// SectionRecord is one persisted header section. Identity is (File,
// LineStart); a reindex that shifts line numbers replaces the whole set for
// the file, so IDs are not stable across reindexes.
type SectionRecord struct {
	ID          int64
	File        string
	HeaderText  string
	Level       int
	LineStart   int
	LineEnd     int
	ParentID    *int64
	SourceMtime time.Time
	IndexedAt   time.Time
}

// NewSection is a section to be persisted by ReplaceSections. Parent is the
// index of the parent section within the same batch, -1 for roots; the
// store resolves it to a row ID during insertion.
type NewSection struct {
	HeaderText string
	Level      int
	LineStart  int
	LineEnd    int
	Parent     int
}

// FileMeta describes the file snapshot a section batch was parsed from.
type FileMeta struct {
	Title       string
	LineCount   int
	SourceMtime time.Time
	IndexedAt   time.Time
}

// RowRecord is one ledger row. Field order matches the row tuple exposed to
// callers: (row_id, h2, text, src, type, file, line_no, status,
// ingested_at). RowID is caller-supplied and is the sole identity; a
// re-ingested RowID fully replaces the prior record.
type RowRecord struct {
	RowID      string    `json:"row_id"`
	H2         string    `json:"h2"`
	Text       string    `json:"text"`
	Src        string    `json:"src"`
	Type       string    `json:"type"`
	File       string    `json:"file"`
	LineNo     int       `json:"line_no"`
	Status     RowStatus `json:"status"`
	IngestedAt time.Time `json:"ingested_at"`
}

// TableConfigRecord describes the contiguous pipe-delimited block observed
// under one H2 section. Recomputed and overwritten wholesale on every
// ingestion of that section.
type TableConfigRecord struct {
	File      string `json:"file"`
	H2        string `json:"h2"`
	ColCount  int    `json:"col_count"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
}
