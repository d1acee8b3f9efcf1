package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys, sets a busy timeout so independent process
// invocations racing on the same file serialize instead of failing, and
// verifies the connection.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Wait for competing writers instead of returning SQLITE_BUSY
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely. Records written by
// earlier schema revisions may carry a NULL source_mtime; readers treat
// those as legacy and force a reindex rather than trusting them.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			line_count INTEGER NOT NULL,
			source_mtime INTEGER,
			indexed_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file TEXT NOT NULL,
			header_text TEXT NOT NULL,
			level INTEGER NOT NULL,
			line_start INTEGER NOT NULL,
			line_end INTEGER NOT NULL,
			parent_id INTEGER,
			source_mtime INTEGER,
			indexed_at TEXT NOT NULL,
			UNIQUE (file, line_start)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sections_text ON sections(header_text);`,
		`CREATE INDEX IF NOT EXISTS idx_sections_file ON sections(file);`,
		`CREATE TABLE IF NOT EXISTS ledger (
			row_id TEXT PRIMARY KEY,
			h2 TEXT NOT NULL,
			text TEXT NOT NULL,
			src TEXT NOT NULL,
			type TEXT NOT NULL,
			file TEXT NOT NULL,
			line_no INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'clean',
			ingested_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS table_configs (
			file TEXT NOT NULL,
			h2 TEXT NOT NULL,
			col_count INTEGER NOT NULL,
			line_start INTEGER NOT NULL,
			line_end INTEGER NOT NULL,
			PRIMARY KEY (file, h2)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

const timeLayout = time.RFC3339Nano

// formatTime renders a timestamp for storage in a TEXT column.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a timestamp written by formatTime.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
