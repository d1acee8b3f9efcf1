package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ledger_store.go -package=mocks mdledger/internal/storage LedgerStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LedgerStore defines the interface for ledger row persistence.
type LedgerStore interface {
	// ApplyIngestion upserts the rows and table configs of one ingestion in
	// a single transaction. Each row fully replaces any existing row with
	// the same row_id; configs are overwritten wholesale, never merged.
	ApplyIngestion(ctx context.Context, rows []RowRecord, configs []TableConfigRecord) error
	// GetRow returns the row with the given ID, or ErrNotFound.
	GetRow(ctx context.Context, rowID string) (*RowRecord, error)
	// ListRows filters rows by exact match on the given fields; empty
	// filters match everything. Results are ordered by h2, then line
	// provenance.
	ListRows(ctx context.Context, h2, rowType string) ([]RowRecord, error)
	// UpdateRowText rewrites the text, status and ingestion timestamp of an
	// existing row. Returns ErrNotFound when the row does not exist.
	UpdateRowText(ctx context.Context, rowID, text string, status RowStatus, ts time.Time) error
	// GetTableConfig returns the table config for (file, h2), or ErrNotFound.
	GetTableConfig(ctx context.Context, file, h2 string) (*TableConfigRecord, error)
}

// LedgerRepo provides ledger row persistence over SQLite.
// It implements the LedgerStore interface.
type LedgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// ApplyIngestion upserts rows and table configs in a single transaction so a
// crash mid-ingestion cannot leave a partially applied batch.
func (r *LedgerRepo) ApplyIngestion(ctx context.Context, rows []RowRecord, configs []TableConfigRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO ledger VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			row.RowID, row.H2, row.Text, row.Src, row.Type,
			row.File, row.LineNo, string(row.Status), formatTime(row.IngestedAt),
		); err != nil {
			return fmt.Errorf("failed to upsert row %q: %w", row.RowID, err)
		}
	}

	for _, cfg := range configs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO table_configs VALUES (?, ?, ?, ?, ?)",
			cfg.File, cfg.H2, cfg.ColCount, cfg.LineStart, cfg.LineEnd,
		); err != nil {
			return fmt.Errorf("failed to upsert table config for %q: %w", cfg.H2, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ingestion: %w", err)
	}
	return nil
}

// GetRow returns the row with the given ID.
func (r *LedgerRepo) GetRow(ctx context.Context, rowID string) (*RowRecord, error) {
	rows, err := r.queryRows(ctx, selectRows+" WHERE row_id = ?", rowID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ListRows filters rows by exact h2 and/or type match.
func (r *LedgerRepo) ListRows(ctx context.Context, h2, rowType string) ([]RowRecord, error) {
	query := selectRows + " WHERE 1=1"
	var args []any
	if h2 != "" {
		query += " AND h2 = ?"
		args = append(args, h2)
	}
	if rowType != "" {
		query += " AND type = ?"
		args = append(args, rowType)
	}
	query += " ORDER BY h2, file, line_no"
	return r.queryRows(ctx, query, args...)
}

// UpdateRowText rewrites a row's text, status and ingestion timestamp.
func (r *LedgerRepo) UpdateRowText(ctx context.Context, rowID, text string, status RowStatus, ts time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE ledger SET text = ?, status = ?, ingested_at = ? WHERE row_id = ?",
		text, string(status), formatTime(ts), rowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update row %q: %w", rowID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTableConfig returns the table config for one (file, h2) block.
func (r *LedgerRepo) GetTableConfig(ctx context.Context, file, h2 string) (*TableConfigRecord, error) {
	var cfg TableConfigRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT file, h2, col_count, line_start, line_end FROM table_configs WHERE file = ? AND h2 = ?",
		file, h2,
	).Scan(&cfg.File, &cfg.H2, &cfg.ColCount, &cfg.LineStart, &cfg.LineEnd)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query table config: %w", err)
	}
	return &cfg, nil
}

const selectRows = `SELECT row_id, h2, text, src, type, file, line_no, status, ingested_at FROM ledger`

func (r *LedgerRepo) queryRows(ctx context.Context, query string, args ...any) ([]RowRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []RowRecord
	for rows.Next() {
		var rec RowRecord
		var status, ingestedAt string
		if err := rows.Scan(&rec.RowID, &rec.H2, &rec.Text, &rec.Src, &rec.Type,
			&rec.File, &rec.LineNo, &status, &ingestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		rec.Status = RowStatus(status)
		rec.IngestedAt, err = parseTime(ingestedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ingested_at timestamp: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}
