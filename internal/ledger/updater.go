package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"mdledger/internal/storage"
)

// Updater rewrites a single row's text field in its source file and keeps
// the ledger record in sync.
type Updater struct {
	store  storage.LedgerStore
	logger *slog.Logger
}

// NewUpdater creates a new Updater.
func NewUpdater(store storage.LedgerStore, logger *slog.Logger) *Updater {
	return &Updater{store: store, logger: logger}
}

// UpdateRow replaces the text column of the row identified by rowID, both on
// the recorded line of its source file and in the ledger. All validation
// happens before anything is written, so a failed update leaves file and
// store untouched. The file is rewritten atomically first; if the store
// update then fails, the two disagree and the error wraps ErrSyncFailed.
func (u *Updater) UpdateRow(ctx context.Context, rowID, newText string) (*storage.RowRecord, error) {
	row, err := u.store.GetRow(ctx, rowID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up row %s: %w", rowID, err)
	}

	content, err := os.ReadFile(row.File)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, row.File)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", row.File, err)
	}

	text := string(content)
	hadNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if row.LineNo < 1 || row.LineNo > len(lines) {
		return nil, fmt.Errorf("%w: line %d in %s (valid: 1-%d)",
			ErrLineOutOfRange, row.LineNo, row.File, len(lines))
	}

	// The line may have been edited since ingestion; it must still carry the
	// required columns before anything is written.
	line := lines[row.LineNo-1]
	parts := strings.Split(line, "|")
	if len(parts) < minColumns {
		return nil, fmt.Errorf("%w: %s:%d has %d columns, want at least %d",
			ErrMalformedLine, row.File, row.LineNo, len(parts), minColumns)
	}

	parts[1] = replaceField(parts[1], newText)
	lines[row.LineNo-1] = strings.Join(parts, "|")

	out := strings.Join(lines, "\n")
	if hadNewline {
		out += "\n"
	}
	if err := atomic.WriteFile(row.File, bytes.NewReader([]byte(out))); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", row.File, err)
	}

	updatedAt := time.Now().UTC()
	if err := u.store.UpdateRowText(ctx, rowID, newText, storage.StatusUpdated, updatedAt); err != nil {
		return nil, fmt.Errorf("%w: row %s in %s: %w", ErrSyncFailed, rowID, row.File, err)
	}

	u.logger.InfoContext(ctx, "updated row",
		slog.String("row_id", rowID),
		slog.String("file", row.File),
		slog.Int("line_no", row.LineNo))

	updated := *row
	updated.Text = newText
	updated.Status = storage.StatusUpdated
	updated.IngestedAt = updatedAt
	return &updated, nil
}

// replaceField swaps the content of one pipe-delimited field while keeping
// its leading and trailing whitespace. A field that was entirely whitespace
// gets single-space padding.
func replaceField(field, text string) string {
	if strings.TrimSpace(field) == "" {
		return " " + text + " "
	}
	lead := field[:len(field)-len(strings.TrimLeft(field, " \t"))]
	trail := field[len(strings.TrimRight(field, " \t")):]
	return lead + text + trail
}
