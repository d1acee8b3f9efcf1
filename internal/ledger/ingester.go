package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"mdledger/internal/markdown"
	"mdledger/internal/storage"
)

// minColumns is the required column arrangement of a data row:
// row_id | text | src | type. Extra columns are tolerated and ignored.
const minColumns = 4

// RowError describes one malformed row encountered during ingestion. The row
// is excluded from the batch; ingestion of the remaining rows proceeds.
type RowError struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// Report summarizes one ingestion run.
type Report struct {
	BatchID       string         `json:"batch_id"`
	RowsIngested  int            `json:"rows_ingested"`
	RowsBySection map[string]int `json:"rows_by_section"`
	Errors        []RowError     `json:"errors,omitempty"`
}

// Ingester scans documents for pipe-delimited rows under H2 sections and
// upserts them into the ledger.
type Ingester struct {
	store  storage.LedgerStore
	logger *slog.Logger
}

// NewIngester creates a new Ingester.
func NewIngester(store storage.LedgerStore, logger *slog.Logger) *Ingester {
	return &Ingester{store: store, logger: logger}
}

// Ingest scans file for data rows grouped under H2 sections. A line
// qualifies as a data row when it contains at least one pipe character and
// is not inside a fenced code block; there is no header-row detection.
//
// When targetH2 is non-empty, scanning is restricted to the H2 sections
// whose header contains targetH2 (case-insensitive). When full is true,
// every H2 section is ingested. With neither, no rows are ingested but
// table configs are still recorded for every section scanned.
//
// Rows with fewer than minColumns fields, or an empty row_id, are collected
// into the report and excluded; valid rows are upserted in one transaction
// together with the per-section table configs. H2 names are stored
// lowercased; the report keys keep the header's original casing.
func (ing *Ingester) Ingest(ctx context.Context, file, targetH2 string, full bool) (*Report, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	lines := markdown.SplitLines(string(content))
	mask := markdown.FenceMask(lines)
	sections := markdown.Parse(string(content))

	report := &Report{
		BatchID:       uuid.NewString(),
		RowsBySection: make(map[string]int),
	}
	ts := time.Now().UTC()

	var rows []storage.RowRecord
	var configs []storage.TableConfigRecord
	for _, s := range sections {
		if s.Level != 2 {
			continue
		}
		matched := targetH2 != "" &&
			strings.Contains(strings.ToLower(s.Text), strings.ToLower(targetH2))
		if targetH2 != "" && !matched {
			continue
		}
		ingestRows := full || matched

		h2 := strings.ToLower(s.Text)
		var cfg *storage.TableConfigRecord
		for lineNo := s.LineStart + 1; lineNo <= s.LineEnd; lineNo++ {
			line := lines[lineNo-1]
			if mask[lineNo-1] || !strings.Contains(line, "|") {
				continue
			}

			if cfg == nil {
				cfg = &storage.TableConfigRecord{
					File:     file,
					H2:       h2,
					ColCount: len(strings.Split(strings.TrimSpace(line), "|")),
				}
				cfg.LineStart = lineNo
			}
			cfg.LineEnd = lineNo

			if !ingestRows {
				continue
			}
			row, rowErr := parseRow(line, lineNo)
			if rowErr != nil {
				report.Errors = append(report.Errors, *rowErr)
				continue
			}
			row.H2 = h2
			row.File = file
			row.IngestedAt = ts
			rows = append(rows, *row)
			report.RowsBySection[s.Text]++
		}
		if ingestRows {
			// Sections scanned for rows always appear in the report, even
			// when every row in them was malformed or absent.
			if _, ok := report.RowsBySection[s.Text]; !ok {
				report.RowsBySection[s.Text] = 0
			}
		}
		if cfg != nil {
			configs = append(configs, *cfg)
		}
	}

	report.RowsIngested = len(rows)
	if err := ing.store.ApplyIngestion(ctx, rows, configs); err != nil {
		return nil, fmt.Errorf("failed to persist ingestion batch: %w", err)
	}

	ing.logger.InfoContext(ctx, "ingested rows",
		slog.String("file", file),
		slog.String("batch_id", report.BatchID),
		slog.Int("rows", report.RowsIngested),
		slog.Int("errors", len(report.Errors)))
	return report, nil
}

// parseRow splits a candidate line into trimmed fields and validates the
// required column arrangement.
func parseRow(line string, lineNo int) (*storage.RowRecord, *RowError) {
	trimmed := strings.TrimSpace(line)
	parts := strings.Split(trimmed, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	if len(parts) < minColumns {
		return nil, &RowError{
			Line:    lineNo,
			Content: trimmed,
			Reason:  fmt.Sprintf("expected at least %d columns (row_id, text, src, type), got %d", minColumns, len(parts)),
		}
	}
	if parts[0] == "" {
		return nil, &RowError{Line: lineNo, Content: trimmed, Reason: "empty row_id"}
	}
	return &storage.RowRecord{
		RowID:  parts[0],
		Text:   parts[1],
		Src:    parts[2],
		Type:   parts[3],
		LineNo: lineNo,
		Status: storage.StatusClean,
	}, nil
}
