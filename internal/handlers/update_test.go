package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"mdledger/internal/service"
	"mdledger/internal/storage"
)

func newTestService(t *testing.T) (*service.Service, string) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	docsDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.New(storage.NewSectionRepo(db), storage.NewLedgerRepo(db), docsDir, logger), docsDir
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

// postUpdate sends an update request through the handler with the rowID
// bound as a chi URL parameter.
func postUpdate(t *testing.T, svc *service.Service, rowID, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewUpdateHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/rows/"+rowID, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("rowID", rowID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestUpdateHandler(t *testing.T) {
	svc, docsDir := newTestService(t)
	writeDoc(t, docsDir, "ledger.md", "## x\nR1|old|src.md|definition\n")
	if _, err := svc.Ingest(context.Background(), "ledger.md", "", true); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	w := postUpdate(t, svc, "R1", `{"text": "new"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var row storage.RowRecord
	if err := json.NewDecoder(w.Body).Decode(&row); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if row.Text != "new" || row.Status != storage.StatusUpdated {
		t.Errorf("response row = %+v", row)
	}
}

func TestUpdateHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(t *testing.T, svc *service.Service, docsDir string)
		rowID      string
		body       string
		wantStatus int
	}{
		{
			name:       "unknown row",
			prepare:    func(t *testing.T, svc *service.Service, docsDir string) {},
			rowID:      "R999",
			body:       `{"text": "new"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "file deleted",
			prepare: func(t *testing.T, svc *service.Service, docsDir string) {
				path := writeDoc(t, docsDir, "ledger.md", "## x\nR1|old|s|d\n")
				if _, err := svc.Ingest(context.Background(), "ledger.md", "", true); err != nil {
					t.Fatalf("Ingest() error = %v", err)
				}
				if err := os.Remove(path); err != nil {
					t.Fatalf("Remove() error = %v", err)
				}
			},
			rowID:      "R1",
			body:       `{"text": "new"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "line edited away",
			prepare: func(t *testing.T, svc *service.Service, docsDir string) {
				writeDoc(t, docsDir, "ledger.md", "## x\nR1|old|s|d\n")
				if _, err := svc.Ingest(context.Background(), "ledger.md", "", true); err != nil {
					t.Fatalf("Ingest() error = %v", err)
				}
				writeDoc(t, docsDir, "ledger.md", "## x\nR1|broken\n")
			},
			rowID:      "R1",
			body:       `{"text": "new"}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing text",
			prepare:    func(t *testing.T, svc *service.Service, docsDir string) {},
			rowID:      "R1",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			prepare:    func(t *testing.T, svc *service.Service, docsDir string) {},
			rowID:      "R1",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, docsDir := newTestService(t)
			tt.prepare(t, svc, docsDir)

			w := postUpdate(t, svc, tt.rowID, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
