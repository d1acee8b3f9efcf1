package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"mdledger/internal/storage"
	"mdledger/internal/storage/mocks"
)

const sampleDoc = "# T\n## A\nline1\n## B\nline2\nline3\n"

func TestIndexer_IndexFile(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())
	ctx := context.Background()
	path := writeTestFile(t, t.TempDir(), "doc.md", sampleDoc)

	n, err := ix.IndexFile(ctx, path)
	if err != nil {
		t.Fatalf("IndexFile() error = %v", err)
	}
	if n != 3 {
		t.Errorf("IndexFile() headers = %d, want 3", n)
	}

	sections, err := store.GetSections(ctx, path)
	if err != nil {
		t.Fatalf("GetSections() error = %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("section count = %d, want 3", len(sections))
	}
	root := sections[0]
	if root.HeaderText != "T" || root.LineStart != 1 || root.LineEnd != 6 {
		t.Errorf("root section = %+v", root)
	}
	for _, child := range sections[1:] {
		if child.ParentID == nil || *child.ParentID != root.ID {
			t.Errorf("section %q parent = %v, want %d", child.HeaderText, child.ParentID, root.ID)
		}
	}

	rec, err := store.GetFile(ctx, path)
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if rec.Title != "T" {
		t.Errorf("file title = %q, want %q", rec.Title, "T")
	}
	if rec.LineCount != 6 {
		t.Errorf("file line count = %d, want 6", rec.LineCount)
	}
	if rec.SourceMtime.IsZero() {
		t.Error("file SourceMtime not recorded")
	}
}

func TestIndexer_IndexFile_UnchangedContentIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())
	ctx := context.Background()
	path := writeTestFile(t, t.TempDir(), "doc.md", "# T\n## A\nbody\n### A1\n## B\nmore\n")

	if _, err := ix.IndexFile(ctx, path); err != nil {
		t.Fatalf("IndexFile() error = %v", err)
	}
	first, err := store.GetSections(ctx, path)
	if err != nil {
		t.Fatalf("GetSections() error = %v", err)
	}

	if _, err := ix.IndexFile(ctx, path); err != nil {
		t.Fatalf("IndexFile() second pass error = %v", err)
	}
	second, err := store.GetSections(ctx, path)
	if err != nil {
		t.Fatalf("GetSections() error = %v", err)
	}

	if diff := cmp.Diff(sectionShapes(first), sectionShapes(second)); diff != "" {
		t.Errorf("reindex of unchanged file changed the section set (-first +second):\n%s", diff)
	}
	if len(first) != 4 {
		t.Fatalf("section count = %d, want 4", len(first))
	}
}

// sectionShape is a SectionRecord with the per-insert fields (row IDs,
// timestamps) stripped and the parent re-expressed by its start line, so two
// snapshots of identical content compare equal.
type sectionShape struct {
	Text       string
	Level      int
	LineStart  int
	LineEnd    int
	ParentLine int // 0 for roots
}

func sectionShapes(sections []storage.SectionRecord) []sectionShape {
	lineByID := make(map[int64]int, len(sections))
	for _, s := range sections {
		lineByID[s.ID] = s.LineStart
	}
	shapes := make([]sectionShape, 0, len(sections))
	for _, s := range sections {
		shape := sectionShape{
			Text:      s.HeaderText,
			Level:     s.Level,
			LineStart: s.LineStart,
			LineEnd:   s.LineEnd,
		}
		if s.ParentID != nil {
			shape.ParentLine = lineByID[*s.ParentID]
		}
		shapes = append(shapes, shape)
	}
	return shapes
}

func TestIndexer_IndexFile_NoHeaders(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())
	ctx := context.Background()
	path := writeTestFile(t, t.TempDir(), "release-notes.md", "just prose\nno headers here\n")

	n, err := ix.IndexFile(ctx, path)
	if err != nil {
		t.Fatalf("IndexFile() error = %v", err)
	}
	if n != 0 {
		t.Errorf("IndexFile() headers = %d, want 0", n)
	}

	sections, err := store.GetSections(ctx, path)
	if err != nil {
		t.Fatalf("GetSections() error = %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("section count = %d, want 0", len(sections))
	}

	// The file is still recorded so freshness checks work, with the title
	// falling back to the filename.
	rec, err := store.GetFile(ctx, path)
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if rec.Title != "Release Notes" {
		t.Errorf("file title = %q, want %q", rec.Title, "Release Notes")
	}
}

func TestIndexer_IndexFile_Missing(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())

	_, err := ix.IndexFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
	if err == nil {
		t.Fatal("IndexFile() expected error for missing file")
	}
}

func TestIndexer_IndexPath_Directory(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())
	ctx := context.Background()

	dir := t.TempDir()
	writeTestFile(t, dir, "a.md", "# A\n")
	writeTestFile(t, dir, "b.md", "# B\n")
	writeTestFile(t, dir, "notes.txt", "# not markdown\n")
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	writeTestFile(t, sub, "c.md", "# C\n")

	tests := []struct {
		name        string
		recursive   bool
		wantFiles   int
		wantHeaders int
	}{
		{name: "top level only", recursive: false, wantFiles: 2, wantHeaders: 2},
		{name: "recursive", recursive: true, wantFiles: 3, wantHeaders: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, headers, err := ix.IndexPath(ctx, dir, tt.recursive)
			if err != nil {
				t.Fatalf("IndexPath() error = %v", err)
			}
			if files != tt.wantFiles || headers != tt.wantHeaders {
				t.Errorf("IndexPath() = (%d files, %d headers), want (%d, %d)",
					files, headers, tt.wantFiles, tt.wantHeaders)
			}
		})
	}
}

func TestIndexer_IndexPath_SingleFile(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())
	path := writeTestFile(t, t.TempDir(), "doc.md", "# T\n")

	files, headers, err := ix.IndexPath(context.Background(), path, false)
	if err != nil {
		t.Fatalf("IndexPath() error = %v", err)
	}
	if files != 1 || headers != 1 {
		t.Errorf("IndexPath() = (%d files, %d headers), want (1, 1)", files, headers)
	}
}

func TestIndexer_IndexPath_ContinuesPastFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSectionStore(ctrl)
	ix := NewIndexer(store, discardLogger())
	ctx := context.Background()

	dir := t.TempDir()
	bad := writeTestFile(t, dir, "bad.md", "# Bad\n")
	good := writeTestFile(t, dir, "good.md", "# Good\n")

	store.EXPECT().
		ReplaceSections(gomock.Any(), bad, gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))
	store.EXPECT().
		ReplaceSections(gomock.Any(), good, gomock.Any(), gomock.Any()).
		Return(nil)

	files, _, err := ix.IndexPath(ctx, dir, false)
	if err != nil {
		t.Fatalf("IndexPath() error = %v", err)
	}
	if files != 1 {
		t.Errorf("IndexPath() files = %d, want 1", files)
	}
}

func TestIndexer_EnsureFresh(t *testing.T) {
	store, _ := newTestStore(t)
	ix := NewIndexer(store, discardLogger())
	ctx := context.Background()
	dir := t.TempDir()
	path := writeTestFile(t, dir, "doc.md", "# Old\n")

	// First call sees an unindexed file and indexes it.
	freshness, err := ix.EnsureFresh(ctx, path)
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	if freshness != Unindexed {
		t.Errorf("EnsureFresh() = %v, want Unindexed", freshness)
	}

	// Second call is a no-op.
	freshness, err = ix.EnsureFresh(ctx, path)
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	if freshness != Fresh {
		t.Errorf("EnsureFresh() = %v, want Fresh", freshness)
	}

	// A modified file is reindexed and queries see the new content.
	writeTestFile(t, dir, "doc.md", "# New\n")
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	freshness, err = ix.EnsureFresh(ctx, path)
	if err != nil {
		t.Fatalf("EnsureFresh() error = %v", err)
	}
	if freshness != Stale {
		t.Errorf("EnsureFresh() = %v, want Stale", freshness)
	}

	sections, err := store.GetSections(ctx, path)
	if err != nil {
		t.Fatalf("GetSections() error = %v", err)
	}
	if len(sections) != 1 || sections[0].HeaderText != "New" {
		t.Errorf("sections after reindex = %+v", sections)
	}
}
