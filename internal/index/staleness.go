package index

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mdledger/internal/storage"
)

// Freshness classifies an indexed file against its current on-disk state.
type Freshness int

const (
	// Unindexed means the file has never been indexed.
	Unindexed Freshness = iota
	// Stale means the file was indexed, but its on-disk modification time no
	// longer matches the one recorded at index time.
	Stale
	// Fresh means the recorded modification time matches the file on disk.
	Fresh
)

func (f Freshness) String() string {
	switch f {
	case Unindexed:
		return "unindexed"
	case Stale:
		return "stale"
	case Fresh:
		return "fresh"
	default:
		return fmt.Sprintf("Freshness(%d)", int(f))
	}
}

// CheckFreshness compares the recorded modification time for path against the
// file on disk. It costs one stat call and one single-row store read,
// independent of document size.
//
// A record without a modification time predates mtime tracking and is always
// Stale. A file that is indexed but no longer exists on disk is reported
// Fresh: the index is the only remaining source for its content, and a
// reindex attempt would just fail.
func CheckFreshness(ctx context.Context, store storage.SectionStore, path string) (Freshness, error) {
	rec, err := store.GetFile(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		return Unindexed, nil
	}
	if err != nil {
		return Unindexed, fmt.Errorf("failed to load index record for %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Fresh, nil
	}
	if err != nil {
		return Stale, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if rec.SourceMtime.IsZero() {
		return Stale, nil
	}
	if info.ModTime().UnixNano() > rec.SourceMtime.UnixNano() {
		return Stale, nil
	}
	return Fresh, nil
}
