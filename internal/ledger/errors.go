package ledger

import "errors"

var (
	// ErrRowNotFound is returned when the requested row_id is not in the store.
	ErrRowNotFound = errors.New("row not found")
	// ErrFileMissing is returned when a row's source file no longer exists.
	ErrFileMissing = errors.New("source file missing")
	// ErrLineOutOfRange is returned when a row's recorded line number exceeds
	// the current file's line count.
	ErrLineOutOfRange = errors.New("line out of range")
	// ErrMalformedLine is returned when the target line no longer carries the
	// minimum column count, typically after an external edit.
	ErrMalformedLine = errors.New("line is missing required columns")
	// ErrSyncFailed is returned when the file was rewritten but the store
	// update failed afterwards. The file and the store disagree; callers must
	// surface this, not retry blindly.
	ErrSyncFailed = errors.New("file updated but store sync failed")
)
