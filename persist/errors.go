package persist

import "errors"

// Sentinel errors for snapshot store operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrLoadFailed       = errors.New("load failed")
	ErrSaveFailed       = errors.New("save failed")
)
