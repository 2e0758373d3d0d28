package store

import "errors"

var (
	// ErrLocked indicates another process has the data directory open.
	ErrLocked = errors.New("task database is locked by another process")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrUnknownFormat is returned by Export for unsupported formats.
	ErrUnknownFormat = errors.New("unknown export format")
)
