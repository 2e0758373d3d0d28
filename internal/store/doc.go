// Package store persists tasks in a local SQLite database.
//
// A Store owns the data directory for its lifetime: Open takes an exclusive
// file lock next to the database and fails with ErrLocked when another
// process already holds it. The schema is embedded and versioned; a version
// mismatch is reported as ErrSchemaMismatch rather than migrated.
//
// Besides the persistence methods the task manager relies on, the store
// exports the full task list as CSV, JSON, or PDF and reports database
// health for diagnostics.
package store
