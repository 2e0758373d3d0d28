package preflight

import (
	"context"

	"taskman/internal/config"
	"taskman/internal/store"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// DatabaseChecker reports database health; *store.Store implements it.
type DatabaseChecker interface {
	CheckHealth(ctx context.Context) (store.DatabaseHealth, error)
}

// RunAll executes every check for cfg. db may be nil when the store could not
// be opened; the database check then reports the failure.
func RunAll(ctx context.Context, cfg *config.Config, db DatabaseChecker) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckConfig(cfg),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckExportDirectory(cfg.Paths.ExportDir),
		CheckDatabase(ctx, db),
	}
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
