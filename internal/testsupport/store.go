package testsupport

import (
	"context"
	"testing"
	"time"

	"taskman/internal/config"
	"taskman/internal/store"
	"taskman/internal/tasks"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// AddTask stores a new TODO task built from the arguments. due is YYYY-MM-DD
// or empty.
func AddTask(t testing.TB, st *store.Store, title string, priority tasks.Priority, due string, tags ...string) *tasks.Task {
	t.Helper()

	var dueDate *time.Time
	if due != "" {
		parsed, err := tasks.ParseDueDate(due)
		if err != nil {
			t.Fatalf("parse due date %q: %v", due, err)
		}
		dueDate = &parsed
	}
	task := tasks.New(title, "", priority, dueDate, tags, time.Now())
	if _, err := st.Add(context.Background(), task); err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return task
}
