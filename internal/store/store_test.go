package store_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskman/internal/store"
	"taskman/internal/tasks"
	"taskman/internal/testsupport"
)

func TestOpenAddGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	created := testsupport.AddTask(t, st, "Sample task", tasks.PriorityHigh, "2024-06-20", "work", "q2")
	if created.ID == "" {
		t.Fatal("expected task ID to be assigned")
	}

	fetched, err := st.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil || fetched.Title != "Sample task" || fetched.Priority != tasks.PriorityHigh {
		t.Fatalf("unexpected fetched task: %#v", fetched)
	}
	if fetched.Status != tasks.StatusTodo || fetched.CompletedAt != nil {
		t.Fatalf("unexpected status fields: %#v", fetched)
	}
	if got := tasks.FormatDueDate(fetched.DueDate); got != "2024-06-20" {
		t.Fatalf("due date = %q", got)
	}
	if strings.Join(fetched.Tags, ",") != "work,q2" {
		t.Fatalf("tags = %v", fetched.Tags)
	}
	if !fetched.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", fetched.CreatedAt, created.CreatedAt)
	}
	if _, err := os.Stat(cfg.DatabasePath()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	task, err := st.Get(context.Background(), "does-not-exist")
	if err != nil || task != nil {
		t.Fatalf("expected nil, nil; got %v, %v", task, err)
	}
}

func TestOpenIsExclusive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	second, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen after close failed: %v", err)
	}
	_ = second.Close()
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = st.Close()

	db, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	// The failed open must release the lock.
	if _, err := store.Open(cfg); errors.Is(err, store.ErrLocked) {
		t.Fatalf("lock leaked after failed open")
	}
}

func TestQueriesFilterAndOrder(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	late := testsupport.AddTask(t, st, "late", tasks.PriorityLow, "2024-06-10")
	future := testsupport.AddTask(t, st, "future", tasks.PriorityHigh, "2099-01-01")
	finished := testsupport.AddTask(t, st, "finished", tasks.PriorityHigh, "2024-06-01")
	undated := testsupport.AddTask(t, st, "undated", tasks.PriorityMedium, "")

	done := tasks.StatusDone
	if ok, err := st.Update(ctx, finished.ID, tasks.Fields{Status: &done}); err != nil || !ok {
		t.Fatalf("Update failed: ok=%v err=%v", ok, err)
	}

	all, err := st.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	assertIDs(t, "all", all, late.ID, future.ID, finished.ID, undated.ID)

	byStatus, err := st.ByStatus(ctx, tasks.StatusDone)
	if err != nil {
		t.Fatalf("ByStatus failed: %v", err)
	}
	assertIDs(t, "by status", byStatus, finished.ID)

	byPriority, err := st.ByPriority(ctx, tasks.PriorityHigh)
	if err != nil {
		t.Fatalf("ByPriority failed: %v", err)
	}
	assertIDs(t, "by priority", byPriority, future.ID, finished.ID)

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	overdue, err := st.Overdue(ctx, now)
	if err != nil {
		t.Fatalf("Overdue failed: %v", err)
	}
	assertIDs(t, "overdue", overdue, late.ID)
}

func TestUpdateMaintainsCompletion(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	task := testsupport.AddTask(t, st, "cycle", tasks.PriorityLow, "")

	if ok, err := st.Update(ctx, "missing", tasks.Fields{}); err != nil || ok {
		t.Fatalf("missing id: ok=%v err=%v", ok, err)
	}

	done := tasks.StatusDone
	if _, err := st.Update(ctx, task.ID, tasks.Fields{Status: &done}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	fetched, _ := st.Get(ctx, task.ID)
	if fetched.Status != tasks.StatusDone || fetched.CompletedAt == nil {
		t.Fatalf("expected completed task, got %#v", fetched)
	}

	todo := tasks.StatusTodo
	title := "renamed"
	if _, err := st.Update(ctx, task.ID, tasks.Fields{Status: &todo, Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	fetched, _ = st.Get(ctx, task.ID)
	if fetched.Status != tasks.StatusTodo || fetched.CompletedAt != nil || fetched.Title != "renamed" {
		t.Fatalf("expected reopened task, got %#v", fetched)
	}
}

func TestSaveAndDelete(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	a := testsupport.AddTask(t, st, "a", tasks.PriorityLow, "")
	b := testsupport.AddTask(t, st, "b", tasks.PriorityLow, "")

	a.Status = tasks.StatusAbandoned
	b.AddTag("batch")
	if err := st.Save(ctx, a, b); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := st.Save(ctx); err != nil {
		t.Fatalf("empty Save failed: %v", err)
	}

	gotA, _ := st.Get(ctx, a.ID)
	gotB, _ := st.Get(ctx, b.ID)
	if gotA.Status != tasks.StatusAbandoned || !gotB.HasTag("batch") {
		t.Fatalf("save not persisted: %#v %#v", gotA, gotB)
	}

	all, _ := st.All(ctx)
	assertIDs(t, "order after save", all, a.ID, b.ID)

	if ok, err := st.Delete(ctx, a.ID); err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}
	if ok, _ := st.Delete(ctx, a.ID); ok {
		t.Fatal("second delete should report false")
	}
	if got, _ := st.Get(ctx, a.ID); got != nil {
		t.Fatal("deleted task still present")
	}
}

func TestExportCSV(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	task := testsupport.AddTask(t, st, "Write, report", tasks.PriorityUrgent, "2024-06-20", "a", "b")

	path := filepath.Join(cfg.Paths.ExportDir, "tasks.csv")
	if err := st.ExportCSV(ctx, path); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	rows := testsupport.ReadCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(store.CSVHeader, ",") {
		t.Fatalf("header = %v", rows[0])
	}
	row := rows[1]
	if row[0] != task.ID || row[1] != "Write, report" || row[3] != "URGENT" || row[4] != "todo" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[5] != "2024-06-20" || row[6] != "a;b" || row[8] != "" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestExportJSONAndPDF(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	testsupport.AddTask(t, st, "Café run", tasks.PriorityLow, "")

	jsonPath := filepath.Join(cfg.Paths.ExportDir, "tasks.json")
	if err := st.Export(ctx, jsonPath, "json"); err != nil {
		t.Fatalf("json export failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var records []store.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decode json export: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Café run" || records[0].Priority != "LOW" {
		t.Fatalf("unexpected records: %#v", records)
	}

	pdfPath := filepath.Join(cfg.Paths.ExportDir, "tasks.pdf")
	if err := st.Export(ctx, pdfPath, "PDF"); err != nil {
		t.Fatalf("pdf export failed: %v", err)
	}
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Fatalf("pdf export missing header")
	}

	if err := st.Export(ctx, filepath.Join(cfg.Paths.ExportDir, "tasks.xml"), "xml"); !errors.Is(err, store.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.AddTask(t, st, "one", tasks.PriorityLow, "")

	health, err := st.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists || !health.IntegrityCheck {
		t.Fatalf("unexpected health: %#v", health)
	}
	if len(health.MissingColumns) != 0 || health.TotalTasks != 1 {
		t.Fatalf("unexpected health: %#v", health)
	}
	if health.DBPath != st.Path() {
		t.Fatalf("db path = %q, want %q", health.DBPath, st.Path())
	}
}

func assertIDs(t *testing.T, label string, list []*tasks.Task, want ...string) {
	t.Helper()
	got := make([]string, 0, len(list))
	for _, task := range list {
		got = append(got, task.ID)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("%s: got %v, want %v", label, got, want)
	}
}
