package tasks_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"taskman/internal/tasks"
)

func TestParsePriorityAcceptsValidCodes(t *testing.T) {
	for code := 1; code <= 4; code++ {
		p, err := tasks.ParsePriority(code)
		if err != nil {
			t.Fatalf("ParsePriority(%d) returned error: %v", code, err)
		}
		if int(p) != code {
			t.Fatalf("ParsePriority(%d) = %d", code, p)
		}
	}
}

func TestParsePriorityRejectsOutOfRange(t *testing.T) {
	for _, code := range []int{-1, 0, 5, 42} {
		if _, err := tasks.ParsePriority(code); !errors.Is(err, tasks.ErrInvalidPriority) {
			t.Fatalf("ParsePriority(%d): expected ErrInvalidPriority, got %v", code, err)
		}
	}
}

func TestParsePriorityName(t *testing.T) {
	cases := map[string]tasks.Priority{
		"low":    tasks.PriorityLow,
		" HIGH ": tasks.PriorityHigh,
		"4":      tasks.PriorityUrgent,
		"Medium": tasks.PriorityMedium,
	}
	for input, want := range cases {
		got, err := tasks.ParsePriorityName(input)
		if err != nil {
			t.Fatalf("ParsePriorityName(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParsePriorityName(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := tasks.ParsePriorityName("critical"); !errors.Is(err, tasks.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	got, err := tasks.ParseStatus("In-Progress")
	if err != nil {
		t.Fatalf("ParseStatus returned error: %v", err)
	}
	if got != tasks.StatusInProgress {
		t.Fatalf("unexpected status %q", got)
	}
	if _, err := tasks.ParseStatus("blocked"); !errors.Is(err, tasks.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestParseDueDate(t *testing.T) {
	due, err := tasks.ParseDueDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDueDate returned error: %v", err)
	}
	if due.Year() != 2024 || due.Month() != time.February || due.Day() != 29 || due.Hour() != 0 {
		t.Fatalf("unexpected due date %v", due)
	}
	short, err := tasks.ParseDueDate("2024-1-5")
	if err != nil || short.Month() != time.January || short.Day() != 5 {
		t.Fatalf("ParseDueDate(unpadded) = %v, %v", short, err)
	}
	for _, bad := range []string{"2024-13-01", "2023-02-29", "tomorrow", "", " 2024-02-29", "2024-02-29 ", "2024-02-29T10:00"} {
		if _, err := tasks.ParseDueDate(bad); !errors.Is(err, tasks.ErrInvalidDate) {
			t.Fatalf("ParseDueDate(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestNewDeduplicatesTags(t *testing.T) {
	task := tasks.New("  Write report ", "", tasks.PriorityLow, nil, []string{"work", "work", " ", "home"}, time.Now())
	if task.Title != "Write report" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if len(task.Tags) != 2 || task.Tags[0] != "work" || task.Tags[1] != "home" {
		t.Fatalf("unexpected tags %v", task.Tags)
	}
	if task.Status != tasks.StatusTodo {
		t.Fatalf("expected todo status, got %s", task.Status)
	}
}

func TestSetStatusKeepsCompletedAtConsistent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	task := tasks.New("A", "", tasks.PriorityMedium, nil, nil, now)

	task.SetStatus(tasks.StatusDone, now)
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("expected completed_at %v, got %v", now, task.CompletedAt)
	}

	task.SetStatus(tasks.StatusDone, now.Add(time.Hour))
	if !task.CompletedAt.Equal(now) {
		t.Fatal("expected completed_at to be preserved on repeated DONE")
	}

	task.SetStatus(tasks.StatusAbandoned, now)
	if task.CompletedAt != nil {
		t.Fatal("expected completed_at cleared when leaving DONE")
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	cases := []struct {
		name   string
		due    *time.Time
		status tasks.Status
		want   bool
	}{
		{"no due date", nil, tasks.StatusTodo, false},
		{"past due open", &past, tasks.StatusTodo, true},
		{"past due in progress", &past, tasks.StatusInProgress, true},
		{"future due", &future, tasks.StatusTodo, false},
		{"past due done", &past, tasks.StatusDone, false},
		{"past due abandoned", &past, tasks.StatusAbandoned, false},
	}
	for _, tc := range cases {
		task := &tasks.Task{Status: tc.status, DueDate: tc.due}
		if got := task.IsOverdue(now); got != tc.want {
			t.Fatalf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDaysPastDueTruncates(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(-(7*24*time.Hour + 23*time.Hour))
	task := &tasks.Task{DueDate: &due}
	if got := task.DaysPastDue(now); got != 7 {
		t.Fatalf("DaysPastDue = %d, want 7", got)
	}
}

func TestDaysPastDueAcrossDST(t *testing.T) {
	pinLocalZone(t, "America/New_York")

	cases := []struct {
		name string
		due  string
		now  time.Time
		want int
	}{
		{"spring forward", "2024-03-03", time.Date(2024, 3, 11, 0, 30, 0, 0, time.Local), 8},
		{"fall back", "2024-10-29", time.Date(2024, 11, 5, 23, 30, 0, 0, time.Local), 7},
		{"no shift", "2024-06-01", time.Date(2024, 6, 9, 0, 30, 0, 0, time.Local), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			due, err := tasks.ParseDueDate(tc.due)
			if err != nil {
				t.Fatalf("ParseDueDate: %v", err)
			}
			task := &tasks.Task{DueDate: &due}
			if got := task.DaysPastDue(tc.now); got != tc.want {
				t.Fatalf("DaysPastDue = %d, want %d", got, tc.want)
			}
		})
	}
}

// pinLocalZone swaps time.Local for the duration of the test.
func pinLocalZone(t *testing.T, name string) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestTagHelpers(t *testing.T) {
	task := &tasks.Task{}
	if !task.AddTag("a") {
		t.Fatal("expected first AddTag to change the task")
	}
	if task.AddTag("a") {
		t.Fatal("expected duplicate AddTag to be a no-op")
	}
	if task.RemoveTag("b") {
		t.Fatal("expected RemoveTag of absent tag to report false")
	}
	if !task.RemoveTag("a") || len(task.Tags) != 0 {
		t.Fatalf("expected tag removed, got %v", task.Tags)
	}
}

func TestApplyFields(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	task := tasks.New("A", "", tasks.PriorityLow, nil, nil, now)
	high := tasks.PriorityHigh
	due := now.Add(24 * time.Hour)
	task.Apply(tasks.Fields{Priority: &high, DueDate: &due}, now)
	if task.Priority != tasks.PriorityHigh {
		t.Fatalf("expected HIGH, got %s", task.Priority)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("expected due date %v, got %v", due, task.DueDate)
	}

	done := tasks.StatusDone
	task.Apply(tasks.Fields{Status: &done}, now)
	if task.CompletedAt == nil {
		t.Fatal("expected completed_at set when applying DONE")
	}
	if !(tasks.Fields{}).IsEmpty() {
		t.Fatal("expected zero Fields to be empty")
	}
}
