package tasks

import (
	"slices"
	"strings"
	"time"
)

// Task is a single tracked unit of work.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     *time.Time
	Tags        []string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// New builds a TODO task. Tags are de-duplicated preserving first occurrence;
// the ID is assigned by the store.
func New(title, description string, priority Priority, due *time.Time, tags []string, now time.Time) *Task {
	return &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Priority:    priority,
		Status:      StatusTodo,
		DueDate:     due,
		Tags:        normalizeTags(tags),
		CreatedAt:   now,
	}
}

// MarkDone moves the task to DONE and stamps the completion time.
func (t *Task) MarkDone(now time.Time) {
	t.Status = StatusDone
	completed := now
	t.CompletedAt = &completed
}

// SetStatus writes a status and keeps CompletedAt consistent with it.
func (t *Task) SetStatus(status Status, now time.Time) {
	if status == StatusDone {
		if t.Status != StatusDone || t.CompletedAt == nil {
			t.MarkDone(now)
		}
		return
	}
	t.Status = status
	t.CompletedAt = nil
}

// IsOverdue reports whether the due date has passed on a task that is still
// open.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status.IsTerminal() {
		return false
	}
	return t.DueDate.Before(now)
}

// DaysPastDue returns the whole days elapsed since the due date, or 0 when no
// due date is set.
func (t *Task) DaysPastDue(now time.Time) int {
	if t.DueDate == nil {
		return 0
	}
	return wholeDaysBetween(*t.DueDate, now)
}

// HasTag reports whether tag is attached to the task.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// AddTag appends tag unless already present and reports whether it changed
// the task.
func (t *Task) AddTag(tag string) bool {
	if t.HasTag(tag) {
		return false
	}
	t.Tags = append(t.Tags, tag)
	return true
}

// RemoveTag drops tag and reports whether it was present.
func (t *Task) RemoveTag(tag string) bool {
	idx := slices.Index(t.Tags, tag)
	if idx < 0 {
		return false
	}
	t.Tags = slices.Delete(t.Tags, idx, idx+1)
	return true
}

// Apply writes the populated fields onto the task.
func (t *Task) Apply(f Fields, now time.Time) {
	if f.Title != nil {
		t.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.Status != nil {
		t.SetStatus(*f.Status, now)
	}
	if f.DueDate != nil {
		due := *f.DueDate
		t.DueDate = &due
	}
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.DueDate != nil {
		due := *t.DueDate
		cp.DueDate = &due
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		cp.CompletedAt = &completed
	}
	cp.Tags = slices.Clone(t.Tags)
	return &cp
}

// Fields is a partial update; nil members are left untouched.
type Fields struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
	DueDate     *time.Time
}

// IsEmpty reports whether the update would change nothing.
func (f Fields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Priority == nil &&
		f.Status == nil && f.DueDate == nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || slices.Contains(out, trimmed) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
