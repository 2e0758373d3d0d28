package manager

import (
	"context"
	"fmt"
	"strings"

	"taskman/internal/tasks"
)

// ListFilter selects tasks for ListTasks. Exactly one dimension applies:
// Overdue wins over Status, which wins over Priority. Zero values mean "not
// set".
type ListFilter struct {
	Status   string
	Priority int
	Overdue  bool
}

// Stats aggregates the task collection. ByStatus is keyed by status value
// and ByPriority by priority name; every member is present.
type Stats struct {
	Total             int            `json:"total"`
	ByStatus          map[string]int `json:"by_status"`
	ByPriority        map[string]int `json:"by_priority"`
	Overdue           int            `json:"overdue"`
	CompletedLastWeek int            `json:"completed_last_week"`
}

// ListTasks returns tasks matching the single highest-precedence filter, or
// every task when none is set.
func (m *Manager) ListTasks(ctx context.Context, filter ListFilter) ([]*tasks.Task, error) {
	var (
		list []*tasks.Task
		err  error
	)
	switch {
	case filter.Overdue:
		list, err = m.store.Overdue(ctx, m.now())
	case strings.TrimSpace(filter.Status) != "":
		status, parseErr := tasks.ParseStatus(filter.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		list, err = m.store.ByStatus(ctx, status)
	case filter.Priority != 0:
		priority, parseErr := tasks.ParsePriority(filter.Priority)
		if parseErr != nil {
			return nil, parseErr
		}
		list, err = m.store.ByPriority(ctx, priority)
	default:
		list, err = m.store.All(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

// Statistics counts tasks by status and priority along with overdue and
// recently completed totals.
func (m *Manager) Statistics(ctx context.Context) (Stats, error) {
	all, err := m.store.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list tasks: %w", err)
	}

	now := m.now()
	weekAgo := now.Add(-CompletedWindow)
	stats := Stats{
		Total:      len(all),
		ByStatus:   make(map[string]int, len(tasks.AllStatuses())),
		ByPriority: make(map[string]int, len(tasks.AllPriorities())),
	}
	for _, status := range tasks.AllStatuses() {
		stats.ByStatus[string(status)] = 0
	}
	for _, priority := range tasks.AllPriorities() {
		stats.ByPriority[priority.String()] = 0
	}

	for _, task := range all {
		stats.ByStatus[string(task.Status)]++
		stats.ByPriority[task.Priority.String()]++
		if task.IsOverdue(now) {
			stats.Overdue++
		}
		if c := task.CompletedAt; c != nil && !c.Before(weekAgo) && !c.After(now) {
			stats.CompletedLastWeek++
		}
	}
	return stats, nil
}

// ExportTasks writes every task to filename as CSV.
func (m *Manager) ExportTasks(ctx context.Context, filename string) error {
	if err := m.store.ExportCSV(ctx, filename); err != nil {
		return fmt.Errorf("export tasks: %w", err)
	}
	return nil
}

// ExportTasksAs writes every task to filename in format (csv, json, or pdf).
// Stores that only implement CSV reject other formats.
func (m *Manager) ExportTasksAs(ctx context.Context, filename, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == "csv" {
		return m.ExportTasks(ctx, filename)
	}
	exporter, ok := m.store.(Exporter)
	if !ok {
		return fmt.Errorf("export tasks: store does not support %s export", format)
	}
	if err := exporter.Export(ctx, filename, format); err != nil {
		return fmt.Errorf("export tasks: %w", err)
	}
	return nil
}
