package manager

import (
	"context"
	"fmt"
	"time"

	"taskman/internal/logging"
	"taskman/internal/tasks"
)

// AbandonOldTasks marks LOW and MEDIUM tasks that are more than
// AbandonAfterDays whole days past due as ABANDONED. DONE and ABANDONED tasks
// are skipped. All changes are persisted in one save after the scan, and the
// number of abandoned tasks is returned.
func (m *Manager) AbandonOldTasks(ctx context.Context) (int, error) {
	all, err := m.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}

	now := m.now()
	var changed []*tasks.Task
	for _, task := range all {
		if !shouldAbandon(task, now) {
			continue
		}
		// CompletedAt stays nil: ABANDONED is not a completion.
		task.Status = tasks.StatusAbandoned
		changed = append(changed, task)
		m.logger.Debug("task abandoned", logging.TaskID(task.ID), logging.Int("days_past_due", task.DaysPastDue(now)))
	}

	if err := m.store.Save(ctx, changed...); err != nil {
		return 0, fmt.Errorf("save abandoned tasks: %w", err)
	}
	if len(changed) > 0 {
		m.logger.Info("abandoned overdue tasks", logging.Int(logging.FieldCount, len(changed)))
	}
	return len(changed), nil
}

func shouldAbandon(task *tasks.Task, now time.Time) bool {
	if task.Status.IsTerminal() || task.Priority.ExemptFromAbandon() || task.DueDate == nil {
		return false
	}
	return task.DaysPastDue(now) > AbandonAfterDays
}
