package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskman/internal/tasks"
)

const upsertTask = `INSERT INTO tasks (` + taskColumns + `, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    priority = excluded.priority,
    status = excluded.status,
    due_date = excluded.due_date,
    tags_json = excluded.tags_json,
    created_at = excluded.created_at,
    completed_at = excluded.completed_at,
    updated_at = excluded.updated_at`

// Add inserts a new task and returns its id. A UUID is assigned when the
// task has none; the caller's task is updated with it.
func (s *Store) Add(ctx context.Context, task *tasks.Task) (string, error) {
	if task == nil {
		return "", errors.New("task is nil")
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	args, err := taskArgs(task, s.now())
	if err != nil {
		return "", err
	}
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO tasks (`+taskColumns+`, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	); err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return task.ID, nil
}

// Get fetches a task by id. It returns nil, nil when no such task exists.
func (s *Store) Get(ctx context.Context, id string) (*tasks.Task, error) {
	task, err := getTask(ensureContext(ctx), s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// All returns every task in creation order.
func (s *Store) All(ctx context.Context) ([]*tasks.Task, error) {
	list, err := s.queryTasks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

// ByStatus returns tasks with the given status.
func (s *Store) ByStatus(ctx context.Context, status tasks.Status) ([]*tasks.Task, error) {
	list, err := s.queryTasks(ctx, "status = ?", string(status))
	if err != nil {
		return nil, fmt.Errorf("list tasks by status: %w", err)
	}
	return list, nil
}

// ByPriority returns tasks with the given priority.
func (s *Store) ByPriority(ctx context.Context, priority tasks.Priority) ([]*tasks.Task, error) {
	list, err := s.queryTasks(ctx, "priority = ?", int(priority))
	if err != nil {
		return nil, fmt.Errorf("list tasks by priority: %w", err)
	}
	return list, nil
}

// Overdue returns open tasks whose due date lies before now. Candidates are
// narrowed in SQL and the final decision uses Task.IsOverdue so the store
// and the statistics agree on the definition.
func (s *Store) Overdue(ctx context.Context, now time.Time) ([]*tasks.Task, error) {
	terminal := []any{string(tasks.StatusDone), string(tasks.StatusAbandoned)}
	candidates, err := s.queryTasks(ctx,
		"due_date IS NOT NULL AND status NOT IN ("+makePlaceholders(len(terminal))+")",
		terminal...,
	)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	var overdue []*tasks.Task
	for _, task := range candidates {
		if task.IsOverdue(now) {
			overdue = append(overdue, task)
		}
	}
	return overdue, nil
}

// Update applies a partial update and reports whether the task existed.
func (s *Store) Update(ctx context.Context, id string, fields tasks.Fields) (bool, error) {
	ctx = ensureContext(ctx)
	var found bool
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		task, err := getTask(ctx, tx, id)
		if err != nil || task == nil {
			found = false
			return err
		}
		found = true
		now := s.now()
		task.Apply(fields, now)
		return upsert(ctx, tx, task, now)
	})
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return found, nil
}

// Delete removes a task and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Save writes the given tasks in a single transaction. Tasks without an id
// are assigned one. Calling Save with no tasks is a no-op.
func (s *Store) Save(ctx context.Context, changed ...*tasks.Task) error {
	if len(changed) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		now := s.now()
		for _, task := range changed {
			if task == nil {
				continue
			}
			if task.ID == "" {
				task.ID = uuid.NewString()
			}
			if err := upsert(ctx, tx, task, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, tx *sql.Tx, task *tasks.Task, now time.Time) error {
	args, err := taskArgs(task, now)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertTask, args...); err != nil {
		return fmt.Errorf("write task %s: %w", task.ID, err)
	}
	return nil
}
