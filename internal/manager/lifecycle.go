package manager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskman/internal/logging"
	"taskman/internal/tasks"
)

// NewTask carries raw creation input. Priority is the integer code (1-4) and
// DueDate is YYYY-MM-DD or empty.
type NewTask struct {
	Title       string
	Description string
	Priority    int
	DueDate     string
	Tags        []string
}

// Edit changes a task's free-text fields; nil members are left alone.
type Edit struct {
	Title       *string
	Description *string
}

// CreateTask validates req and stores a new TODO task. created is false, with
// a nil error, when the due date cannot be parsed; nothing is stored then.
func (m *Manager) CreateTask(ctx context.Context, req NewTask) (id string, created bool, err error) {
	priority, err := tasks.ParsePriority(req.Priority)
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return "", false, tasks.ErrEmptyTitle
	}

	var due *time.Time
	if req.DueDate != "" {
		parsed, ok := m.parseDueDate("create_task", req.DueDate)
		if !ok {
			return "", false, nil
		}
		due = &parsed
	}

	task := tasks.New(req.Title, req.Description, priority, due, req.Tags, m.now())
	id, err = m.store.Add(ctx, task)
	if err != nil {
		return "", false, fmt.Errorf("add task: %w", err)
	}
	m.logger.Info("task created", logging.TaskID(id), logging.String("priority", priority.String()))
	return id, true, nil
}

// UpdateTaskStatus sets a task's status. Moving to DONE stamps CompletedAt;
// every other status is written through the store's generic update.
func (m *Manager) UpdateTaskStatus(ctx context.Context, id, value string) (bool, error) {
	status, err := tasks.ParseStatus(value)
	if err != nil {
		return false, err
	}
	if status != tasks.StatusDone {
		return m.update(ctx, "update_task_status", id, tasks.Fields{Status: &status})
	}

	task, err := m.store.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return false, nil
	}
	task.MarkDone(m.now())
	if err := m.store.Save(ctx, task); err != nil {
		return false, fmt.Errorf("save task: %w", err)
	}
	m.logger.Info("task completed", logging.TaskID(id))
	return true, nil
}

// UpdateTaskPriority sets a task's priority from its integer code.
func (m *Manager) UpdateTaskPriority(ctx context.Context, id string, value int) (bool, error) {
	priority, err := tasks.ParsePriority(value)
	if err != nil {
		return false, err
	}
	return m.update(ctx, "update_task_priority", id, tasks.Fields{Priority: &priority})
}

// UpdateTaskDueDate sets a task's due date. An unparseable date is reported
// on the message channel and yields false.
func (m *Manager) UpdateTaskDueDate(ctx context.Context, id, value string) (bool, error) {
	due, ok := m.parseDueDate("update_task_due_date", value)
	if !ok {
		return false, nil
	}
	return m.update(ctx, "update_task_due_date", id, tasks.Fields{DueDate: &due})
}

// EditTask replaces the title and/or description.
func (m *Manager) EditTask(ctx context.Context, id string, edit Edit) (bool, error) {
	if edit.Title != nil && strings.TrimSpace(*edit.Title) == "" {
		return false, tasks.ErrEmptyTitle
	}
	fields := tasks.Fields{Title: edit.Title, Description: edit.Description}
	if fields.IsEmpty() {
		return false, nil
	}
	return m.update(ctx, "edit_task", id, fields)
}

// DeleteTask removes a task; false means the id was unknown.
func (m *Manager) DeleteTask(ctx context.Context, id string) (bool, error) {
	deleted, err := m.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	if deleted {
		m.logger.Info("task deleted", logging.TaskID(id))
	}
	return deleted, nil
}

// GetTaskDetails returns the task, or nil when the id is unknown.
func (m *Manager) GetTaskDetails(ctx context.Context, id string) (*tasks.Task, error) {
	task, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// AddTagToTask attaches tag. It returns true whenever the task exists, even
// if the tag was already present; the task is only saved when it changed.
func (m *Manager) AddTagToTask(ctx context.Context, id, tag string) (bool, error) {
	task, err := m.store.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return false, nil
	}
	if task.AddTag(tag) {
		if err := m.store.Save(ctx, task); err != nil {
			return false, fmt.Errorf("save task: %w", err)
		}
	}
	return true, nil
}

// RemoveTagFromTask detaches tag. It returns false when the task is missing
// or does not carry the tag.
func (m *Manager) RemoveTagFromTask(ctx context.Context, id, tag string) (bool, error) {
	task, err := m.store.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get task: %w", err)
	}
	if task == nil || !task.RemoveTag(tag) {
		return false, nil
	}
	if err := m.store.Save(ctx, task); err != nil {
		return false, fmt.Errorf("save task: %w", err)
	}
	return true, nil
}

func (m *Manager) update(ctx context.Context, op, id string, fields tasks.Fields) (bool, error) {
	updated, err := m.store.Update(ctx, id, fields)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	if updated {
		m.logger.Debug("task updated", logging.TaskID(id), logging.Operation(op))
	}
	return updated, nil
}

func (m *Manager) parseDueDate(op, value string) (time.Time, bool) {
	due, err := tasks.ParseDueDate(value)
	if err != nil {
		fmt.Fprintln(m.messages, invalidDateMessage)
		m.logger.Debug("rejected due date",
			logging.Operation(op),
			logging.String("value", value),
			logging.Error(err),
		)
		return time.Time{}, false
	}
	return due, true
}
