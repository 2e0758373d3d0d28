package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskman/internal/tasks"
)

const taskColumns = "id, title, description, priority, status, due_date, tags_json, created_at, completed_at"

// taskOrder lists tasks in creation order; rowid breaks ties between tasks
// created within the same instant.
const taskOrder = " ORDER BY created_at, rowid"

func scanTask(scanner interface{ Scan(dest ...any) error }) (*tasks.Task, error) {
	var (
		id           string
		title        string
		description  sql.NullString
		priority     int
		statusStr    string
		dueRaw       sql.NullString
		tagsRaw      sql.NullString
		createdRaw   string
		completedRaw sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&title,
		&description,
		&priority,
		&statusStr,
		&dueRaw,
		&tagsRaw,
		&createdRaw,
		&completedRaw,
	); err != nil {
		return nil, err
	}

	task := &tasks.Task{
		ID:          id,
		Title:       title,
		Description: description.String,
		Priority:    tasks.Priority(priority),
		Status:      tasks.Status(statusStr),
		Tags:        []string{},
	}
	if dueRaw.Valid && dueRaw.String != "" {
		due, err := tasks.ParseDueDate(dueRaw.String)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", id, err)
		}
		task.DueDate = &due
	}
	if tagsRaw.Valid && tagsRaw.String != "" {
		if err := json.Unmarshal([]byte(tagsRaw.String), &task.Tags); err != nil {
			return nil, fmt.Errorf("task %s: decode tags: %w", id, err)
		}
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		task.CreatedAt = created
	}
	if completedRaw.Valid {
		if completed, err := parseTimeString(completedRaw.String); err == nil {
			task.CompletedAt = &completed
		}
	}
	return task, nil
}

// taskArgs returns the column values for a task in taskColumns order,
// followed by updated_at.
func taskArgs(task *tasks.Task, now time.Time) ([]any, error) {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return []any{
		task.ID,
		task.Title,
		task.Description,
		int(task.Priority),
		string(task.Status),
		nullableString(tasks.FormatDueDate(task.DueDate)),
		string(tagsJSON),
		formatTime(task.CreatedAt),
		nullableTime(task.CompletedAt),
		formatTime(now),
	}, nil
}

func (s *Store) queryTasks(ctx context.Context, where string, args ...any) ([]*tasks.Task, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if where != "" {
		query += " WHERE " + where
	}
	rows, err := s.db.QueryContext(ctx, query+taskOrder, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*tasks.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, task)
	}
	return list, rows.Err()
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTask(ctx context.Context, q rowQuerier, id string) (*tasks.Task, error) {
	row := q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return task, err
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(value time.Time) string {
	return value.UTC().Format(timestampLayout)
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return formatTime(*value)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.Local(), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
