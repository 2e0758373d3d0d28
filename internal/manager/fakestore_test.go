package manager_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"taskman/internal/tasks"
)

var errStoreDown = errors.New("store unavailable")

// memStore keeps tasks in memory and hands out copies, like a real store.
type memStore struct {
	order    []string
	byID     map[string]*tasks.Task
	next     int
	saves    int
	saved    []string
	exported []string
	failAll  bool
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]*tasks.Task)}
}

func (s *memStore) Add(_ context.Context, task *tasks.Task) (string, error) {
	s.next++
	id := fmt.Sprintf("task-%d", s.next)
	stored := task.Clone()
	stored.ID = id
	s.byID[id] = stored
	s.order = append(s.order, id)
	return id, nil
}

func (s *memStore) Get(_ context.Context, id string) (*tasks.Task, error) {
	return s.byID[id].Clone(), nil
}

func (s *memStore) All(context.Context) ([]*tasks.Task, error) {
	if s.failAll {
		return nil, errStoreDown
	}
	return s.filter(func(*tasks.Task) bool { return true }), nil
}

func (s *memStore) ByStatus(_ context.Context, status tasks.Status) ([]*tasks.Task, error) {
	return s.filter(func(t *tasks.Task) bool { return t.Status == status }), nil
}

func (s *memStore) ByPriority(_ context.Context, priority tasks.Priority) ([]*tasks.Task, error) {
	return s.filter(func(t *tasks.Task) bool { return t.Priority == priority }), nil
}

func (s *memStore) Overdue(_ context.Context, now time.Time) ([]*tasks.Task, error) {
	return s.filter(func(t *tasks.Task) bool { return t.IsOverdue(now) }), nil
}

func (s *memStore) Update(_ context.Context, id string, fields tasks.Fields) (bool, error) {
	task, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	task.Apply(fields, time.Now())
	return true, nil
}

func (s *memStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return true, nil
}

func (s *memStore) Save(_ context.Context, changed ...*tasks.Task) error {
	s.saves++
	for _, task := range changed {
		s.byID[task.ID] = task.Clone()
		s.saved = append(s.saved, task.ID)
	}
	return nil
}

func (s *memStore) ExportCSV(_ context.Context, filename string) error {
	s.exported = append(s.exported, "csv:"+filename)
	return nil
}

func (s *memStore) filter(keep func(*tasks.Task) bool) []*tasks.Task {
	var out []*tasks.Task
	for _, id := range s.order {
		if task := s.byID[id]; keep(task) {
			out = append(out, task.Clone())
		}
	}
	return out
}

// put stores task as-is under a fresh id, bypassing manager validation.
func (s *memStore) put(task *tasks.Task) string {
	id, _ := s.Add(context.Background(), task)
	return id
}

// exportingStore adds multi-format export on top of memStore.
type exportingStore struct {
	*memStore
}

func (s exportingStore) Export(_ context.Context, filename, format string) error {
	s.exported = append(s.exported, format+":"+filename)
	return nil
}
