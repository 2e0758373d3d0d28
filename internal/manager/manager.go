package manager

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"taskman/internal/logging"
	"taskman/internal/tasks"
)

const (
	// AbandonAfterDays is the grace window; a task must be more than this
	// many whole days past due before it is abandoned.
	AbandonAfterDays = 7
	// CompletedWindow bounds the "completed last week" statistic.
	CompletedWindow = 7 * 24 * time.Hour

	invalidDateMessage = "Invalid date format. Use YYYY-MM-DD"
)

// Store is the persistence contract the Manager relies on. Get returns a nil
// task when the id is unknown; Update and Delete report false in that case.
type Store interface {
	Add(ctx context.Context, task *tasks.Task) (string, error)
	Get(ctx context.Context, id string) (*tasks.Task, error)
	All(ctx context.Context) ([]*tasks.Task, error)
	ByStatus(ctx context.Context, status tasks.Status) ([]*tasks.Task, error)
	ByPriority(ctx context.Context, priority tasks.Priority) ([]*tasks.Task, error)
	Overdue(ctx context.Context, now time.Time) ([]*tasks.Task, error)
	Update(ctx context.Context, id string, fields tasks.Fields) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, changed ...*tasks.Task) error
	ExportCSV(ctx context.Context, filename string) error
}

// Exporter is implemented by stores that can write formats beyond CSV.
type Exporter interface {
	Export(ctx context.Context, filename, format string) error
}

// Manager applies task business rules and delegates storage to a Store.
type Manager struct {
	store    Store
	logger   *slog.Logger
	messages io.Writer
	now      func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMessages sets the writer that receives user-facing messages such as
// date format complaints. Defaults to stdout.
func WithMessages(w io.Writer) Option {
	return func(m *Manager) {
		if w != nil {
			m.messages = w
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New constructs a Manager around store.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		logger:   logging.NewNop(),
		messages: os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "manager")
	return m
}
