package tasks

import (
	"fmt"
	"strings"
)

// Status represents where a task sits in its lifecycle.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusAbandoned  Status = "abandoned"
)

var allStatuses = []Status{
	StatusTodo,
	StatusInProgress,
	StatusDone,
	StatusAbandoned,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status. Hyphens and spaces are
// accepted in place of underscores.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	status := Status(normalized)
	if _, ok := statusSet[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return status, nil
}

// IsTerminal reports whether no automatic transition applies to the status.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusAbandoned
}

func (s Status) String() string {
	return string(s)
}
