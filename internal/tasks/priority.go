package tasks

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority ranks a task from LOW (1) to URGENT (4).
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// DefaultPriority is used when callers do not choose one.
const DefaultPriority = PriorityMedium

var allPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

var priorityNames = map[Priority]string{
	PriorityLow:    "LOW",
	PriorityMedium: "MEDIUM",
	PriorityHigh:   "HIGH",
	PriorityUrgent: "URGENT",
}

// AllPriorities returns the priorities in ascending order.
func AllPriorities() []Priority {
	cp := make([]Priority, len(allPriorities))
	copy(cp, allPriorities)
	return cp
}

// ParsePriority converts an integer code into a Priority.
func ParsePriority(value int) (Priority, error) {
	p := Priority(value)
	if _, ok := priorityNames[p]; !ok {
		return 0, fmt.Errorf("%w: %d (expected 1-4)", ErrInvalidPriority, value)
	}
	return p, nil
}

// ParsePriorityName accepts either a numeric code or a member name such as
// "high".
func ParsePriorityName(value string) (Priority, error) {
	trimmed := strings.TrimSpace(value)
	if code, err := strconv.Atoi(trimmed); err == nil {
		return ParsePriority(code)
	}
	upper := strings.ToUpper(trimmed)
	for p, name := range priorityNames {
		if name == upper {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, value)
}

// String returns the member name, e.g. "HIGH".
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// ExemptFromAbandon reports whether the priority shields a task from
// automatic abandonment.
func (p Priority) ExemptFromAbandon() bool {
	return p >= PriorityHigh
}
