package tasks

import (
	"fmt"
	"time"
)

// DateLayout is the canonical due date format.
const DateLayout = "2006-01-02"

// parseLayout also accepts an unpadded month or day such as 2024-1-5.
const parseLayout = "2006-1-2"

// ParseDueDate parses a YYYY-MM-DD string as local midnight of that day.
// Surrounding whitespace is rejected.
func ParseDueDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(parseLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// FormatDueDate renders a due date, or "" when unset.
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}
	return due.Format(DateLayout)
}

// wholeDaysBetween counts wall-clock days in the local zone, truncating toward
// zero, so 7 days and 23 hours is 7. A DST shift between the two instants
// does not change the count.
func wholeDaysBetween(from, to time.Time) int {
	return int(wallClock(to).Sub(wallClock(from)) / (24 * time.Hour))
}

func wallClock(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
