package tasks

import "errors"

var (
	// ErrInvalidPriority is returned when a priority code has no matching member.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrInvalidStatus is returned when a status value has no matching member.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidDate is returned when a due date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date format")
	// ErrEmptyTitle is returned when a task is created without a title.
	ErrEmptyTitle = errors.New("title must not be empty")
)
