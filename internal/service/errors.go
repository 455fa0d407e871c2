package service

import "errors"

var (
	// ErrEmptyTask is returned when a log entry has no task description.
	ErrEmptyTask = errors.New("task description is empty")

	// ErrNegativeDuration is returned for a log entry with negative minutes.
	ErrNegativeDuration = errors.New("duration must not be negative")
)
