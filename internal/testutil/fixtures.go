package testutil

import (
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// RefNow is a fixed reference instant for date-window tests.
var RefNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

// TaskLog options
type TaskLogOption func(*domain.TaskLog)

// WithDaysAgo dates the entry n calendar days before RefNow.
func WithDaysAgo(n int) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.Date = RefNow.AddDate(0, 0, -n).Format(domain.DateLayout)
	}
}

func WithCompletedAt(at time.Time) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.Date = at.Format(domain.DateLayout)
		l.Time = at.Format(domain.TimeLayout)
	}
}

func WithClockTime(hhmmss string) TaskLogOption {
	return func(l *domain.TaskLog) {
		l.Time = hhmmss
	}
}

// NewTestTaskLog builds an entry completed at RefNow unless overridden.
func NewTestTaskLog(task string, minutes int, opts ...TaskLogOption) domain.TaskLog {
	l := domain.NewTaskLog(task, minutes, RefNow)
	for _, opt := range opts {
		opt(&l)
	}
	return l
}
