package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

type TaskLogService interface {
	// Record prepends a completed work phase to the log.
	Record(ctx context.Context, entry domain.TaskLog) error
	List(ctx context.Context) ([]domain.TaskLog, error)
	// Weekly returns the full log plus the trailing-week total as of now.
	Weekly(ctx context.Context, now time.Time) (domain.LogSummary, error)
	Daily(ctx context.Context, now time.Time, days int) ([]domain.DayTotal, error)
}
