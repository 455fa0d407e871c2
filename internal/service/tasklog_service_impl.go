package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cattimer/internal/db"
	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/repository"
	"github.com/alexanderramin/cattimer/internal/summary"
)

type taskLogService struct {
	logs     repository.TaskLogRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewTaskLogService wires the log use cases. With a nil uow, Record writes
// through logs directly; otherwise the read-modify-write of the sequence
// runs in one transaction against a tx-scoped store.
func NewTaskLogService(logs repository.TaskLogRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskLogService {
	return &taskLogService{
		logs:     logs,
		uow:      uow,
		observer: firstObserver(observers),
	}
}

func (s *taskLogService) Record(ctx context.Context, entry domain.TaskLog) (err error) {
	done := s.observe(ctx, "record-task", map[string]any{
		"date":     entry.Date,
		"duration": entry.Duration,
	})
	defer func() { done(err) }()

	entry.Task = strings.TrimSpace(entry.Task)
	if entry.Task == "" {
		return ErrEmptyTask
	}
	if entry.Duration < 0 {
		return ErrNegativeDuration
	}

	if s.uow == nil {
		return s.logs.Prepend(ctx, entry)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs := repository.NewKVTaskLogRepo(repository.NewSQLiteKVStore(tx))
		return txLogs.Prepend(ctx, entry)
	})
}

func (s *taskLogService) List(ctx context.Context) (entries []domain.TaskLog, err error) {
	done := s.observe(ctx, "list-tasks", nil)
	defer func() { done(err) }()

	return s.logs.List(ctx)
}

func (s *taskLogService) Weekly(ctx context.Context, now time.Time) (sum domain.LogSummary, err error) {
	done := s.observe(ctx, "weekly-summary", nil)
	defer func() { done(err) }()

	entries, err := s.logs.List(ctx)
	if err != nil {
		return domain.LogSummary{}, fmt.Errorf("summarizing log: %w", err)
	}
	return summary.Summarize(entries, now), nil
}

func (s *taskLogService) Daily(ctx context.Context, now time.Time, days int) (totals []domain.DayTotal, err error) {
	done := s.observe(ctx, "daily-summary", map[string]any{"days": days})
	defer func() { done(err) }()

	entries, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarizing log by day: %w", err)
	}
	return summary.Daily(entries, now, days), nil
}
