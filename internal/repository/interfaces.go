package repository

import (
	"context"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// KVStore is a string-keyed store. Set overwrites any existing value.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type TaskLogRepo interface {
	List(ctx context.Context) ([]domain.TaskLog, error)
	Prepend(ctx context.Context, entry domain.TaskLog) error
	Replace(ctx context.Context, entries []domain.TaskLog) error
}
