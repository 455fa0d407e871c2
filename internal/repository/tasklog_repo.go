package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// TaskLogKey is the single key holding the JSON-encoded log sequence.
const TaskLogKey = "taskLogs"

// KVTaskLogRepo stores the whole log as one JSON array under TaskLogKey,
// most-recent-first.
type KVTaskLogRepo struct {
	kv KVStore
}

// NewKVTaskLogRepo creates a TaskLogRepo over any KVStore.
func NewKVTaskLogRepo(kv KVStore) *KVTaskLogRepo {
	return &KVTaskLogRepo{kv: kv}
}

// List returns the stored sequence. A missing key or a value that does not
// decode as a list of entries yields an empty log rather than an error;
// only store failures are returned.
func (r *KVTaskLogRepo) List(ctx context.Context) ([]domain.TaskLog, error) {
	raw, err := r.kv.Get(ctx, TaskLogKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.TaskLog{}, nil
		}
		return nil, fmt.Errorf("loading task log: %w", err)
	}
	return decodeTaskLogs(raw), nil
}

// Prepend inserts entry at the front and rewrites the full sequence.
// Callers needing atomicity run it inside a UnitOfWork.
func (r *KVTaskLogRepo) Prepend(ctx context.Context, entry domain.TaskLog) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}
	next := make([]domain.TaskLog, 0, len(entries)+1)
	next = append(next, entry)
	next = append(next, entries...)
	return r.Replace(ctx, next)
}

// Replace overwrites the stored sequence.
func (r *KVTaskLogRepo) Replace(ctx context.Context, entries []domain.TaskLog) error {
	if entries == nil {
		entries = []domain.TaskLog{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding task log: %w", err)
	}
	return r.kv.Set(ctx, TaskLogKey, string(data))
}

// decodeTaskLogs parses the stored JSON. A value that is not an array
// decodes to an empty log. Elements that are not objects are skipped, and a
// duration that is missing, null, out of range or not a number counts as
// zero.
func decodeTaskLogs(raw string) []domain.TaskLog {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []domain.TaskLog{}
	}

	entries := make([]domain.TaskLog, 0, len(items))
	for _, item := range items {
		var r storedTaskLog
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		entries = append(entries, domain.TaskLog{
			Date:     r.Date,
			Time:     r.Time,
			Task:     r.Task,
			Duration: durationMinutes(r.Duration),
		})
	}
	return entries
}

type storedTaskLog struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Task     string `json:"task"`
	Duration any    `json:"duration"`
}

// maxDurationMinutes bounds a stored duration. Anything larger is
// treated as corrupt and reads as zero.
const maxDurationMinutes = math.MaxInt32

func durationMinutes(v any) int {
	switch d := v.(type) {
	case float64:
		if d < 0 || d > maxDurationMinutes {
			return 0
		}
		return int(d)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil || n < 0 || n > maxDurationMinutes {
			return 0
		}
		return n
	default:
		return 0
	}
}
