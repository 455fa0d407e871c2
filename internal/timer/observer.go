package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

type EventKind string

const (
	EventStarted        EventKind = "phase_started"
	EventPaused         EventKind = "paused"
	EventResumed        EventKind = "resumed"
	EventPhaseCompleted EventKind = "phase_completed"
	EventTaskLogged     EventKind = "task_logged"
	EventTaskSkipped    EventKind = "task_skipped"
	EventAlertFailed    EventKind = "alert_failed"
	EventLogFailed      EventKind = "log_failed"
)

// Event describes one state machine transition or side-effect outcome.
type Event struct {
	Kind      EventKind
	Phase     domain.Phase
	Remaining time.Duration
	Task      string
	Err       error
	At        time.Time
}

// Observer receives timer events for logging.
type Observer interface {
	ObserveTimer(ctx context.Context, event Event)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) ObserveTimer(context.Context, Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver reports events through logger. The run ID ties together
// all events of one timer session.
func NewLogObserver(logger *slog.Logger, runID string) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger.With("run_id", runID)}
}

func (o *logObserver) ObserveTimer(ctx context.Context, e Event) {
	attrs := []any{
		"event", string(e.Kind),
		"phase", string(e.Phase),
		"remaining_s", CeilSeconds(e.Remaining),
	}
	if e.Task != "" {
		attrs = append(attrs, "task", e.Task)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err.Error())
		o.logger.WarnContext(ctx, "timer", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "timer", attrs...)
}
