package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent describes one finished call into the task log service.
type UseCaseEvent struct {
	Name     string
	Duration time.Duration
	Err      error
	Fields   map[string]any
}

// Success reports whether the call returned without error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives an event after every service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// UseCaseObserverFunc adapts a plain function to UseCaseObserver.
type UseCaseObserverFunc func(ctx context.Context, event UseCaseEvent)

func (f UseCaseObserverFunc) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	f(ctx, event)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// NewLogUseCaseObserver writes events as slog text lines to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, nil)))
}

// NewSlogUseCaseObserver reports through logger, so service and timer
// events can share the event log. Failed calls log at error level.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return UseCaseObserverFunc(func(ctx context.Context, event UseCaseEvent) {
		level := slog.LevelInfo
		attrs := []slog.Attr{
			slog.String("use_case", event.Name),
			slog.Int64("duration_ms", event.Duration.Milliseconds()),
			slog.Bool("success", event.Success()),
		}
		for k, v := range event.Fields {
			attrs = append(attrs, slog.Any(k, v))
		}
		if event.Err != nil {
			level = slog.LevelError
			attrs = append(attrs, slog.String("error", event.Err.Error()))
		}
		logger.LogAttrs(ctx, level, "service_use_case", attrs...)
	})
}

// observe times a call and reports it when the returned func runs with
// the call's final error.
func (s *taskLogService) observe(ctx context.Context, name string, fields map[string]any) func(error) {
	start := time.Now()
	return func(err error) {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     name,
			Duration: time.Since(start),
			Err:      err,
			Fields:   fields,
		})
	}
}

func firstObserver(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
