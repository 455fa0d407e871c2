package timer

import (
	"context"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// View receives every visible side effect of the state machine. Methods are
// called with the controller's lock held and must not call back into it.
type View interface {
	RenderCountdown(text string)
	RenderStatus(text string)
	RenderLog(summary domain.LogSummary)
	SetButtonLabel(label string)
	SetAvatar(ref string)
}

// Alert plays the phase-completion cue. Errors are reported to the
// Observer and otherwise ignored.
type Alert interface {
	Play() error
}

// Prompt asks for the description of the work phase that just ended. It
// blocks until answered. ok is false when the user cancelled.
type Prompt interface {
	AskTask(ctx context.Context) (task string, ok bool)
}

// Lengths reports the configured phase lengths in minutes. They are read at
// every start and phase transition, so edits apply to the next phase.
type Lengths interface {
	WorkMinutes() int
	BreakMinutes() int
}

// LogBook persists completed work phases and produces the log summary.
type LogBook interface {
	Record(ctx context.Context, entry domain.TaskLog) error
	Weekly(ctx context.Context, now time.Time) (domain.LogSummary, error)
}

// Clock abstracts wall time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedLengths is a static Lengths.
type FixedLengths struct {
	Work  int
	Break int
}

func (f FixedLengths) WorkMinutes() int  { return f.Work }
func (f FixedLengths) BreakMinutes() int { return f.Break }
