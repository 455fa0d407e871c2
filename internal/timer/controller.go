// Package timer implements the work/break countdown state machine.
//
// A Controller owns the timer state and the single periodic callback that
// drives it. Everything visible goes through the View, Alert and Prompt
// ports, so the state machine runs the same under the TUI, the plain
// line-mode front end and tests.
package timer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// DefaultPeriod is the tick interval of the periodic callback.
const DefaultPeriod = time.Second

// Deps are the collaborators of a Controller. View, Lengths and Logs are
// required; the rest default to no-ops or real implementations.
type Deps struct {
	View      View
	Lengths   Lengths
	Logs      LogBook
	Alert     Alert
	Prompt    Prompt
	Clock     Clock
	Scheduler Scheduler
	Observer  Observer
}

// Option configures a Controller.
type Option func(*Controller)

// WithStrategy selects how remaining time is computed on each tick.
func WithStrategy(s domain.Strategy) Option {
	return func(c *Controller) {
		if s == domain.StrategyDecrement {
			c.strategy = s
		}
	}
}

// WithPeriod overrides the tick interval.
func WithPeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.period = d
		}
	}
}

// State is a point-in-time copy of the timer state.
type State struct {
	Phase            domain.Phase
	Status           domain.TimerStatus
	Remaining        time.Duration
	RemainingSeconds int
	// PhaseMinutes is the configured length the current phase started with.
	PhaseMinutes int
	// Completing is true while a finished phase is being handled.
	Completing bool
}

// Controller is the countdown state machine. All methods are safe for
// concurrent use.
type Controller struct {
	view     View
	lengths  Lengths
	logs     LogBook
	alert    Alert
	prompt   Prompt
	clock    Clock
	sched    Scheduler
	observer Observer

	strategy domain.Strategy
	period   time.Duration

	// ctx is cancelled by Close so a blocked Prompt can give up.
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	phase        domain.Phase
	status       domain.TimerStatus
	remaining    time.Duration
	deadline     time.Time
	phaseMinutes int
	handle       Handle
	// gen invalidates callbacks from cancelled handles that are already in flight.
	gen          uint64
	completing   bool
	pendingPause bool
	closed       bool
}

// NewController builds an idle controller in the Work phase.
func NewController(deps Deps, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		view:     deps.View,
		lengths:  deps.Lengths,
		logs:     deps.Logs,
		alert:    deps.Alert,
		prompt:   deps.Prompt,
		clock:    deps.Clock,
		sched:    deps.Scheduler,
		observer: deps.Observer,
		strategy: domain.StrategyDeadline,
		period:   DefaultPeriod,
		ctx:      ctx,
		cancel:   cancel,
		phase:    domain.PhaseWork,
		status:   domain.StatusIdle,
	}
	if c.alert == nil {
		c.alert = noAlert{}
	}
	if c.prompt == nil {
		c.prompt = noPrompt{}
	}
	if c.clock == nil {
		c.clock = SystemClock{}
	}
	if c.sched == nil {
		c.sched = TickerScheduler{}
	}
	if c.observer == nil {
		c.observer = NoopObserver{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init paints the idle state and the current log.
func (c *Controller) Init(ctx context.Context) {
	c.refreshLog(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderLocked(c.minutesFor(c.phase) * 60)
}

// Toggle is the single button: start when idle, pause when running,
// resume when paused. A toggle that lands while a finished phase is being
// handled is queued as a pause for the next phase; toggling again cancels it.
func (c *Controller) Toggle(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.completing {
		c.pendingPause = !c.pendingPause
		return
	}

	switch c.status {
	case domain.StatusIdle:
		c.startLocked(ctx)
	case domain.StatusRunning:
		c.pauseLocked(ctx)
	case domain.StatusPaused:
		c.resumeLocked(ctx)
	}
}

// Start begins the current phase from its configured length. It is a no-op
// unless the controller is idle.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.status != domain.StatusIdle {
		return
	}
	c.startLocked(ctx)
}

// Pause freezes the countdown and cancels the periodic callback. It never
// fails; pausing a timer that is not running does nothing.
func (c *Controller) Pause(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completing {
		c.pendingPause = true
		return
	}
	if c.status != domain.StatusRunning {
		return
	}
	c.pauseLocked(ctx)
}

// Resume continues a paused countdown with the remaining time unchanged.
func (c *Controller) Resume(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.status != domain.StatusPaused {
		return
	}
	c.resumeLocked(ctx)
}

// Snapshot returns a copy of the current state. While running under the
// deadline strategy, Remaining is computed against the clock.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.remaining
	if c.status == domain.StatusRunning && c.strategy == domain.StrategyDeadline && !c.completing {
		remaining = c.untilDeadline()
	}
	return State{
		Phase:            c.phase,
		Status:           c.status,
		Remaining:        remaining,
		RemainingSeconds: CeilSeconds(remaining),
		PhaseMinutes:     c.phaseMinutes,
		Completing:       c.completing,
	}
}

// Close cancels the periodic callback and unblocks any pending prompt.
// The controller ignores all further input.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelHandleLocked()
	c.mu.Unlock()
	c.cancel()
}

// ── transitions (callers hold c.mu) ─────────────────────────────────────────

func (c *Controller) startLocked(ctx context.Context) {
	c.phaseMinutes = c.minutesFor(c.phase)
	c.remaining = time.Duration(c.phaseMinutes) * time.Minute
	c.runLocked()
	c.emit(ctx, EventStarted)
}

func (c *Controller) resumeLocked(ctx context.Context) {
	c.runLocked()
	c.emit(ctx, EventResumed)
}

func (c *Controller) pauseLocked(ctx context.Context) {
	if c.strategy == domain.StrategyDeadline {
		c.remaining = c.untilDeadline()
	}
	c.cancelHandleLocked()
	c.status = domain.StatusPaused
	c.renderLocked(CeilSeconds(c.remaining))
	c.emit(ctx, EventPaused)
}

// runLocked moves to Running from the current remaining time and makes
// sure exactly one callback is scheduled.
func (c *Controller) runLocked() {
	c.status = domain.StatusRunning
	c.deadline = c.clock.Now().Add(c.remaining)
	c.scheduleLocked()
	c.renderLocked(CeilSeconds(c.remaining))
}

func (c *Controller) scheduleLocked() {
	c.cancelHandleLocked()
	gen := c.gen
	c.handle = c.sched.Every(c.period, func() { c.tick(gen) })
}

func (c *Controller) cancelHandleLocked() {
	c.gen++
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
}

func (c *Controller) untilDeadline() time.Duration {
	d := c.deadline.Sub(c.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// ── tick and phase completion ───────────────────────────────────────────────

// tick is the periodic callback. Callbacks from a cancelled handle, or that
// arrive while a completion is in progress, are dropped.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.status != domain.StatusRunning || c.completing {
		c.mu.Unlock()
		return
	}

	switch c.strategy {
	case domain.StrategyDecrement:
		c.remaining -= time.Second
		if c.remaining < 0 {
			c.remaining = 0
		}
	default:
		c.remaining = c.untilDeadline()
	}

	if c.remaining > 0 {
		c.view.RenderCountdown(FormatCountdown(CeilSeconds(c.remaining)))
		c.mu.Unlock()
		return
	}

	c.completing = true
	finished := c.phase
	minutes := c.phaseMinutes
	c.view.RenderCountdown(FormatCountdown(0))
	c.mu.Unlock()

	c.completePhase(c.ctx, gen, finished, minutes)
}

// completePhase runs without the lock so the prompt can block. The
// completing flag keeps other ticks out until it finishes.
func (c *Controller) completePhase(ctx context.Context, gen uint64, finished domain.Phase, minutes int) {
	c.emitPhase(ctx, Event{Kind: EventPhaseCompleted, Phase: finished})

	if err := c.alert.Play(); err != nil {
		c.emitPhase(ctx, Event{Kind: EventAlertFailed, Phase: finished, Err: err})
	}

	if finished == domain.PhaseWork {
		c.recordWork(ctx, minutes)
	}
	c.refreshLog(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.completing = false
	if c.closed {
		return
	}

	c.phase = finished.Next()
	c.phaseMinutes = c.minutesFor(c.phase)
	c.remaining = time.Duration(c.phaseMinutes) * time.Minute

	if c.pendingPause || gen != c.gen {
		c.pendingPause = false
		c.cancelHandleLocked()
		c.status = domain.StatusPaused
		c.renderLocked(CeilSeconds(c.remaining))
		c.emit(ctx, EventPaused)
		return
	}

	// The callback keeps running; only the deadline moves.
	c.deadline = c.clock.Now().Add(c.remaining)
	c.renderLocked(CeilSeconds(c.remaining))
	c.emit(ctx, EventStarted)
}

func (c *Controller) recordWork(ctx context.Context, minutes int) {
	task, ok := c.prompt.AskTask(ctx)
	task = strings.TrimSpace(task)
	if !ok || task == "" {
		c.emitPhase(ctx, Event{Kind: EventTaskSkipped, Phase: domain.PhaseWork})
		return
	}

	entry := domain.NewTaskLog(task, minutes, c.clock.Now())
	if err := c.logs.Record(ctx, entry); err != nil {
		c.emitPhase(ctx, Event{Kind: EventLogFailed, Phase: domain.PhaseWork, Task: task, Err: err})
		return
	}
	c.emitPhase(ctx, Event{Kind: EventTaskLogged, Phase: domain.PhaseWork, Task: task})
}

func (c *Controller) refreshLog(ctx context.Context) {
	sum, err := c.logs.Weekly(ctx, c.clock.Now())
	if err != nil {
		c.emitPhase(ctx, Event{Kind: EventLogFailed, Err: err})
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.RenderLog(sum)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func (c *Controller) minutesFor(p domain.Phase) int {
	var m int
	if p == domain.PhaseBreak {
		m = c.lengths.BreakMinutes()
	} else {
		m = c.lengths.WorkMinutes()
	}
	if m < 0 {
		return 0
	}
	return m
}

func (c *Controller) renderLocked(seconds int) {
	c.view.RenderCountdown(FormatCountdown(seconds))
	c.view.RenderStatus(domain.StatusText(c.status, c.phase))
	c.view.SetAvatar(domain.AvatarFor(c.phase))
	c.view.SetButtonLabel(domain.ButtonLabel(c.status))
}

func (c *Controller) emit(ctx context.Context, kind EventKind) {
	c.observer.ObserveTimer(ctx, Event{
		Kind:      kind,
		Phase:     c.phase,
		Remaining: c.remaining,
		At:        c.clock.Now(),
	})
}

func (c *Controller) emitPhase(ctx context.Context, e Event) {
	e.At = c.clock.Now()
	c.observer.ObserveTimer(ctx, e)
}

type noAlert struct{}

func (noAlert) Play() error { return nil }

type noPrompt struct{}

func (noPrompt) AskTask(context.Context) (string, bool) { return "", false }
