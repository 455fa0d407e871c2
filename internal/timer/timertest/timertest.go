// Package timertest provides deterministic fakes for driving a
// timer.Controller in tests.
package timertest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/timer"
)

// Clock is a manually advanced timer.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Scheduler records periodic callbacks instead of running them. Fire
// invokes every live callback once.
type Scheduler struct {
	mu      sync.Mutex
	handles []*handle
	started int
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Every(_ time.Duration, fn func()) timer.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &handle{fn: fn}
	s.handles = append(s.handles, h)
	s.started++
	return h
}

// Fire runs each live callback once, on the caller's goroutine.
func (s *Scheduler) Fire() {
	for _, h := range s.live() {
		h.fn()
	}
}

// FireAll runs every callback ever scheduled, cancelled ones included. It
// simulates ticks that were already in flight when their handle was cancelled.
func (s *Scheduler) FireAll() {
	s.mu.Lock()
	all := append([]*handle(nil), s.handles...)
	s.mu.Unlock()
	for _, h := range all {
		h.fn()
	}
}

// Active is the number of callbacks not yet cancelled.
func (s *Scheduler) Active() int {
	return len(s.live())
}

// Started is the number of callbacks ever scheduled.
func (s *Scheduler) Started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Scheduler) live() []*handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*handle
	for _, h := range s.handles {
		if !h.cancelled() {
			out = append(out, h)
		}
	}
	return out
}

type handle struct {
	mu   sync.Mutex
	fn   func()
	done bool
}

func (h *handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.done = true
}

func (h *handle) cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// View records everything the controller renders.
type View struct {
	mu        sync.Mutex
	Countdown string
	Status    string
	Button    string
	Avatar    string
	Summary   domain.LogSummary
	Renders   int
}

func (v *View) RenderCountdown(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Countdown = text
	v.Renders++
}

func (v *View) RenderStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Status = text
}

func (v *View) RenderLog(summary domain.LogSummary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Summary = summary
}

func (v *View) SetButtonLabel(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Button = label
}

func (v *View) SetAvatar(ref string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Avatar = ref
}

// Snapshot returns the countdown, status and button under the lock.
func (v *View) Snapshot() (countdown, status, button, avatar string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Countdown, v.Status, v.Button, v.Avatar
}

// Alert counts plays and returns Err from each.
type Alert struct {
	mu    sync.Mutex
	Err   error
	plays int
}

func (a *Alert) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plays++
	return a.Err
}

func (a *Alert) Plays() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plays
}

// Prompt answers every AskTask with Task and OK. A Prompt built by
// NewBlockingPrompt instead waits for a value on Answers or for ctx to end.
type Prompt struct {
	Task    string
	OK      bool
	Answers chan string
	mu      sync.Mutex
	asked   int
	entered chan struct{}
}

// NewBlockingPrompt returns a Prompt that waits for Answer.
func NewBlockingPrompt() *Prompt {
	return &Prompt{Answers: make(chan string), entered: make(chan struct{}, 8)}
}

func (p *Prompt) AskTask(ctx context.Context) (string, bool) {
	p.mu.Lock()
	p.asked++
	p.mu.Unlock()

	if p.Answers == nil {
		return p.Task, p.OK
	}
	p.entered <- struct{}{}
	select {
	case task := <-p.Answers:
		return task, task != ""
	case <-ctx.Done():
		return "", false
	}
}

// WaitAsked blocks until a blocking prompt has been entered.
func (p *Prompt) WaitAsked() {
	<-p.entered
}

func (p *Prompt) Asked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asked
}

// LogBook is an in-memory timer.LogBook.
type LogBook struct {
	mu        sync.Mutex
	Entries   []domain.TaskLog
	RecordErr error
}

func (l *LogBook) Record(_ context.Context, entry domain.TaskLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.RecordErr != nil {
		return l.RecordErr
	}
	l.Entries = append([]domain.TaskLog{entry}, l.Entries...)
	return nil
}

func (l *LogBook) Weekly(_ context.Context, _ time.Time) (domain.LogSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, e := range l.Entries {
		total += e.Minutes()
	}
	entries := append([]domain.TaskLog(nil), l.Entries...)
	return domain.LogSummary{Entries: entries, Weekly: domain.NewWeeklyTotal(total), TotalMinutes: total}, nil
}

func (l *LogBook) Logged() []domain.TaskLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.TaskLog(nil), l.Entries...)
}

// ErrAlert is a stock alert failure.
var ErrAlert = errors.New("alert: no audio device")

// Lengths is a mutable timer.Lengths.
type Lengths struct {
	mu         sync.Mutex
	work, brk int
}

func NewLengths(work, brk int) *Lengths {
	return &Lengths{work: work, brk: brk}
}

func (l *Lengths) Set(work, brk int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.work, l.brk = work, brk
}

func (l *Lengths) WorkMinutes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.work
}

func (l *Lengths) BreakMinutes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.brk
}
