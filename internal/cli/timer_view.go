package cli

import (
	"context"
	"strconv"
	"sync"

	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/timer"
)

// screenState is the timer.View used by the TUI. The controller writes it
// from whichever goroutine drives it; the bubbletea model only reads a
// copy when rendering.
type screenState struct {
	mu        sync.Mutex
	countdown string
	status    string
	button    string
	avatar    string
	summary   domain.LogSummary
}

type screenSnapshot struct {
	Countdown string
	Status    string
	Button    string
	Avatar    string
	Summary   domain.LogSummary
}

func newScreenState() *screenState {
	return &screenState{
		countdown: timer.FormatCountdown(0),
		button:    domain.ButtonStart,
		avatar:    domain.AvatarWork,
	}
}

func (s *screenState) RenderCountdown(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdown = text
}

func (s *screenState) RenderStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = text
}

func (s *screenState) RenderLog(summary domain.LogSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

func (s *screenState) SetButtonLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.button = label
}

func (s *screenState) SetAvatar(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.avatar = ref
}

func (s *screenState) snapshot() screenSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return screenSnapshot{
		Countdown: s.countdown,
		Status:    s.status,
		Button:    s.button,
		Avatar:    s.avatar,
		Summary:   s.summary,
	}
}

// inputLengths is the timer.Lengths backed by the two editable inputs.
// The model stores parsed values on every edit so the controller never
// touches bubbletea state.
type inputLengths struct {
	mu   sync.Mutex
	work int
	brk  int
}

func newInputLengths(work, brk int) *inputLengths {
	return &inputLengths{work: work, brk: brk}
}

func (l *inputLengths) set(work, brk string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.work = timer.ParseMinutes(work)
	l.brk = timer.ParseMinutes(brk)
}

func (l *inputLengths) WorkMinutes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.work
}

func (l *inputLengths) BreakMinutes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.brk
}

// promptRequest is one pending "what did you work on" question. reply is
// buffered so the answering side never blocks.
type promptRequest struct {
	reply chan promptAnswer
}

type promptAnswer struct {
	task string
	ok   bool
}

// modalPrompt is the timer.Prompt used by the TUI. AskTask parks a request
// that the model picks up on its next repaint and answers from a huh form.
type modalPrompt struct {
	requests chan promptRequest
}

func newModalPrompt() *modalPrompt {
	return &modalPrompt{requests: make(chan promptRequest, 1)}
}

func (p *modalPrompt) AskTask(ctx context.Context) (string, bool) {
	req := promptRequest{reply: make(chan promptAnswer, 1)}
	select {
	case p.requests <- req:
	case <-ctx.Done():
		return "", false
	}
	select {
	case a := <-req.reply:
		return a.task, a.ok
	case <-ctx.Done():
		return "", false
	}
}

// pending returns a waiting request, if any, without blocking.
func (p *modalPrompt) pending() (promptRequest, bool) {
	select {
	case req := <-p.requests:
		return req, true
	default:
		return promptRequest{}, false
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
