package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alexanderramin/cattimer/internal/cli/formatter"
	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/timer"
)

// lineView is the timer.View for plain mode. It prints one line per status
// change and the countdown on whole minutes, so it stays readable when
// piped to a file.
type lineView struct {
	mu         sync.Mutex
	out        io.Writer
	lastStatus string
	lastWeekly string
}

func newLineView(out io.Writer) *lineView {
	return &lineView{out: out}
}

func (v *lineView) RenderCountdown(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if strings.HasSuffix(text, ":00") {
		fmt.Fprintf(v.out, "  %s\n", text)
	}
}

func (v *lineView) RenderStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if text == v.lastStatus {
		return
	}
	v.lastStatus = text
	fmt.Fprintf(v.out, "%s\n", text)
}

func (v *lineView) RenderLog(summary domain.LogSummary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	weekly := formatter.FormatWeekly(summary.Weekly)
	if weekly == v.lastWeekly {
		return
	}
	v.lastWeekly = weekly
	fmt.Fprintf(v.out, "This week: %s\n", weekly)
}

func (v *lineView) SetButtonLabel(string) {}

func (v *lineView) SetAvatar(string) {}

// linePrompt is the timer.Prompt for plain mode. While a question is
// pending, the next input line is taken as the answer.
type linePrompt struct {
	mu    sync.Mutex
	out   io.Writer
	reply chan string
}

func newLinePrompt(out io.Writer) *linePrompt {
	return &linePrompt{out: out}
}

func (p *linePrompt) AskTask(ctx context.Context) (string, bool) {
	reply := make(chan string, 1)
	p.mu.Lock()
	p.reply = reply
	fmt.Fprint(p.out, "What did you work on, nya? (empty line skips) ")
	p.mu.Unlock()

	select {
	case task := <-reply:
		task = strings.TrimSpace(task)
		return task, task != ""
	case <-ctx.Done():
		p.mu.Lock()
		p.reply = nil
		p.mu.Unlock()
		return "", false
	}
}

// deliver hands line to a pending question. It reports false when nobody
// was asking.
func (p *linePrompt) deliver(line string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reply == nil {
		return false
	}
	p.reply <- line
	p.reply = nil
	return true
}

const plainHelp = "Press Enter to start/pause/resume, q then Enter to quit."

// runPlain drives ctrl from line input until q, end of input, or ctx ends.
func runPlain(ctx context.Context, ctrl *timer.Controller, prompt *linePrompt, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(out, plainHelp)
	lines := readLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if prompt.deliver(line) {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "":
				ctrl.Toggle(ctx)
			case "q", "quit", "exit":
				return nil
			default:
				fmt.Fprintln(out, formatter.Dim(plainHelp))
			}
		}
	}
}

// syncWriter serializes writes from the controller, the prompt and the
// input loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
