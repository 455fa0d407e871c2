package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is a bytes.Buffer safe to read while the plain loop writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type plainRig struct {
	*timerRig
	out    *lockedBuffer
	ctrl   *timer.Controller
	input  *io.PipeWriter
	result chan error
}

func newPlainRig(t *testing.T, work, brk int) *plainRig {
	t.Helper()
	r := &plainRig{timerRig: newTimerRig(t), out: &lockedBuffer{}, result: make(chan error, 1)}
	prompt := newLinePrompt(r.out)
	r.ctrl = r.controller(t, newLineView(r.out), timer.FixedLengths{Work: work, Break: brk}, prompt)

	pr, pw := io.Pipe()
	r.input = pw
	t.Cleanup(func() { pw.Close() })
	go func() { r.result <- runPlain(context.Background(), r.ctrl, prompt, pr, r.out) }()
	return r
}

func (r *plainRig) send(t *testing.T, line string) {
	t.Helper()
	_, err := io.WriteString(r.input, line+"\n")
	require.NoError(t, err)
}

func (r *plainRig) waitOutput(t *testing.T, fragment string) {
	t.Helper()
	require.Eventually(t, func() bool { return strings.Contains(r.out.String(), fragment) },
		time.Second, time.Millisecond, "waiting for %q in %q", fragment, r.out.String())
}

func TestPlain_EmptyLineToggles(t *testing.T) {
	r := newPlainRig(t, 25, 5)
	r.waitOutput(t, plainHelp)

	r.send(t, "")
	require.Eventually(t, func() bool { return r.ctrl.Snapshot().Status == domain.StatusRunning }, time.Second, time.Millisecond)
	r.waitOutput(t, "25:00")
	r.waitOutput(t, "Full focus!")

	r.send(t, "")
	require.Eventually(t, func() bool { return r.ctrl.Snapshot().Status == domain.StatusPaused }, time.Second, time.Millisecond)

	r.send(t, "q")
	require.NoError(t, <-r.result)
}

func TestPlain_PromptTakesNextLine(t *testing.T) {
	r := newPlainRig(t, 1, 5)
	r.send(t, "")
	require.Eventually(t, func() bool { return r.ctrl.Snapshot().Status == domain.StatusRunning }, time.Second, time.Millisecond)

	r.clock.Advance(time.Minute)
	fired := make(chan struct{})
	go func() {
		defer close(fired)
		r.sched.Fire()
	}()
	r.waitOutput(t, "What did you work on, nya?")

	r.send(t, "Read")
	<-fired

	entries, err := r.app.Logs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Read", entries[0].Task)
	assert.Equal(t, 1, entries[0].Duration)

	r.waitOutput(t, "Break time, nya.")
	r.waitOutput(t, "This week: 0h 1m")
	assert.Equal(t, domain.StatusRunning, r.ctrl.Snapshot().Status)

	r.send(t, "quit")
	require.NoError(t, <-r.result)
}

func TestPlain_EmptyAnswerSkipsLogging(t *testing.T) {
	r := newPlainRig(t, 1, 5)
	r.send(t, "")
	require.Eventually(t, func() bool { return r.ctrl.Snapshot().Status == domain.StatusRunning }, time.Second, time.Millisecond)

	r.clock.Advance(time.Minute)
	fired := make(chan struct{})
	go func() {
		defer close(fired)
		r.sched.Fire()
	}()
	r.waitOutput(t, "What did you work on, nya?")

	r.send(t, "")
	<-fired

	entries, err := r.app.Logs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	// The answer was consumed by the prompt, not treated as a toggle.
	assert.Equal(t, domain.StatusRunning, r.ctrl.Snapshot().Status)
	assert.Equal(t, domain.PhaseBreak, r.ctrl.Snapshot().Phase)
}

func TestPlain_EndOfInputStops(t *testing.T) {
	r := newPlainRig(t, 25, 5)
	require.NoError(t, r.input.Close())
	require.NoError(t, <-r.result)
}

func TestPlain_UnknownInputShowsHelp(t *testing.T) {
	r := newPlainRig(t, 25, 5)
	r.send(t, "help")
	require.Eventually(t, func() bool { return strings.Count(r.out.String(), plainHelp) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, domain.StatusIdle, r.ctrl.Snapshot().Status)
}

func TestRootCmd_PlainModeRunsTimer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	app := testApp(t)

	root := NewRootCmd(app)
	out := &lockedBuffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader("\nq\n"))
	root.SetArgs([]string{"--plain", "--work", "1"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), plainHelp)
	assert.Contains(t, out.String(), "01:00")
	assert.Contains(t, out.String(), "Full focus! Working hard, nya!")
}
