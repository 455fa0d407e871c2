package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/teatest"
	"github.com/alexanderramin/cattimer/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tuiRig struct {
	*timerRig
	screen  *screenState
	lengths *inputLengths
	prompt  *modalPrompt
	ctrl    *timer.Controller
	d       *teatest.Driver
}

func newTUIRig(t *testing.T, work, brk int) *tuiRig {
	t.Helper()
	r := &tuiRig{
		timerRig: newTimerRig(t),
		screen:   newScreenState(),
		lengths:  newInputLengths(work, brk),
		prompt:   newModalPrompt(),
	}
	r.ctrl = r.controller(t, r.screen, r.lengths, r.prompt)
	model := newTimerModel(context.Background(), r.ctrl, r.screen, r.lengths, r.prompt)
	r.d = teatest.New(t, model, teatest.WithSize(100, 40))
	r.d.DrainInit()
	return r
}

func (r *tuiRig) repaint() {
	r.d.Send(repaintMsg(time.Now()))
}

// finishWork runs the work phase out and waits until the controller is
// blocked on the task prompt. The returned channel closes once the
// completion finishes.
func (r *tuiRig) finishWork(t *testing.T, d time.Duration) <-chan struct{} {
	t.Helper()
	r.clock.Advance(d)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.sched.Fire()
	}()
	require.Eventually(t, func() bool { return len(r.prompt.requests) == 1 }, time.Second, time.Millisecond)
	r.repaint()
	return done
}

func TestTimerModel_InitialView(t *testing.T) {
	r := newTUIRig(t, 25, 5)

	assert.True(t, r.d.ViewContains("25:00", "Ready to go, nya?", "Start", "This week: 0h 0m", "o.o"))
	assert.Equal(t, domain.StatusIdle, r.ctrl.Snapshot().Status)
}

func TestTimerModel_SpaceTogglesTimer(t *testing.T) {
	r := newTUIRig(t, 25, 5)

	r.d.PressSpace()
	assert.Equal(t, domain.StatusRunning, r.ctrl.Snapshot().Status)
	assert.True(t, r.d.ViewContains("Full focus! Working hard, nya!", "Pause"))

	r.clock.Advance(time.Second)
	r.sched.Fire()
	r.repaint()
	assert.True(t, r.d.ViewContains("24:59"))

	r.d.PressKey('s')
	assert.Equal(t, domain.StatusPaused, r.ctrl.Snapshot().Status)
	assert.True(t, r.d.ViewContains("Paused. Take your time, nya.", "Resume"))
}

func TestTimerModel_EditLengths(t *testing.T) {
	r := newTUIRig(t, 25, 5)

	r.d.PressTab()
	r.d.PressBackspace()
	r.d.PressBackspace()
	r.d.Type("10")
	r.d.PressTab()
	r.d.PressBackspace()
	r.d.Type("x")
	r.d.PressEnter()

	assert.Equal(t, 10, r.lengths.WorkMinutes())
	assert.Equal(t, 0, r.lengths.BreakMinutes())

	// Focus is gone, so space toggles again.
	r.d.PressSpace()
	assert.Equal(t, 10*60, r.ctrl.Snapshot().RemainingSeconds)
}

func TestTimerModel_TypingInInputDoesNotToggle(t *testing.T) {
	r := newTUIRig(t, 25, 5)

	r.d.PressTab()
	r.d.PressKey('s')
	r.d.PressKey('q')

	assert.Equal(t, domain.StatusIdle, r.ctrl.Snapshot().Status)
	assert.False(t, r.d.Quitting)
}

func TestTimerModel_PromptLogsTask(t *testing.T) {
	r := newTUIRig(t, 1, 5)
	r.d.PressSpace()

	done := r.finishWork(t, time.Minute)
	assert.True(t, r.d.ViewContains("What did you work on, nya?"))

	r.d.Type("Read")
	r.d.PressEnter()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("completion still waiting on the task form")
	}
	assert.False(t, r.d.Quitting)
	assert.Nil(t, r.d.Model.(timerModel).modal)

	entries, err := r.app.Logs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Read", entries[0].Task)
	assert.Equal(t, 1, entries[0].Duration)

	r.repaint()
	assert.True(t, r.d.ViewContains("Break time, nya.", "05:00", "Read", "This week: 0h 1m"))
	assert.NotContains(t, r.d.View(), "What did you work on")
}

func TestTimerModel_EscSkipsLogging(t *testing.T) {
	r := newTUIRig(t, 1, 5)
	r.d.PressSpace()

	done := r.finishWork(t, time.Minute)
	r.d.PressEsc()
	<-done

	entries, err := r.app.Logs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	st := r.ctrl.Snapshot()
	assert.Equal(t, domain.PhaseBreak, st.Phase)
	assert.Equal(t, 5*60, st.RemainingSeconds)
}

func TestTimerModel_CtrlCDuringPromptQuits(t *testing.T) {
	r := newTUIRig(t, 1, 5)
	r.d.PressSpace()

	done := r.finishWork(t, time.Minute)
	r.d.PressCtrlC()
	<-done

	assert.True(t, r.d.Quitting)
	entries, err := r.app.Logs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTimerModel_QuitKey(t *testing.T) {
	r := newTUIRig(t, 25, 5)

	r.d.PressKey('q')
	assert.True(t, r.d.Quitting)
}

func TestTimerModel_WindowSize(t *testing.T) {
	r := newTUIRig(t, 25, 5)

	r.d.Send(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, 60, r.d.Model.(timerModel).width)
}
