// Package teatest drives a bubbletea model synchronously in tests.
//
// The driver calls Update directly and runs returned Cmds in turn, so a
// test decides exactly which messages the model sees. Cmds that block,
// such as cursor blinks and repaint ticks, are abandoned after a short
// wait; tests deliver those messages themselves with Send.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many Cmds one Send may run.
const MaxSteps = 500

// cmdWait is how long a Cmd may take before it counts as blocking.
const cmdWait = 10 * time.Millisecond

// Driver owns the model under test.
type Driver struct {
	t     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd produced tea.QuitMsg. Later sends are
	// dropped, as they would be by a stopped program.
	Quitting bool
}

// Option configures a Driver before the first message.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg ahead of everything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and every message it leads to.
func (d *Driver) DrainInit() {
	d.t.Helper()
	d.run(d.Model.Init())
}

// Send delivers msg and runs every Cmd that follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd)
}

// PressKey types a single rune.
func (d *Driver) PressKey(r rune) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type types s one rune at a time.
func (d *Driver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressSpace() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEnter() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressEsc() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressCtrlC() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) PressTab() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyTab})
}

func (d *Driver) PressBackspace() {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyBackspace})
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// ViewContains reports whether the rendered model contains every fragment.
func (d *Driver) ViewContains(fragments ...string) bool {
	view := d.View()
	for _, f := range fragments {
		if !strings.Contains(view, f) {
			return false
		}
	}
	return true
}

// run works through pending Cmds depth-first, the order a batch's
// children would finish in on a real program with instant Cmds. Batches
// push their children; any other message goes back through Update.
func (d *Driver) run(first tea.Cmd) {
	d.t.Helper()
	stack := []tea.Cmd{first}
	steps := 0
	for len(stack) > 0 {
		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cmd == nil {
			continue
		}
		if steps++; steps > MaxSteps {
			d.t.Logf("teatest: stopped after %d commands", MaxSteps)
			return
		}

		msg, ok := await(cmd)
		if !ok || msg == nil || isBlink(msg) {
			continue
		}
		switch m := msg.(type) {
		case tea.BatchMsg:
			for i := len(m) - 1; i >= 0; i-- {
				stack = append(stack, m[i])
			}
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(m)
			return
		default:
			var next tea.Cmd
			d.Model, next = d.Model.Update(m)
			stack = append(stack, next)
		}
	}
}

// await runs cmd and gives up after cmdWait.
func await(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdWait):
		return nil, false
	}
}

// isBlink matches the unexported cursor blink messages from bubbles.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
