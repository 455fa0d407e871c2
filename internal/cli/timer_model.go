package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cattimer/internal/cli/formatter"
	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/timer"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// repaintInterval is how often the model redraws from the screen state and
// checks for a pending prompt. The controller keeps time on its own.
const repaintInterval = 100 * time.Millisecond

// logPanelEntries caps the log shown under the timer.
const logPanelEntries = 8

type repaintMsg time.Time

func repaintTick() tea.Cmd {
	return tea.Tick(repaintInterval, func(t time.Time) tea.Msg { return repaintMsg(t) })
}

type timerKeyMap struct {
	Toggle key.Binding
	Focus  key.Binding
	Blur   key.Binding
	Quit   key.Binding
}

func defaultTimerKeys() timerKeyMap {
	return timerKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "s", "enter"), key.WithHelp("space", "start/pause")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit lengths")),
		Blur:   key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("enter", "done")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

const (
	inputWork = iota
	inputBreak
)

// taskModal is the huh form asking what the finished work phase was about.
type taskModal struct {
	form *huh.Form
	task *string
	req  promptRequest
}

// timerModel is the bubbletea front end for a timer.Controller. It never
// holds timer state itself: it renders the screen state the controller
// writes and forwards the toggle key.
type timerModel struct {
	ctx     context.Context
	ctrl    *timer.Controller
	screen  *screenState
	lengths *inputLengths
	prompt  *modalPrompt

	inputs []textinput.Model
	focus  int // -1 when no input is focused
	keys   timerKeyMap
	modal  *taskModal

	width    int
	quitting bool
}

func newTimerModel(ctx context.Context, ctrl *timer.Controller, screen *screenState, lengths *inputLengths, prompt *modalPrompt) timerModel {
	newInput := func(value int) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 3
		ti.Width = 4
		ti.SetValue(itoa(value))
		return ti
	}
	return timerModel{
		ctx:     ctx,
		ctrl:    ctrl,
		screen:  screen,
		lengths: lengths,
		prompt:  prompt,
		inputs:  []textinput.Model{newInput(lengths.WorkMinutes()), newInput(lengths.BreakMinutes())},
		focus:   -1,
		keys:    defaultTimerKeys(),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m timerModel) Init() tea.Cmd {
	return repaintTick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case repaintMsg:
		if m.modal == nil {
			if req, ok := m.prompt.pending(); ok {
				cmd := m.openModal(req)
				return m, tea.Batch(cmd, repaintTick())
			}
		}
		return m, repaintTick()

	case tea.KeyMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.focus >= 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus >= 0 {
		switch {
		case key.Matches(msg, m.keys.Focus):
			return m, m.cycleFocus()
		case key.Matches(msg, m.keys.Blur):
			m.blurInputs()
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.lengths.set(m.inputs[inputWork].Value(), m.inputs[inputBreak].Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.Toggle(m.ctx)
	case key.Matches(msg, m.keys.Focus):
		return m, m.cycleFocus()
	}
	return m, nil
}

// cycleFocus moves focus work → break → none.
func (m *timerModel) cycleFocus() tea.Cmd {
	next := m.focus + 1
	if next >= len(m.inputs) {
		m.blurInputs()
		return nil
	}
	m.blurInputs()
	m.focus = next
	return m.inputs[next].Focus()
}

func (m *timerModel) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = -1
}

// ── task prompt modal ────────────────────────────────────────────────────────

func (m *timerModel) openModal(req promptRequest) tea.Cmd {
	m.blurInputs()
	task := new(string)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What did you work on, nya?").
				Description("Leave empty or press esc to skip logging.").
				Placeholder("e.g. Read chapter 3").
				Value(task),
		),
	).WithTheme(catHuhTheme()).WithShowHelp(false)
	m.modal = &taskModal{form: form, task: task, req: req}
	return form.Init()
}

func (m timerModel) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.finishModal("", false)
			return m, nil
		case tea.KeyCtrlC:
			m.finishModal("", false)
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.modal.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.modal.form = f
	}

	switch m.modal.form.State {
	case huh.StateCompleted:
		m.finishModal(*m.modal.task, true)
	case huh.StateAborted:
		m.finishModal("", false)
	}
	return m, cmd
}

// finishModal answers the waiting prompt and closes the form.
func (m *timerModel) finishModal(task string, ok bool) {
	if m.modal == nil {
		return
	}
	task = strings.TrimSpace(task)
	m.modal.req.reply <- promptAnswer{task: task, ok: ok && task != ""}
	m.modal = nil
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}

	screen := m.screen.snapshot()
	state := m.ctrl.Snapshot()

	var b strings.Builder

	b.WriteString(formatter.PhaseBadge(state.Phase))
	b.WriteString("  ")
	b.WriteString(formatter.StatusPill(state.Status))
	b.WriteString("\n\n")

	cat := formatter.PhaseColor(state.Phase).Render(formatter.CatArt(screen.Avatar))
	status := lipgloss.NewStyle().PaddingLeft(2).Render(formatter.Bold(screen.Status))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, cat, status))
	b.WriteString("\n\n")

	countdown := lipgloss.NewStyle().
		Foreground(formatter.PhaseColor(state.Phase).GetForeground()).
		Bold(true).
		Padding(0, 2).
		Render(screen.Countdown)
	b.WriteString(countdown)
	b.WriteString("\n")

	total := time.Duration(state.PhaseMinutes) * time.Minute
	if state.Status != domain.StatusIdle {
		b.WriteString("  ")
		b.WriteString(formatter.RenderProgress(formatter.PhaseProgress(state.Remaining, total), 24, state.Phase))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	button := lipgloss.NewStyle().
		Foreground(formatter.ColorFg).
		Background(formatter.ColorHeader).
		Padding(0, 2).
		Render(screen.Button)
	b.WriteString("  ")
	b.WriteString(button)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s %s   %s %s %s\n",
		formatter.Dim("Work"), m.inputView(inputWork), formatter.Dim("min"),
		formatter.Dim("Break"), m.inputView(inputBreak), formatter.Dim("min")))
	b.WriteString("\n")

	if m.modal != nil {
		b.WriteString(formatter.RenderBox("", m.modal.form.View()))
		b.WriteString("\n")
	}

	b.WriteString(formatter.RenderBox("Log", formatter.FormatLogPanel(screen.Summary, logPanelEntries, m.width)))
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m timerModel) inputView(i int) string {
	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(formatter.ColorDim)
	if m.focus == i {
		style = style.BorderForeground(formatter.ColorHeader)
	}
	return style.Render(m.inputs[i].View())
}

func (m timerModel) helpLine() string {
	var bindings []key.Binding
	switch {
	case m.modal != nil:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log task")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
		}
	case m.focus >= 0:
		bindings = []key.Binding{m.keys.Focus, m.keys.Blur}
	default:
		bindings = []key.Binding{m.keys.Toggle, m.keys.Focus, m.keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}
