package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/cattimer/internal/alert"
	"github.com/alexanderramin/cattimer/internal/config"
	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/service"
	"github.com/alexanderramin/cattimer/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and process-level settings used by CLI commands.
type App struct {
	Logs service.TaskLogService

	// LoadConfig resolves the effective config, applying any flags the user
	// set. Nil means config.Load with the default path.
	LoadConfig func(flags *pflag.FlagSet) (config.Config, error)

	// Logger receives timer events; nil disables them.
	Logger *slog.Logger
	RunID  string

	// IsInteractive reports whether stdin is a terminal. Nil means plain mode.
	IsInteractive func() bool

	// Now is the wall clock for log commands. Nil means time.Now.
	Now func() time.Time
}

func (a *App) config(flags *pflag.FlagSet) (config.Config, error) {
	if a.LoadConfig != nil {
		return a.LoadConfig(flags)
	}
	return config.Load("", flags)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cattimer" command. Run without a
// subcommand it starts the timer; log and config manage stored state.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cattimer",
		Short: "Work/break timer with a cat and a task log",
		Long: `cattimer alternates work and break phases. When a work phase ends
it asks what you worked on and keeps a log with a trailing 7-day total.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, app)
		},
	}

	root.Flags().Int("work", 25, "work phase length in minutes")
	root.Flags().Int("break", 5, "break phase length in minutes")
	root.Flags().String("strategy", string(domain.StrategyDeadline), "timekeeping strategy: deadline or decrement")
	root.Flags().Bool("plain", false, "line-based mode without the full-screen UI")

	root.AddCommand(
		newLogCmd(app),
		newConfigCmd(app),
	)
	return root
}

func runTimer(cmd *cobra.Command, app *App) error {
	cfg, err := app.config(cmd.Flags())
	if err != nil {
		return err
	}
	plain, _ := cmd.Flags().GetBool("plain")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if plain || !app.interactive() {
		out := newSyncWriter(cmd.OutOrStdout())
		prompt := newLinePrompt(out)
		ctrl := app.newController(cfg, newLineView(out), timer.FixedLengths{Work: cfg.WorkMinutes, Break: cfg.BreakMinutes}, prompt,
			alert.New(alertOptions(cfg), out, app.Logger))
		defer ctrl.Close()
		ctrl.Init(ctx)
		return runPlain(ctx, ctrl, prompt, cmd.InOrStdin(), out)
	}

	screen := newScreenState()
	lengths := newInputLengths(cfg.WorkMinutes, cfg.BreakMinutes)
	prompt := newModalPrompt()
	ctrl := app.newController(cfg, screen, lengths, prompt,
		alert.New(alertOptions(cfg), cmd.ErrOrStderr(), app.Logger))
	defer ctrl.Close()
	ctrl.Init(ctx)

	model := newTimerModel(ctx, ctrl, screen, lengths, prompt)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running timer: %w", err)
	}
	return nil
}

func (a *App) newController(cfg config.Config, view timer.View, lengths timer.Lengths, prompt timer.Prompt, cue alert.Alert) *timer.Controller {
	return timer.NewController(timer.Deps{
		View:     view,
		Lengths:  lengths,
		Logs:     a.Logs,
		Alert:    cue,
		Prompt:   prompt,
		Observer: timer.NewLogObserver(a.Logger, a.RunID),
	},
		timer.WithStrategy(domain.Strategy(cfg.Strategy)),
		timer.WithPeriod(time.Duration(cfg.TickMs)*time.Millisecond),
	)
}

func alertOptions(cfg config.Config) alert.Options {
	return alert.Options{Bell: cfg.Alert.Bell, Command: cfg.Alert.Command}
}
