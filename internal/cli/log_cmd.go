package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cattimer/internal/cli/formatter"
	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/alexanderramin/cattimer/internal/summary"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect and add to the task log",
	}

	cmd.AddCommand(
		newLogListCmd(app),
		newLogWeekCmd(app),
		newLogAddCmd(app),
		newLogExportCmd(app),
	)
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged tasks, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Logs.List(cmd.Context())
			if err != nil {
				return err
			}
			now := app.now()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogList(summary.Recent(entries, now, days), now))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "only show the last N days (0 = all)")
	return cmd
}

func newLogWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the trailing 7-day total with a per-day breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.now()

			sum, err := app.Logs.Weekly(ctx, now)
			if err != nil {
				return err
			}
			days, err := app.Logs.Daily(ctx, now, summary.WindowDays)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(sum, days, now))
			return nil
		},
	}
}

func newLogAddCmd(app *App) *cobra.Command {
	var (
		task    string
		minutes int
		at      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a completed work phase by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when := app.now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at %q (want RFC3339, e.g. 2026-10-19T14:30:00+09:00): %w", at, err)
				}
				when = parsed
			}

			entry := domain.NewTaskLog(task, minutes, when)
			if err := app.Logs.Record(cmd.Context(), entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged %s (%s) at %s %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(strings.TrimSpace(task)),
				formatter.FormatMinutes(minutes),
				entry.Date, entry.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "what you worked on (required)")
	cmd.Flags().IntVar(&minutes, "minutes", 25, "duration in minutes")
	cmd.Flags().StringVar(&at, "at", "", "completion time in RFC3339 (default now)")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newLogExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the log as plain text lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Logs.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExport(entries))
			return nil
		},
	}
}
