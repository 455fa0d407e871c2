package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// FormatLogList renders log entries as a table, in the order given.
func FormatLogList(entries []domain.TaskLog, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No tasks logged yet, nya.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	total := 0
	for _, e := range entries {
		rows = append(rows, []string{
			DayLabel(e.Date, now),
			Dim(e.Time),
			e.Task,
			FormatMinutes(e.Minutes()),
		})
		total += e.Minutes()
	}

	var b strings.Builder
	b.WriteString(RenderTableAligned(
		[]string{"DATE", "TIME", "TASK", "DURATION"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	))
	b.WriteString(fmt.Sprintf("\n%s %s across %d %s\n",
		Dim("Total:"), Bold(FormatMinutes(total)), len(entries), plural(len(entries), "entry", "entries")))
	return b.String()
}

// FormatWeek renders the weekly total and a per-day bar chart. days is
// oldest first, as produced by summary.Daily.
func FormatWeek(sum domain.LogSummary, days []domain.DayTotal, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("This week"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n\n", Dim("Total:"), Bold(FormatWeekly(sum.Weekly))))

	peak := 0
	for _, d := range days {
		if d.Minutes > peak {
			peak = d.Minutes
		}
	}

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		pct := 0.0
		if peak > 0 {
			pct = float64(d.Minutes) / float64(peak)
		}
		rows = append(rows, []string{
			DayLabel(d.Date, now),
			Dim(d.Date),
			RenderProgress(pct, 20, domain.PhaseWork),
			FormatMinutes(d.Minutes),
			fmt.Sprintf("%d", d.Count),
		})
	}
	b.WriteString(RenderTableAligned(
		[]string{"DAY", "DATE", "", "LOGGED", "TASKS"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight},
	))
	return b.String()
}

// FormatExport renders entries as plain text lines of the form
// "[2026-10-19 14:30:00] Read (25 min)".
func FormatExport(entries []domain.TaskLog) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s %s] %s (%d min)\n", e.Date, e.Time, e.Task, e.Minutes())
	}
	return b.String()
}

// FormatLogPanel renders the compact log shown under the timer: the most
// recent limit entries followed by the weekly total. limit <= 0 shows all.
func FormatLogPanel(sum domain.LogSummary, limit, width int) string {
	var b strings.Builder
	entries := sum.Entries
	hidden := 0
	if limit > 0 && len(entries) > limit {
		hidden = len(entries) - limit
		entries = entries[:limit]
	}

	if len(entries) == 0 {
		b.WriteString(Dim("No tasks yet, nya."))
		b.WriteString("\n")
	}
	taskWidth := width - 30
	if taskWidth < 10 {
		taskWidth = 10
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			Dim(e.Date), Dim(e.Time), Truncate(e.Task, taskWidth), StyleYellow.Render(FormatMinutes(e.Minutes())))
	}
	if hidden > 0 {
		b.WriteString(Dim(fmt.Sprintf("… %d more", hidden)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", Dim("This week:"), Bold(FormatWeekly(sum.Weekly))))
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
