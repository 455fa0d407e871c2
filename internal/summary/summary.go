// Package summary aggregates the task log for display: the trailing-week
// total and per-day breakdowns.
package summary

import (
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

// WindowDays is the size of the rolling window, today included.
const WindowDays = 7

// Summarize builds the view summary for entries as of now. The returned
// entry list is the input unchanged; only the total is windowed.
func Summarize(entries []domain.TaskLog, now time.Time) domain.LogSummary {
	from, to := window(now, WindowDays)

	total := 0
	for _, e := range entries {
		if inWindow(e.Date, from, to) {
			total += e.Minutes()
		}
	}

	list := entries
	if list == nil {
		list = []domain.TaskLog{}
	}
	return domain.LogSummary{
		Entries:      list,
		Weekly:       domain.NewWeeklyTotal(total),
		TotalMinutes: total,
	}
}

// Daily returns one DayTotal per calendar day for the last days days,
// oldest first, including days with nothing logged.
func Daily(entries []domain.TaskLog, now time.Time, days int) []domain.DayTotal {
	if days <= 0 {
		return nil
	}

	index := make(map[string]int, days)
	out := make([]domain.DayTotal, days)
	for i := 0; i < days; i++ {
		d := now.AddDate(0, 0, i-(days-1)).Format(domain.DateLayout)
		out[i] = domain.DayTotal{Date: d}
		index[d] = i
	}

	for _, e := range entries {
		i, ok := index[e.Date]
		if !ok {
			continue
		}
		out[i].Minutes += e.Minutes()
		out[i].Count++
	}
	return out
}

// Recent returns the entries dated within the last days days, preserving order.
func Recent(entries []domain.TaskLog, now time.Time, days int) []domain.TaskLog {
	if days <= 0 {
		return entries
	}
	from, to := window(now, days)
	var out []domain.TaskLog
	for _, e := range entries {
		if inWindow(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// window returns the inclusive date bounds covering days calendar days
// ending today. Dates are YYYY-MM-DD so string order is date order.
func window(now time.Time, days int) (string, string) {
	from := now.AddDate(0, 0, -(days - 1)).Format(domain.DateLayout)
	return from, now.Format(domain.DateLayout)
}

func inWindow(date, from, to string) bool {
	return date >= from && date <= to
}
