package domain

import "time"

// Layouts used for the persisted date and time strings.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// TaskLog is one completed work phase. The JSON shape is the on-disk format
// of the log sequence, so field names must stay stable.
type TaskLog struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Task     string `json:"task"`
	Duration int    `json:"duration"`
}

// NewTaskLog stamps a log entry with the date and clock time of at.
func NewTaskLog(task string, durationMin int, at time.Time) TaskLog {
	return TaskLog{
		Date:     at.Format(DateLayout),
		Time:     at.Format(TimeLayout),
		Task:     task,
		Duration: durationMin,
	}
}

// CompletedAt parses Date and Time back into a local timestamp.
func (l TaskLog) CompletedAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, l.Date+" "+l.Time, loc)
}

// Minutes returns the duration clamped at zero.
func (l TaskLog) Minutes() int {
	if l.Duration < 0 {
		return 0
	}
	return l.Duration
}

// WeeklyTotal is an aggregate of logged minutes split into hours and minutes.
type WeeklyTotal struct {
	Hours   int
	Minutes int
}

// NewWeeklyTotal converts a minute count into hours and leftover minutes.
func NewWeeklyTotal(totalMin int) WeeklyTotal {
	if totalMin < 0 {
		totalMin = 0
	}
	return WeeklyTotal{Hours: totalMin / 60, Minutes: totalMin % 60}
}

// LogSummary is what the view renders under the timer: the full log,
// most-recent-first, plus the total over the trailing week.
type LogSummary struct {
	Entries      []TaskLog
	Weekly       WeeklyTotal
	TotalMinutes int
}

// DayTotal is the logged minutes for one calendar date.
type DayTotal struct {
	Date    string
	Minutes int
	Count   int
}
