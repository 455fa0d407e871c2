package domain

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Next returns the phase that follows p in the work/break cycle.
func (p Phase) Next() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

type TimerStatus string

const (
	StatusIdle    TimerStatus = "idle"
	StatusRunning TimerStatus = "running"
	StatusPaused  TimerStatus = "paused"
)

type Strategy string

const (
	StrategyDeadline  Strategy = "deadline"
	StrategyDecrement Strategy = "decrement"
)

// ValidStrategies is the canonical set of accepted strategy strings.
var ValidStrategies = map[string]bool{
	"deadline": true, "decrement": true,
}
