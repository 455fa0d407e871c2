package domain

// Avatar references handed to the view. Renderers map them to whatever
// artwork they have.
const (
	AvatarWork  = "work_cat.png"
	AvatarBreak = "break_cat.png"
)

// Button labels for the single toggle control.
const (
	ButtonStart  = "Start"
	ButtonPause  = "Pause"
	ButtonResume = "Resume"
)

// StatusText returns the status line shown for a phase and timer status.
func StatusText(status TimerStatus, phase Phase) string {
	switch {
	case status == StatusIdle:
		return "Ready to go, nya?"
	case status == StatusPaused:
		return "Paused. Take your time, nya."
	case phase == PhaseBreak:
		return "Break time, nya."
	default:
		return "Full focus! Working hard, nya!"
	}
}

// AvatarFor returns the avatar reference for a phase.
func AvatarFor(phase Phase) string {
	if phase == PhaseBreak {
		return AvatarBreak
	}
	return AvatarWork
}

// ButtonLabel returns the toggle label for a timer status.
func ButtonLabel(status TimerStatus) string {
	switch status {
	case StatusRunning:
		return ButtonPause
	case StatusPaused:
		return ButtonResume
	default:
		return ButtonStart
	}
}
