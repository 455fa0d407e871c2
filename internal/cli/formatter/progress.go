package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/cattimer/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] for pct in [0, 1], colored
// with the phase accent.
func RenderProgress(pct float64, width int, phase domain.Phase) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return "[" + PhaseColor(phase).Render(bar) + "]"
}

// PhaseProgress is the elapsed fraction of a phase that started at total
// and has remaining left. A zero-length phase counts as complete.
func PhaseProgress(remaining, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	if remaining <= 0 {
		return 1
	}
	if remaining >= total {
		return 0
	}
	return float64(total-remaining) / float64(total)
}
