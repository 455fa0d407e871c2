package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cattimer/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseColor returns the accent style for a phase: orange while working,
// green on a break.
func PhaseColor(phase domain.Phase) lipgloss.Style {
	if phase == domain.PhaseBreak {
		return StyleGreen
	}
	return StyleHeader
}

// PhaseBadge returns a colored phase label such as "● WORK".
func PhaseBadge(phase domain.Phase) string {
	return PhaseColor(phase).Render("● " + strings.ToUpper(string(phase)))
}

// StatusPill returns a colored indicator for the timer status.
func StatusPill(status domain.TimerStatus) string {
	switch status {
	case domain.StatusRunning:
		return StyleGreen.Render("▶ Running")
	case domain.StatusPaused:
		return StyleYellow.Render("❚❚ Paused")
	default:
		return StyleDim.Render("○ Idle")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
