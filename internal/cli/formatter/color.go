package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/progress"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BandStyle returns the color for a progress band.
func BandStyle(b progress.Band) lipgloss.Style {
	switch b {
	case progress.BandLow:
		return StyleRed
	case progress.BandMedium:
		return StyleYellow
	case progress.BandHigh:
		return StyleGreen
	default:
		return StyleDim
	}
}

// BadgePill renders a completion badge such as "✔ Completed".
func BadgePill(b progress.Badge) string {
	switch b {
	case progress.BadgeCompleted:
		return StyleGreen.Render("✔ Completed")
	case progress.BadgeOverdue:
		return StyleRed.Render("● Overdue")
	case progress.BadgePending:
		return StyleYellow.Render("○ Pending")
	default:
		return StyleDim.Render(string(b))
	}
}

// NotTracked is shown where a worker has no completion record.
func NotTracked() string {
	return StyleDim.Render("N/A")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
