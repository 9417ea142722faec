package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% for pct in 0..100,
// colored by progress band.
func RenderProgress(pct float64, width int) string {
	pct = progress.Clamp(pct)
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(pct, width), pct)
}

// RenderCompactBar renders just the colored blocks.
func RenderCompactBar(pct float64, width int) string {
	pct = progress.Clamp(pct)
	if width < 2 {
		width = 2
	}

	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return BandStyle(progress.BandOf(pct)).Render(bar)
}
