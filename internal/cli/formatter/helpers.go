package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDate renders a date day-first without padding, e.g. 31/3/2024.
func FormatDate(t time.Time) string {
	return t.Format("2/1/2006")
}

// RelativeDeadline describes how many calendar days separate now from
// deadline, e.g. "In 3d" or "2w ago".
func RelativeDeadline(deadline, now time.Time) string {
	days := calendarDays(now, deadline)

	switch {
	case days == 0 && deadline.Before(now):
		return "Due earlier today"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// calendarDays counts date boundaries from from to to, in to's location.
func calendarDays(from, to time.Time) int {
	y1, m1, d1 := from.In(to.Location()).Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DeadlineStyled renders the deadline date with urgency coloring.
func DeadlineStyled(deadline, now time.Time) string {
	date := FormatDate(deadline)
	left := deadline.Sub(now)
	switch {
	case left < 0:
		return StyleRed.Render(date + " overdue")
	case left <= 72*time.Hour:
		return StyleYellow.Render(date) + " " + Dim("("+RelativeDeadline(deadline, now)+")")
	default:
		return date + " " + Dim("("+RelativeDeadline(deadline, now)+")")
	}
}

// FormatCount renders "completed/total".
func FormatCount(completed, total int) string {
	return fmt.Sprintf("%d/%d", completed, total)
}

// TruncateRunes shortens s to at most n runes, ending with an ellipsis.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
