package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/progress"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a plan tree: a plan at level 0, its activities at
// level 1.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Badge  progress.Badge // empty for plan rows
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree. Completed items get a
// green ✔ and dimmed title, overdue ones a red ●. Details are
// right-aligned in a column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		detail  string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		switch item.Badge {
		case progress.BadgeCompleted:
			title = StyleGreen.Render("✔ ") + Dim(title)
		case progress.BadgeOverdue:
			title = StyleRed.Render("● ") + title
		case progress.BadgePending:
			title = StyleYellow.Render("○ ") + title
		default:
			title = Bold(title)
		}

		lines[idx].content = prefix + title
		if item.Detail != "" {
			lines[idx].detail = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(lines[idx].content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.detail == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.detail + "\n")
	}
	return b.String()
}
