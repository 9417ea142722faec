package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// FormatShellWelcome renders the banner shown on shell startup.
func FormatShellWelcome(user *domain.User) string {
	var b strings.Builder
	b.WriteString("\n" + StylePurple.Render("  plantrack") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n\n")
	if user == nil {
		b.WriteString(StyleDim.Render("  Log in with 'login <username>' to begin.") + "\n\n")
	} else {
		b.WriteString(fmt.Sprintf("  Signed in as %s %s\n\n", Bold(user.Name), Dim("("+string(user.Role)+")")))
	}
	b.WriteString(StyleDim.Render("  Type 'help' for all commands, ':' to focus the command bar.") + "\n")
	return b.String()
}

type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-30s %s\n", StyleGreen.Render(c[0]), StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the command reference for a role. A nil role
// shows only the session commands.
func FormatShellHelp(role *domain.Role) string {
	categories := []helpCategory{{
		title: "Session",
		commands: [][]string{
			{"login <username>", "Sign in"},
			{"logout", "Sign out and clear selections"},
			{"whoami", "Show the signed-in user"},
		},
	}}

	if role != nil && *role == domain.RoleSupervisor {
		categories = append(categories,
			helpCategory{title: "Navigation", commands: [][]string{
				{"open plan <id>", "Drill into a plan"},
				{"open activity <id>", "Drill into an activity of the open plan"},
				{"open worker <id>", "Show one worker's plans"},
				{"year <yyyy>", "Switch the overview year"},
				{"back / esc", "Step up one level"},
				{"home", "Clear all selections"},
			}},
			helpCategory{title: "Plans", commands: [][]string{
				{"plan list [--year]", "Plans grouped by month"},
				{"plan add", "Create a plan (form when flags omitted)"},
				{"plan edit <id>", "Rename, move deadline, append activities"},
				{"plan remove <id>", "Delete a plan"},
				{"activity add <plan> <name>", "Append an activity"},
				{"activity rename <plan> <id> <name>", "Rename an activity"},
				{"activity remove <plan> <id>", "Delete an activity"},
			}},
			helpCategory{title: "Reporting", commands: [][]string{
				{"workers [--search]", "Worker progress across all plans"},
				{"report --out <file.pdf>", "Write a PDF progress report"},
			}},
		)
	}
	if role != nil && *role == domain.RoleWorker {
		categories = append(categories, helpCategory{title: "My work", commands: [][]string{
			{"mine", "My plans and completions"},
			{"complete <plan> <activity> <file.pdf>", "Upload evidence for an activity"},
		}})
	}
	categories = append(categories, helpCategory{title: "Utilities", commands: [][]string{
		{"help", "Show this command reference"},
		{"exit / quit", "Quit plantrack"},
	}})

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}
	return RenderBox("Commands", b.String())
}

// FormatBreadcrumb joins navigation segments for the header line.
func FormatBreadcrumb(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return " " + Dim("›") + " " + Dim(strings.Join(segments, " › "))
}
