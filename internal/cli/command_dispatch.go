package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/selection"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand dispatches a text command and returns a tea.Cmd.
// Navigation commands change the selection; everything else runs through
// the cobra tree. Either way the dashboard is refreshed afterwards.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "open":
		return c.cmdOpen(args)
	case "back":
		c.state.Selection.Back()
		return refreshView()
	case "home":
		c.state.Selection.Clear()
		c.state.Year = nil
		return refreshView()
	case "year":
		return c.cmdYear(args)
	case "help":
		var role *domain.Role
		if u := c.state.App.Session; u != nil {
			role = &u.Role
		}
		return outputCmd(formatter.FormatShellHelp(role))
	case "clear":
		return refreshView()
	case "exit", "quit":
		return tea.Quit
	case "shell":
		return outputCmd(formatter.Dim("Already in the shell."))
	case "plan":
		if len(args) == 1 && strings.EqualFold(args[0], "add") {
			return c.cmdPlanWizard()
		}
	}

	out := captureCobraOutput(c.state.App, parts)
	return tea.Batch(outputCmd(out+c.afterMutation()), refreshView())
}

// afterMutation resets or reconciles the selection after a cobra command and
// describes what was dropped.
func (c *commandBar) afterMutation() string {
	if c.state.SyncSession() {
		return ""
	}
	changes, err := c.state.Reconcile(context.Background())
	if err != nil {
		return "\n" + shellError(err)
	}
	return describeChanges(changes)
}

func describeChanges(ch selection.Changes) string {
	if !ch.Any() {
		return ""
	}
	var dropped []string
	if ch.PlanCleared {
		dropped = append(dropped, "plan")
	}
	if ch.ActivityCleared {
		dropped = append(dropped, "activity")
	}
	if ch.WorkerCleared {
		dropped = append(dropped, "worker")
	}
	return "\n" + formatter.Dim("Selection cleared: "+strings.Join(dropped, ", "))
}

func (c *commandBar) cmdOpen(args []string) tea.Cmd {
	const usage = "Usage: open plan|activity|worker <id>"
	if len(args) != 2 {
		return outputCmd(formatter.StyleYellow.Render(usage))
	}
	if _, err := requireSupervisor(c.state.App); err != nil {
		return outputCmd(shellError(err))
	}
	ctx := context.Background()
	a := c.state.App

	switch strings.ToLower(args[0]) {
	case "plan":
		id, err := parsePlanID(args[1])
		if err != nil {
			return outputCmd(shellError(err))
		}
		if _, err := a.Plans.GetByID(ctx, id); err != nil {
			return outputCmd(shellError(err))
		}
		c.state.Selection.SelectPlan(id)

	case "activity":
		id, err := parseActivityID(args[1])
		if err != nil {
			return outputCmd(shellError(err))
		}
		if c.state.Selection.PlanID == nil {
			return outputCmd(formatter.StyleYellow.Render("Open a plan first with 'open plan <id>'."))
		}
		p, err := a.Plans.GetByID(ctx, *c.state.Selection.PlanID)
		if err != nil {
			return outputCmd(shellError(err))
		}
		if p.ActivityIndex(id) < 0 {
			return outputCmd(shellError(fmt.Errorf("activity %d is not in plan %q", id, p.Name)))
		}
		c.state.Selection.SelectActivity(id)

	case "worker":
		id, err := parseWorkerID(args[1])
		if err != nil {
			return outputCmd(shellError(err))
		}
		u, err := a.Directory.GetUser(ctx, id)
		if err != nil {
			return outputCmd(shellError(err))
		}
		if !u.IsWorker() {
			return outputCmd(shellError(fmt.Errorf("%s is not a worker", u.Username)))
		}
		c.state.Selection.SelectWorker(id)

	default:
		return outputCmd(formatter.StyleYellow.Render(usage))
	}
	return refreshView()
}

func (c *commandBar) cmdYear(args []string) tea.Cmd {
	if len(args) == 0 {
		c.state.Year = nil
		return refreshView()
	}
	y, err := strconv.Atoi(args[0])
	if err != nil || y < 1 {
		return outputCmd(shellError(fmt.Errorf("invalid year %q", args[0])))
	}
	c.state.Year = &y
	c.state.Selection.Clear()
	return refreshView()
}

// splitShellArgs splits input on whitespace, honoring single quotes, double
// quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}
	return parts, nil
}
