package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/alexanderramin/plantrack/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func plantrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planFormValues backs the new-plan form.
type planFormValues struct {
	Name       string
	Deadline   string
	Activities string // one per line
}

func (v planFormValues) activityNames() []string {
	var names []string
	for _, line := range strings.Split(v.Activities, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func planForm(values *planFormValues, now time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan Name").
				Value(&values.Name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Placeholder(domain.EndOfMonth(now, 0).Format(domain.DateLayout)).
				Value(&values.Deadline).
				Validate(validateDate),
			huh.NewText().
				Title("Activities").
				Description("One per line; each is assigned to every current worker").
				Value(&values.Activities),
		),
	).WithTheme(plantrackHuhTheme()).WithShowHelp(false)
}

// cmdPlanWizard opens the new-plan form and creates the plan on submit.
func (c *commandBar) cmdPlanWizard() tea.Cmd {
	a := c.state.App
	if _, err := requireSupervisor(a); err != nil {
		return outputCmd(shellError(err))
	}
	values := &planFormValues{}
	form := planForm(values, a.now())
	return startWizardCmd(c.state, "New Plan", form, func() tea.Cmd {
		return outputCmd(createPlanFromForm(a, *values))
	})
}

func createPlanFromForm(a *App, v planFormValues) string {
	deadline, err := parseDeadline(a, v.Deadline)
	if err != nil {
		return shellError(err)
	}
	p, err := a.Plans.Create(context.Background(), app.CreatePlanRequest{
		Name: v.Name, Deadline: deadline, Activities: v.activityNames(),
	})
	if err != nil {
		return shellError(err)
	}
	return fmt.Sprintf("Created plan %s %s with %d activities (%s)",
		formatter.Bold(p.Name), formatter.Dim(fmt.Sprintf("#%d", p.ID)), len(p.Activities), p.Month)
}
