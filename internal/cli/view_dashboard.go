package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardView is the home view. What it shows follows the session and the
// selection: the sign-in banner, a worker's own plans, or the supervisor's
// overview drilled down to a plan, activity or worker.
type dashboardView struct {
	state   *SharedState
	content string
}

type dashboardLoadedMsg struct {
	content string
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) load() tea.Cmd {
	state := v.state
	return func() tea.Msg {
		return dashboardLoadedMsg{content: renderDashboard(context.Background(), state)}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.content = msg.content
		return v, nil
	case refreshViewMsg:
		return v, v.load()
	}
	return v, nil
}

func (v *dashboardView) View() string {
	return v.content
}

func (v *dashboardView) ID() ViewID { return ViewDashboard }

func (v *dashboardView) Title() string {
	if v.state.App.Session == nil {
		return ""
	}
	return strings.Join(v.state.Breadcrumb(context.Background()), " › ")
}

func (v *dashboardView) ShortHelp() []key.Binding {
	if !v.state.Selection.IsEmpty() {
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))}
	}
	return nil
}

// renderDashboard picks the most specific view for the current selection:
// activity, then worker, then plan, then the overview.
func renderDashboard(ctx context.Context, state *SharedState) string {
	a := state.App
	u := a.Session
	if u == nil {
		return formatter.FormatShellWelcome(nil)
	}

	if u.IsWorker() {
		resp, err := a.Dashboard.WorkerDashboard(ctx, app.WorkerPlansRequest{WorkerID: u.ID})
		if err != nil {
			return shellError(err)
		}
		return formatter.FormatWorkerPlans("My plans", resp)
	}

	sel := state.Selection
	switch {
	case sel.ActivityID != nil && sel.PlanID != nil:
		resp, err := a.Dashboard.ActivityDetail(ctx, app.ActivityDetailRequest{
			PlanID: *sel.PlanID, ActivityID: *sel.ActivityID,
		})
		if err != nil {
			return shellError(err)
		}
		return formatter.FormatActivityDetail(resp)

	case sel.WorkerID != nil:
		resp, err := a.Dashboard.WorkerDetail(ctx, app.WorkerPlansRequest{WorkerID: *sel.WorkerID})
		if err != nil {
			return shellError(err)
		}
		return formatter.FormatWorkerPlans(resp.Worker.Worker.Name, resp)

	case sel.PlanID != nil:
		resp, err := a.Dashboard.PlanDetail(ctx, app.PlanDetailRequest{PlanID: *sel.PlanID})
		if err != nil {
			return shellError(err)
		}
		return formatter.FormatPlanDetail(resp)
	}

	overview, err := a.Dashboard.SupervisorOverview(ctx, app.OverviewRequest{Year: state.Year})
	if err != nil {
		return shellError(err)
	}
	roster, err := a.Dashboard.WorkerRoster(ctx, app.RosterRequest{})
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatOverview(overview) + "\n" + formatter.FormatRoster(roster)
}

func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}
