package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/progress"
)

const barWidth = 12

// FormatOverview renders the supervisor's plans for one year, grouped by
// month in calendar order.
func FormatOverview(resp *app.OverviewResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Plans %d", resp.Year)) + "\n")
	if len(resp.Years) > 1 {
		years := make([]string, len(resp.Years))
		for i, y := range resp.Years {
			s := strconv.Itoa(y)
			if y == resp.Year {
				s = StyleGreen.Render(s)
			} else {
				s = Dim(s)
			}
			years[i] = s
		}
		b.WriteString(Dim("Years: ") + strings.Join(years, " ") + "\n")
	}

	if len(resp.Months) == 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("No plans in %d.", resp.Year)) + "\n")
		return b.String()
	}

	for _, m := range resp.Months {
		b.WriteString("\n" + StylePurple.Render(m.MonthName) + "\n")
		rows := make([][]string, 0, len(m.Plans))
		for _, p := range m.Plans {
			rows = append(rows, planSummaryRow(p, resp))
		}
		b.WriteString(RenderTableAligned(
			[]string{"ID", "PLAN", "DEADLINE", "ACTIVITIES", "DONE", "PROGRESS"},
			rows, []int{3, 4},
		))
	}
	return b.String()
}

func planSummaryRow(p app.PlanSummary, resp *app.OverviewResponse) []string {
	deadline := DeadlineStyled(p.Deadline, resp.GeneratedAt)
	return []string{
		Dim(strconv.FormatInt(p.PlanID, 10)),
		TruncateRunes(p.Name, 48),
		deadline,
		strconv.Itoa(p.ActivityCount),
		FormatCount(p.Completed, p.Total),
		RenderProgress(p.Percent, barWidth),
	}
}

// FormatRoster renders every worker's progress across all plans.
func FormatRoster(resp *app.RosterResponse) string {
	var b strings.Builder
	b.WriteString(Header("Workers") + "\n")
	if len(resp.Workers) == 0 {
		b.WriteString(Dim("No workers match.") + "\n")
		return b.String()
	}
	b.WriteString(RenderTableAligned(
		[]string{"ID", "NAME", "DONE", "PROGRESS"},
		workerRows(resp.Workers), []int{2},
	))
	return b.String()
}

func workerRows(rows []app.WorkerProgressRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Dim(strconv.Itoa(r.Worker.ID)),
			r.Worker.Name,
			FormatCount(r.Completed, r.Total),
			RenderProgress(r.Percent, barWidth),
		})
	}
	return out
}

// FormatPlanDetail renders one plan with per-activity and per-worker progress.
func FormatPlanDetail(resp *app.PlanDetailResponse) string {
	var b strings.Builder
	p := resp.Plan
	b.WriteString(Header(p.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		Dim("Month:"), p.Month,
		Dim("Deadline:"), deadlineLabel(p)))
	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		Dim("Overall:"), RenderProgress(p.Percent, 20), Dim(FormatCount(p.Completed, p.Total))))

	if len(resp.Activities) == 0 {
		b.WriteString(Dim("No activities.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Activities))
		for _, a := range resp.Activities {
			rows = append(rows, []string{
				Dim(strconv.FormatInt(a.ActivityID, 10)),
				a.Name,
				FormatCount(a.Completed, a.Total),
				RenderProgress(a.Percent, barWidth),
			})
		}
		b.WriteString(RenderTableAligned([]string{"ID", "ACTIVITY", "DONE", "PROGRESS"}, rows, []int{2}))
	}

	b.WriteString("\n" + StylePurple.Render("Workers") + "\n")
	if len(resp.Workers) == 0 {
		b.WriteString(Dim("No workers match.") + "\n")
		return b.String()
	}
	b.WriteString(RenderTableAligned([]string{"ID", "NAME", "DONE", "PROGRESS"}, workerRows(resp.Workers), []int{2}))
	return b.String()
}

// FormatActivityDetail renders each worker's completion of one activity.
func FormatActivityDetail(resp *app.ActivityDetailResponse) string {
	var b strings.Builder
	b.WriteString(Header(resp.Activity.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		Dim("Plan:"), resp.Plan.Name,
		Dim("Deadline:"), deadlineLabel(resp.Plan)))
	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		Dim("Progress:"), RenderProgress(resp.Activity.Percent, 20),
		Dim(FormatCount(resp.Activity.Completed, resp.Activity.Total))))

	if len(resp.Completions) == 0 {
		b.WriteString(Dim("No workers match.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(resp.Completions))
	for _, c := range resp.Completions {
		status, evidence := NotTracked(), Dim("-")
		if c.Tracked {
			status = BadgePill(c.Badge)
			if c.EvidenceFile != "" {
				evidence = StyleBlue.Render(c.EvidenceFile)
			}
		}
		rows = append(rows, []string{Dim(strconv.Itoa(c.Worker.ID)), c.Worker.Name, status, evidence})
	}
	b.WriteString(RenderTable([]string{"ID", "WORKER", "STATUS", "EVIDENCE"}, rows))
	return b.String()
}

// FormatWorkerPlans renders a worker's plans as a tree of their own
// completions. title heads the output, e.g. the worker's name.
func FormatWorkerPlans(title string, resp *app.WorkerPlansResponse) string {
	var b strings.Builder
	w := resp.Worker
	b.WriteString(Header(title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		Dim("Overall:"), RenderProgress(w.Percent, 20), Dim(FormatCount(w.Completed, w.Total))))

	if len(resp.Plans) == 0 {
		b.WriteString(Dim("No plans assigned.") + "\n")
		return b.String()
	}

	var items []TreeItem
	for _, pv := range resp.Plans {
		items = append(items, TreeItem{
			Title:  fmt.Sprintf("%s  %s", pv.Plan.Name, Dim("#"+strconv.FormatInt(pv.Plan.PlanID, 10))),
			Detail: fmt.Sprintf("%s %3.0f%%", FormatCount(pv.Completed, pv.Total), pv.Percent),
		})
		for i, a := range pv.Activities {
			detail := "due " + FormatDate(pv.Plan.Deadline)
			switch {
			case a.EvidenceFile != "":
				detail = a.EvidenceFile
			case a.Badge == progress.BadgeOverdue:
				detail = "overdue"
			}
			items = append(items, TreeItem{
				Title:  fmt.Sprintf("%s %s", Dim("#"+strconv.FormatInt(a.ActivityID, 10)), a.Name),
				Level:  1,
				IsLast: i == len(pv.Activities)-1,
				Badge:  a.Badge,
				Detail: detail,
			})
		}
	}
	b.WriteString(RenderTree(items))
	return b.String()
}

func deadlineLabel(p app.PlanSummary) string {
	if p.Overdue {
		return StyleRed.Render(FormatDate(p.Deadline) + " overdue")
	}
	return FormatDate(p.Deadline)
}
