package service

import (
	"time"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/progress"
)

// summarizePlan computes the overall card for p as of now.
func summarizePlan(p domain.Plan, now time.Time) app.PlanSummary {
	t := progress.PlanTally(p)
	pct := t.Percent()
	return app.PlanSummary{
		PlanID:        p.ID,
		Name:          p.Name,
		Month:         p.Month,
		Year:          p.Year,
		MonthIndex:    p.MonthIndex,
		Deadline:      p.Deadline,
		ActivityCount: len(p.Activities),
		Completed:     t.Completed,
		Total:         t.Total,
		Percent:       pct,
		Band:          progress.BandOf(pct),
		Overdue:       progress.IsPastDeadline(p, now),
	}
}

func activityRow(a domain.Activity) app.ActivityRow {
	t := progress.ActivityTally(a)
	pct := t.Percent()
	return app.ActivityRow{
		ActivityID: a.ID,
		Name:       a.Name,
		Completed:  t.Completed,
		Total:      t.Total,
		Percent:    pct,
		Band:       progress.BandOf(pct),
	}
}

func workerRow(u domain.User, completed, total int, pct float64) app.WorkerProgressRow {
	return app.WorkerProgressRow{
		Worker:    u,
		Completed: completed,
		Total:     total,
		Percent:   pct,
		Band:      progress.BandOf(pct),
	}
}

func filterByName(users []domain.User, term string) []domain.User {
	var out []domain.User
	for _, u := range users {
		if u.MatchesName(term) {
			out = append(out, u)
		}
	}
	return out
}

func nowOr(req *time.Time, clock func() time.Time) time.Time {
	if req != nil {
		return *req
	}
	return clock()
}
