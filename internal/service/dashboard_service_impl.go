package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/progress"
	"github.com/alexanderramin/plantrack/internal/repository"
)

type dashboardService struct {
	plans    repository.PlanRepo
	users    repository.UserRepo
	clock    func() time.Time
	locale   string
	observer UseCaseObserver
}

// NewDashboardService creates a DashboardService. clock supplies "now" when a
// request does not carry one; a nil clock uses time.Now.
func NewDashboardService(
	plans repository.PlanRepo,
	users repository.UserRepo,
	clock func() time.Time,
	locale string,
	observers ...UseCaseObserver,
) DashboardService {
	if clock == nil {
		clock = time.Now
	}
	if locale == "" {
		locale = domain.LocaleES
	}
	return &dashboardService{
		plans:    plans,
		users:    users,
		clock:    clock,
		locale:   locale,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) SupervisorOverview(ctx context.Context, req app.OverviewRequest) (resp *app.OverviewResponse, err error) {
	fields := map[string]any{}
	done := beginUseCase(ctx, s.observer, "supervisor-overview", fields)
	defer func() { done(err) }()

	now := nowOr(req.Now, s.clock)
	year := now.Year()
	if req.Year != nil {
		year = *req.Year
	}
	fields["year"] = year

	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plans: %w", err)
	}

	years := map[int]bool{now.Year(): true, year: true}
	var inYear []domain.Plan
	for _, p := range plans {
		years[p.Year] = true
		if p.Year == year {
			inYear = append(inYear, p)
		}
	}
	sort.SliceStable(inYear, func(i, j int) bool {
		return inYear[i].MonthIndex < inYear[j].MonthIndex
	})

	resp = &app.OverviewResponse{Year: year, GeneratedAt: now}
	for y := range years {
		resp.Years = append(resp.Years, y)
	}
	sort.Ints(resp.Years)

	for _, p := range inYear {
		n := len(resp.Months)
		if n == 0 || resp.Months[n-1].MonthIndex != p.MonthIndex {
			resp.Months = append(resp.Months, app.MonthGroup{
				MonthIndex: p.MonthIndex,
				MonthName:  domain.MonthName(p.MonthIndex, s.locale),
			})
			n++
		}
		resp.Months[n-1].Plans = append(resp.Months[n-1].Plans, summarizePlan(p, now))
	}
	fields["plans"] = len(inYear)
	return resp, nil
}

func (s *dashboardService) WorkerRoster(ctx context.Context, req app.RosterRequest) (resp *app.RosterResponse, err error) {
	done := beginUseCase(ctx, s.observer, "worker-roster", map[string]any{"search": req.Search})
	defer func() { done(err) }()

	plans, workers, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	resp = &app.RosterResponse{}
	for _, w := range filterByName(workers, req.Search) {
		wp := progress.WorkerProgressAcrossPlans(plans, w.ID)
		resp.Workers = append(resp.Workers, workerRow(w, wp.Completed, wp.Total, wp.Percent))
	}
	return resp, nil
}

func (s *dashboardService) PlanDetail(ctx context.Context, req app.PlanDetailRequest) (resp *app.PlanDetailResponse, err error) {
	done := beginUseCase(ctx, s.observer, "plan-detail", map[string]any{"plan_id": req.PlanID})
	defer func() { done(err) }()

	p, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	workers, err := s.workers(ctx)
	if err != nil {
		return nil, err
	}

	resp = &app.PlanDetailResponse{Plan: summarizePlan(*p, nowOr(req.Now, s.clock))}
	for _, a := range p.Activities {
		resp.Activities = append(resp.Activities, activityRow(a))
	}
	for _, w := range filterByName(workers, req.WorkerSearch) {
		t := progress.WorkerPlanTally(*p, w.ID)
		resp.Workers = append(resp.Workers, workerRow(w, t.Completed, t.Total, t.Percent()))
	}
	return resp, nil
}

func (s *dashboardService) ActivityDetail(ctx context.Context, req app.ActivityDetailRequest) (resp *app.ActivityDetailResponse, err error) {
	done := beginUseCase(ctx, s.observer, "activity-detail", map[string]any{"plan_id": req.PlanID, "activity_id": req.ActivityID})
	defer func() { done(err) }()

	p, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	a, ok := p.Activity(req.ActivityID)
	if !ok {
		return nil, &domain.NotFoundError{Entity: domain.EntityActivity, ID: req.ActivityID}
	}
	workers, err := s.workers(ctx)
	if err != nil {
		return nil, err
	}

	now := nowOr(req.Now, s.clock)
	resp = &app.ActivityDetailResponse{
		Plan:     summarizePlan(*p, now),
		Activity: activityRow(*a),
	}
	for _, w := range filterByName(workers, req.WorkerSearch) {
		row := app.CompletionRow{Worker: w}
		if c, ok := a.CompletionFor(w.ID); ok {
			row.Tracked = true
			row.Status = c.Status
			row.EvidenceFile = c.EvidenceFile
			row.Badge = progress.BadgeFor(c, *p, now)
		}
		resp.Completions = append(resp.Completions, row)
	}
	return resp, nil
}

// WorkerDetail is the supervisor's view of one worker: only plans where the
// worker holds at least one completion.
func (s *dashboardService) WorkerDetail(ctx context.Context, req app.WorkerPlansRequest) (resp *app.WorkerPlansResponse, err error) {
	done := beginUseCase(ctx, s.observer, "worker-detail", map[string]any{"worker_id": req.WorkerID})
	defer func() { done(err) }()

	return s.workerPlans(ctx, req)
}

// WorkerDashboard is a worker's own view of their assigned plans.
func (s *dashboardService) WorkerDashboard(ctx context.Context, req app.WorkerPlansRequest) (resp *app.WorkerPlansResponse, err error) {
	done := beginUseCase(ctx, s.observer, "worker-dashboard", map[string]any{"worker_id": req.WorkerID})
	defer func() { done(err) }()

	return s.workerPlans(ctx, req)
}

func (s *dashboardService) workerPlans(ctx context.Context, req app.WorkerPlansRequest) (*app.WorkerPlansResponse, error) {
	worker, err := s.users.GetByID(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsWorker() {
		return nil, domain.NewValidationError("worker", fmt.Sprintf("user %q is not a worker", worker.Username))
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plans: %w", err)
	}

	now := nowOr(req.Now, s.clock)
	wp := progress.WorkerProgressAcrossPlans(plans, worker.ID)
	resp := &app.WorkerPlansResponse{
		Worker: workerRow(*worker, wp.Completed, wp.Total, wp.Percent),
		AsOf:   now,
	}
	for _, p := range plans {
		if !p.HasWorker(worker.ID) {
			continue
		}
		t := progress.WorkerPlanTally(p, worker.ID)
		view := app.WorkerPlanView{
			Plan:      summarizePlan(p, now),
			Completed: t.Completed,
			Total:     t.Total,
			Percent:   t.Percent(),
			Band:      progress.BandOf(t.Percent()),
		}
		for _, a := range p.Activities {
			c, ok := a.CompletionFor(worker.ID)
			if !ok {
				continue
			}
			view.Activities = append(view.Activities, app.WorkerActivityItem{
				ActivityID:   a.ID,
				Name:         a.Name,
				Status:       c.Status,
				EvidenceFile: c.EvidenceFile,
				Badge:        progress.BadgeFor(c, p, now),
				CanUpload:    progress.CanUpload(c, p, now),
			})
		}
		resp.Plans = append(resp.Plans, view)
	}
	return resp, nil
}

func (s *dashboardService) load(ctx context.Context) ([]domain.Plan, []domain.User, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading plans: %w", err)
	}
	workers, err := s.workers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return plans, workers, nil
}

func (s *dashboardService) workers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return domain.Workers(users), nil
}
