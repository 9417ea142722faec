package service

import (
	"context"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/domain"
)

// PlanService is the only writer of plans. Every mutation loads the current
// plan, applies a planning operation with the directory's worker roster as of
// this call, and saves the result.
type PlanService interface {
	Create(ctx context.Context, req app.CreatePlanRequest) (*domain.Plan, error)
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Edit(ctx context.Context, req app.EditPlanRequest) (*domain.Plan, error)
	// Delete returns the remaining plans so callers can reconcile selections.
	Delete(ctx context.Context, planID int64) ([]domain.Plan, error)
	AddActivities(ctx context.Context, planID int64, names []string) (*domain.Plan, error)
	RenameActivity(ctx context.Context, planID, activityID int64, name string) (*domain.Plan, error)
	DeleteActivity(ctx context.Context, planID, activityID int64) (*domain.Plan, error)
	RecordCompletion(ctx context.Context, req app.RecordCompletionRequest) (*domain.Plan, error)
}

type DirectoryService interface {
	Login(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
	Workers(ctx context.Context) ([]domain.User, error)
}

// DashboardService builds read models. It never writes.
type DashboardService interface {
	SupervisorOverview(ctx context.Context, req app.OverviewRequest) (*app.OverviewResponse, error)
	WorkerRoster(ctx context.Context, req app.RosterRequest) (*app.RosterResponse, error)
	PlanDetail(ctx context.Context, req app.PlanDetailRequest) (*app.PlanDetailResponse, error)
	ActivityDetail(ctx context.Context, req app.ActivityDetailRequest) (*app.ActivityDetailResponse, error)
	WorkerDetail(ctx context.Context, req app.WorkerPlansRequest) (*app.WorkerPlansResponse, error)
	WorkerDashboard(ctx context.Context, req app.WorkerPlansRequest) (*app.WorkerPlansResponse, error)
}
