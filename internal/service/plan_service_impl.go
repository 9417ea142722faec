package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/planning"
	"github.com/alexanderramin/plantrack/internal/repository"
)

type planService struct {
	// mu makes each load-mutate-save sequence atomic.
	mu       sync.Mutex
	plans    repository.PlanRepo
	users    repository.UserRepo
	mutator  *planning.Mutator
	observer UseCaseObserver
}

func NewPlanService(
	plans repository.PlanRepo,
	users repository.UserRepo,
	mutator *planning.Mutator,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plans:    plans,
		users:    users,
		mutator:  mutator,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Create(ctx context.Context, req app.CreatePlanRequest) (plan *domain.Plan, err error) {
	fields := map[string]any{"name": req.Name, "activities": len(req.Activities)}
	done := beginUseCase(ctx, s.observer, "create-plan", fields)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	workers, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	created, err := s.mutator.CreatePlan(req.Name, req.Deadline, req.Activities, workers)
	if err != nil {
		return nil, err
	}
	if err = s.plans.Create(ctx, &created); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	fields["plan_id"] = created.ID
	return &created, nil
}

func (s *planService) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) List(ctx context.Context) ([]domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Edit(ctx context.Context, req app.EditPlanRequest) (plan *domain.Plan, err error) {
	fields := map[string]any{"plan_id": req.PlanID, "extra_activities": len(req.ExtraActivities)}
	done := beginUseCase(ctx, s.observer, "edit-plan", fields)
	defer func() { done(err) }()

	return s.update(ctx, req.PlanID, func(p domain.Plan, workers []domain.User) (domain.Plan, error) {
		return s.mutator.EditPlan(p, req.Name, req.Deadline, req.ExtraActivities, workers)
	})
}

func (s *planService) Delete(ctx context.Context, planID int64) (remaining []domain.Plan, err error) {
	done := beginUseCase(ctx, s.observer, "delete-plan", map[string]any{"plan_id": planID})
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plans: %w", err)
	}
	remaining, err = s.mutator.DeletePlan(plans, planID)
	if err != nil {
		return nil, err
	}
	if err = s.plans.Delete(ctx, planID); err != nil {
		return nil, fmt.Errorf("deleting plan: %w", err)
	}
	return remaining, nil
}

func (s *planService) AddActivities(ctx context.Context, planID int64, names []string) (plan *domain.Plan, err error) {
	done := beginUseCase(ctx, s.observer, "add-activities", map[string]any{"plan_id": planID, "count": len(names)})
	defer func() { done(err) }()

	return s.update(ctx, planID, func(p domain.Plan, workers []domain.User) (domain.Plan, error) {
		return s.mutator.AddActivities(p, names, workers)
	})
}

func (s *planService) RenameActivity(ctx context.Context, planID, activityID int64, name string) (plan *domain.Plan, err error) {
	done := beginUseCase(ctx, s.observer, "rename-activity", map[string]any{"plan_id": planID, "activity_id": activityID})
	defer func() { done(err) }()

	return s.update(ctx, planID, func(p domain.Plan, _ []domain.User) (domain.Plan, error) {
		return s.mutator.RenameActivity(p, activityID, name)
	})
}

func (s *planService) DeleteActivity(ctx context.Context, planID, activityID int64) (plan *domain.Plan, err error) {
	done := beginUseCase(ctx, s.observer, "delete-activity", map[string]any{"plan_id": planID, "activity_id": activityID})
	defer func() { done(err) }()

	return s.update(ctx, planID, func(p domain.Plan, _ []domain.User) (domain.Plan, error) {
		return s.mutator.DeleteActivity(p, activityID)
	})
}

func (s *planService) RecordCompletion(ctx context.Context, req app.RecordCompletionRequest) (plan *domain.Plan, err error) {
	fields := map[string]any{
		"plan_id":     req.PlanID,
		"activity_id": req.ActivityID,
		"worker_id":   req.WorkerID,
	}
	done := beginUseCase(ctx, s.observer, "record-completion", fields)
	defer func() { done(err) }()

	return s.update(ctx, req.PlanID, func(p domain.Plan, _ []domain.User) (domain.Plan, error) {
		return s.mutator.RecordCompletion(p, req.ActivityID, req.WorkerID, req.EvidenceFile)
	})
}

// update runs one load-mutate-save cycle on a single plan. Nothing is saved
// when fn fails.
func (s *planService) update(ctx context.Context, planID int64, fn func(domain.Plan, []domain.User) (domain.Plan, error)) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	workers, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(*current, workers)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("saving plan %d: %w", planID, err)
	}
	return &updated, nil
}

// roster is the worker snapshot new activities are fanned out against.
func (s *planService) roster(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return domain.Workers(users), nil
}
