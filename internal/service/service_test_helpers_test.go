package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/planning"
	"github.com/alexanderramin/plantrack/internal/repository"
	"github.com/alexanderramin/plantrack/internal/testutil"
	"github.com/stretchr/testify/require"
)

// directory is a UserRepo whose roster can grow mid-test, standing in for a
// worker joining after some activities already exist.
type directory struct {
	mu    sync.Mutex
	users []domain.User
}

func newDirectory(users []domain.User) *directory {
	return &directory{users: append([]domain.User(nil), users...)}
}

func (d *directory) add(u domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, u)
}

func (d *directory) snapshot() []domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.User(nil), d.users...)
}

func (d *directory) List(context.Context) ([]domain.User, error) {
	return d.snapshot(), nil
}

func (d *directory) GetByID(_ context.Context, id int) (*domain.User, error) {
	for _, u := range d.snapshot() {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: domain.EntityUser, ID: int64(id)}
}

func (d *directory) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range d.snapshot() {
		if u.MatchesUsername(username) {
			return &u, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: domain.EntityUser, Key: username}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type fixture struct {
	plans     repository.PlanRepo
	dir       *directory
	svc       PlanService
	dashboard DashboardService
	observer  *recordingObserver
	clock     *testutil.Clock
}

func planStores(t *testing.T) map[string]func() repository.PlanRepo {
	return map[string]func() repository.PlanRepo{
		"memory": func() repository.PlanRepo { return repository.NewMemoryPlanRepo() },
		"sqlite": func() repository.PlanRepo { return repository.NewSQLitePlanRepo(testutil.NewTestDB(t)) },
	}
}

func newFixture(t *testing.T, plans repository.PlanRepo) *fixture {
	t.Helper()
	dir := newDirectory(testutil.Roster())
	obs := &recordingObserver{}
	clock := testutil.NewClock(testutil.RefNow)
	mutator := planning.NewMutator(testutil.NewSeqIDs(1000), domain.LocaleES)
	return &fixture{
		plans:     plans,
		dir:       dir,
		svc:       NewPlanService(plans, dir, mutator, obs),
		dashboard: NewDashboardService(plans, dir, clock.Now, domain.LocaleES, obs),
		observer:  obs,
		clock:     clock,
	}
}

// mustPlan wraps a (*domain.Plan, error) call so it can be used inline:
// mustPlan(t)(svc.Create(ctx, req)).
func mustPlan(t *testing.T) func(*domain.Plan, error) *domain.Plan {
	return func(p *domain.Plan, err error) *domain.Plan {
		t.Helper()
		require.NoError(t, err)
		require.NotNil(t, p)
		return p
	}
}
