package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both stores must behave identically; every case runs against each.
func planRepos(t *testing.T) map[string]PlanRepo {
	t.Helper()
	return map[string]PlanRepo{
		"memory": NewMemoryPlanRepo(),
		"sqlite": NewSQLitePlanRepo(testutil.NewTestDB(t)),
	}
}

func samplePlan(id int64, name string) domain.Plan {
	roster := domain.Workers(testutil.Roster())
	return testutil.NewTestPlan(id, name,
		testutil.WithActivity(id*10+1, "Gather data", roster...),
		testutil.WithActivity(id*10+2, "Write summary", roster...),
		testutil.WithCompleted(id*10+1, 2, "gather.pdf"),
	)
}

func TestPlanRepo_CreateAndGet(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := samplePlan(1, "Q1 Report")
			require.NoError(t, repo.Create(ctx, &p))

			got, err := repo.GetByID(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, p.Name, got.Name)
			assert.Equal(t, p.Month, got.Month)
			assert.Equal(t, p.Year, got.Year)
			assert.Equal(t, p.MonthIndex, got.MonthIndex)
			assert.True(t, p.Deadline.Equal(got.Deadline))
			assert.Equal(t, p.Activities, got.Activities)
		})
	}
}

func TestPlanRepo_GetMissing(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetByID(context.Background(), 404)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNotFound))
		})
	}
}

func TestPlanRepo_ListInCreationOrder(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			empty, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			for i, n := range []string{"A", "B", "C"} {
				p := samplePlan(int64(i+1), n)
				require.NoError(t, repo.Create(ctx, &p))
			}
			plans, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, plans, 3)
			assert.Equal(t, "A", plans[0].Name)
			assert.Equal(t, "C", plans[2].Name)
			assert.Len(t, plans[1].Activities, 2)
		})
	}
}

func TestPlanRepo_UpdateReplacesActivities(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := samplePlan(1, "Q1")
			require.NoError(t, repo.Create(ctx, &p))

			p.Name = "Q1 revised"
			p.ApplyDeadline(time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC), domain.LocaleES)
			p.Activities = p.Activities[:1]
			p.Activities[0].Completions[1].Status = domain.CompletionCompleted
			p.Activities[0].Completions[1].EvidenceFile = "charlie.pdf"
			require.NoError(t, repo.Update(ctx, &p))

			got, err := repo.GetByID(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, "Q1 revised", got.Name)
			assert.Equal(t, "abril de 2024", got.Month)
			require.Len(t, got.Activities, 1)
			assert.Equal(t, p.Activities[0].Completions, got.Activities[0].Completions)
		})
	}
}

func TestPlanRepo_UpdateMissing(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			p := samplePlan(9, "ghost")
			err := repo.Update(context.Background(), &p)
			assert.True(t, errors.Is(err, domain.ErrNotFound))
		})
	}
}

func TestPlanRepo_Delete(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a, b := samplePlan(1, "A"), samplePlan(2, "B")
			require.NoError(t, repo.Create(ctx, &a))
			require.NoError(t, repo.Create(ctx, &b))

			require.NoError(t, repo.Delete(ctx, 1))
			plans, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, plans, 1)
			assert.Equal(t, "B", plans[0].Name)

			err = repo.Delete(ctx, 1)
			assert.True(t, errors.Is(err, domain.ErrNotFound))
		})
	}
}

func TestPlanRepo_ReturnsCopies(t *testing.T) {
	for name, repo := range planRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := samplePlan(1, "A")
			require.NoError(t, repo.Create(ctx, &p))

			// Mutating the caller's value or a returned value must not leak
			// into the store.
			p.Activities[0].Name = "changed by caller"
			got, err := repo.GetByID(ctx, 1)
			require.NoError(t, err)
			require.Equal(t, 3, got.Activities[0].Completions[1].WorkerID)
			got.Activities[0].Completions[1].Status = domain.CompletionCompleted

			again, err := repo.GetByID(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, "Gather data", again.Activities[0].Name)
			assert.Equal(t, domain.CompletionCompleted, again.Activities[0].Completions[0].Status)
			assert.Equal(t, domain.CompletionPending, again.Activities[0].Completions[1].Status)
		})
	}
}

func TestMemoryPlanRepo_DuplicateID(t *testing.T) {
	repo := NewMemoryPlanRepo()
	p := samplePlan(1, "A")
	require.NoError(t, repo.Create(context.Background(), &p))
	assert.Error(t, repo.Create(context.Background(), &p))
}

func TestSQLitePlanRepo_FailedUpdateRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	p := samplePlan(1, "Q1")
	require.NoError(t, NewSQLitePlanRepo(database).Create(ctx, &p))

	boom := errors.New("disk on fire")
	// Exec 1 updates the plan row, 2 clears activities, 3 inserts the first
	// activity: fail there.
	failing := NewSQLitePlanRepoWithUoW(database, &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom})
	changed := p.Clone()
	changed.Name = "should not stick"
	err := failing.Update(ctx, &changed)
	require.ErrorIs(t, err, boom)

	got, err := NewSQLitePlanRepo(database).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Q1", got.Name)
	assert.Equal(t, p.Activities, got.Activities)
}
