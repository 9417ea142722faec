package selection

import (
	"testing"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePlans() []domain.Plan {
	roster := domain.Workers(testutil.Roster())
	return []domain.Plan{
		testutil.NewTestPlan(1, "Q1", testutil.WithActivity(10, "a", roster...), testutil.WithActivity(11, "b", roster...)),
		testutil.NewTestPlan(2, "Q2", testutil.WithActivity(20, "c", roster...)),
	}
}

func TestSelectPlan_ClearsActivity(t *testing.T) {
	var s State
	s.SelectPlan(1)
	require.True(t, s.SelectActivity(10))

	s.SelectPlan(2)
	require.NotNil(t, s.PlanID)
	assert.Equal(t, int64(2), *s.PlanID)
	assert.Nil(t, s.ActivityID)
}

func TestSelectActivity_RequiresPlan(t *testing.T) {
	var s State
	assert.False(t, s.SelectActivity(10))
	assert.Nil(t, s.ActivityID)
}

func TestSelectWorker_IndependentOfPlan(t *testing.T) {
	var s State
	s.SelectWorker(2)
	s.SelectPlan(1)
	require.NotNil(t, s.WorkerID)
	assert.Equal(t, 2, *s.WorkerID)
}

func TestBack(t *testing.T) {
	var s State
	s.SelectPlan(1)
	s.SelectActivity(10)
	s.SelectWorker(3)

	s.Back()
	assert.Nil(t, s.ActivityID)
	assert.NotNil(t, s.WorkerID)

	s.Back()
	assert.Nil(t, s.WorkerID)
	assert.NotNil(t, s.PlanID)

	s.Back()
	assert.True(t, s.IsEmpty())

	s.Back()
	assert.True(t, s.IsEmpty())
}

func TestClear(t *testing.T) {
	var s State
	s.SelectPlan(1)
	s.SelectActivity(10)
	s.SelectWorker(2)
	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestReconcile(t *testing.T) {
	plans := fixturePlans()
	workers := domain.Workers(testutil.Roster())

	tests := []struct {
		name  string
		setup func(*State)
		plans []domain.Plan
		want  Changes
		check func(*testing.T, State)
	}{
		{
			name:  "nothing selected",
			setup: func(*State) {},
			plans: plans,
			want:  Changes{},
		},
		{
			name:  "everything still present",
			setup: func(s *State) { s.SelectPlan(1); s.SelectActivity(11); s.SelectWorker(2) },
			plans: plans,
			want:  Changes{},
			check: func(t *testing.T, s State) {
				assert.Equal(t, int64(11), *s.ActivityID)
			},
		},
		{
			name:  "plan deleted clears plan and activity",
			setup: func(s *State) { s.SelectPlan(1); s.SelectActivity(10) },
			plans: plans[1:],
			want:  Changes{PlanCleared: true, ActivityCleared: true},
			check: func(t *testing.T, s State) {
				assert.True(t, s.IsEmpty())
			},
		},
		{
			name:  "activity deleted keeps plan",
			setup: func(s *State) { s.SelectPlan(2); s.SelectActivity(99) },
			plans: plans,
			want:  Changes{ActivityCleared: true},
			check: func(t *testing.T, s State) {
				require.NotNil(t, s.PlanID)
				assert.Equal(t, int64(2), *s.PlanID)
			},
		},
		{
			name:  "unknown worker cleared",
			setup: func(s *State) { s.SelectWorker(42) },
			plans: plans,
			want:  Changes{WorkerCleared: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s State
			tc.setup(&s)
			got := s.Reconcile(tc.plans, workers)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Any(), got.Any())
			if tc.check != nil {
				tc.check(t, s)
			}
		})
	}
}

func TestPlan_Resolves(t *testing.T) {
	plans := fixturePlans()
	var s State
	_, ok := s.Plan(plans)
	assert.False(t, ok)

	s.SelectPlan(2)
	p, ok := s.Plan(plans)
	require.True(t, ok)
	assert.Equal(t, "Q2", p.Name)
}
