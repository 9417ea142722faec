package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Workers uploading at the same time must not overwrite each other's
// completions: each load-mutate-save runs as one step.
func TestPlanService_ConcurrentCompletions(t *testing.T) {
	for name, store := range planStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, store())
			p := mustPlan(t)(f.svc.Create(ctx, app.CreatePlanRequest{
				Name:       "Q1 Report",
				Deadline:   f.clock.Now().AddDate(0, 0, 7),
				Activities: []string{"Gather data", "Write summary", "Review"},
			}))

			var wg sync.WaitGroup
			for _, worker := range []int{bob, charlie} {
				for _, act := range p.Activities {
					wg.Add(1)
					go func(worker int, actID int64) {
						defer wg.Done()
						_, err := f.svc.RecordCompletion(ctx, app.RecordCompletionRequest{
							PlanID:       p.ID,
							ActivityID:   actID,
							WorkerID:     worker,
							EvidenceFile: fmt.Sprintf("%d-%d.pdf", worker, actID),
						})
						if err != nil {
							t.Errorf("worker %d activity %d: %v", worker, actID, err)
						}
					}(worker, act.ID)
				}
			}
			wg.Wait()

			got, err := f.svc.GetByID(ctx, p.ID)
			require.NoError(t, err)
			for _, a := range got.Activities {
				for _, c := range a.Completions {
					assert.True(t, c.IsCompleted(), "activity %d worker %d", a.ID, c.WorkerID)
					assert.Equal(t, fmt.Sprintf("%d-%d.pdf", c.WorkerID, a.ID), c.EvidenceFile)
				}
			}
		})
	}
}
