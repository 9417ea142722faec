// Package progress derives completion ratios from plans. Every function is
// pure: no clock reads, no I/O, and inputs are never modified.
package progress

import (
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// Tally counts completed and total completions.
type Tally struct {
	Completed int
	Total     int
}

// Percent returns 100*Completed/Total, or 0 when Total is zero.
func (t Tally) Percent() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Completed) / float64(t.Total) * 100
}

func (t Tally) add(c domain.Completion) Tally {
	t.Total++
	if c.IsCompleted() {
		t.Completed++
	}
	return t
}

// ActivityTally counts every completion of a.
func ActivityTally(a domain.Activity) Tally {
	var t Tally
	for _, c := range a.Completions {
		t = t.add(c)
	}
	return t
}

// ActivityProgress is the completed share of a's completions, 0 when it has none.
func ActivityProgress(a domain.Activity) float64 {
	return ActivityTally(a).Percent()
}

// PlanTally counts all completions across all activities of p.
func PlanTally(p domain.Plan) Tally {
	var t Tally
	for _, a := range p.Activities {
		for _, c := range a.Completions {
			t = t.add(c)
		}
	}
	return t
}

// PlanProgressOverall is the completed share of every completion in p.
func PlanProgressOverall(p domain.Plan) float64 {
	return PlanTally(p).Percent()
}

// WorkerPlanTally counts workerID's completions in p.
func WorkerPlanTally(p domain.Plan, workerID int) Tally {
	var t Tally
	for _, a := range p.Activities {
		for _, c := range a.Completions {
			if c.WorkerID == workerID {
				t = t.add(c)
			}
		}
	}
	return t
}

// PlanProgressForWorker is the completed share of workerID's completions in p.
func PlanProgressForWorker(p domain.Plan, workerID int) float64 {
	return WorkerPlanTally(p, workerID).Percent()
}

// WorkerProgress is a worker's aggregate across several plans.
type WorkerProgress struct {
	Completed int
	Total     int
	Percent   float64
}

// WorkerProgressAcrossPlans flattens workerID's completions over plans.
func WorkerProgressAcrossPlans(plans []domain.Plan, workerID int) WorkerProgress {
	var t Tally
	for _, p := range plans {
		pt := WorkerPlanTally(p, workerID)
		t.Completed += pt.Completed
		t.Total += pt.Total
	}
	return WorkerProgress{Completed: t.Completed, Total: t.Total, Percent: t.Percent()}
}

// IsPastDeadline reports whether ref is strictly after p's deadline.
func IsPastDeadline(p domain.Plan, ref time.Time) bool {
	return ref.After(p.Deadline)
}
