// Package planning holds every write to the plan model. Operations validate
// their whole input before building anything, never modify their arguments,
// and return fresh values, so a failed call leaves the caller's state intact.
//
// Activities are fanned out against the roster passed to the call that
// creates them. Workers added later are not given completions for existing
// activities.
package planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// Mutator applies plan mutations, drawing ids from its IDSource.
type Mutator struct {
	ids    IDSource
	locale string
}

// NewMutator creates a Mutator. An empty locale uses domain.LocaleES.
func NewMutator(ids IDSource, locale string) *Mutator {
	if locale == "" {
		locale = domain.LocaleES
	}
	return &Mutator{ids: ids, locale: locale}
}

// CreatePlan builds a new plan. Blank activity names are skipped.
func (m *Mutator) CreatePlan(name string, deadline time.Time, activityNames []string, workers []domain.User) (domain.Plan, error) {
	if err := validatePlanFields(name, deadline); err != nil {
		return domain.Plan{}, err
	}

	p := domain.Plan{
		ID:         m.ids.NextID(),
		Name:       strings.TrimSpace(name),
		Activities: m.newActivities(nonBlank(activityNames), workers),
	}
	p.ApplyDeadline(deadline, m.locale)
	return p, nil
}

// EditPlan renames the plan, moves its deadline and appends any non-blank
// extra activities. Existing activities are carried over untouched.
func (m *Mutator) EditPlan(plan domain.Plan, name string, deadline time.Time, extraActivityNames []string, workers []domain.User) (domain.Plan, error) {
	if err := validatePlanFields(name, deadline); err != nil {
		return domain.Plan{}, err
	}

	out := plan.Clone()
	out.Name = strings.TrimSpace(name)
	out.ApplyDeadline(deadline, m.locale)
	out.Activities = append(out.Activities, m.newActivities(nonBlank(extraActivityNames), workers)...)
	return out, nil
}

// DeletePlan returns plans without planID, cascading its activities and
// completions.
func (m *Mutator) DeletePlan(plans []domain.Plan, planID int64) ([]domain.Plan, error) {
	idx := -1
	for i := range plans {
		if plans[i].ID == planID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityPlan, ID: planID}
	}

	out := make([]domain.Plan, 0, len(plans)-1)
	for i, p := range plans {
		if i != idx {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// AddActivities appends one activity per name. Every name must be non-blank.
func (m *Mutator) AddActivities(plan domain.Plan, names []string, workers []domain.User) (domain.Plan, error) {
	verr := &domain.ValidationError{}
	if len(names) == 0 {
		verr.Add("names", "at least one activity name is required")
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			verr.Add("names", "activity names must not be blank")
			break
		}
	}
	if err := verr.OrNil(); err != nil {
		return domain.Plan{}, err
	}

	out := plan.Clone()
	out.Activities = append(out.Activities, m.newActivities(trimAll(names), workers)...)
	return out, nil
}

// RenameActivity changes the name of one activity.
func (m *Mutator) RenameActivity(plan domain.Plan, activityID int64, name string) (domain.Plan, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Plan{}, domain.NewValidationError("name", "activity name must not be blank")
	}
	idx := plan.ActivityIndex(activityID)
	if idx < 0 {
		return domain.Plan{}, &domain.NotFoundError{Entity: domain.EntityActivity, ID: activityID}
	}

	out := plan.Clone()
	out.Activities[idx].Name = strings.TrimSpace(name)
	return out, nil
}

// DeleteActivity removes one activity and all of its completions.
func (m *Mutator) DeleteActivity(plan domain.Plan, activityID int64) (domain.Plan, error) {
	idx := plan.ActivityIndex(activityID)
	if idx < 0 {
		return domain.Plan{}, &domain.NotFoundError{Entity: domain.EntityActivity, ID: activityID}
	}

	out := plan.Clone()
	out.Activities = append(out.Activities[:idx:idx], out.Activities[idx+1:]...)
	return out, nil
}

// RecordCompletion marks workerID's completion of activityID as completed
// with the given evidence file name. Completing twice is rejected.
func (m *Mutator) RecordCompletion(plan domain.Plan, activityID int64, workerID int, evidenceFile string) (domain.Plan, error) {
	evidenceFile = strings.TrimSpace(evidenceFile)
	if evidenceFile == "" {
		return domain.Plan{}, domain.NewValidationError("evidence", "an evidence file is required to complete an activity")
	}
	aIdx := plan.ActivityIndex(activityID)
	if aIdx < 0 {
		return domain.Plan{}, &domain.NotFoundError{Entity: domain.EntityActivity, ID: activityID}
	}
	key := fmt.Sprintf("activity %d, worker %d", activityID, workerID)
	cIdx := plan.Activities[aIdx].CompletionIndex(workerID)
	if cIdx < 0 {
		return domain.Plan{}, &domain.NotFoundError{Entity: domain.EntityCompletion, Key: key}
	}
	if plan.Activities[aIdx].Completions[cIdx].IsCompleted() {
		return domain.Plan{}, &domain.InvalidStateError{
			Entity: domain.EntityCompletion,
			Key:    key,
			State:  string(domain.CompletionCompleted),
			Op:     "complete",
		}
	}

	out := plan.Clone()
	c := &out.Activities[aIdx].Completions[cIdx]
	c.Status = domain.CompletionCompleted
	c.EvidenceFile = evidenceFile
	return out, nil
}

func (m *Mutator) newActivities(names []string, workers []domain.User) []domain.Activity {
	if len(names) == 0 {
		return nil
	}
	out := make([]domain.Activity, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Activity{
			ID:          m.ids.NextID(),
			Name:        n,
			Completions: fanOut(workers),
		})
	}
	return out
}

// fanOut creates one pending completion per distinct worker id, in roster order.
func fanOut(workers []domain.User) []domain.Completion {
	seen := make(map[int]bool, len(workers))
	out := make([]domain.Completion, 0, len(workers))
	for _, w := range workers {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, domain.Completion{WorkerID: w.ID, Status: domain.CompletionPending})
	}
	return out
}

func validatePlanFields(name string, deadline time.Time) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "plan name is required")
	}
	if deadline.IsZero() {
		verr.Add("deadline", "deadline is required")
	}
	return verr.OrNil()
}

func nonBlank(names []string) []string {
	var out []string
	for _, n := range names {
		if t := strings.TrimSpace(n); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func trimAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
	}
	return out
}
