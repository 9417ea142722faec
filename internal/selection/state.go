// Package selection tracks which plan, activity and worker the user is
// currently drilled into. The state holds ids only; it reads the plan
// collection to reconcile itself, but never writes to it.
package selection

import "github.com/alexanderramin/plantrack/internal/domain"

// State is the current focus. A nil field means nothing is selected at that
// level. An activity is only ever selected inside a selected plan.
type State struct {
	PlanID     *int64
	ActivityID *int64
	WorkerID   *int
}

// Changes reports which selections Reconcile dropped.
type Changes struct {
	PlanCleared     bool
	ActivityCleared bool
	WorkerCleared   bool
}

// Any reports whether anything was cleared.
func (c Changes) Any() bool {
	return c.PlanCleared || c.ActivityCleared || c.WorkerCleared
}

// SelectPlan focuses a plan. Navigating into a plan always starts at its top
// level, so any selected activity is cleared.
func (s *State) SelectPlan(id int64) {
	s.PlanID = &id
	s.ActivityID = nil
}

// SelectActivity focuses an activity of the selected plan. It returns false
// and leaves the state alone when no plan is selected.
func (s *State) SelectActivity(id int64) bool {
	if s.PlanID == nil {
		return false
	}
	s.ActivityID = &id
	return true
}

func (s *State) SelectWorker(id int) {
	s.WorkerID = &id
}

// Back steps up one level: activity, then worker, then plan.
func (s *State) Back() {
	switch {
	case s.ActivityID != nil:
		s.ActivityID = nil
	case s.WorkerID != nil:
		s.WorkerID = nil
	default:
		s.PlanID = nil
	}
}

func (s *State) Clear() {
	*s = State{}
}

// IsEmpty reports whether nothing is selected.
func (s State) IsEmpty() bool {
	return s.PlanID == nil && s.ActivityID == nil && s.WorkerID == nil
}

// Plan resolves the selected plan against plans.
func (s State) Plan(plans []domain.Plan) (domain.Plan, bool) {
	if s.PlanID == nil {
		return domain.Plan{}, false
	}
	for _, p := range plans {
		if p.ID == *s.PlanID {
			return p, true
		}
	}
	return domain.Plan{}, false
}

// Reconcile clears any selection whose entity no longer exists in plans or
// workers. Call it with the collection returned by every mutation.
func (s *State) Reconcile(plans []domain.Plan, workers []domain.User) Changes {
	var ch Changes

	if s.PlanID != nil {
		p, ok := s.Plan(plans)
		if !ok {
			s.PlanID = nil
			ch.PlanCleared = true
			if s.ActivityID != nil {
				s.ActivityID = nil
				ch.ActivityCleared = true
			}
		} else if s.ActivityID != nil && p.ActivityIndex(*s.ActivityID) < 0 {
			s.ActivityID = nil
			ch.ActivityCleared = true
		}
	} else if s.ActivityID != nil {
		s.ActivityID = nil
		ch.ActivityCleared = true
	}

	if s.WorkerID != nil && !hasUser(workers, *s.WorkerID) {
		s.WorkerID = nil
		ch.WorkerCleared = true
	}
	return ch
}

func hasUser(users []domain.User, id int) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
