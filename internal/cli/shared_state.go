package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/plantrack/internal/selection"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Selection is the plan, activity and worker the supervisor has drilled into.
	Selection selection.State
	// Year overrides the overview year; nil follows the clock.
	Year *int

	// sessionUserID is the signed-in user the selection belongs to, 0 for none.
	sessionUserID int

	Width  int
	Height int
}

// SyncSession drops the selection when the signed-in user changed since the
// last call. It reports whether anything was reset.
func (s *SharedState) SyncSession() bool {
	id := 0
	if s.App.Session != nil {
		id = s.App.Session.ID
	}
	if id == s.sessionUserID {
		return false
	}
	s.sessionUserID = id
	s.Selection.Clear()
	s.Year = nil
	return true
}

// Reconcile drops selections whose plan, activity or worker no longer exists.
func (s *SharedState) Reconcile(ctx context.Context) (selection.Changes, error) {
	if s.Selection.IsEmpty() {
		return selection.Changes{}, nil
	}
	plans, err := s.App.Plans.List(ctx)
	if err != nil {
		return selection.Changes{}, err
	}
	workers, err := s.App.Directory.Workers(ctx)
	if err != nil {
		return selection.Changes{}, err
	}
	return s.Selection.Reconcile(plans, workers), nil
}

// Breadcrumb names each selected level: plan, activity, then worker.
func (s *SharedState) Breadcrumb(ctx context.Context) []string {
	var crumbs []string
	if s.Selection.PlanID != nil {
		planID := *s.Selection.PlanID
		p, err := s.App.Plans.GetByID(ctx, planID)
		if err != nil {
			crumbs = append(crumbs, fmt.Sprintf("plan #%d", planID))
		} else {
			crumbs = append(crumbs, p.Name)
			if s.Selection.ActivityID != nil {
				if a, ok := p.Activity(*s.Selection.ActivityID); ok {
					crumbs = append(crumbs, a.Name)
				}
			}
		}
	}
	if s.Selection.WorkerID != nil {
		label := fmt.Sprintf("worker #%d", *s.Selection.WorkerID)
		if u, err := s.App.Directory.GetUser(ctx, *s.Selection.WorkerID); err == nil {
			label = u.Name
		}
		crumbs = append(crumbs, label)
	}
	return crumbs
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
