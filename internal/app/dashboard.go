package app

import (
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/progress"
)

// PlanSummary is one plan card: overall progress plus deadline state.
type PlanSummary struct {
	PlanID        int64
	Name          string
	Month         string
	Year          int
	MonthIndex    int
	Deadline      time.Time
	ActivityCount int
	Completed     int
	Total         int
	Percent       float64
	Band          progress.Band
	Overdue       bool
}

// MonthGroup holds a year's plans that fall in one calendar month.
type MonthGroup struct {
	MonthIndex int
	MonthName  string
	Plans      []PlanSummary
}

type OverviewRequest struct {
	// Year defaults to the year of Now.
	Year *int
	Now  *time.Time
}

type OverviewResponse struct {
	Year        int
	Years       []int
	Months      []MonthGroup
	GeneratedAt time.Time
}

// WorkerProgressRow is one worker's progress over some set of completions.
type WorkerProgressRow struct {
	Worker    domain.User
	Completed int
	Total     int
	Percent   float64
	Band      progress.Band
}

type RosterRequest struct {
	Search string
}

type RosterResponse struct {
	Workers []WorkerProgressRow
}

type ActivityRow struct {
	ActivityID int64
	Name       string
	Completed  int
	Total      int
	Percent    float64
	Band       progress.Band
}

type PlanDetailRequest struct {
	PlanID       int64
	WorkerSearch string
	Now          *time.Time
}

type PlanDetailResponse struct {
	Plan       PlanSummary
	Activities []ActivityRow
	// Workers is each worker's progress within the plan, filtered by
	// WorkerSearch.
	Workers []WorkerProgressRow
}

// CompletionRow is one worker's standing on one activity. Tracked is false
// for workers added after the activity was created; they have no completion.
type CompletionRow struct {
	Worker       domain.User
	Tracked      bool
	Status       domain.CompletionStatus
	EvidenceFile string
	Badge        progress.Badge
}

type ActivityDetailRequest struct {
	PlanID       int64
	ActivityID   int64
	WorkerSearch string
	Now          *time.Time
}

type ActivityDetailResponse struct {
	Plan        PlanSummary
	Activity    ActivityRow
	Completions []CompletionRow
}

type WorkerPlansRequest struct {
	WorkerID int
	Now      *time.Time
}

// WorkerActivityItem is the worker's own completion of one activity.
type WorkerActivityItem struct {
	ActivityID   int64
	Name         string
	Status       domain.CompletionStatus
	EvidenceFile string
	Badge        progress.Badge
	CanUpload    bool
}

// WorkerPlanView is a plan seen through one worker's completions.
type WorkerPlanView struct {
	Plan       PlanSummary
	Completed  int
	Total      int
	Percent    float64
	Band       progress.Band
	Activities []WorkerActivityItem
}

type WorkerPlansResponse struct {
	Worker WorkerProgressRow
	Plans  []WorkerPlanView
	AsOf   time.Time
}
