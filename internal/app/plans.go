package app

import "time"

type CreatePlanRequest struct {
	Name       string
	Deadline   time.Time
	Activities []string
}

type EditPlanRequest struct {
	PlanID          int64
	Name            string
	Deadline        time.Time
	ExtraActivities []string
}

type RecordCompletionRequest struct {
	PlanID       int64
	ActivityID   int64
	WorkerID     int
	EvidenceFile string
}
