package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// RefNow is the reference time most tests pin their clocks to.
var RefNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// Q1Deadline is the 2024-03-31 end-of-day deadline used across scenarios.
var Q1Deadline = time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

var testUserCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithUserID(id int) UserOption {
	return func(u *domain.User) {
		u.ID = id
	}
}

func WithUsername(name string) UserOption {
	return func(u *domain.User) {
		u.Username = name
	}
}

func NewTestWorker(name string, opts ...UserOption) domain.User {
	n := int(testUserCounter.Add(1)) + 100
	u := domain.User{
		ID:       n,
		Name:     name,
		Username: fmt.Sprintf("worker%d", n),
		Role:     domain.RoleWorker,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func NewTestSupervisor(name string, opts ...UserOption) domain.User {
	u := NewTestWorker(name, opts...)
	u.Role = domain.RoleSupervisor
	if strings.HasPrefix(u.Username, "worker") {
		u.Username = fmt.Sprintf("supervisor%d", u.ID)
	}
	return u
}

// Roster returns the standard demo directory: one supervisor (id 1) and two
// workers (ids 2 and 3).
func Roster() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Alice Manager", Username: "supervisor", Role: domain.RoleSupervisor},
		{ID: 2, Name: "Bob Worker", Username: "worker1", Role: domain.RoleWorker},
		{ID: 3, Name: "Charlie Worker", Username: "worker2", Role: domain.RoleWorker},
	}
}

// Plan options
type PlanOption func(*domain.Plan)

func WithDeadline(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.ApplyDeadline(d, domain.LocaleES)
	}
}

// WithActivity appends an activity with one pending completion per worker.
func WithActivity(id int64, name string, workers ...domain.User) PlanOption {
	return func(p *domain.Plan) {
		a := domain.Activity{ID: id, Name: name}
		for _, w := range workers {
			a.Completions = append(a.Completions, domain.Completion{WorkerID: w.ID, Status: domain.CompletionPending})
		}
		p.Activities = append(p.Activities, a)
	}
}

// WithCompleted marks workerID's completion of activityID as completed.
// It panics when either is missing: fixtures must be well formed.
func WithCompleted(activityID int64, workerID int, evidence string) PlanOption {
	return func(p *domain.Plan) {
		a, ok := p.Activity(activityID)
		if !ok {
			panic(fmt.Sprintf("testutil: activity %d not in plan", activityID))
		}
		i := a.CompletionIndex(workerID)
		if i < 0 {
			panic(fmt.Sprintf("testutil: worker %d not in activity %d", workerID, activityID))
		}
		a.Completions[i].Status = domain.CompletionCompleted
		a.Completions[i].EvidenceFile = evidence
	}
}

func NewTestPlan(id int64, name string, opts ...PlanOption) domain.Plan {
	p := domain.Plan{ID: id, Name: name}
	p.ApplyDeadline(Q1Deadline, domain.LocaleES)
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
