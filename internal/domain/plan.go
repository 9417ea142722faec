package domain

import "time"

// Plan is a named, dated container of activities with a single deadline.
// Month, Year and MonthIndex are a projection of Deadline; only the planning
// package sets them, through ApplyDeadline.
type Plan struct {
	ID         int64
	Name       string
	Month      string
	Year       int
	MonthIndex int // 0-11
	Deadline   time.Time
	Activities []Activity
}

// ApplyDeadline stores deadline and re-derives the calendar projection.
func (p *Plan) ApplyDeadline(deadline time.Time, locale string) {
	cal := DeriveCalendar(deadline, locale)
	p.Deadline = deadline
	p.Month = cal.Label
	p.Year = cal.Year
	p.MonthIndex = cal.MonthIndex
}

// ActivityIndex returns the position of the activity with the given id, or -1.
func (p *Plan) ActivityIndex(id int64) int {
	for i := range p.Activities {
		if p.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

// Activity returns the activity with the given id.
func (p *Plan) Activity(id int64) (*Activity, bool) {
	i := p.ActivityIndex(id)
	if i < 0 {
		return nil, false
	}
	return &p.Activities[i], true
}

// HasWorker reports whether any activity in the plan tracks workerID.
func (p *Plan) HasWorker(workerID int) bool {
	for i := range p.Activities {
		if _, ok := p.Activities[i].CompletionFor(workerID); ok {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no slices with p.
func (p Plan) Clone() Plan {
	out := p
	if p.Activities != nil {
		out.Activities = make([]Activity, len(p.Activities))
		for i, a := range p.Activities {
			out.Activities[i] = a.Clone()
		}
	}
	return out
}

// ClonePlans deep-copies a plan collection.
func ClonePlans(plans []Plan) []Plan {
	if plans == nil {
		return nil
	}
	out := make([]Plan, len(plans))
	for i, p := range plans {
		out[i] = p.Clone()
	}
	return out
}
