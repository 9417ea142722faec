package domain

// Activity is a unit of work within a plan, tracked per worker. Completions
// holds one entry per worker in the roster snapshot taken when the activity
// was created.
type Activity struct {
	ID          int64
	Name        string
	Completions []Completion
}

// Completion is one worker's status for one activity. EvidenceFile is set
// if and only if Status is CompletionCompleted.
type Completion struct {
	WorkerID     int
	Status       CompletionStatus
	EvidenceFile string
}

func (c Completion) IsCompleted() bool {
	return c.Status == CompletionCompleted
}

// CompletionIndex returns the position of workerID's completion, or -1.
func (a *Activity) CompletionIndex(workerID int) int {
	for i := range a.Completions {
		if a.Completions[i].WorkerID == workerID {
			return i
		}
	}
	return -1
}

// CompletionFor returns workerID's completion for this activity.
func (a *Activity) CompletionFor(workerID int) (Completion, bool) {
	i := a.CompletionIndex(workerID)
	if i < 0 {
		return Completion{}, false
	}
	return a.Completions[i], true
}

// Clone returns a copy with its own completions slice.
func (a Activity) Clone() Activity {
	out := a
	if a.Completions != nil {
		out.Completions = append([]Completion(nil), a.Completions...)
	}
	return out
}
