package seen

import (
	"sync"

	"github.com/jimezsa/jobhunt/internal/models"
)

// Tracker is a seen history backed by a JSON file. The watch loop feeds it
// every fetched page and reports what it returns.
type Tracker struct {
	path string

	mu      sync.Mutex
	history []models.Job
}

// OpenTracker loads the history at path; a missing file starts empty.
func OpenTracker(path string) (*Tracker, error) {
	history, err := ReadJobsAllowMissing(path)
	if err != nil {
		return nil, err
	}
	return &Tracker{path: path, history: history}, nil
}

func (t *Tracker) Path() string {
	return t.path
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.history)
}

// Observe returns the jobs not seen before and records them.
func (t *Tracker) Observe(jobs []models.Job) ([]models.Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fresh, _ := Diff(jobs, t.history)
	if len(fresh) == 0 {
		return fresh, nil
	}
	merged, _ := Merge(t.history, fresh)
	if err := WriteJobs(t.path, merged); err != nil {
		return nil, err
	}
	t.history = merged
	return fresh, nil
}
