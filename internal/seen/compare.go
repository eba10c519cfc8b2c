// Package seen tracks which postings were already reported, so repeated
// fetches only surface new ones.
package seen

import (
	"strings"

	"github.com/jimezsa/jobhunt/internal/models"
)

const (
	keySeparator = "::"
	idPrefix     = "id:"
)

// DiffStats captures stats for new-vs-seen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for seen history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Normalize lower-cases value and collapses whitespace.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

// Key identifies a job by its backend id. Jobs without one fall back to the
// normalized title and company; a job with neither has no key.
func Key(job models.Job) (string, bool) {
	if id := strings.TrimSpace(job.ID.String()); id != "" {
		return idPrefix + id, true
	}
	title := Normalize(job.Title)
	company := Normalize(job.Company)
	if title == "" || company == "" {
		return "", false
	}
	return title + keySeparator + company, true
}

type keySet map[string]struct{}

// add reports whether key was not in the set yet.
func (s keySet) add(key string) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

func (s keySet) has(key string) bool {
	_, ok := s[key]
	return ok
}

// Diff returns the jobs in newJobs whose key is not in seenJobs, deduplicated.
func Diff(newJobs []models.Job, seenJobs []models.Job) ([]models.Job, DiffStats) {
	stats := DiffStats{TotalNew: len(newJobs), TotalSeen: len(seenJobs)}

	known := make(keySet, len(seenJobs))
	for _, job := range seenJobs {
		key, ok := Key(job)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		known.add(key)
	}

	emitted := make(keySet, len(newJobs))
	unseen := make([]models.Job, 0, len(newJobs))
	for _, job := range newJobs {
		key, ok := Key(job)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if !emitted.add(key) || known.has(key) {
			continue
		}
		unseen = append(unseen, job)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends the jobs of input that are not in history yet. History entries
// win collisions; keyless history entries are kept, keyless input is dropped.
func Merge(history []models.Job, input []models.Job) ([]models.Job, MergeStats) {
	stats := MergeStats{TotalSeen: len(history), TotalInput: len(input)}

	keys := make(keySet, len(history)+len(input))
	out := make([]models.Job, 0, len(history)+len(input))
	for _, job := range history {
		key, ok := Key(job)
		if !ok {
			stats.InvalidSeen++
			out = append(out, job)
			continue
		}
		if keys.add(key) {
			out = append(out, job)
		}
	}

	for _, job := range input {
		key, ok := Key(job)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if keys.add(key) {
			out = append(out, job)
			stats.Added++
		}
	}

	stats.TotalOut = len(out)
	return out, stats
}
