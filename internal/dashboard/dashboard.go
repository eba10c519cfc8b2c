// Package dashboard summarizes saved jobs for seekers and own postings for companies.
package dashboard

import (
	"math"
	"strings"

	"github.com/jimezsa/jobhunt/internal/listing"
	"github.com/jimezsa/jobhunt/internal/models"
)

const recentLimit = 4

const (
	hintSaveFirst = "Save a few roles first so you can track them here."
	hintOpenApply = "Open a saved job and use Apply to practice the flow."
	hintApply     = "Pick 1-2 saved roles and apply (start with verified)."
)

type UserStats struct {
	Saved         int
	SavedVerified int
	VerifiedRate  int
	WithApplyLink int
	JobTotal      int
	NextAction    string
	Recent        []models.Job
}

type CompanyStats struct {
	Total    int
	Verified int
	Pending  int
	Recent   []models.Job
	Postings []models.Job
}

// ForUser summarizes the saved jobs of a seeker. jobTotal is the size of the
// whole feed.
func ForUser(saved []models.Job, jobTotal int) UserStats {
	stats := UserStats{Saved: len(saved), JobTotal: jobTotal}
	for _, job := range saved {
		if job.Certified() {
			stats.SavedVerified++
		}
		if strings.TrimSpace(job.ApplyURL) != "" {
			stats.WithApplyLink++
		}
	}
	stats.VerifiedRate = percent(stats.SavedVerified, stats.Saved)

	switch {
	case stats.Saved == 0:
		stats.NextAction = hintSaveFirst
	case stats.WithApplyLink == 0:
		stats.NextAction = hintOpenApply
	default:
		stats.NextAction = hintApply
	}

	stats.Recent = mostRecent(saved)
	return stats
}

// ForCompany summarizes the postings in all that were created by userID.
func ForCompany(all []models.Job, userID models.ID) CompanyStats {
	stats := CompanyStats{Postings: []models.Job{}}
	if userID == "" {
		stats.Recent = []models.Job{}
		return stats
	}

	for _, job := range all {
		if job.PostedBy != userID {
			continue
		}
		stats.Postings = append(stats.Postings, job)
		switch strings.ToLower(strings.TrimSpace(job.Verdict)) {
		case "certified":
			stats.Verified++
		case "pending":
			stats.Pending++
		}
	}
	stats.Total = len(stats.Postings)
	stats.Recent = mostRecent(stats.Postings)
	return stats
}

func mostRecent(jobs []models.Job) []models.Job {
	sorted := append([]models.Job(nil), jobs...)
	listing.Sort(sorted, models.SortRecent)
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	if sorted == nil {
		sorted = []models.Job{}
	}
	return sorted
}

func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
