// Package listing owns the job listing query state, the fetch cycle and the
// client-side view derived from it.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/jobhunt/internal/models"
)

// Filter keeps the jobs matching q. The backend is expected to filter already;
// this tolerates one that ignores the parameters.
func Filter(jobs []models.Job, q models.Query) []models.Job {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	location := strings.ToLower(strings.TrimSpace(q.Location))

	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if q.CertifiedOnly && !job.Certified() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(job.Title+" "+job.Company), search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// Sort orders jobs in place. Ties keep their incoming order.
func Sort(jobs []models.Job, key models.SortKey) {
	switch models.ParseSortKey(string(key)) {
	case models.SortScore:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].VerificationScore > jobs[j].VerificationScore
		})
	case models.SortCompany:
		sort.SliceStable(jobs, func(i, j int) bool {
			a, b := strings.ToLower(jobs[i].Company), strings.ToLower(jobs[j].Company)
			if a != b {
				return a < b
			}
			return jobs[i].Company < jobs[j].Company
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return postedUnix(jobs[i]) > postedUnix(jobs[j])
		})
	}
}

// postedUnix treats a missing posted_at as the epoch so it sorts last.
func postedUnix(job models.Job) int64 {
	ts := job.PostedTime()
	if ts.IsZero() {
		return 0
	}
	return ts.UnixNano()
}

// Apply filters then sorts a copy of jobs.
func Apply(jobs []models.Job, q models.Query) []models.Job {
	out := Filter(jobs, q)
	Sort(out, q.Sort)
	return out
}

// Reveal returns the first page*pageSize jobs, for "load more" paging over a
// superset that was fetched in one go.
func Reveal(jobs []models.Job, page, pageSize int) []models.Job {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	n := page * pageSize
	if n >= len(jobs) {
		return jobs
	}
	return jobs[:n]
}

// HasMore reports whether Reveal would show more jobs on the next page.
func HasMore(total, page, pageSize int) bool {
	return page*pageSize < total
}

// ValidPageSize reports whether size is one of the selectable page sizes.
func ValidPageSize(size int) bool {
	for _, allowed := range models.PageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

// PageLabel renders the "start-end of total" range of a server page.
func PageLabel(page, pageSize, total int) string {
	if page < 1 {
		page = 1
	}
	start := 0
	if total > 0 {
		start = (page-1)*pageSize + 1
	}
	end := page * pageSize
	if end > total {
		end = total
	}
	return fmt.Sprintf("%d-%d of %d", start, end, total)
}
