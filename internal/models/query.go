package models

import (
	"net/url"
	"strconv"
	"strings"
)

type SortKey string

const (
	SortRecent  SortKey = "recent"
	SortScore   SortKey = "score"
	SortCompany SortKey = "company"
)

// ParseSortKey maps user input to a sort key. Unknown values sort by recency.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortScore:
		return SortScore
	case SortCompany:
		return SortCompany
	default:
		return SortRecent
	}
}

const DefaultPageSize = 25

// PageSizes lists the selectable page sizes.
var PageSizes = []int{25, 50, 100}

// Query is the listing query state.
type Query struct {
	Search        string
	Location      string
	JobType       string
	CertifiedOnly bool
	Sort          SortKey
	Page          int
	PageSize      int
}

// DefaultQuery is the state a listing starts from.
func DefaultQuery() Query {
	return Query{
		CertifiedOnly: true,
		Sort:          SortRecent,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

// Normalize clamps page and page size and fills in the sort key.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	q.Sort = ParseSortKey(string(q.Sort))
	return q
}

// Values encodes the query for GET /api/jobs. Empty strings and false flags are omitted.
func (q Query) Values() url.Values {
	q = q.Normalize()
	values := url.Values{}
	setIf := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			values.Set(key, value)
		}
	}
	setIf("search", q.Search)
	setIf("location", q.Location)
	setIf("type", q.JobType)
	if q.CertifiedOnly {
		values.Set("certifiedOnly", "true")
	}
	setIf("sort", string(q.Sort))
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.PageSize))
	return values
}

// JobPage is the canonical listing response.
type JobPage struct {
	Jobs       []Job `json:"jobs"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}
