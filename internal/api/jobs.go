package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobhunt/internal/models"
)

// ListJobs fetches one page of GET /api/jobs.
func (c *Client) ListJobs(ctx context.Context, q models.Query) (models.JobPage, error) {
	q = q.Normalize()
	var raw json.RawMessage
	if err := c.Request(ctx, fhttp.MethodGet, "/api/jobs?"+q.Values().Encode(), nil, &raw); err != nil {
		return models.JobPage{}, err
	}
	return DecodeJobPage(raw, q)
}

// DecodeJobPage normalizes both listing shapes the backend has served:
// {jobs, total, page, limit, totalPages} and a bare job array.
func DecodeJobPage(raw []byte, q models.Query) (models.JobPage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.JobPage{Jobs: []models.Job{}, Page: 1, Limit: q.PageSize, TotalPages: 1}, nil
	}

	if raw[0] == '[' {
		var jobs []models.Job
		if err := json.Unmarshal(raw, &jobs); err != nil {
			return models.JobPage{}, fmt.Errorf("decode jobs: %w", err)
		}
		if jobs == nil {
			jobs = []models.Job{}
		}
		return models.JobPage{
			Jobs:       jobs,
			Total:      len(jobs),
			Page:       1,
			Limit:      len(jobs),
			TotalPages: 1,
		}, nil
	}

	var page models.JobPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return models.JobPage{}, fmt.Errorf("decode jobs: %w", err)
	}
	if page.Jobs == nil {
		page.Jobs = []models.Job{}
	}
	if page.Page < 1 {
		page.Page = q.Page
	}
	if page.Limit < 1 {
		page.Limit = q.PageSize
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// GetJob fetches GET /api/jobs/:id.
func (c *Client) GetJob(ctx context.Context, id models.ID) (models.Job, error) {
	var job models.Job
	err := c.Request(ctx, fhttp.MethodGet, "/api/jobs/"+url.PathEscape(id.String()), nil, &job)
	return job, err
}

// PostJobRequest is the body of POST /api/jobs.
type PostJobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Availability string   `json:"availability"`
	SourceURLs   []string `json:"source_urls"`
	SourceNames  []string `json:"source_names"`
}

// PostJob creates a posting. The backend answers with the job itself or with {ok, job}.
func (c *Client) PostJob(ctx context.Context, body PostJobRequest) (models.Job, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, fhttp.MethodPost, "/api/jobs", body, &raw); err != nil {
		return models.Job{}, err
	}

	var wrapped struct {
		OK  *bool       `json:"ok"`
		Job *models.Job `json:"job"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return models.Job{}, fmt.Errorf("decode posted job: %w", err)
	}
	if wrapped.Job != nil {
		return *wrapped.Job, nil
	}

	var job models.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return models.Job{}, fmt.Errorf("decode posted job: %w", err)
	}
	return job, nil
}
