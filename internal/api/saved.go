package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobhunt/internal/models"
)

// SaveResult is the answer to a save or unsave. HasSavedIDs is false when the
// backend did not include a canonical id list.
type SaveResult struct {
	OK          bool
	SavedIDs    []models.ID
	HasSavedIDs bool
}

// SavedJobs fetches GET /api/saved.
func (c *Client) SavedJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.Request(ctx, fhttp.MethodGet, "/api/saved", nil, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// SavedIDs fetches GET /api/saved/ids.
func (c *Client) SavedIDs(ctx context.Context) ([]models.ID, error) {
	var ids []models.ID
	if err := c.Request(ctx, fhttp.MethodGet, "/api/saved/ids", nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Save bookmarks a job with POST /api/saved/:id.
func (c *Client) Save(ctx context.Context, id models.ID) (SaveResult, error) {
	return c.savedMutation(ctx, fhttp.MethodPost, id)
}

// Unsave removes a bookmark with DELETE /api/saved/:id.
func (c *Client) Unsave(ctx context.Context, id models.ID) (SaveResult, error) {
	return c.savedMutation(ctx, fhttp.MethodDelete, id)
}

func (c *Client) savedMutation(ctx context.Context, method string, id models.ID) (SaveResult, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, method, "/api/saved/"+url.PathEscape(id.String()), nil, &raw); err != nil {
		return SaveResult{}, err
	}
	if len(raw) == 0 {
		return SaveResult{OK: true}, nil
	}

	var decoded struct {
		OK       *bool        `json:"ok"`
		SavedIDs *[]models.ID `json:"savedIds"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return SaveResult{}, fmt.Errorf("decode saved response: %w", err)
	}

	result := SaveResult{OK: decoded.OK == nil || *decoded.OK}
	if decoded.SavedIDs != nil {
		result.SavedIDs = *decoded.SavedIDs
		result.HasSavedIDs = true
	}
	return result, nil
}
