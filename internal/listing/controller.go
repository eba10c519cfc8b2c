package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/rs/zerolog"
)

// ErrStale is returned for a response that was superseded by a newer query,
// or that arrived after the controller was closed. Its result is discarded.
var ErrStale = errors.New("stale listing response")

const defaultErrorMessage = "Failed to load jobs"

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Fetcher loads one page of jobs. *api.Client satisfies it.
type Fetcher interface {
	ListJobs(ctx context.Context, q models.Query) (models.JobPage, error)
}

type Options struct {
	// DemoFallback replaces a failed load with the built-in demo dataset.
	DemoFallback bool
	Logger       zerolog.Logger
}

// View is a copy of the controller state for rendering.
type View struct {
	State      State
	Query      models.Query
	Jobs       []models.Job
	Total      int
	Page       int
	TotalPages int
	Selected   *models.Job
	Err        string
	UsingDemo  bool
}

type Controller struct {
	fetcher Fetcher
	opts    Options

	mu         sync.Mutex
	generation uint64
	closed     bool
	state      State
	query      models.Query
	jobs       []models.Job
	total      int
	page       int
	totalPages int
	selectedID models.ID
	err        string
	usingDemo  bool
}

func NewController(fetcher Fetcher, q models.Query, opts Options) *Controller {
	return &Controller{
		fetcher:    fetcher,
		opts:       opts,
		state:      StateIdle,
		query:      q.Normalize(),
		page:       1,
		totalPages: 1,
	}
}

// SetQuery replaces the query and loads it.
func (c *Controller) SetQuery(ctx context.Context, q models.Query) error {
	c.mu.Lock()
	c.query = q.Normalize()
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Update edits the current query and loads the result.
func (c *Controller) Update(ctx context.Context, edit func(*models.Query)) error {
	c.mu.Lock()
	q := c.query
	edit(&q)
	c.query = q.Normalize()
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh reloads the current query. Only the most recently issued request
// may change the state; earlier ones return ErrStale when they complete.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrStale
	}
	c.generation++
	gen := c.generation
	q := c.query
	c.state = StateLoading
	c.err = ""
	c.mu.Unlock()

	page, err := c.fetcher.ListJobs(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		c.opts.Logger.Debug().Uint64("generation", gen).Uint64("latest", c.generation).Msg("discarding stale listing response")
		return ErrStale
	}

	if err != nil {
		c.fail(q, err)
		return err
	}

	c.usingDemo = false
	c.apply(q, page)
	c.state = StateSuccess
	return nil
}

func (c *Controller) fail(q models.Query, err error) {
	c.state = StateError
	c.err = err.Error()
	if c.err == "" {
		c.err = defaultErrorMessage
	}
	c.opts.Logger.Debug().Err(err).Msg("listing load failed")

	if !c.opts.DemoFallback {
		return
	}
	demo := DemoJobs()
	c.usingDemo = true
	c.apply(q, models.JobPage{Jobs: demo, Total: len(demo), Page: 1, TotalPages: 1})
}

func (c *Controller) apply(q models.Query, page models.JobPage) {
	jobs := Apply(page.Jobs, q)
	c.jobs = jobs
	c.total = page.Total
	c.page = page.Page
	if c.page < 1 {
		c.page = q.Page
	}
	c.totalPages = page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.reselect()
}

// reselect keeps the selected job when it is still listed, else picks the first.
func (c *Controller) reselect() {
	if len(c.jobs) == 0 {
		c.selectedID = ""
		return
	}
	if c.selectedID != "" && c.indexOf(c.selectedID) >= 0 {
		return
	}
	c.selectedID = c.jobs[0].ID
}

func (c *Controller) indexOf(id models.ID) int {
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

// Select marks a listed job as selected. It reports false for unknown ids.
func (c *Controller) Select(id models.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return false
	}
	c.selectedID = id
	return true
}

// Append adds a job created in this session so it shows without a reload.
func (c *Controller) Append(job models.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, job)
	c.total++
	if c.selectedID == "" {
		c.selectedID = job.ID
	}
}

// Close stops the controller from applying any further responses.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) Query() models.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		State:      c.state,
		Query:      c.query,
		Jobs:       append([]models.Job(nil), c.jobs...),
		Total:      c.total,
		Page:       c.page,
		TotalPages: c.totalPages,
		Err:        c.err,
		UsingDemo:  c.usingDemo,
	}
	if idx := c.indexOf(c.selectedID); idx >= 0 {
		selected := c.jobs[idx]
		view.Selected = &selected
	}
	return view
}
