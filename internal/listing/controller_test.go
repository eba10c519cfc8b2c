package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/rs/zerolog"
)

type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]models.JobPage
	err   error
	calls []models.Query
}

func (f *stubFetcher) ListJobs(_ context.Context, q models.Query) (models.JobPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.err != nil {
		return models.JobPage{}, f.err
	}
	return f.pages[q.Search], nil
}

// gatedFetcher blocks each request until its search term is released.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	pages   map[string]models.JobPage
}

func newGatedFetcher(pages map[string]models.JobPage) *gatedFetcher {
	gates := map[string]chan struct{}{}
	for search := range pages {
		gates[search] = make(chan struct{})
	}
	return &gatedFetcher{gates: gates, started: make(chan string, len(pages)), pages: pages}
}

func (f *gatedFetcher) ListJobs(ctx context.Context, q models.Query) (models.JobPage, error) {
	f.mu.Lock()
	gate := f.gates[q.Search]
	f.mu.Unlock()
	f.started <- q.Search
	select {
	case <-gate:
	case <-ctx.Done():
		return models.JobPage{}, ctx.Err()
	}
	return f.pages[q.Search], nil
}

func (f *gatedFetcher) release(search string) {
	close(f.gates[search])
}

func waitStarted(t *testing.T, f *gatedFetcher, want string) {
	t.Helper()
	select {
	case got := <-f.started:
		if got != want {
			t.Fatalf("started %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("request %q never started", want)
	}
}

func TestRefreshAppliesCertifiedFilterClientSide(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]models.JobPage{
		"": {Total: 2, Page: 1, TotalPages: 1, Jobs: []models.Job{
			{ID: "a", Verdict: "Certified"},
			{ID: "b", Verdict: "Pending"},
		}},
	}}
	c := NewController(fetcher, models.DefaultQuery(), Options{Logger: zerolog.Nop()})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	view := c.Snapshot()
	if view.State != StateSuccess {
		t.Fatalf("State = %s, want success", view.State)
	}
	if len(view.Jobs) != 1 || view.Jobs[0].ID != "a" {
		t.Fatalf("Jobs = %v, want only a", ids(view.Jobs))
	}
	if view.Total != 2 || view.TotalPages != 1 {
		t.Fatalf("Total=%d TotalPages=%d", view.Total, view.TotalPages)
	}
	if view.Selected == nil || view.Selected.ID != "a" {
		t.Fatalf("Selected = %+v, want a", view.Selected)
	}
}

func TestSelectionSurvivesReloadWhenStillListed(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]models.JobPage{
		"":   {Jobs: []models.Job{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		"b":  {Jobs: []models.Job{{ID: "c", Title: "b"}, {ID: "b", Title: "b"}}},
		"zz": {Jobs: []models.Job{{ID: "x", Title: "zz"}, {ID: "y", Title: "zz"}}},
		"no": {Jobs: []models.Job{}},
	}}
	q := models.DefaultQuery()
	q.CertifiedOnly = false
	c := NewController(fetcher, q, Options{Logger: zerolog.Nop()})
	ctx := context.Background()

	if err := c.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !c.Select("b") {
		t.Fatalf("Select(b) = false")
	}
	if c.Select("missing") {
		t.Fatalf("Select(missing) = true")
	}

	if err := c.Update(ctx, func(q *models.Query) { q.Search = "b" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if sel := c.Snapshot().Selected; sel == nil || sel.ID != "b" {
		t.Fatalf("Selected = %+v, want b", sel)
	}

	if err := c.Update(ctx, func(q *models.Query) { q.Search = "zz" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if sel := c.Snapshot().Selected; sel == nil || sel.ID != "x" {
		t.Fatalf("Selected = %+v, want x", sel)
	}

	if err := c.Update(ctx, func(q *models.Query) { q.Search = "no" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if sel := c.Snapshot().Selected; sel != nil {
		t.Fatalf("Selected = %+v, want none", sel)
	}
}

func TestLatestQueryWinsWhenResponsesArriveOutOfOrder(t *testing.T) {
	fetcher := newGatedFetcher(map[string]models.JobPage{
		"first":  {Jobs: []models.Job{{ID: "old", Title: "first"}}},
		"second": {Jobs: []models.Job{{ID: "new", Title: "second"}}},
	})
	q := models.DefaultQuery()
	q.CertifiedOnly = false
	c := NewController(fetcher, q, Options{Logger: zerolog.Nop()})
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.Update(ctx, func(q *models.Query) { q.Search = "first" })
	}()
	waitStarted(t, fetcher, "first")

	secondDone := make(chan error, 1)
	go func() {
		secondDone <- c.Update(ctx, func(q *models.Query) { q.Search = "second" })
	}()
	waitStarted(t, fetcher, "second")

	fetcher.release("second")
	if err := <-secondDone; err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	fetcher.release("first")
	if err := <-firstDone; !errors.Is(err, ErrStale) {
		t.Fatalf("first Update() error = %v, want ErrStale", err)
	}

	view := c.Snapshot()
	if len(view.Jobs) != 1 || view.Jobs[0].ID != "new" {
		t.Fatalf("Jobs = %v, want [new]", ids(view.Jobs))
	}
	if view.Query.Search != "second" {
		t.Fatalf("Query.Search = %q, want second", view.Query.Search)
	}
}

func TestClosedControllerDiscardsLateResponse(t *testing.T) {
	fetcher := newGatedFetcher(map[string]models.JobPage{
		"late": {Jobs: []models.Job{{ID: "x", Title: "late"}}},
	})
	q := models.DefaultQuery()
	q.CertifiedOnly = false
	q.Search = "late"
	c := NewController(fetcher, q, Options{Logger: zerolog.Nop()})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	waitStarted(t, fetcher, "late")

	c.Close()
	fetcher.release("late")
	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("Refresh() error = %v, want ErrStale", err)
	}
	if jobs := c.Snapshot().Jobs; len(jobs) != 0 {
		t.Fatalf("closed controller applied jobs: %v", ids(jobs))
	}
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrStale) {
		t.Fatalf("Refresh() after Close error = %v, want ErrStale", err)
	}
}

func TestFailureSurfacesMessage(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("backend down")}
	c := NewController(fetcher, models.DefaultQuery(), Options{Logger: zerolog.Nop()})

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	view := c.Snapshot()
	if view.State != StateError || view.Err != "backend down" {
		t.Fatalf("State=%s Err=%q", view.State, view.Err)
	}
	if view.UsingDemo || len(view.Jobs) != 0 {
		t.Fatalf("demo data used without fallback enabled")
	}
}

func TestFailureWithDemoFallback(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("backend down")}
	c := NewController(fetcher, models.DefaultQuery(), Options{DemoFallback: true, Logger: zerolog.Nop()})

	_ = c.Refresh(context.Background())
	view := c.Snapshot()
	if !view.UsingDemo {
		t.Fatalf("expected demo fallback to be flagged")
	}
	if len(view.Jobs) == 0 {
		t.Fatalf("expected demo jobs")
	}
	for _, job := range view.Jobs {
		if !job.Certified() {
			t.Fatalf("certified-only query returned %s (%s)", job.ID, job.Verdict)
		}
	}

	fetcher.err = nil
	fetcher.pages = map[string]models.JobPage{"": {Jobs: []models.Job{{ID: "live", Verdict: "certified"}}}}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if c.Snapshot().UsingDemo {
		t.Fatalf("demo flag should clear after a successful load")
	}
}

func TestAppendShowsNewJob(t *testing.T) {
	c := NewController(&stubFetcher{}, models.DefaultQuery(), Options{Logger: zerolog.Nop()})
	c.Append(models.Job{ID: "posted", Title: "New role"})

	view := c.Snapshot()
	if len(view.Jobs) != 1 || view.Total != 1 {
		t.Fatalf("Jobs=%v Total=%d", ids(view.Jobs), view.Total)
	}
	if view.Selected == nil || view.Selected.ID != "posted" {
		t.Fatalf("Selected = %+v", view.Selected)
	}
}

func TestQueryIsNormalized(t *testing.T) {
	fetcher := &stubFetcher{}
	c := NewController(fetcher, models.Query{Page: -3, Sort: "bogus"}, Options{Logger: zerolog.Nop()})
	_ = c.Refresh(context.Background())

	got := fetcher.calls[0]
	if got.Page != 1 || got.PageSize != models.DefaultPageSize || got.Sort != models.SortRecent {
		t.Fatalf("unexpected normalized query: %+v", got)
	}
}
