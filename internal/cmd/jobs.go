package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jimezsa/jobhunt/internal/export"
	"github.com/jimezsa/jobhunt/internal/listing"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/saved"
)

type JobsCmd struct {
	Search string `arg:"" optional:"" help:"Free-text search over title and company."`
	QueryOptions
	OutputOptions
}

// QueryOptions are the listing filters shared by jobs and watch.
type QueryOptions struct {
	Location     string `help:"Location substring."`
	Type         string `name:"type" help:"Job type, e.g. Full-time."`
	All          bool   `help:"Include jobs that are not certified."`
	Sort         string `help:"Sort: recent, score, company." enum:",recent,score,company" default:""`
	Page         int    `help:"Page number." default:"1"`
	Limit        int    `help:"Page size: 25, 50 or 100."`
	LoadMore     int    `name:"load-more" help:"Fetch N pages worth of jobs in one request and reveal them together."`
	DemoFallback bool   `name:"demo-fallback" help:"Show built-in demo jobs when the backend is unreachable."`
}

func (o QueryOptions) query(ctx *Context, search string) (models.Query, error) {
	q := ctx.Config.Query()
	q.Search = strings.TrimSpace(search)
	q.Location = strings.TrimSpace(o.Location)
	q.JobType = strings.TrimSpace(o.Type)
	if o.All {
		q.CertifiedOnly = false
	}
	if o.Sort != "" {
		q.Sort = models.ParseSortKey(o.Sort)
	}
	if o.Page > 0 {
		q.Page = o.Page
	}
	if o.Limit != 0 {
		if !listing.ValidPageSize(o.Limit) {
			return q, fmt.Errorf("--limit must be one of %v", models.PageSizes)
		}
		q.PageSize = o.Limit
	}
	if o.LoadMore < 0 {
		return q, fmt.Errorf("--load-more must be positive")
	}
	return q.Normalize(), nil
}

func (o QueryOptions) controller(ctx *Context, q models.Query) *listing.Controller {
	return listing.NewController(ctx.API, q, listing.Options{
		DemoFallback: o.DemoFallback || ctx.Config.DemoFallback,
		Logger:       ctx.Logger,
	})
}

func (j *JobsCmd) Run(ctx *Context) error {
	q, err := j.query(ctx, j.Search)
	if err != nil {
		return err
	}

	// load-more asks for a superset of page 1 and reveals it client-side
	fetchQuery := q
	if j.LoadMore > 1 {
		fetchQuery.Page = 1
		fetchQuery.PageSize = q.PageSize * j.LoadMore
	}

	runCtx := context.Background()
	controller := j.controller(ctx, fetchQuery)
	defer controller.Close()

	loadErr := controller.Refresh(runCtx)
	view := controller.Snapshot()
	if loadErr != nil && !view.UsingDemo {
		return loadErr
	}
	if view.UsingDemo {
		ctx.UI.Warnf("%s (%s)", listing.DemoNotice, view.Err)
	}

	jobs := view.Jobs
	if j.LoadMore > 1 {
		jobs = listing.Reveal(jobs, j.LoadMore, q.PageSize)
	}

	marks := loadSavedMarks(runCtx, ctx)
	if err := writeJobList(ctx, jobs, j.OutputOptions, marks.IsSaved); err != nil {
		return err
	}

	if !ctx.JSONOutput && !ctx.PlainText {
		fmt.Fprintln(ctx.Err, ctx.UI.Muted(export.PageSummary(view)))
		if j.LoadMore > 1 && listing.HasMore(view.Total, j.LoadMore, q.PageSize) {
			fmt.Fprintln(ctx.Err, ctx.UI.Muted(fmt.Sprintf("More jobs available: --load-more %d", j.LoadMore+1)))
		} else if view.Page < view.TotalPages {
			fmt.Fprintln(ctx.Err, ctx.UI.Muted(fmt.Sprintf("Next page: --page %d", view.Page+1)))
		}
	}
	return nil
}

// loadSavedMarks loads the saved set for row markers. A failure only costs the
// markers, so it is logged and an empty set is used.
func loadSavedMarks(runCtx context.Context, ctx *Context) *saved.Controller {
	marks := saved.NewController(ctx.savedBackend(), ctx.Logger)
	if err := marks.Load(runCtx); err != nil {
		ctx.Logger.Debug().Err(err).Msg("saved ids unavailable")
	}
	return marks
}

type ShowCmd struct {
	ID string `arg:"" help:"Job id."`
	OutputOptions
}

func (s *ShowCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	job, err := ctx.API.GetJob(runCtx, models.ID(s.ID))
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, job)
	}
	marks := loadSavedMarks(runCtx, ctx)
	return export.WriteJobDetail(ctx.Out, job, writeOptions(ctx, ctx.Out, s.OutputOptions, marks.IsSaved))
}
