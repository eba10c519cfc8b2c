package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobhunt/internal/dashboard"
	"github.com/jimezsa/jobhunt/internal/models"
)

// companyScanLimit is how many feed jobs are scanned for own postings.
const companyScanLimit = 500

type DashboardCmd struct{}

func (d *DashboardCmd) Run(ctx *Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if user.IsCompany() {
		return runCompanyDashboard(ctx, user)
	}
	return runUserDashboard(ctx, user)
}

func runUserDashboard(ctx *Context, user models.User) error {
	runCtx := context.Background()
	savedJobs, err := ctx.API.SavedJobs(runCtx)
	if err != nil {
		return err
	}
	meta, err := ctx.API.ListJobs(runCtx, models.Query{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}

	stats := dashboard.ForUser(savedJobs, meta.Total)
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, stats)
	}

	fmt.Fprintln(ctx.Out, ctx.UI.Accent(fmt.Sprintf("%s's dashboard", displayName(user))))
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Saved jobs:\t%s\n", humanize.Comma(int64(stats.Saved)))
	fmt.Fprintf(tw, "Verified saved:\t%d (%d%%)\n", stats.SavedVerified, stats.VerifiedRate)
	fmt.Fprintf(tw, "With apply link:\t%d\n", stats.WithApplyLink)
	fmt.Fprintf(tw, "Jobs in feed:\t%s\n", humanize.Comma(int64(stats.JobTotal)))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "\nNext: %s\n", stats.NextAction)
	return writeRecent(ctx, "Recently saved", stats.Recent)
}

func runCompanyDashboard(ctx *Context, user models.User) error {
	page, err := ctx.API.ListJobs(context.Background(), models.Query{Page: 1, PageSize: companyScanLimit})
	if err != nil {
		return err
	}

	stats := dashboard.ForCompany(page.Jobs, user.Key())
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, stats)
	}

	fmt.Fprintln(ctx.Out, ctx.UI.Accent(fmt.Sprintf("%s dashboard", displayName(user))))
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Postings:\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Verified:\t%d\n", stats.Verified)
	fmt.Fprintf(tw, "Pending:\t%d\n", stats.Pending)
	if err := tw.Flush(); err != nil {
		return err
	}
	if stats.Total == 0 {
		fmt.Fprintln(ctx.Out, "\nNo postings yet. Create one with `jobhunt post`.")
		return nil
	}
	return writeRecent(ctx, "Recent postings", stats.Recent)
}

func writeRecent(ctx *Context, title string, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	fmt.Fprintf(ctx.Out, "\n%s:\n", title)
	for _, job := range jobs {
		posted := "-"
		if ts := job.PostedTime(); !ts.IsZero() {
			posted = humanize.Time(ts)
		}
		fmt.Fprintf(ctx.Out, "  %s  %s at %s (%s)\n", job.ID, job.Title, job.Company, ctx.UI.Muted(posted))
	}
	return nil
}
