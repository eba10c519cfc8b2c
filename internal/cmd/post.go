package cmd

import (
	"context"

	"github.com/jimezsa/jobhunt/internal/export"
	"github.com/jimezsa/jobhunt/internal/listing"
	"github.com/jimezsa/jobhunt/internal/postjob"
)

type PostCmd struct {
	Title        string `help:"Job title." required:""`
	Company      string `help:"Company name (defaults to the account name)."`
	Location     string `help:"Location, e.g. San Diego, CA (Hybrid)." required:""`
	Type         string `help:"Job type." enum:"Full-time,Part-time,Contract,Internship" default:"Full-time"`
	Salary       string `help:"Salary, e.g. $80k-$115k or $25/hr." required:""`
	Availability string `help:"Availability, e.g. ASAP."`
	Sources      string `help:"Comma-separated source URLs."`
	SourceNames  string `name:"source-names" help:"Comma-separated names for the source URLs."`
	Show         bool   `help:"List the feed with the new job after posting."`
}

func (p *PostCmd) Run(ctx *Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	form := postjob.NewForm(user.Name)
	if p.Company != "" {
		form.Company = p.Company
	}
	form.Title = p.Title
	form.Location = p.Location
	form.Type = p.Type
	form.Salary = p.Salary
	form.Availability = p.Availability
	form.SourceURLs = p.Sources
	form.SourceNames = p.SourceNames

	runCtx := context.Background()
	var feed *listing.Controller
	if p.Show {
		q := ctx.Config.Query()
		q.CertifiedOnly = false
		feed = listing.NewController(ctx.API, q, listing.Options{Logger: ctx.Logger})
		defer feed.Close()
		if err := feed.Refresh(runCtx); err != nil {
			ctx.UI.Warnf("Could not load the feed: %v", err)
		}
	}

	var appender postjob.Appender
	if feed != nil {
		appender = feed
	}
	submitter := postjob.NewSubmitter(ctx.API, ctx.Session, appender, ctx.Logger)
	job, err := submitter.Submit(runCtx, &form)
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, job)
	}
	ctx.UI.Successf("Job posted! It should appear in the feed.")
	if feed != nil {
		return writeJobList(ctx, feed.Snapshot().Jobs, OutputOptions{Links: "short"}, nil)
	}
	return export.WriteJobDetail(ctx.Out, job, writeOptions(ctx, ctx.Out, OutputOptions{}, nil))
}
