package cmd

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobhunt/internal/config"
	"github.com/jimezsa/jobhunt/internal/seen"
)

type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"Write jobs from --new that are not in --seen."`
	Update SeenUpdateCmd `cmd:"" help:"Merge jobs into a seen history file."`
	Mark   SeenMarkCmd   `cmd:"" help:"Record the current feed page as seen."`
}

type SeenDiffCmd struct {
	New   string `name:"new" required:"" help:"Jobs JSON file (array or API page)."`
	Seen  string `name:"seen" help:"Seen history file. Missing file is treated as empty; defaults to seen.json in the config dir."`
	Out   string `name:"out" required:"" help:"Output path for unseen jobs."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" help:"Seen history file; defaults to seen.json in the config dir."`
	Input string `name:"input" required:"" help:"Jobs JSON file to merge into the history."`
	Out   string `name:"out" help:"Output path; defaults to --seen."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

type SeenMarkCmd struct {
	Search string `arg:"" optional:"" help:"Free-text search over title and company."`
	Seen   string `name:"seen" help:"Seen history file; defaults to seen.json in the config dir."`
	QueryOptions
}

func seenPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return config.SeenPath()
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	seenFile, err := seenPath(c.Seen)
	if err != nil {
		return err
	}
	newJobs, err := seen.ReadJobs(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	seenJobs, err := seen.ReadJobsAllowMissing(seenFile)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	unseen, stats := seen.Diff(newJobs, seenJobs)
	if err := seen.WriteJobs(c.Out, unseen); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}
	if !c.Stats {
		return nil
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, map[string]int{
			"total_new":       stats.TotalNew,
			"total_seen":      stats.TotalSeen,
			"invalid_skipped": stats.InvalidSkipped(),
			"unseen":          stats.Unseen,
		})
	}
	_, err = fmt.Fprintf(ctx.Out, "new=%d seen=%d skipped=%d unseen=%d\n",
		stats.TotalNew, stats.TotalSeen, stats.InvalidSkipped(), stats.Unseen)
	return err
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	seenFile, err := seenPath(c.Seen)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = seenFile
	}

	history, err := seen.ReadJobsAllowMissing(seenFile)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	input, err := seen.ReadJobs(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	merged, stats := seen.Merge(history, input)
	if err := seen.WriteJobs(out, merged); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	if !c.Stats {
		return nil
	}
	_, err = fmt.Fprintf(ctx.Out, "seen=%d input=%d skipped=%d added=%d total=%d\n",
		stats.TotalSeen, stats.TotalInput, stats.InvalidSkipped(), stats.Added, stats.TotalOut)
	return err
}

func (c *SeenMarkCmd) Run(ctx *Context) error {
	q, err := c.query(ctx, c.Search)
	if err != nil {
		return err
	}
	seenFile, err := seenPath(c.Seen)
	if err != nil {
		return err
	}
	tracker, err := seen.OpenTracker(seenFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", seenFile, err)
	}

	page, err := ctx.API.ListJobs(context.Background(), q)
	if err != nil {
		return err
	}
	fresh, err := tracker.Observe(page.Jobs)
	if err != nil {
		return err
	}
	ctx.UI.Successf("Marked %d new job(s) as seen (%d in history)", len(fresh), tracker.Len())
	return nil
}
