package cmd

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/saved"
)

type SavedCmd struct {
	List   SavedListCmd   `cmd:"" default:"1" help:"List saved jobs."`
	IDs    SavedIDsCmd    `cmd:"" name:"ids" help:"Print saved job ids."`
	Toggle SavedToggleCmd `cmd:"" help:"Save a job, or unsave it when already saved."`
	Save   SavedSetCmd    `cmd:"" help:"Save a job."`
	Unsave SavedUnsetCmd  `cmd:"" help:"Remove a saved job."`
}

type SavedListCmd struct {
	OutputOptions
}

type SavedIDsCmd struct{}

type SavedToggleCmd struct {
	ID string `arg:"" help:"Job id."`
}

type SavedSetCmd struct {
	ID string `arg:"" help:"Job id."`
}

type SavedUnsetCmd struct {
	ID string `arg:"" help:"Job id."`
}

func (s *SavedListCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	jobs, err := savedJobs(runCtx, ctx)
	if err != nil {
		return err
	}
	return writeJobList(ctx, jobs, s.OutputOptions, func(models.ID) bool { return true })
}

// savedJobs asks the backend when signed in. Locally saved ids are resolved
// one by one; ids the backend no longer knows are skipped.
func savedJobs(runCtx context.Context, ctx *Context) ([]models.Job, error) {
	if ctx.Session.IsAuthed() {
		return ctx.API.SavedJobs(runCtx)
	}

	ids, err := saved.NewLocalBackend(ctx.Store).SavedIDs(runCtx)
	if err != nil {
		return nil, err
	}
	jobs := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		job, err := ctx.API.GetJob(runCtx, id)
		if err != nil {
			ctx.Logger.Debug().Err(err).Str("job_id", id.String()).Msg("saved job unavailable")
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (s *SavedIDsCmd) Run(ctx *Context) error {
	controller := saved.NewController(ctx.savedBackend(), ctx.Logger)
	if err := controller.Load(context.Background()); err != nil {
		return err
	}
	ids := controller.IDs()
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, ids)
	}
	for _, id := range ids {
		fmt.Fprintln(ctx.Out, id)
	}
	return nil
}

func (s *SavedToggleCmd) Run(ctx *Context) error {
	return runSavedMutation(ctx, models.ID(s.ID), (*saved.Controller).Toggle)
}

func (s *SavedSetCmd) Run(ctx *Context) error {
	return runSavedMutation(ctx, models.ID(s.ID), (*saved.Controller).Save)
}

func (s *SavedUnsetCmd) Run(ctx *Context) error {
	return runSavedMutation(ctx, models.ID(s.ID), (*saved.Controller).Unsave)
}

type savedMutation func(*saved.Controller, context.Context, models.ID) <-chan error

func runSavedMutation(ctx *Context, id models.ID, mutate savedMutation) error {
	if id == "" {
		return fmt.Errorf("job id is required")
	}
	runCtx := context.Background()
	controller := saved.NewController(ctx.savedBackend(), ctx.Logger)
	if err := controller.Load(runCtx); err != nil {
		ctx.UI.Warnf("Could not load saved jobs: %v", err)
	}

	if err := <-mutate(controller, runCtx, id); err != nil {
		return fmt.Errorf("update saved job %s: %w", id, err)
	}

	if controller.IsSaved(id) {
		ctx.UI.Successf("Saved %s", id)
	} else {
		ctx.UI.Infof("Removed %s from saved jobs", id)
	}
	return nil
}
