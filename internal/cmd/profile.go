package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/profile"
)

type ProfileCmd struct {
	Show   ProfileShowCmd   `cmd:"" default:"1" help:"Print the profile."`
	Set    ProfileSetCmd    `cmd:"" help:"Set a profile field."`
	Skills ProfileSkillsCmd `cmd:"" help:"Edit skills."`
	Push   ProfilePushCmd   `cmd:"" help:"Upload the local profile to the backend."`
	Pull   ProfilePullCmd   `cmd:"" help:"Replace the local profile with the backend copy."`
}

type ProfileShowCmd struct{}

type ProfileSetCmd struct {
	Field string `arg:"" help:"headline, location, about, skills, portfolio, github or linkedin."`
	Value string `arg:"" help:"New value. Skills take a comma-separated list."`
}

type ProfileSkillsCmd struct {
	Add    []string `help:"Skills to add." sep:","`
	Remove []string `help:"Skills to remove." sep:","`
}

type ProfilePushCmd struct{}

type ProfilePullCmd struct{}

// profileOwner is the signed-in account id, or "" for the anonymous profile.
func profileOwner(ctx *Context) models.ID {
	if user, ok := ctx.Session.User(); ok {
		return user.Key()
	}
	return ""
}

func (p *ProfileShowCmd) Run(ctx *Context) error {
	book := profile.NewBook(ctx.Store, ctx.Logger)
	prof, err := book.Load(context.Background(), profileOwner(ctx))
	if err != nil {
		return err
	}
	return writeProfile(ctx, prof)
}

func (p *ProfileSetCmd) Run(ctx *Context) error {
	return editProfile(ctx, func(prof *models.Profile) error {
		return profile.Set(prof, p.Field, p.Value)
	})
}

func (p *ProfileSkillsCmd) Run(ctx *Context) error {
	if len(p.Add) == 0 && len(p.Remove) == 0 {
		return fmt.Errorf("nothing to do: pass --add or --remove")
	}
	return editProfile(ctx, func(prof *models.Profile) error {
		for _, skill := range p.Add {
			profile.AddSkill(prof, skill)
		}
		for _, skill := range p.Remove {
			if !profile.RemoveSkill(prof, skill) {
				ctx.UI.Warnf("Skill not listed: %s", skill)
			}
		}
		return nil
	})
}

func editProfile(ctx *Context, edit func(*models.Profile) error) error {
	runCtx := context.Background()
	book := profile.NewBook(ctx.Store, ctx.Logger)
	owner := profileOwner(ctx)

	prof, err := book.Load(runCtx, owner)
	if err != nil {
		return err
	}
	if err := edit(&prof); err != nil {
		return err
	}
	if err := book.Save(runCtx, owner, prof); err != nil {
		return err
	}
	ctx.UI.Successf("Saved")
	return nil
}

func (p *ProfilePushCmd) Run(ctx *Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}
	runCtx := context.Background()
	book := profile.NewBook(ctx.Store, ctx.Logger)
	prof, err := book.Load(runCtx, user.Key())
	if err != nil {
		return err
	}
	if _, err := book.Push(runCtx, ctx.API, user.Key(), prof); err != nil {
		return err
	}
	ctx.UI.Successf("Profile uploaded")
	return nil
}

func (p *ProfilePullCmd) Run(ctx *Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}
	prof, err := profile.NewBook(ctx.Store, ctx.Logger).Pull(context.Background(), ctx.API, user.Key())
	if err != nil {
		return err
	}
	return writeProfile(ctx, prof)
}

func writeProfile(ctx *Context, prof models.Profile) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, prof)
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"Headline", prof.Headline},
		{"Location", prof.Location},
		{"Skills", strings.Join(prof.Skills, ", ")},
		{"Portfolio", prof.Links.Portfolio},
		{"GitHub", prof.Links.GitHub},
		{"LinkedIn", prof.Links.LinkedIn},
	}
	for _, row := range rows {
		value := row[1]
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if about := strings.TrimSpace(prof.About); about != "" {
		fmt.Fprintf(ctx.Out, "\n%s\n", about)
	}
	return nil
}
