package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/session"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"JOBHUNT_PASSWORD" required:""`
}

type SignupCmd struct {
	Name     string `arg:"" help:"Display name (company name for company accounts)."`
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"JOBHUNT_PASSWORD" required:""`
	Role     string `help:"Account role: user or company." enum:"user,company" default:"user"`
}

type LogoutCmd struct{}

type WhoamiCmd struct {
	Refresh bool `help:"Ask the backend for the current account."`
}

func (l *LoginCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	res, err := ctx.API.Login(runCtx, strings.TrimSpace(l.Email), l.Password)
	if err != nil {
		return err
	}
	if err := ctx.Session.Login(runCtx, res); err != nil {
		return err
	}
	ctx.UI.Successf("Logged in as %s (%s)", displayName(res.User), roleOf(res.User))
	return nil
}

func (s *SignupCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	res, err := ctx.API.Signup(runCtx, models.Credentials{
		Name:     strings.TrimSpace(s.Name),
		Email:    strings.TrimSpace(s.Email),
		Password: s.Password,
		Role:     models.Role(s.Role),
	})
	if err != nil {
		return err
	}
	if err := ctx.Session.Login(runCtx, res); err != nil {
		return err
	}
	ctx.UI.Successf("Account created for %s (%s)", displayName(res.User), roleOf(res.User))
	return nil
}

func (l *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Session.Logout(context.Background()); err != nil {
		return err
	}
	ctx.UI.Infof("Logged out")
	return nil
}

func (w *WhoamiCmd) Run(ctx *Context) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if w.Refresh {
		if user, err = ctx.API.Me(context.Background()); err != nil {
			return err
		}
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, user)
	}
	fmt.Fprintf(ctx.Out, "%s <%s>\n", displayName(user), user.Email)
	fmt.Fprintf(ctx.Out, "role: %s\n", roleOf(user))
	fmt.Fprintf(ctx.Out, "id: %s\n", user.Key())
	if exp, ok := ctx.Session.Expiry(); ok {
		fmt.Fprintf(ctx.Out, "session expires %s\n", humanize.Time(exp))
	}
	return nil
}

// requireUser returns the signed-in account with a hint on how to sign in.
func requireUser(ctx *Context) (models.User, error) {
	user, err := ctx.Session.Require()
	if err != nil {
		return user, fmt.Errorf("%w: run `jobhunt login <email>` first", session.ErrNotLoggedIn)
	}
	return user, nil
}

func displayName(user models.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	if email := strings.TrimSpace(user.Email); email != "" {
		return email
	}
	return "account " + user.Key().String()
}

func roleOf(user models.User) models.Role {
	if user.IsCompany() {
		return models.RoleCompany
	}
	return models.RoleUser
}
