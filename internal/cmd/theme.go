package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jimezsa/jobhunt/internal/store"
	"github.com/jimezsa/jobhunt/internal/ui"
)

type ThemeCmd struct {
	Get    ThemeGetCmd    `cmd:"" default:"1" help:"Print the current theme."`
	Set    ThemeSetCmd    `cmd:"" help:"Set the theme."`
	Toggle ThemeToggleCmd `cmd:"" help:"Switch between light and dark."`
}

type ThemeGetCmd struct{}

type ThemeSetCmd struct {
	Theme string `arg:"" enum:"light,dark" help:"light or dark."`
}

type ThemeToggleCmd struct{}

// LoadTheme reads the persisted theme; a missing value is light.
func LoadTheme(ctx context.Context, s store.Store) (ui.Theme, error) {
	value, err := s.Get(ctx, store.KeyTheme)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ui.ThemeLight, err
	}
	return ui.ParseTheme(value), nil
}

func saveTheme(ctx *Context, theme ui.Theme) error {
	if err := ctx.Store.Set(context.Background(), store.KeyTheme, string(theme)); err != nil {
		return err
	}
	ctx.UI.SetTheme(theme)
	ctx.UI.Successf("Theme: %s", theme)
	return nil
}

func (t *ThemeGetCmd) Run(ctx *Context) error {
	theme, err := LoadTheme(context.Background(), ctx.Store)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, theme)
	return err
}

func (t *ThemeSetCmd) Run(ctx *Context) error {
	return saveTheme(ctx, ui.ParseTheme(t.Theme))
}

func (t *ThemeToggleCmd) Run(ctx *Context) error {
	theme, err := LoadTheme(context.Background(), ctx.Store)
	if err != nil {
		return err
	}
	return saveTheme(ctx, theme.Toggle())
}
