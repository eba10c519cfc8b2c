package cmd

import "fmt"

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, map[string]string{"version": ctx.Version, "api_url": ctx.Config.APIURL})
	}
	_, err := fmt.Fprintf(ctx.Out, "jobhunt %s (%s)\n", ctx.Version, ctx.Config.APIURL)
	return err
}
