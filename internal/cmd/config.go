package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobhunt/internal/config"
)

type ConfigCmd struct {
	Show ShowConfigCmd `cmd:"" default:"1" help:"Print the effective configuration."`
	Init InitConfigCmd `cmd:"" help:"Write default config and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
}

type ShowConfigCmd struct{}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, cfg)
	}
	storeURL := cfg.StoreURL
	if storeURL == "" {
		storeURL = "file"
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "api_url\t%s\n", cfg.APIURL)
	fmt.Fprintf(tw, "page_size\t%d\n", cfg.PageSize)
	fmt.Fprintf(tw, "sort\t%s\n", cfg.Sort)
	fmt.Fprintf(tw, "certified_only\t%t\n", cfg.CertifiedOnly)
	fmt.Fprintf(tw, "demo_fallback\t%t\n", cfg.DemoFallback)
	fmt.Fprintf(tw, "poll_interval\t%s\n", cfg.Poll())
	fmt.Fprintf(tw, "timeout\t%s\n", cfg.Timeout())
	fmt.Fprintf(tw, "store\t%s\n", storeURL)
	return tw.Flush()
}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Successf("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}
