package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/jobhunt/internal/export"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/muesli/termenv"
)

// OutputOptions are the flags shared by commands that print job lists.
type OutputOptions struct {
	Format string `help:"Output format: table, csv, json, md, tsv." enum:",table,csv,json,md,tsv" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"short"`
	Output string `name:"output" short:"o" help:"Write output to a file."`
}

func resolveFormat(ctx *Context, opts OutputOptions) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return parseFormat(opts.Format)
	}
	if opts.Output != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv", "json", "md", "markdown", "tsv", "table", "":
		return export.ParseFormat(value), nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

// writeJobList renders jobs to --output or stdout.
func writeJobList(ctx *Context, jobs []models.Job, opts OutputOptions, isSaved func(models.ID) bool) error {
	format, err := resolveFormat(ctx, opts)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	return export.WriteJobs(writer, jobs, format, writeOptions(ctx, writer, opts, isSaved))
}

func writeOptions(ctx *Context, writer io.Writer, opts OutputOptions, isSaved func(models.ID) bool) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && writer == ctx.Out
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(opts.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	wo := export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    linkStyle,
		Saved:        isSaved,
	}
	if ctx.UI != nil {
		wo.Palette = ctx.UI.Palette
	}
	return wo
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
