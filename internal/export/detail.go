package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobhunt/internal/listing"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/ui"
	"github.com/muesli/termenv"
)

// WriteJobDetail prints one job with its description and sources.
func WriteJobDetail(w io.Writer, job models.Job, opts WriteOptions) error {
	output := termenv.NewOutput(w)
	paint := func(color, text string) string {
		return ui.Colorize(output, opts.ColorEnabled, color, text)
	}

	status := paint(opts.Palette.Pending, "Not verified")
	if job.Certified() {
		status = paint(opts.Palette.Verified, verifiedBadge+" Verified")
	}
	if opts.isSaved(job.ID) {
		status += "  " + paint(opts.Palette.Accent, savedMarker+" Saved")
	}

	fmt.Fprintf(w, "%s\n", paint(opts.Palette.Accent, orDash(Plain(job.Title))))
	fmt.Fprintf(w, "%s\n\n", status)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"Company", Plain(job.Company)},
		{"Location", Plain(job.Location)},
		{"Type", Plain(job.Type)},
		{"Salary", Plain(job.Salary)},
		{"Availability", Plain(job.Availability)},
		{"Score", scoreLabel(job.VerificationScore)},
		{"Verdict", Plain(job.Verdict)},
		{"Posted", postedDetail(job, opts.now())},
		{"ID", job.ID.String()},
	}
	if job.EasyApply {
		rows = append(rows, [2]string{"Easy apply", "yes"})
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], orDash(row[1]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if link := Plain(job.ApplyLink()); link != "" {
		fmt.Fprintf(w, "\nApply: %s\n", linkText(link, output, opts))
	}
	if sources := job.Sources(); len(sources) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, src := range sources {
			fmt.Fprintf(w, "  - %s: %s\n", Plain(src.Name), linkText(Plain(src.URL), output, opts))
		}
	}
	if text := DescriptionText(job.Description); text != "" {
		fmt.Fprintf(w, "\n%s\n", text)
	}
	return nil
}

func postedDetail(job models.Job, now time.Time) string {
	ts := job.PostedTime()
	if ts.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", ts.Format("2006-01-02"), humanize.RelTime(ts, now, "ago", "from now"))
}

func linkText(link string, output *termenv.Output, opts WriteOptions) string {
	label := link
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		label = shortURLLabel(link)
	}
	label = ui.Colorize(output, opts.ColorEnabled, opts.Palette.Link, label)
	if opts.Hyperlinks {
		return hyperlink(link, label)
	}
	return label
}

// PageSummary renders the footer under a listing, e.g.
// "Showing 1-25 of 1,204 jobs (page 1 of 49)".
func PageSummary(view listing.View) string {
	var b strings.Builder
	size := view.Query.PageSize
	if size < 1 {
		size = models.DefaultPageSize
	}
	page := view.Page
	if page < 1 {
		page = 1
	}
	start, end := 0, 0
	if len(view.Jobs) > 0 {
		start = (page-1)*size + 1
		end = start + len(view.Jobs) - 1
	}
	fmt.Fprintf(&b, "Showing %s-%s of %s jobs (page %d of %d)",
		humanize.Comma(int64(start)),
		humanize.Comma(int64(end)),
		humanize.Comma(int64(view.Total)),
		page, view.TotalPages)
	if view.UsingDemo {
		b.WriteString(" - " + listing.DemoNotice)
	}
	return b.String()
}
