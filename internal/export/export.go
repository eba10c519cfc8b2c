package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// ParseFormat maps a flag value to a format, defaulting to table.
func ParseFormat(value string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV
	case FormatJSON:
		return FormatJSON
	case FormatMarkdown, "markdown":
		return FormatMarkdown
	case FormatTSV:
		return FormatTSV
	default:
		return FormatTable
	}
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	Palette      ui.Palette
	// Saved marks bookmarked jobs. Nil means nothing is marked.
	Saved func(models.ID) bool
	// Now anchors relative posted times. Zero means time.Now.
	Now time.Time
}

func (o WriteOptions) isSaved(id models.ID) bool {
	return o.Saved != nil && o.Saved(id)
}

func (o WriteOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

const (
	verifiedBadge = "✓"
	savedMarker   = "★"
)

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs, ',', opts)
	case FormatTSV:
		return writeCSV(w, jobs, '\t', opts)
	case FormatMarkdown:
		return writeMarkdown(w, jobs, opts)
	default:
		return writeTable(w, jobs, opts)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeCSV(w io.Writer, jobs []models.Job, delim rune, opts WriteOptions) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(csvRow(job, opts)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintln(tw, strings.Join(tableRow(job, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, job := range jobs {
		heading := fmt.Sprintf("- **%s** (%s)", Plain(job.Title), Plain(job.Company))
		if job.Certified() {
			heading += " " + verifiedBadge + " Verified"
		}
		if opts.isSaved(job.ID) {
			heading += " " + savedMarker
		}
		lines := []string{
			heading,
			fmt.Sprintf("  Location: %s", orDash(Plain(job.Location))),
		}
		if job.Type != "" {
			lines = append(lines, fmt.Sprintf("  Type: %s", Plain(job.Type)))
		}
		if job.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", Plain(job.Salary)))
		}
		if score := scoreLabel(job.VerificationScore); score != "-" {
			lines = append(lines, fmt.Sprintf("  Score: %s", score))
		}
		if posted := job.PostedTime(); !posted.IsZero() {
			lines = append(lines, fmt.Sprintf("  Posted: %s", posted.Format(time.RFC3339)))
		}
		if link := Plain(job.ApplyLink()); link != "" {
			lines = append(lines, fmt.Sprintf("  Apply: [Open listing](<%s>)", link))
		}
		for _, src := range job.Sources() {
			lines = append(lines, fmt.Sprintf("  Source: [%s](<%s>)", Plain(src.Name), Plain(src.URL)))
		}
		if summary := Summary(job.Description, summaryLen); summary != "" {
			lines = append(lines, fmt.Sprintf("  Summary: %s", summary))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"location",
		"type",
		"salary",
		"verdict",
		"verification_score",
		"posted_at",
		"apply_url",
		"source_urls",
		"source_names",
		"saved",
		"summary",
	}
}

func csvRow(job models.Job, opts WriteOptions) []string {
	posted := ""
	if ts := job.PostedTime(); !ts.IsZero() {
		posted = ts.Format(time.RFC3339)
	}
	score := ""
	if job.VerificationScore != 0 {
		score = fmt.Sprintf("%g", float64(job.VerificationScore))
	}
	return []string{
		job.ID.String(),
		Plain(job.Title),
		Plain(job.Company),
		Plain(job.Location),
		Plain(job.Type),
		Plain(job.Salary),
		Plain(job.Verdict),
		score,
		posted,
		job.ApplyLink(),
		strings.Join(job.SourceURLs, " "),
		strings.Join(job.SourceNames, "|"),
		boolString(opts.isSaved(job.ID)),
		Summary(job.Description, summaryLen),
	}
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func scoreLabel(score models.Score) string {
	if score <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", score.Percent())
}

// postedLabel renders posted_at relative to now, e.g. "3 days ago".
func postedLabel(job models.Job, now time.Time) string {
	ts := job.PostedTime()
	if ts.IsZero() {
		return "-"
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}

func tableHeader() []string {
	return []string{
		"verified",
		"title",
		"company",
		"location",
		"type",
		"salary",
		"score",
		"posted",
		"saved",
		"id",
	}
}

func tableRow(job models.Job, output *termenv.Output, opts WriteOptions) []string {
	badge := ""
	if job.Certified() {
		badge = ui.Colorize(output, opts.ColorEnabled, opts.Palette.Verified, verifiedBadge)
	}
	saved := ""
	if opts.isSaved(job.ID) {
		saved = ui.Colorize(output, opts.ColorEnabled, opts.Palette.Accent, savedMarker)
	}

	title := orDash(Plain(job.Title))
	if link := Plain(job.ApplyLink()); link != "" && opts.Hyperlinks {
		title = hyperlink(link, ui.Colorize(output, opts.ColorEnabled, opts.Palette.Link, title))
	}

	return []string{
		badge,
		title,
		orDash(Plain(job.Company)),
		orDash(Plain(job.Location)),
		orDash(Plain(job.Type)),
		orDash(Plain(job.Salary)),
		scoreLabel(job.VerificationScore),
		ui.Colorize(output, opts.ColorEnabled, opts.Palette.Muted, postedLabel(job, opts.now())),
		saved,
		job.ID.String(),
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
