package export

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const summaryLen = 200

var (
	strict     = bluemonday.StrictPolicy()
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// Plain strips markup from a single-line field and collapses whitespace.
func Plain(value string) string {
	if !strings.ContainsAny(value, "<&") {
		return strings.Join(strings.Fields(value), " ")
	}
	cleaned := html.UnescapeString(strict.Sanitize(value))
	return strings.Join(strings.Fields(cleaned), " ")
}

// DescriptionText renders an HTML or plain-text description as plain text,
// keeping paragraph and list structure.
func DescriptionText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.Contains(value, "<") {
		return html.UnescapeString(value)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return Plain(value)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
		s.AppendHtml("\n")
	})
	doc.Find("p, div, h1, h2, h3, h4, h5, h6, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// Summary is the first max runes of the description on one line.
func Summary(value string, max int) string {
	text := strings.Join(strings.Fields(DescriptionText(value)), " ")
	runes := []rune(text)
	if max <= 3 || len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}
