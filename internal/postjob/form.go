// Package postjob validates and submits new postings for company accounts.
package postjob

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/models"
)

const DefaultJobType = "Full-time"

// JobTypes are the types offered when posting.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

var (
	ErrValidation = errors.New("invalid job form")
	ErrNotCompany = errors.New("only company accounts can post jobs")
)

// ValidationError lists the labels of the required fields left blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Please fill: %s.", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Form is the raw input of a new posting. SourceURLs and SourceNames are
// comma-separated lists.
type Form struct {
	Title        string
	Company      string
	Location     string
	Type         string
	Salary       string
	Availability string
	SourceURLs   string
	SourceNames  string
}

// NewForm returns an empty form with the company prefilled.
func NewForm(company string) Form {
	return Form{Company: company, Type: DefaultJobType}
}

// Reset clears the form back to NewForm, keeping the company.
func (f *Form) Reset() {
	*f = NewForm(f.Company)
}

func (f Form) Validate() error {
	required := []struct {
		label string
		value string
	}{
		{"Job title", f.Title},
		{"Company", f.Company},
		{"Location", f.Location},
		{"Salary", f.Salary},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Payload builds the POST /api/jobs body. Names pair with urls by position;
// a url without a name gets models.DefaultSourceName and surplus names are dropped.
func (f Form) Payload() api.PostJobRequest {
	urls := splitList(f.SourceURLs)
	for i, u := range urls {
		urls[i] = withScheme(u)
	}
	names := splitList(f.SourceNames)
	paired := make([]string, len(urls))
	for i := range urls {
		paired[i] = models.DefaultSourceName
		if i < len(names) {
			paired[i] = names[i]
		}
	}

	jobType := strings.TrimSpace(f.Type)
	if jobType == "" {
		jobType = DefaultJobType
	}

	return api.PostJobRequest{
		Title:        strings.TrimSpace(f.Title),
		Company:      strings.TrimSpace(f.Company),
		Location:     strings.TrimSpace(f.Location),
		Type:         jobType,
		Salary:       strings.TrimSpace(f.Salary),
		Availability: strings.TrimSpace(f.Availability),
		SourceURLs:   urls,
		SourceNames:  paired,
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func withScheme(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
