package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSourceName labels a source URL that has no matching name.
const DefaultSourceName = "source"

const verdictCertified = "certified"

// Job is one posting as served by the jobs backend.
type Job struct {
	ID                ID       `json:"id"`
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location"`
	Type              string   `json:"type,omitempty"`
	Salary            string   `json:"salary,omitempty"`
	Description       string   `json:"description,omitempty"`
	Availability      string   `json:"availability,omitempty"`
	ApplyURL          string   `json:"apply_url,omitempty"`
	EasyApply         bool     `json:"easyApply,omitempty"`
	SourceURLs        []string `json:"source_urls"`
	SourceNames       []string `json:"source_names"`
	Verdict           string   `json:"verdict,omitempty"`
	VerificationScore Score    `json:"verification_score,omitempty"`
	PostedAt          string   `json:"posted_at,omitempty"`
	PostedBy          ID       `json:"postedBy,omitempty"`
}

// jobFields has Job's fields without its JSON methods.
type jobFields Job

// UnmarshalJSON decodes a job; missing source lists become empty slices.
func (j *Job) UnmarshalJSON(data []byte) error {
	raw := jobFields(*j)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*j = Job(raw).withSourceLists()
	return nil
}

// MarshalJSON always writes source_urls and source_names as arrays.
func (j Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(jobFields(j.withSourceLists()))
}

func (j Job) withSourceLists() Job {
	if j.SourceURLs == nil {
		j.SourceURLs = []string{}
	}
	if j.SourceNames == nil {
		j.SourceNames = []string{}
	}
	return j
}

// Source is one provenance link of a job.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Certified reports whether the backend verdict is "certified", ignoring case.
func (j Job) Certified() bool {
	return strings.ToLower(strings.TrimSpace(j.Verdict)) == verdictCertified
}

// PostedTime parses posted_at. Missing or unparseable values yield the zero time.
func (j Job) PostedTime() time.Time {
	ts, err := ParseTimestamp(j.PostedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Sources pairs source_urls with source_names by position.
func (j Job) Sources() []Source {
	out := make([]Source, 0, len(j.SourceURLs))
	for idx, url := range j.SourceURLs {
		name := ""
		if idx < len(j.SourceNames) {
			name = strings.TrimSpace(j.SourceNames[idx])
		}
		if name == "" {
			name = DefaultSourceName
		}
		out = append(out, Source{Name: name, URL: url})
	}
	return out
}

// ApplyLink returns apply_url, or the first source URL when it is not set.
func (j Job) ApplyLink() string {
	if link := strings.TrimSpace(j.ApplyURL); link != "" {
		return link
	}
	for _, url := range j.SourceURLs {
		if url = strings.TrimSpace(url); url != "" {
			return url
		}
	}
	return ""
}

// ParseTimestamp accepts the ISO-8601 shapes seen from the backend.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

// ID is an opaque identifier. The backend sends either strings or numbers.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Score is verification_score. Producers disagree on the scale (0-1 vs 0-100)
// so it is only a relative ranking signal.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
		if raw == "" {
			*s = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("verification_score: %w", err)
		}
		*s = Score(parsed)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("verification_score: %w", err)
	}
	*s = Score(f)
	return nil
}

// Percent renders the score on a 0-100 scale.
func (s Score) Percent() int {
	v := float64(s)
	if v > 0 && v <= 1 {
		v *= 100
	}
	return int(v + 0.5)
}
