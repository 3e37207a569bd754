package models

import "time"

// SeriesEntry is one member of a series with its reading-order neighbours.
type SeriesEntry struct {
	DocumentSummary
	Position int    `json:"position"`
	Prev     string `json:"prev,omitempty"`
	Next     string `json:"next,omitempty"`
}

// Series is the derived, date-ordered view of documents sharing a series name.
type Series struct {
	Name    string        `json:"name"`
	Members []SeriesEntry `json:"members"`
}

// TagIndex maps a normalised tag key to its published documents.
type TagIndex map[string]TagEntry

type TagEntry struct {
	Name      string            `json:"name"`
	Documents []DocumentSummary `json:"documents"`
}

// Report is the outcome of a full content check.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Documents   int               `json:"documents"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Issues      []Issue           `json:"issues"`
	Series      []Series          `json:"series"`
	Published   []DocumentSummary `json:"published"`
	Tags        TagIndex          `json:"tags"`
}

// Failed reports whether the check found any error-level issue.
func (r *Report) Failed() bool {
	return r != nil && r.Errors > 0
}

// IssuesFor returns the issues recorded against a single document path.
func (r *Report) IssuesFor(path string) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Path == path {
			out = append(out, issue)
		}
	}
	return out
}
