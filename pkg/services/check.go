package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"hugo-lint/pkg/logging"
	"hugo-lint/pkg/models"
)

var logger = logging.NewNop()

// SetLogger routes service logging to l.
func SetLogger(l *slog.Logger) {
	logger = logging.NewComponentLogger(l, "services")
}

// Check runs every content check against the cached document set.
func Check(ctx context.Context) (*models.Report, error) {
	set, err := GetDocumentSet(ctx)
	if err != nil {
		return nil, err
	}
	return CheckDocuments(set), nil
}

// CheckDocuments validates front matter, resolves links, builds series and
// listings, and collects every finding into one report.
func CheckDocuments(set *DocumentSet) *models.Report {
	docs := set.Documents
	report := &models.Report{
		GeneratedAt: time.Now().UTC(),
		Documents:   len(docs),
	}

	var issues []models.Issue
	for _, doc := range docs {
		issues = append(issues, ValidateDocument(doc, CollectionFor(set.CMS, doc.Path))...)
	}

	issues = append(issues, duplicatePermalinkIssues(docs)...)

	resolver := NewResolver(docs, set.Site, set.CMS, set.RepoPath)
	for _, doc := range docs {
		for _, res := range resolver.ResolveAll(doc) {
			if res.Skipped || res.Resolved {
				continue
			}
			issues = append(issues, linkIssue(doc, res))
		}
	}

	series, seriesIssues := BuildSeries(docs)
	issues = append(issues, seriesIssues...)
	report.Series = series

	report.Published = PublishedIndex(docs)
	report.Tags = BuildTagIndex(report.Published)

	SortIssues(issues)
	report.Issues = issues
	if report.Issues == nil {
		report.Issues = []models.Issue{}
	}
	for _, issue := range issues {
		switch issue.Severity {
		case models.SeverityError:
			report.Errors++
		case models.SeverityWarning:
			report.Warnings++
		}
	}

	logger.Info("content checked",
		slog.Int("documents", report.Documents),
		slog.Int("errors", report.Errors),
		slog.Int("warnings", report.Warnings),
	)
	return report
}

func linkIssue(doc *models.Document, res LinkResult) models.Issue {
	issue := models.Issue{
		Severity: models.SeverityWarning,
		Code:     models.CodeUnresolvedLink,
		Path:     doc.Path,
		Message:  fmt.Sprintf("unresolved %s link %q: %s", res.Link.Kind, res.Link.Target, res.Reason),
	}
	if res.Asset {
		issue.Code = models.CodeMissingAsset
		issue.Message = fmt.Sprintf("missing file %q: %s", res.Link.Target, res.Reason)
	}
	return issue
}

func duplicatePermalinkIssues(docs []*models.Document) []models.Issue {
	byPermalink := make(map[string][]string)
	for _, doc := range docs {
		if doc.Permalink == "" {
			continue
		}
		byPermalink[doc.Permalink] = append(byPermalink[doc.Permalink], doc.Path)
	}

	var issues []models.Issue
	for permalink, paths := range byPermalink {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		for _, p := range paths {
			issues = append(issues, models.Issue{
				Severity: models.SeverityError,
				Code:     models.CodeDuplicateURL,
				Path:     p,
				Field:    "url",
				Message:  fmt.Sprintf("%s is also published by %s", permalink, strings.Join(others(paths, p), ", ")),
			})
		}
	}
	return issues
}

func others(paths []string, self string) []string {
	out := make([]string, 0, len(paths)-1)
	for _, p := range paths {
		if p != self {
			out = append(out, p)
		}
	}
	return out
}
