package services

import (
	"fmt"
	"sort"

	"hugo-lint/pkg/models"
)

// BuildSeries groups documents by series name and orders each group by date.
// A series with a single member is reported as an orphan.
func BuildSeries(docs []*models.Document) ([]models.Series, []models.Issue) {
	groups := make(map[string][]*models.Document)
	for _, doc := range docs {
		for _, name := range doc.Series {
			groups[name] = append(groups[name], doc)
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		series []models.Series
		issues []models.Issue
	)
	for _, name := range names {
		members := groups[name]
		sort.SliceStable(members, func(i, j int) bool {
			return readingOrderLess(members[i], members[j])
		})

		entries := make([]models.SeriesEntry, len(members))
		for i, doc := range members {
			entries[i] = models.SeriesEntry{
				DocumentSummary: doc.Summary(),
				Position:        i + 1,
			}
			if i > 0 {
				entries[i].Prev = members[i-1].Path
			}
			if i < len(members)-1 {
				entries[i].Next = members[i+1].Path
			}
		}
		series = append(series, models.Series{Name: name, Members: entries})

		if len(members) == 1 {
			issues = append(issues, models.Issue{
				Severity: models.SeverityWarning,
				Code:     models.CodeOrphanSeries,
				Path:     members[0].Path,
				Field:    "series",
				Message:  fmt.Sprintf("series %q has no other documents", name),
			})
		}
	}
	return series, issues
}

func readingOrderLess(a, b *models.Document) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.Path < b.Path
}
