package services

import (
	"sort"

	"hugo-lint/pkg/models"
)

// PublishedIndex lists the documents a public listing shows: drafts and
// section list pages are left out. Newest first.
func PublishedIndex(docs []*models.Document) []models.DocumentSummary {
	published := make([]*models.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Draft || doc.IsListPage() {
			continue
		}
		published = append(published, doc)
	}
	sort.SliceStable(published, func(i, j int) bool {
		a, b := published[i], published[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.Path < b.Path
	})

	out := make([]models.DocumentSummary, len(published))
	for i, doc := range published {
		out[i] = doc.Summary()
	}
	return out
}

// BuildTagIndex groups published documents under their slugified tags.
// The display name is the first spelling seen. A document is listed once per
// key however many of its tags slugify to it.
func BuildTagIndex(published []models.DocumentSummary) models.TagIndex {
	index := make(models.TagIndex)
	for _, summary := range published {
		seen := make(map[string]bool, len(summary.Tags))
		for _, tag := range summary.Tags {
			key := Slugify(tag)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			entry, ok := index[key]
			if !ok {
				entry.Name = tag
			}
			entry.Documents = append(entry.Documents, summary)
			index[key] = entry
		}
	}
	return index
}

// SortedTagKeys returns the tag keys in lexical order.
func SortedTagKeys(index models.TagIndex) []string {
	keys := make([]string, 0, len(index))
	for key := range index {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
