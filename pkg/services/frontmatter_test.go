package services

import (
	"strings"
	"testing"
	"time"

	"hugo-lint/pkg/models"
)

func TestParseFrontMatterFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		title   string
		body    string
	}{
		{
			name:    "yaml",
			content: "---\ntitle: Hello\n---\nBody text\n",
			format:  "yaml",
			title:   "Hello",
			body:    "Body text",
		},
		{
			name:    "toml",
			content: "+++\ntitle = \"Hello\"\n+++\n\nBody text\n",
			format:  "toml",
			title:   "Hello",
			body:    "Body text",
		},
		{
			name:    "json",
			content: "{\n  \"title\": \"Hello\"\n}\n\nBody text\n",
			format:  "json",
			title:   "Hello",
			body:    "Body text",
		},
		{
			name:    "explicit toml fence",
			content: "---toml\ntitle = \"Hello\"\n---\nBody text\n",
			format:  "toml",
			title:   "Hello",
			body:    "Body text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, format, err := ParseFrontMatter([]byte(tt.content))
			if err != nil {
				t.Fatalf("ParseFrontMatter: %v", err)
			}
			if format != tt.format {
				t.Fatalf("format = %q, want %q", format, tt.format)
			}
			if fm["title"] != tt.title {
				t.Fatalf("title = %v, want %q", fm["title"], tt.title)
			}
			if body != tt.body {
				t.Fatalf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	fm, body, format, err := ParseFrontMatter([]byte("Just prose.\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if len(fm) != 0 || format != "" {
		t.Fatalf("expected empty front matter, got %v (%q)", fm, format)
	}
	if body != "Just prose." {
		t.Fatalf("body = %q", body)
	}
}

func TestParseFrontMatterDecodeError(t *testing.T) {
	_, _, format, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if format != "yaml" {
		t.Fatalf("format = %q, want yaml", format)
	}
}

func TestConstructFileContentRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			fm := map[string]interface{}{"title": "Round trip", "draft": true}
			content, err := ConstructFileContent(fm, "Hello body", format)
			if err != nil {
				t.Fatalf("ConstructFileContent: %v", err)
			}
			got, body, gotFormat, err := ParseFrontMatter(content)
			if err != nil {
				t.Fatalf("ParseFrontMatter: %v\n%s", err, content)
			}
			if gotFormat != format {
				t.Fatalf("format = %q, want %q", gotFormat, format)
			}
			if got["title"] != "Round trip" || got["draft"] != true {
				t.Fatalf("front matter = %v", got)
			}
			if body != "Hello body" {
				t.Fatalf("body = %q", body)
			}
		})
	}

	if _, err := ConstructFileContent(nil, "", "ini"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestGenerateContentFromCollection(t *testing.T) {
	prev := now
	now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	collection := models.Collection{
		Name:   "posts",
		Format: "yaml-frontmatter",
		Fields: []models.Field{
			{Name: "title", Widget: "string"},
			{Name: "date", Widget: "datetime"},
			{Name: "author", Widget: "string", Default: "kit"},
			{Name: "tags", Widget: "list"},
			{Name: "body", Widget: "markdown", Default: "Start here."},
		},
	}

	content, err := GenerateContentFromCollection(collection, map[string]interface{}{"title": "Fresh"}, "")
	if err != nil {
		t.Fatalf("GenerateContentFromCollection: %v", err)
	}
	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v\n%s", err, content)
	}
	if format != "yaml" {
		t.Fatalf("format = %q, want yaml", format)
	}
	if fm["title"] != "Fresh" || fm["author"] != "kit" || fm["draft"] != true {
		t.Fatalf("front matter = %v", fm)
	}
	doc := DecodeDocument("posts/fresh.md", fm, body, format)
	if got := doc.Date.UTC().Format(time.RFC3339); got != "2024-05-06T07:08:09Z" {
		t.Fatalf("date = %s", got)
	}
	if body != "Start here." {
		t.Fatalf("body = %q", body)
	}
}

func TestGenerateContentDefaultsToTOML(t *testing.T) {
	content, err := GenerateContentFromCollection(models.Collection{}, map[string]interface{}{"title": "Bare"}, "")
	if err != nil {
		t.Fatalf("GenerateContentFromCollection: %v", err)
	}
	if !strings.HasPrefix(string(content), "+++\n") {
		t.Fatalf("expected TOML front matter, got:\n%s", content)
	}
}

func TestDecodeDocument(t *testing.T) {
	fm := map[string]interface{}{
		"title":  "  Spaced  ",
		"date":   "2024-03-01",
		"draft":  "true",
		"tags":   []interface{}{"Swift", "iOS"},
		"topics": "Swift",
		"series": "Basics",
		"url":    "/custom/",
	}
	doc := DecodeDocument("posts/a.md", fm, "body", "yaml")

	if doc.Section != "posts" {
		t.Fatalf("section = %q", doc.Section)
	}
	if doc.Title != "Spaced" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Date.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("date = %v", doc.Date)
	}
	if !doc.Draft {
		t.Fatal("draft string should decode as true")
	}
	if strings.Join(doc.Tags, ",") != "Swift,iOS" {
		t.Fatalf("tags = %v", doc.Tags)
	}
	if len(doc.Series) != 1 || doc.Series[0] != "Basics" {
		t.Fatalf("series = %v", doc.Series)
	}
	if doc.URL != "/custom/" {
		t.Fatalf("url = %q", doc.URL)
	}
}

func TestDecodeDocumentInvalidDate(t *testing.T) {
	doc := DecodeDocument("a.md", map[string]interface{}{"date": "someday"}, "", "yaml")
	if doc.DateErr == nil {
		t.Fatal("expected a date error")
	}
	if !doc.Date.IsZero() {
		t.Fatalf("date = %v, want zero", doc.Date)
	}
	if doc.Section != "" {
		t.Fatalf("root document section = %q", doc.Section)
	}
}
