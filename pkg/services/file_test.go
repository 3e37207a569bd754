package services

import (
	"path/filepath"
	"testing"

	"hugo-lint/pkg/models"
)

func TestSafeJoin(t *testing.T) {
	root := filepath.FromSlash("/repo")
	tests := map[string]string{
		"posts/a.md":       filepath.Join(root, "content", "posts", "a.md"),
		"posts/../a.md":    filepath.Join(root, "content", "a.md"),
		"../secrets.md":    "",
		"posts/../../x.md": "",
		"/etc/passwd":      "",
		"":                 "",
	}
	for target, want := range tests {
		if got := SafeJoin(root, "content", target); got != want {
			t.Errorf("SafeJoin(%q) = %q, want %q", target, got, want)
		}
	}
}

func TestCollectionFor(t *testing.T) {
	cfg := &models.CMSConfig{Collections: []models.Collection{
		{Name: "pages", Folder: "content"},
		{Name: "posts", Folder: "content/posts"},
		{Name: "swift", Folder: "content/posts/swift/"},
		{Name: "data", Folder: "data"},
	}}

	tests := map[string]string{
		"posts/a.md":       "posts",
		"posts/swift/b.md": "swift",
		"about.md":         "pages",
		"postscript/c.md":  "pages",
	}
	for path, want := range tests {
		got := CollectionFor(cfg, path)
		if got == nil || got.Name != want {
			t.Errorf("CollectionFor(%q) = %+v, want %s", path, got, want)
		}
	}
	if CollectionFor(nil, "posts/a.md") != nil {
		t.Error("nil config should match nothing")
	}
}

func TestLoadSiteConfig(t *testing.T) {
	root := writeSite(t, map[string]string{
		"hugo.toml": `baseURL = "https://example.org/"
title = "Notes"

[permalinks.page]
posts = "/:year/:month/:slug/"

[taxonomies]
tag = "tags"
series = "series"
`,
	})

	site, err := LoadSiteConfig(root)
	if err != nil {
		t.Fatalf("LoadSiteConfig: %v", err)
	}
	if site.Title != "Notes" || site.BaseURL != "https://example.org/" {
		t.Fatalf("site = %+v", site)
	}
	if got := site.PermalinkFor("posts"); got != "/:year/:month/:slug/" {
		t.Fatalf("posts permalink = %q", got)
	}
	if len(site.TaxonomyNames()) != 2 {
		t.Fatalf("taxonomies = %v", site.TaxonomyNames())
	}
}

func TestLoadSiteConfigDefaults(t *testing.T) {
	site, err := LoadSiteConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSiteConfig: %v", err)
	}
	if names := site.TaxonomyNames(); len(names) != 2 || names[0] != "tags" {
		t.Fatalf("default taxonomies = %v", names)
	}
}
