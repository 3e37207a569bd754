package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/models"
)

func TestLoadDocumentSet(t *testing.T) {
	root := writeSite(t, map[string]string{
		"config.yaml":              "baseURL: https://example.org/\npermalinks:\n  posts: /:year/:slug/\n",
		"content/posts/b.md":       "---\ntitle: B\ndate: 2024-02-01\n---\nbody\n",
		"content/posts/a.markdown": "+++\ntitle = \"A\"\ndate = 2024-01-01\n+++\n",
		"content/posts/broken.md":  "---\ntitle: [oops\n---\n",
		"content/.hidden/skip.md":  "---\ntitle: Hidden\n---\n",
		"content/posts/notes.txt":  "not content",
		"static/admin/config.yml":  "media_folder: static/uploads\ncollections:\n  - name: posts\n    folder: content/posts\n",
	})

	set, err := LoadDocumentSet(context.Background(), root)
	if err != nil {
		t.Fatalf("LoadDocumentSet: %v", err)
	}

	var paths []string
	for _, doc := range set.Documents {
		paths = append(paths, doc.Path)
	}
	want := []string{"posts/a.markdown", "posts/b.md", "posts/broken.md"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}

	if set.Documents[1].Permalink != "/2024/b/" {
		t.Fatalf("permalink = %q", set.Documents[1].Permalink)
	}
	if set.Documents[2].DecodeErr == nil {
		t.Fatal("broken front matter should be kept as a decode error")
	}
	if set.CMS.MediaFolder != "static/uploads" || len(set.CMS.Collections) != 1 {
		t.Fatalf("cms = %+v", set.CMS)
	}
}

func TestLoadDocumentSetMissingContent(t *testing.T) {
	if _, err := LoadDocumentSet(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected an error for a site without a content directory")
	}
}

func TestDocumentCacheInvalidation(t *testing.T) {
	root := writeSite(t, map[string]string{
		"content/one.md": "---\ntitle: One\ndate: 2024-01-01\n---\n",
	})
	ctx := context.Background()

	articles, err := GetArticlesCache(ctx)
	if err != nil {
		t.Fatalf("GetArticlesCache: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "One" || articles[0].Date == nil {
		t.Fatalf("articles = %+v", articles)
	}

	extra := filepath.Join(root, config.ContentDir, "two.md")
	if err := os.WriteFile(extra, []byte("No front matter.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	articles, _ = GetArticlesCache(ctx)
	if len(articles) != 1 {
		t.Fatalf("cache should still hold one article, got %d", len(articles))
	}

	InvalidateCache()
	articles, _ = GetArticlesCache(ctx)
	if len(articles) != 2 {
		t.Fatalf("articles after invalidation = %d, want 2", len(articles))
	}
	if articles[1].Title != "two.md" || articles[1].Date != nil {
		t.Fatalf("untitled article = %+v", articles[1])
	}
}

func TestBuildDocumentExtractsLinks(t *testing.T) {
	doc := BuildDocument("posts/a.md", []byte("---\ntitle: A\n---\nSee [b](b.md).\n"))
	if doc.Title != "A" || len(doc.Links) != 1 || doc.Links[0].Kind != models.LinkPage {
		t.Fatalf("doc = %+v", doc)
	}
}
