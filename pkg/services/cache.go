package services

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/models"

	"golang.org/x/sync/errgroup"
)

// DocumentSet is the loaded content of one Hugo site.
type DocumentSet struct {
	RepoPath  string
	Documents []*models.Document
	Site      *models.SiteConfig
	CMS       *models.CMSConfig
}

var (
	documentCache *DocumentSet
	cacheMutex    sync.Mutex
)

// GetDocumentSet returns the cached document set, loading it on first use.
func GetDocumentSet(ctx context.Context) (*DocumentSet, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if documentCache != nil {
		return documentCache, nil
	}

	set, err := LoadDocumentSet(ctx, config.RepoPath)
	if err != nil {
		return nil, err
	}
	documentCache = set
	return documentCache, nil
}

// GetArticlesCache returns the editor listing for every content file.
func GetArticlesCache(ctx context.Context) ([]models.Article, error) {
	set, err := GetDocumentSet(ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]models.Article, 0, len(set.Documents))
	for _, doc := range set.Documents {
		title := doc.Title
		if title == "" {
			title = doc.Path
		}
		article := models.Article{
			Path:    doc.Path,
			Title:   title,
			Draft:   doc.Draft,
			Format:  doc.Format,
			IsDirty: doc.IsDirty,
		}
		if !doc.Date.IsZero() {
			date := doc.Date
			article.Date = &date
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	documentCache = nil
}

// LoadDocumentSet walks the site's content directory and parses every
// Markdown file, CacheConcurrency files at a time.
func LoadDocumentSet(ctx context.Context, repoPath string) (*DocumentSet, error) {
	start := time.Now()
	contentDir := filepath.Join(repoPath, config.ContentDir)

	site, err := LoadSiteConfig(repoPath)
	if err != nil {
		return nil, err
	}
	cms, err := LoadCMSConfig(repoPath)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != contentDir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if isMarkdownPath(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", contentDir, err)
	}

	docs := make([]*models.Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.CacheConcurrency, 1))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			relPath, err := filepath.Rel(contentDir, file)
			if err != nil {
				return err
			}
			docs[i] = BuildDocument(filepath.ToSlash(relPath), content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	AssignPermalinks(docs, site)

	if dirtyFiles, err := getGitDirtyFiles(ctx, repoPath); err == nil {
		for _, doc := range docs {
			repoRelPath := filepath.ToSlash(filepath.Join(config.ContentDir, doc.Path))
			doc.IsDirty = dirtyFiles[repoRelPath]
		}
	} else {
		logger.Debug("git status unavailable", slog.String("repo", repoPath), slog.Any("error", err))
	}

	logger.Info("content loaded",
		slog.String("repo", repoPath),
		slog.Int("documents", len(docs)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return &DocumentSet{RepoPath: repoPath, Documents: docs, Site: site, CMS: cms}, nil
}

// BuildDocument parses one content file. Decode failures are kept on the
// document so the checker can report them alongside everything else.
func BuildDocument(relPath string, content []byte) *models.Document {
	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		doc := DecodeDocument(relPath, map[string]interface{}{}, string(content), format)
		doc.DecodeErr = err
		return doc
	}
	doc := DecodeDocument(relPath, fm, body, format)
	doc.Links = ExtractLinks(body)
	return doc
}

// getGitDirtyFiles returns paths (relative to repoPath) with uncommitted changes.
func getGitDirtyFiles(ctx context.Context, dir string) (map[string]bool, error) {
	prefixCmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-prefix")
	prefixCmd.Dir = dir
	prefixOut, err := prefixCmd.Output()
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimSpace(string(prefixOut))

	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain", "--untracked-files=all", "--", ".")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	dirty := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		path = strings.Trim(path, "\"")
		dirty[strings.TrimPrefix(path, prefix)] = true
	}
	return dirty, nil
}
