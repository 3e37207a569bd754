package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/models"
)

// BuildSite renders the preview site. Drafts are included (-D) so they can be
// reviewed even though public listings leave them out.
func BuildSite(ctx context.Context) (string, error) {
	destination, err := filepath.Abs(config.PublicPath)
	if err != nil {
		return "", err
	}

	var log string
	err = withRepoLock(ctx, config.RepoPath, func() error {
		cmd := exec.CommandContext(ctx, "hugo",
			"--source", config.RepoPath,
			"--destination", destination,
			"--baseURL", config.GetAppURL()+config.PreviewURL,
			"--cleanDestinationDir",
			"-D",
		)
		output, err := cmd.CombinedOutput()
		log = string(output)
		return err
	})
	return log, err
}

// CreateContent scaffolds a new draft at path (relative to the content
// directory) using the matching CMS collection's defaults.
func CreateContent(ctx context.Context, path string, overrides map[string]interface{}, format string) (string, error) {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, path)
	if fullPath == "" || !isMarkdownPath(path) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	cms, err := GetCMSConfig()
	if err != nil {
		return "", err
	}
	var collection models.Collection
	if c := CollectionFor(cms, filepath.ToSlash(path)); c != nil {
		collection = *c
	}

	content, err := GenerateContentFromCollection(collection, overrides, format)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", path, err)
	}

	err = withRepoLock(ctx, config.RepoPath, func() error {
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				return fmt.Errorf("%w: %s", ErrExists, path)
			}
			return err
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		return "", err
	}

	InvalidateCache()
	return strings.TrimPrefix(filepath.ToSlash(path), "/"), nil
}

// SaveContent writes content to path (relative to the content directory)
// while holding the repository lock.
func SaveContent(ctx context.Context, path string, content []byte) error {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, path)
	if fullPath == "" {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	err := withRepoLock(ctx, config.RepoPath, func() error {
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return err
		}
		return os.WriteFile(fullPath, content, 0o644)
	})
	if err != nil {
		return err
	}

	InvalidateCache()
	return nil
}
