package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"hugo-lint/pkg/config"
)

var ErrMediaNotConfigured = errors.New("media_folder not configured")

type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"` // Path to use in Markdown
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// GetMediaConfig returns the media folder (repo relative) and its public
// prefix, preferring the collection's own settings.
func GetMediaConfig(collectionName string) (string, string, error) {
	cfg, err := GetCMSConfig()
	if err != nil {
		return "", "", err
	}

	if col := CollectionByName(cfg, collectionName); col != nil && col.MediaFolder != "" {
		return col.MediaFolder, col.PublicFolder, nil
	}

	if cfg.MediaFolder == "" {
		return "", "", ErrMediaNotConfigured
	}
	return cfg.MediaFolder, cfg.PublicFolder, nil
}

// ListMediaFiles lists the files in the media folder with the path a
// document should use to reference each one.
func ListMediaFiles(collectionName string) ([]MediaFile, error) {
	mediaFolder, publicFolder, err := GetMediaConfig(collectionName)
	if err != nil {
		return nil, err
	}

	fullMediaPath := filepath.Join(config.RepoPath, mediaFolder)
	entries, err := os.ReadDir(fullMediaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []MediaFile{}, nil
		}
		return nil, err
	}

	files := []MediaFile{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		usagePath := MediaUsagePath(mediaFolder, publicFolder, entry.Name())
		files = append(files, MediaFile{
			Name: entry.Name(),
			Path: usagePath,
			Size: info.Size(),
			URL:  usagePath,
		})
	}
	return files, nil
}

// MediaUsagePath is the site path Hugo serves a media file at.
func MediaUsagePath(mediaFolder, publicFolder, name string) string {
	if strings.HasPrefix(publicFolder, "http://") || strings.HasPrefix(publicFolder, "https://") {
		return strings.TrimRight(publicFolder, "/") + "/" + name
	}

	var usagePath string
	if publicFolder != "" {
		usagePath = filepath.ToSlash(filepath.Join(publicFolder, name))
	} else {
		cleaned := filepath.ToSlash(mediaFolder)
		staticPrefix := strings.Trim(filepath.ToSlash(config.StaticDir), "/") + "/"
		contentPrefix := strings.Trim(filepath.ToSlash(config.ContentDir), "/") + "/"
		switch {
		case strings.HasPrefix(cleaned, staticPrefix):
			usagePath = "/" + strings.TrimPrefix(cleaned, staticPrefix) + "/" + name
		case strings.HasPrefix(cleaned, contentPrefix):
			// Page bundle resources are referenced relative to the page.
			return name
		default:
			usagePath = "/" + cleaned + "/" + name
		}
	}
	if !strings.HasPrefix(usagePath, "/") {
		usagePath = "/" + usagePath
	}
	return strings.ReplaceAll(usagePath, "//", "/")
}
