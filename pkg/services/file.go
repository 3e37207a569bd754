package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrExists      = errors.New("file already exists")
)

const cmsConfigPath = "static/admin/config.yml"

var siteConfigFiles = []string{
	"hugo.toml", "hugo.yaml", "hugo.yml", "hugo.json",
	"config.toml", "config.yaml", "config.yml", "config.json",
}

// SafeJoin joins target under root/sub, returning "" when target would
// escape that directory.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(filepath.FromSlash(target))
	if cleanTarget == "." || filepath.IsAbs(cleanTarget) || !filepath.IsLocal(cleanTarget) {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// GetConfig returns the raw CMS configuration for the editor UI.
func GetConfig() (map[string]interface{}, error) {
	content, err := os.ReadFile(filepath.Join(config.RepoPath, cmsConfigPath))
	if err != nil {
		return nil, err
	}

	var cfg map[string]interface{}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func GetCMSConfig() (*models.CMSConfig, error) {
	return LoadCMSConfig(config.RepoPath)
}

// LoadCMSConfig decodes static/admin/config.yml under repoPath. A missing
// file yields an empty configuration.
func LoadCMSConfig(repoPath string) (*models.CMSConfig, error) {
	content, err := os.ReadFile(filepath.Join(repoPath, cmsConfigPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &models.CMSConfig{}, nil
		}
		return nil, fmt.Errorf("read cms config: %w", err)
	}

	var cfg models.CMSConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse cms config: %w", err)
	}
	return &cfg, nil
}

// CollectionFor returns the collection whose folder contains the content path.
func CollectionFor(cfg *models.CMSConfig, relPath string) *models.Collection {
	if cfg == nil {
		return nil
	}
	relPath = filepath.ToSlash(relPath)
	var best *models.Collection
	bestLen := -1
	for i := range cfg.Collections {
		prefix, ok := cfg.Collections[i].FolderPrefix(config.ContentDir)
		if !ok {
			continue
		}
		if prefix != "" && !strings.HasPrefix(relPath, prefix+"/") {
			continue
		}
		if len(prefix) > bestLen {
			best = &cfg.Collections[i]
			bestLen = len(prefix)
		}
	}
	return best
}

// CollectionByName looks a collection up by its configured name.
func CollectionByName(cfg *models.CMSConfig, name string) *models.Collection {
	if cfg == nil || name == "" {
		return nil
	}
	for i := range cfg.Collections {
		if cfg.Collections[i].Name == name {
			return &cfg.Collections[i]
		}
	}
	return nil
}

// LoadSiteConfig reads the first Hugo configuration file found at the repo
// root. A site without one gets Hugo's defaults.
func LoadSiteConfig(repoPath string) (*models.SiteConfig, error) {
	for _, name := range siteConfigFiles {
		full := filepath.Join(repoPath, name)
		content, err := os.ReadFile(full)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read site config %s: %w", name, err)
		}

		var site models.SiteConfig
		switch filepath.Ext(name) {
		case ".toml":
			err = toml.Unmarshal(content, &site)
		case ".json":
			err = json.Unmarshal(content, &site)
		default:
			err = yaml.Unmarshal(content, &site)
		}
		if err != nil {
			return nil, fmt.Errorf("parse site config %s: %w", name, err)
		}
		return &site, nil
	}
	return &models.SiteConfig{}, nil
}
