package models

import (
	"path/filepath"
	"strings"
)

// CMSConfig mirrors static/admin/config.yml (Decap CMS collections).
type CMSConfig struct {
	MediaFolder  string       `yaml:"media_folder"`
	PublicFolder string       `yaml:"public_folder"`
	Collections  []Collection `yaml:"collections"`
}

type Collection struct {
	Name         string  `yaml:"name"`
	Label        string  `yaml:"label"`
	Folder       string  `yaml:"folder"`
	Path         string  `yaml:"path"`
	Extension    string  `yaml:"extension"`
	Format       string  `yaml:"format"`
	MediaFolder  string  `yaml:"media_folder"`
	PublicFolder string  `yaml:"public_folder"`
	Fields       []Field `yaml:"fields"`
}

type Field struct {
	Name     string      `yaml:"name"`
	Widget   string      `yaml:"widget"`
	Default  interface{} `yaml:"default,omitempty"`
	Required bool        `yaml:"required,omitempty"`
}

// FolderPrefix returns the collection folder relative to the content root,
// or "" when the collection lives outside it.
func (c Collection) FolderPrefix(contentDir string) (string, bool) {
	folder := strings.Trim(filepath.ToSlash(c.Folder), "/")
	if folder == "" {
		return "", false
	}
	root := strings.Trim(filepath.ToSlash(contentDir), "/")
	if folder == root {
		return "", true
	}
	if rest, ok := strings.CutPrefix(folder, root+"/"); ok {
		return rest, true
	}
	return "", false
}

// FrontMatterFormat maps the collection's Decap format name to ours.
func (c Collection) FrontMatterFormat() string {
	switch c.Format {
	case "toml-frontmatter", "toml":
		return "toml"
	case "json-frontmatter", "json":
		return "json"
	case "yaml-frontmatter", "yaml", "yml", "frontmatter":
		return "yaml"
	default:
		return ""
	}
}
