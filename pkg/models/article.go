package models

import (
	"path"
	"strings"
	"time"
)

// Article is the list/editor view of a content file.
type Article struct {
	Path        string                 `json:"path"`
	Title       string                 `json:"title"`
	Date        *time.Time             `json:"date,omitempty"`
	Draft       bool                   `json:"draft"`
	Content     string                 `json:"content,omitempty"` // Raw content when the front matter cannot be decoded
	FrontMatter map[string]interface{} `json:"frontmatter,omitempty"`
	Body        string                 `json:"body,omitempty"`
	Format      string                 `json:"format,omitempty"` // yaml, toml, json
	IsDirty     bool                   `json:"is_dirty"`
	Issues      []Issue                `json:"issues,omitempty"`
}

// Document is a parsed content file with its front matter resolved into
// typed fields.
type Document struct {
	Path      string    `json:"path"`
	Section   string    `json:"section"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Tags      []string  `json:"tags,omitempty"`
	Series    []string  `json:"series,omitempty"`
	Draft     bool      `json:"draft"`
	URL       string    `json:"url,omitempty"`
	Slug      string    `json:"slug,omitempty"`
	Permalink string    `json:"permalink"`
	Format    string    `json:"format,omitempty"`
	IsDirty   bool      `json:"is_dirty"`

	FrontMatter map[string]interface{} `json:"-"`
	Body        string                 `json:"-"`
	Links       []Link                 `json:"-"`

	// DecodeErr is set when the front matter block exists but cannot be decoded.
	DecodeErr error `json:"-"`
	// DateErr is set when a date value is present but not understood.
	DateErr error `json:"-"`
}

// IsListPage reports whether the document is a Hugo section list page.
func (d *Document) IsListPage() bool {
	return d.stem() == "_index"
}

// IsBundleIndex reports whether the document is the index of a leaf bundle.
func (d *Document) IsBundleIndex() bool {
	return d.stem() == "index"
}

// stem is the file name with any markdown extension removed.
func (d *Document) stem() string {
	base := path.Base(d.Path)
	switch ext := path.Ext(base); strings.ToLower(ext) {
	case ".md", ".markdown":
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// Summary returns the compact listing form used by index views.
func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		Path:      d.Path,
		Title:     d.Title,
		Date:      d.Date,
		Permalink: d.Permalink,
		Tags:      d.Tags,
		Series:    d.Series,
		Draft:     d.Draft,
	}
}

// DocumentSummary is the listing shape for published, tag and series views.
type DocumentSummary struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Permalink string    `json:"permalink"`
	Tags      []string  `json:"tags,omitempty"`
	Series    []string  `json:"series,omitempty"`
	Draft     bool      `json:"draft,omitempty"`
}

type LinkKind string

const (
	LinkPage  LinkKind = "page"
	LinkImage LinkKind = "image"
	LinkRef   LinkKind = "ref"
	LinkRel   LinkKind = "relref"
)

// Link is a reference found in a document body.
type Link struct {
	Kind   LinkKind `json:"kind"`
	Target string   `json:"target"`
	Text   string   `json:"text,omitempty"`
}
