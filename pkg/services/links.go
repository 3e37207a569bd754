package services

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var refShortcode = regexp.MustCompile(`\{\{[<%]\s*(ref|relref)\s+(?:"([^"]+)"|'([^']+)'|([^\s>%]+))\s*[>%]\}\}`)

// Files Hugo generates itself; links to them never resolve against sources.
var generatedFiles = map[string]bool{
	"/index.xml":   true,
	"/sitemap.xml": true,
	"/feed.xml":    true,
	"/rss.xml":     true,
	"/robots.txt":  true,
	"/404.html":    true,
}

var linkParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ExtractLinks returns the page links, images and ref/relref shortcodes in
// a Markdown body. Links inside code spans and fenced code are ignored.
func ExtractLinks(body string) []models.Link {
	source := []byte(body)
	root := linkParser.Parser().Parse(text.NewReader(source))

	var links []models.Link
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, models.Link{
				Kind:   models.LinkPage,
				Target: string(node.Destination),
				Text:   string(node.Text(source)),
			})
		case *ast.Image:
			links = append(links, models.Link{
				Kind:   models.LinkImage,
				Target: string(node.Destination),
				Text:   string(node.Text(source)),
			})
		}
		return ast.WalkContinue, nil
	})

	for _, m := range refShortcode.FindAllStringSubmatch(body, -1) {
		target := firstNonEmpty(m[2], m[3], m[4])
		kind := models.LinkRef
		if m[1] == "relref" {
			kind = models.LinkRel
		}
		links = append(links, models.Link{Kind: kind, Target: target})
	}
	return links
}

// LinkResult is the outcome of resolving one link.
type LinkResult struct {
	Link     models.Link
	Skipped  bool // external or fragment-only
	Asset    bool // resolved (or expected) as a file rather than a page
	Resolved bool
	Target   string // path of the resolved document or file
	Reason   string
}

// Resolver resolves document links against the loaded document set and the
// files on disk.
type Resolver struct {
	repoRoot    string
	contentRoot string
	staticRoot  string
	media       *models.CMSConfig
	exists      func(string) bool

	byPath      map[string]*models.Document
	byStem      map[string]*models.Document
	byBase      map[string][]*models.Document
	byPermalink map[string]*models.Document
	listPaths   map[string]bool
}

// NewResolver indexes docs. Permalinks must already be assigned.
func NewResolver(docs []*models.Document, site *models.SiteConfig, media *models.CMSConfig, repoRoot string) *Resolver {
	r := &Resolver{
		repoRoot:    repoRoot,
		contentRoot: filepath.Join(repoRoot, config.ContentDir),
		staticRoot:  filepath.Join(repoRoot, config.StaticDir),
		media:       media,
		exists:      fileExists,
		byPath:      make(map[string]*models.Document, len(docs)),
		byStem:      make(map[string]*models.Document, len(docs)),
		byBase:      make(map[string][]*models.Document),
		byPermalink: make(map[string]*models.Document, len(docs)),
		listPaths:   map[string]bool{"/": true},
	}
	for _, doc := range docs {
		r.byPath[doc.Path] = doc
		r.byStem[stripExt(doc.Path)] = doc
		if doc.IsBundleIndex() || doc.IsListPage() {
			r.byStem[path.Dir(doc.Path)] = doc
		}
		base := path.Base(doc.Path)
		r.byBase[base] = append(r.byBase[base], doc)
		if doc.Permalink != "" {
			r.byPermalink[doc.Permalink] = doc
		}
		if doc.Section != "" {
			r.listPaths[NormalizeURLPath("/"+strings.ToLower(doc.Section))] = true
		}
	}
	for _, taxonomy := range site.TaxonomyNames() {
		r.listPaths[NormalizeURLPath("/"+taxonomy)] = true
		for _, doc := range docs {
			for _, term := range taxonomyTerms(doc, taxonomy) {
				r.listPaths[NormalizeURLPath("/"+taxonomy+"/"+Slugify(term))] = true
			}
		}
	}
	return r
}

func taxonomyTerms(doc *models.Document, taxonomy string) []string {
	switch taxonomy {
	case "tags":
		return doc.Tags
	case "series":
		return doc.Series
	default:
		terms, _ := toStringList(doc.FrontMatter[taxonomy])
		return terms
	}
}

// ResolveAll resolves every link of doc.
func (r *Resolver) ResolveAll(doc *models.Document) []LinkResult {
	results := make([]LinkResult, 0, len(doc.Links))
	for _, link := range doc.Links {
		results = append(results, r.Resolve(doc, link))
	}
	return results
}

// Resolve resolves a single link found in doc.
func (r *Resolver) Resolve(doc *models.Document, link models.Link) LinkResult {
	res := LinkResult{Link: link}
	target := strings.TrimSpace(link.Target)

	if link.Kind == models.LinkRef || link.Kind == models.LinkRel {
		return r.resolveRef(doc, res, target)
	}

	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		res.Skipped = true
		return res
	}
	if u, err := url.Parse(target); err == nil && u.Scheme != "" {
		res.Skipped = true
		return res
	}

	clean := stripFragment(target)
	if unescaped, err := url.PathUnescape(clean); err == nil {
		clean = unescaped
	}
	if clean == "" {
		res.Skipped = true
		return res
	}

	if link.Kind == models.LinkImage {
		return r.resolveAsset(doc, res, clean)
	}

	if isMarkdownPath(clean) {
		candidates := []string{}
		if strings.HasPrefix(clean, "/") {
			candidates = append(candidates, strings.TrimPrefix(path.Clean(clean), "/"))
		} else {
			candidates = append(candidates, path.Join(path.Dir(doc.Path), clean), path.Clean(clean))
		}
		for _, c := range candidates {
			if found, ok := r.byPath[c]; ok {
				res.Resolved = true
				res.Target = found.Path
				return res
			}
		}
		res.Reason = fmt.Sprintf("no document at %s", candidates[0])
		return res
	}

	abs := clean
	if !strings.HasPrefix(abs, "/") {
		abs = path.Join(doc.Permalink, clean)
	}
	if path.Ext(abs) != "" {
		return r.resolveAsset(doc, res, clean)
	}

	key := NormalizeURLPath(abs)
	if found, ok := r.byPermalink[key]; ok {
		res.Resolved = true
		res.Target = found.Path
		return res
	}
	if r.listPaths[key] {
		res.Resolved = true
		res.Target = key
		return res
	}
	res.Reason = fmt.Sprintf("no page is published at %s", key)
	return res
}

func (r *Resolver) resolveRef(doc *models.Document, res LinkResult, target string) LinkResult {
	clean := strings.TrimPrefix(stripFragment(target), "./")
	if clean == "" {
		// {{< ref "#anchor" >}} points into the current page.
		res.Resolved = true
		res.Target = doc.Path
		return res
	}

	rooted := strings.TrimPrefix(path.Clean(clean), "/")
	relative := path.Join(path.Dir(doc.Path), clean)
	for _, c := range []string{relative, rooted} {
		if found, ok := r.byPath[c]; ok {
			res.Resolved = true
			res.Target = found.Path
			return res
		}
		if found, ok := r.byStem[stripExt(c)]; ok {
			res.Resolved = true
			res.Target = found.Path
			return res
		}
	}

	if !strings.Contains(clean, "/") {
		base := clean
		if path.Ext(base) == "" {
			base += ".md"
		}
		switch matches := r.byBase[base]; len(matches) {
		case 1:
			res.Resolved = true
			res.Target = matches[0].Path
			return res
		case 0:
		default:
			res.Reason = fmt.Sprintf("%q is ambiguous (%d documents share that name)", target, len(matches))
			return res
		}
	}

	res.Reason = fmt.Sprintf("no document matches %q", target)
	return res
}

func (r *Resolver) resolveAsset(doc *models.Document, res LinkResult, target string) LinkResult {
	res.Asset = true

	var candidates []string
	if strings.HasPrefix(target, "/") {
		if generatedFiles[target] {
			res.Resolved = true
			res.Target = target
			return res
		}
		rel := filepath.FromSlash(strings.TrimPrefix(target, "/"))
		candidates = append(candidates,
			filepath.Join(r.staticRoot, rel),
			filepath.Join(r.contentRoot, rel),
		)
		if mediaPath := r.mediaPathFor(target); mediaPath != "" {
			candidates = append(candidates, mediaPath)
		}
	} else {
		bundleDir := filepath.Join(r.contentRoot, filepath.FromSlash(path.Dir(doc.Path)))
		candidates = append(candidates,
			filepath.Join(bundleDir, filepath.FromSlash(target)),
			filepath.Join(r.staticRoot, filepath.FromSlash(path.Join(path.Dir(doc.Permalink), target))),
		)
	}

	for _, c := range candidates {
		if r.exists(c) {
			res.Resolved = true
			res.Target = c
			return res
		}
	}
	res.Reason = fmt.Sprintf("file %s not found", target)
	return res
}

// mediaPathFor maps a public media URL (public_folder) back to the CMS
// media folder on disk.
func (r *Resolver) mediaPathFor(target string) string {
	if r.media == nil || r.media.MediaFolder == "" || r.media.PublicFolder == "" {
		return ""
	}
	public := "/" + strings.Trim(r.media.PublicFolder, "/") + "/"
	rest, ok := strings.CutPrefix(target, public)
	if !ok {
		return ""
	}
	return filepath.Join(r.repoRoot, filepath.FromSlash(r.media.MediaFolder), filepath.FromSlash(rest))
}

func isMarkdownPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".md" || ext == ".markdown"
}

func stripFragment(target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		return target[:i]
	}
	return target
}

func stripExt(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
