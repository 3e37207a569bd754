package services

import (
	"path"
	"strings"
	"unicode"

	"hugo-lint/pkg/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases s, strips diacritics and joins word runs with dashes.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '_' || r == '.':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// AssignPermalinks derives every document's public path.
func AssignPermalinks(docs []*models.Document, site *models.SiteConfig) {
	for _, doc := range docs {
		doc.Permalink = DerivePermalink(doc, site)
	}
}

// DerivePermalink returns the path Hugo publishes doc at: the url front
// matter when set, else the section's permalink pattern, else the path
// derived from the file location.
func DerivePermalink(doc *models.Document, site *models.SiteConfig) string {
	if doc.URL != "" {
		return NormalizeURLPath(doc.URL)
	}

	dir := path.Dir(doc.Path)
	if dir == "." {
		dir = ""
	}
	if doc.IsListPage() {
		return NormalizeURLPath("/" + lowerPath(dir))
	}

	if pattern := site.PermalinkFor(doc.Section); pattern != "" && doc.Section != "" {
		return NormalizeURLPath(expandPermalink(pattern, doc))
	}

	name := contentBaseName(doc)
	if doc.IsBundleIndex() {
		// Page bundle: the bundle directory is the page.
		dir = path.Dir(dir)
		if dir == "." {
			dir = ""
		}
	}
	slug := Slugify(name)
	if doc.Slug != "" {
		slug = Slugify(doc.Slug)
	}
	return NormalizeURLPath("/" + path.Join(lowerPath(dir), slug))
}

// NormalizeURLPath gives site paths a leading slash and, unless they name a
// file, a trailing slash. Query and fragment are dropped.
func NormalizeURLPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	clean := path.Clean("/" + p)
	if clean == "/" {
		return clean
	}
	if path.Ext(clean) != "" {
		return clean
	}
	return clean + "/"
}

func expandPermalink(pattern string, doc *models.Document) string {
	slug := doc.Slug
	if slug == "" {
		slug = doc.Title
	}
	if slug == "" {
		slug = contentBaseName(doc)
	}
	filename := contentBaseName(doc)

	tokens := map[string]string{
		":year":                  doc.Date.Format("2006"),
		":month":                 doc.Date.Format("01"),
		":monthname":             strings.ToLower(doc.Date.Format("January")),
		":day":                   doc.Date.Format("02"),
		":section":               doc.Section,
		":sections":              lowerPath(path.Dir(doc.Path)),
		":title":                 Slugify(doc.Title),
		":slug":                  Slugify(slug),
		":filename":              Slugify(filename),
		":contentbasename":       Slugify(filename),
		":slugorfilename":        Slugify(firstNonEmpty(doc.Slug, filename)),
		":slugorcontentbasename": Slugify(firstNonEmpty(doc.Slug, filename)),
	}

	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		segments[i] = expandSegment(seg, tokens)
	}
	return strings.Join(segments, "/")
}

// expandSegment replaces the longest matching token at each colon so that
// ":slugorfilename" is not read as ":slug" + "orfilename".
func expandSegment(seg string, tokens map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(seg); {
		if seg[i] != ':' {
			b.WriteByte(seg[i])
			i++
			continue
		}
		match := ""
		for token := range tokens {
			if strings.HasPrefix(seg[i:], token) && len(token) > len(match) {
				match = token
			}
		}
		if match == "" {
			b.WriteByte(seg[i])
			i++
			continue
		}
		b.WriteString(tokens[match])
		i += len(match)
	}
	return b.String()
}

// contentBaseName is the file name without extension, or the bundle
// directory name for a bundle index.
func contentBaseName(doc *models.Document) string {
	base := path.Base(doc.Path)
	if doc.IsBundleIndex() {
		return path.Base(path.Dir(doc.Path))
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func lowerPath(p string) string {
	if p == "." {
		return ""
	}
	return strings.ToLower(p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
