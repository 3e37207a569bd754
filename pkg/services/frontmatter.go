package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"hugo-lint/pkg/models"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// now is swapped in tests so scaffolded dates are stable.
var now = time.Now

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// ParseFrontMatter splits content into its decoded front matter, body and
// format name. Content without a front matter block is not an error: it
// yields an empty map and an empty format.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	var format string
	fm := map[string]interface{}{}

	body, err := frontmatter.Parse(bytes.NewReader(content), &fm, frontMatterFormats(&format)...)
	if err != nil {
		return nil, "", format, fmt.Errorf("decode %s front matter: %w", formatLabel(format), err)
	}
	if fm == nil {
		fm = map[string]interface{}{}
	}
	return sanitizeFrontMatter(fm), strings.TrimSpace(string(body)), format, nil
}

func frontMatterFormats(detected *string) []*frontmatter.Format {
	decodeWith := func(name string, fn frontmatter.UnmarshalFunc) frontmatter.UnmarshalFunc {
		return func(data []byte, v interface{}) error {
			*detected = name
			return fn(data, v)
		}
	}
	yamlFn := decodeWith("yaml", yaml.Unmarshal)
	tomlFn := decodeWith("toml", toml.Unmarshal)
	jsonFn := decodeWith("json", json.Unmarshal)

	return []*frontmatter.Format{
		frontmatter.NewFormat("---", "---", yamlFn),
		frontmatter.NewFormat("---yaml", "---", yamlFn),
		frontmatter.NewFormat("+++", "+++", tomlFn),
		frontmatter.NewFormat("---toml", "---", tomlFn),
		frontmatter.NewFormat("---json", "---", jsonFn),
		{Start: "{", End: "}", Unmarshal: jsonFn, UnmarshalDelims: true, RequiresNewLine: true},
	}
}

func formatLabel(format string) string {
	if format == "" {
		return "unknown"
	}
	return format
}

// ConstructFileContent serialises front matter and body back into a content file.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// GenerateContentFromCollection scaffolds a new draft from a collection's
// field defaults. Title, date and draft are always present so the result
// passes validation.
func GenerateContentFromCollection(collection models.Collection, overrides map[string]interface{}, format string) ([]byte, error) {
	fm := make(map[string]interface{})
	var bodyContent string

	for _, field := range collection.Fields {
		if val, ok := overrides[field.Name]; ok {
			if field.Name == "body" {
				if strVal, ok := val.(string); ok {
					bodyContent = strVal
				}
				continue
			}
			fm[field.Name] = val
			continue
		}

		if field.Name == "body" {
			if val, ok := field.Default.(string); ok {
				bodyContent = val
			}
			continue
		}

		if field.Default != nil {
			fm[field.Name] = field.Default
			continue
		}
		switch field.Widget {
		case "datetime":
			fm[field.Name] = now().Format(time.RFC3339)
		case "boolean":
			fm[field.Name] = false
		case "list":
			fm[field.Name] = []string{}
		default:
			fm[field.Name] = ""
		}
	}

	for key, val := range overrides {
		if key == "body" {
			if strVal, ok := val.(string); ok {
				bodyContent = strVal
			}
			continue
		}
		if _, seen := fm[key]; !seen {
			fm[key] = val
		}
	}

	if _, ok := fm["title"]; !ok {
		fm["title"] = ""
	}
	if v, ok := fm["date"]; !ok || v == "" {
		fm["date"] = now().Format(time.RFC3339)
	}
	if _, ok := fm["draft"]; !ok {
		fm["draft"] = true
	}

	if format == "" {
		format = collection.FrontMatterFormat()
	}
	if format == "" {
		format = "toml"
	}
	return ConstructFileContent(fm, bodyContent, format)
}

// DecodeDocument maps a decoded front matter block onto a Document.
// Values of the wrong type are left unset; the validator reports them.
func DecodeDocument(relPath string, fm map[string]interface{}, body string, format string) *models.Document {
	relPath = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(relPath, "\\", "/")), "/")
	doc := &models.Document{
		Path:        relPath,
		Section:     sectionOf(relPath),
		Format:      format,
		FrontMatter: fm,
		Body:        body,
	}

	if s, ok := fm["title"].(string); ok {
		doc.Title = strings.TrimSpace(s)
	}
	if raw, ok := fm["date"]; ok && raw != nil {
		date, err := parseDate(raw)
		if err != nil {
			doc.DateErr = err
		} else {
			doc.Date = date
		}
	}
	if draft, ok := parseBool(fm["draft"]); ok {
		doc.Draft = draft
	}
	if s, ok := fm["url"].(string); ok {
		doc.URL = strings.TrimSpace(s)
	}
	if s, ok := fm["slug"].(string); ok {
		doc.Slug = strings.TrimSpace(s)
	}

	tags, _ := toStringList(fm["tags"])
	topics, _ := toStringList(fm["topics"])
	doc.Tags = uniqueStrings(append(tags, topics...))
	series, _ := toStringList(fm["series"])
	doc.Series = uniqueStrings(series)

	return doc
}

func sectionOf(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return ""
	}
	if i := strings.Index(dir, "/"); i >= 0 {
		return dir[:i]
	}
	return dir
}

func parseDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case toml.LocalDate:
		return v.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", value)
	}
}

func parseBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// toStringList accepts a single string or a list of strings. The boolean is
// false when the value is present but has another shape.
func toStringList(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}, true
		}
		return nil, true
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

// ApplyCollectionDefaults fills fields the collection declares a default for
// and the front matter leaves out.
func ApplyCollectionDefaults(fm map[string]interface{}, collection *models.Collection) {
	if fm == nil || collection == nil {
		return
	}
	for _, field := range collection.Fields {
		if field.Name == "body" {
			continue
		}
		if _, exists := fm[field.Name]; !exists && field.Default != nil {
			fm[field.Name] = field.Default
		}
	}
}
