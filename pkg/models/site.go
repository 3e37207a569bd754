package models

import "strings"

// SiteConfig is the subset of the Hugo site configuration the checker needs.
type SiteConfig struct {
	BaseURL    string                 `toml:"baseURL" yaml:"baseURL" json:"baseURL"`
	Title      string                 `toml:"title" yaml:"title" json:"title"`
	Permalinks map[string]interface{} `toml:"permalinks" yaml:"permalinks" json:"permalinks"`
	Taxonomies map[string]string      `toml:"taxonomies" yaml:"taxonomies" json:"taxonomies"`
}

// PermalinkFor returns the permalink pattern configured for a section.
// Both the flat form (posts = "...") and the newer [permalinks.page] table
// are understood.
func (s *SiteConfig) PermalinkFor(section string) string {
	if s == nil || s.Permalinks == nil {
		return ""
	}
	if page, ok := s.Permalinks["page"].(map[string]interface{}); ok {
		if pattern, ok := page[section].(string); ok {
			return strings.TrimSpace(pattern)
		}
	}
	if pattern, ok := s.Permalinks[section].(string); ok {
		return strings.TrimSpace(pattern)
	}
	return ""
}

// TaxonomyNames lists the plural taxonomy names Hugo renders list pages for.
// Hugo's defaults (tags, categories) apply when none are configured.
func (s *SiteConfig) TaxonomyNames() []string {
	if s == nil || len(s.Taxonomies) == 0 {
		return []string{"tags", "categories"}
	}
	names := make([]string, 0, len(s.Taxonomies))
	for _, plural := range s.Taxonomies {
		if plural = strings.TrimSpace(plural); plural != "" {
			names = append(names, plural)
		}
	}
	return names
}
