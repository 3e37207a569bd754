package models

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

const (
	CodeMissingTitle     = "missing-title"
	CodeMissingDate      = "missing-date"
	CodeInvalidDate      = "invalid-date"
	CodeBadFrontMatter   = "bad-frontmatter"
	CodeMissingField     = "missing-field"
	CodeUnknownFieldType = "unknown-field-type"
	CodeOrphanSeries     = "orphan-series"
	CodeUnresolvedLink   = "unresolved-link"
	CodeMissingAsset     = "missing-asset"
	CodeDuplicateURL     = "duplicate-url"
)

// Issue is a single content-integrity finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Path     string   `json:"path"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}
