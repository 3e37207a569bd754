package services

import (
	"errors"
	"testing"

	"hugo-lint/pkg/models"
)

func issueCodes(issues []models.Issue) map[string]models.Severity {
	codes := make(map[string]models.Severity, len(issues))
	for _, issue := range issues {
		codes[issue.Code] = issue.Severity
	}
	return codes
}

func TestValidateDocumentRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		fm   map[string]interface{}
		want map[string]models.Severity
	}{
		{
			name: "complete",
			fm:   map[string]interface{}{"title": "Ok", "date": "2024-01-01"},
			want: map[string]models.Severity{},
		},
		{
			name: "missing title",
			fm:   map[string]interface{}{"date": "2024-01-01"},
			want: map[string]models.Severity{models.CodeMissingTitle: models.SeverityError},
		},
		{
			name: "blank title",
			fm:   map[string]interface{}{"title": "   ", "date": "2024-01-01"},
			want: map[string]models.Severity{models.CodeMissingTitle: models.SeverityError},
		},
		{
			name: "missing date",
			fm:   map[string]interface{}{"title": "Ok"},
			want: map[string]models.Severity{models.CodeMissingDate: models.SeverityError},
		},
		{
			name: "invalid date",
			fm:   map[string]interface{}{"title": "Ok", "date": "next tuesday"},
			want: map[string]models.Severity{models.CodeInvalidDate: models.SeverityError},
		},
		{
			name: "wrong field types",
			fm: map[string]interface{}{
				"title": "Ok",
				"date":  "2024-01-01",
				"tags":  map[string]interface{}{"a": 1},
				"draft": "perhaps",
			},
			want: map[string]models.Severity{models.CodeUnknownFieldType: models.SeverityWarning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DecodeDocument("posts/a.md", tt.fm, "", "yaml")
			got := issueCodes(ValidateDocument(doc, nil))
			if len(got) != len(tt.want) {
				t.Fatalf("issues = %v, want %v", got, tt.want)
			}
			for code, severity := range tt.want {
				if got[code] != severity {
					t.Fatalf("issue %s severity = %q, want %q", code, got[code], severity)
				}
			}
		})
	}
}

func TestValidateDocumentDecodeError(t *testing.T) {
	doc := &models.Document{Path: "bad.md", DecodeErr: errors.New("yaml: broken")}
	issues := ValidateDocument(doc, nil)
	if len(issues) != 1 || issues[0].Code != models.CodeBadFrontMatter || issues[0].Severity != models.SeverityError {
		t.Fatalf("issues = %+v", issues)
	}
}

func TestValidateDocumentCollectionRequired(t *testing.T) {
	collection := &models.Collection{
		Name: "posts",
		Fields: []models.Field{
			{Name: "title", Widget: "string", Required: true},
			{Name: "summary", Widget: "text", Required: true},
			{Name: "cover", Widget: "image"},
			{Name: "featured", Widget: "boolean", Required: true},
		},
	}

	doc := DecodeDocument("posts/a.md", map[string]interface{}{
		"title":    "Ok",
		"date":     "2024-01-01",
		"summary":  " ",
		"featured": false,
	}, "", "yaml")
	issues := ValidateDocument(doc, collection)
	if len(issues) != 1 {
		t.Fatalf("issues = %+v", issues)
	}
	if issues[0].Code != models.CodeMissingField || issues[0].Field != "summary" {
		t.Fatalf("issue = %+v", issues[0])
	}
}

func TestSortIssues(t *testing.T) {
	issues := []models.Issue{
		{Path: "b.md", Severity: models.SeverityError, Code: "x"},
		{Path: "a.md", Severity: models.SeverityWarning, Code: "a"},
		{Path: "a.md", Severity: models.SeverityError, Code: "z"},
	}
	SortIssues(issues)
	if issues[0].Path != "a.md" || issues[0].Severity != models.SeverityError {
		t.Fatalf("first issue = %+v", issues[0])
	}
	if issues[2].Path != "b.md" {
		t.Fatalf("last issue = %+v", issues[2])
	}
}
