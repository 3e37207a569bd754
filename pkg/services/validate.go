package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hugo-lint/pkg/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// requiredFrontMatter holds the fields every document must carry.
type requiredFrontMatter struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

func (r requiredFrontMatter) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Date, validation.Required.Error("date is required")),
	)
}

// ValidateDocument reports front-matter problems for a single document.
// Collection rules apply when the document sits in a CMS collection folder.
func ValidateDocument(doc *models.Document, collection *models.Collection) []models.Issue {
	if doc.DecodeErr != nil {
		return []models.Issue{{
			Severity: models.SeverityError,
			Code:     models.CodeBadFrontMatter,
			Path:     doc.Path,
			Message:  doc.DecodeErr.Error(),
		}}
	}

	var issues []models.Issue
	required := requiredFrontMatter{Title: doc.Title, Date: doc.Date}
	if err := required.Validate(); err != nil {
		var fieldErrs validation.Errors
		if !errors.As(err, &fieldErrs) {
			return append(issues, models.Issue{
				Severity: models.SeverityError,
				Code:     models.CodeBadFrontMatter,
				Path:     doc.Path,
				Message:  err.Error(),
			})
		}
		if fieldErr, ok := fieldErrs["title"]; ok {
			issues = append(issues, models.Issue{
				Severity: models.SeverityError,
				Code:     models.CodeMissingTitle,
				Path:     doc.Path,
				Field:    "title",
				Message:  fieldErr.Error(),
			})
		}
		if fieldErr, ok := fieldErrs["date"]; ok {
			issue := models.Issue{
				Severity: models.SeverityError,
				Code:     models.CodeMissingDate,
				Path:     doc.Path,
				Field:    "date",
				Message:  fieldErr.Error(),
			}
			if doc.DateErr != nil {
				issue.Code = models.CodeInvalidDate
				issue.Message = fmt.Sprintf("date is not a valid date: %v", doc.DateErr)
			}
			issues = append(issues, issue)
		}
	}

	issues = append(issues, fieldTypeIssues(doc)...)
	if collection != nil {
		issues = append(issues, collectionIssues(doc, collection)...)
	}
	return issues
}

func fieldTypeIssues(doc *models.Document) []models.Issue {
	var issues []models.Issue
	for _, key := range []string{"tags", "topics", "series"} {
		if _, ok := toStringList(doc.FrontMatter[key]); !ok {
			issues = append(issues, typeIssue(doc, key, "a string or a list of strings"))
		}
	}
	if raw, present := doc.FrontMatter["draft"]; present && raw != nil {
		if _, ok := parseBool(raw); !ok {
			issues = append(issues, typeIssue(doc, "draft", "a boolean"))
		}
	}
	if raw, present := doc.FrontMatter["title"]; present && raw != nil {
		if _, ok := raw.(string); !ok {
			issues = append(issues, typeIssue(doc, "title", "a string"))
		}
	}
	for _, key := range []string{"url", "slug"} {
		if raw, present := doc.FrontMatter[key]; present && raw != nil {
			if _, ok := raw.(string); !ok {
				issues = append(issues, typeIssue(doc, key, "a string"))
			}
		}
	}
	return issues
}

func typeIssue(doc *models.Document, field, want string) models.Issue {
	return models.Issue{
		Severity: models.SeverityWarning,
		Code:     models.CodeUnknownFieldType,
		Path:     doc.Path,
		Field:    field,
		Message:  fmt.Sprintf("%s should be %s, got %T", field, want, doc.FrontMatter[field]),
	}
}

// collectionIssues enforces fields marked required: true in the collection.
// title and date are already covered by the base rules.
func collectionIssues(doc *models.Document, collection *models.Collection) []models.Issue {
	var issues []models.Issue
	for _, field := range collection.Fields {
		if !field.Required || field.Widget == "boolean" || field.Name == "body" || field.Name == "title" || field.Name == "date" {
			continue
		}
		value := doc.FrontMatter[field.Name]
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		if err := validation.Validate(value, validation.Required); err != nil {
			issues = append(issues, models.Issue{
				Severity: models.SeverityError,
				Code:     models.CodeMissingField,
				Path:     doc.Path,
				Field:    field.Name,
				Message:  fmt.Sprintf("%s %s (required by collection %q)", field.Name, err.Error(), collection.Name),
			})
		}
	}
	return issues
}

// SortIssues orders issues by path, then severity (errors first), then code.
func SortIssues(issues []models.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Severity != b.Severity {
			return a.Severity == models.SeverityError
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
}
