package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"hugo-lint/pkg/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Hugo shortcodes are left in place; only Markdown is rendered.
var previewEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderMarkdown converts a Markdown body into HTML.
func RenderMarkdown(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := previewEngine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderDocument renders a document body for preview. Drafts are rendered
// like any other document.
func RenderDocument(ctx context.Context, doc *models.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("render: document is nil")
	}
	html, err := RenderMarkdown(ctx, []byte(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Path, err)
	}
	return html, nil
}

// FindDocument looks a document up by its content path.
func FindDocument(set *DocumentSet, relPath string) *models.Document {
	relPath = strings.TrimPrefix(strings.ReplaceAll(relPath, "\\", "/"), "/")
	for _, doc := range set.Documents {
		if doc.Path == relPath {
			return doc
		}
	}
	return nil
}
