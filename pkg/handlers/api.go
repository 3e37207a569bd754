package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/models"
	"hugo-lint/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func HandleBuild(c *gin.Context) {
	log, err := services.BuildSite(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "log": log, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func HandleSync(c *gin.Context) {
	log, err := services.SyncRepo(c.Request.Context(), sessionToken(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func HandlePublish(c *gin.Context) {
	log, err := services.PublishRepo(c.Request.Context(), sessionToken(c))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func ListArticles(c *gin.Context) {
	articles, err := services.GetArticlesCache(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	targetPath := c.Query("path")
	fullPath := services.SafeJoin(config.RepoPath, config.ContentDir, targetPath)
	if fullPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	relPath := filepath.ToSlash(filepath.Clean(targetPath))
	var issues []models.Issue
	if report, err := services.Check(c.Request.Context()); err == nil {
		issues = report.IssuesFor(relPath)
	}

	fm, body, format, err := services.ParseFrontMatter(content)
	if err != nil {
		c.JSON(http.StatusOK, models.Article{Path: relPath, Content: string(content), Issues: issues})
		return
	}

	doc := services.DecodeDocument(relPath, fm, body, format)
	article := models.Article{
		Path:        relPath,
		Title:       doc.Title,
		Draft:       doc.Draft,
		FrontMatter: fm,
		Body:        body,
		Format:      format,
		Issues:      issues,
	}
	if !doc.Date.IsZero() {
		article.Date = &doc.Date
	}
	c.JSON(http.StatusOK, article)
}

// SaveArticle writes an edited document. Documents without a title or date
// are rejected before anything touches the disk.
func SaveArticle(c *gin.Context) {
	var art models.Article
	if err := c.BindJSON(&art); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if services.SafeJoin(config.RepoPath, config.ContentDir, art.Path) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return
	}

	relPath := filepath.ToSlash(filepath.Clean(art.Path))
	var collection *models.Collection
	if cms, err := services.GetCMSConfig(); err == nil {
		collection = services.CollectionFor(cms, relPath)
	}

	var finalContent []byte
	var err error
	if art.FrontMatter != nil {
		if art.Format == "" {
			art.Format = "yaml"
		}
		services.ApplyCollectionDefaults(art.FrontMatter, collection)
		finalContent, err = services.ConstructFileContent(art.FrontMatter, art.Body, art.Format)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to construct file content: " + err.Error()})
			return
		}
	} else {
		finalContent = []byte(art.Content)
	}

	doc := services.BuildDocument(relPath, finalContent)
	if blocking := errorsOnly(services.ValidateDocument(doc, collection)); len(blocking) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Document is invalid", "issues": blocking})
		return
	}

	if err := services.SaveContent(c.Request.Context(), relPath, finalContent); err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Save failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func CreateArticle(c *gin.Context) {
	var req struct {
		Path   string `json:"path"`
		Title  string `json:"title"`
		Series string `json:"series"`
		Format string `json:"format"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if req.Path == "" || strings.Contains(req.Path, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return
	}

	overrides := map[string]interface{}{"title": req.Title}
	if req.Series != "" {
		overrides["series"] = []string{req.Series}
	}
	path, err := services.CreateContent(c.Request.Context(), req.Path, overrides, req.Format)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "created", "path": path})
}

func GetReport(c *gin.Context) {
	report, err := services.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetPublished(c *gin.Context) {
	report, err := services.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report.Published)
}

func GetTags(c *gin.Context) {
	report, err := services.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report.Tags)
}

func GetSeries(c *gin.Context) {
	report, err := services.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check failed: " + err.Error()})
		return
	}
	if name := c.Query("name"); name != "" {
		for _, s := range report.Series {
			if s.Name == name {
				c.JSON(http.StatusOK, s)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		return
	}
	c.JSON(http.StatusOK, report.Series)
}

func RenderArticle(c *gin.Context) {
	set, err := services.GetDocumentSet(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}
	doc := services.FindDocument(set, c.Query("path"))
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	html, err := services.RenderDocument(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func GetConfig(c *gin.Context) {
	cfg, err := services.GetConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func sessionToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get("access_token").(string)
	return token
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrExists), errors.Is(err, services.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, services.ErrCheckFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorsOnly(issues []models.Issue) []models.Issue {
	var out []models.Issue
	for _, issue := range issues {
		if issue.Severity == models.SeverityError {
			out = append(out, issue)
		}
	}
	return out
}
