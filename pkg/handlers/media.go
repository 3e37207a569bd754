package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/services"

	"github.com/gin-gonic/gin"
)

func ListMedia(c *gin.Context) {
	collection := c.Query("collection")
	files, err := services.ListMediaFiles(collection)
	if err != nil {
		if errors.Is(err, services.ErrMediaNotConfigured) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list media: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}

func ServeMediaRaw(c *gin.Context) {
	targetPath := c.Query("path")
	if targetPath == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, "", targetPath)
	if fullPath == "" || hasDotSegment(targetPath) {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(fullPath)
}

// hasDotSegment reports whether any segment of p names a dot file or
// directory (.git, .env) anywhere in the tree.
func hasDotSegment(p string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(filepath.Clean(p)), "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
