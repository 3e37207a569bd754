package handlers

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"hugo-lint/pkg/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the auth pages and the /api routes.
func NewRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	store := cookie.NewStore(sessionKey())
	r.Use(sessions.Sessions("hugolint", store))

	r.Static(config.PreviewURL, config.PublicPath)

	r.GET("/login", LoginPage)
	r.GET("/login/github", GithubLogin)
	r.GET("/auth/callback", AuthCallback)
	r.GET("/logout", Logout)

	authorized := r.Group("/")
	authorized.Use(AuthRequired)
	{
		authorized.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, config.PreviewURL) })

		api := authorized.Group("/api")
		{
			api.GET("/articles", ListArticles)
			api.GET("/article", GetArticle)
			api.POST("/article", SaveArticle)
			api.POST("/create", CreateArticle)

			api.GET("/check", GetReport)
			api.GET("/published", GetPublished)
			api.GET("/tags", GetTags)
			api.GET("/series", GetSeries)
			api.GET("/render", RenderArticle)

			api.GET("/media", ListMedia)
			api.GET("/media/raw", ServeMediaRaw)
			api.GET("/config", GetConfig)

			api.POST("/build", HandleBuild)
			api.POST("/sync", HandleSync)
			api.POST("/publish", HandlePublish)
		}
	}

	return r
}

// sessionKey falls back to a per-process key, so sessions do not survive a
// restart unless SESSION_SECRET is set.
func sessionKey() []byte {
	if config.SessionSecret != "" {
		return []byte(config.SessionSecret)
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
