package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	RepoPath   = "./repo"
	ContentDir = "content"
	StaticDir  = "static"
	PublicPath = "./repo/public"
	PreviewURL = "/preview/"

	// Server settings
	ListenAddr    = ":8080"
	AuthDisabled  = false
	SessionSecret = ""

	// Cache settings
	CacheConcurrency = 20

	// Logging
	LogLevel  = "info"
	LogFormat = "auto"

	// Git settings
	GitUserEmail = "bot@hugo-lint.local"
	GitUserName  = "Hugo Lint Bot"
	GitBranch    = "main"
	GitRemote    = "origin"
)

var OauthConf *oauth2.Config

// Init loads .env (if present) and applies environment overrides to the
// package defaults. Flags parsed later may override these again.
func Init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "Failed to load .env:", err)
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	RepoPath = getEnv("REPO_PATH", RepoPath)
	ContentDir = getEnv("CONTENT_DIR", ContentDir)
	StaticDir = getEnv("STATIC_DIR", StaticDir)
	PublicPath = getEnv("PUBLIC_PATH", filepath.Join(RepoPath, "public"))

	ListenAddr = getEnv("LISTEN_ADDR", ListenAddr)
	AuthDisabled = getBool("AUTH_DISABLED", AuthDisabled)
	SessionSecret = getEnv("SESSION_SECRET", SessionSecret)

	LogLevel = getEnv("LOG_LEVEL", LogLevel)
	LogFormat = getEnv("LOG_FORMAT", LogFormat)

	GitUserEmail = getEnv("GIT_USER_EMAIL", GitUserEmail)
	GitUserName = getEnv("GIT_USER_NAME", GitUserName)
	GitBranch = getEnv("GIT_BRANCH", GitBranch)
	GitRemote = getEnv("GIT_REMOTE", GitRemote)

	if cc := os.Getenv("CACHE_CONCURRENCY"); cc != "" {
		if val, err := strconv.Atoi(cc); err == nil && val > 0 {
			CacheConcurrency = val
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

// SetRepoPath points the tool at another Hugo site and re-derives the
// paths that hang off the repository root.
func SetRepoPath(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	RepoPath = path
	PublicPath = filepath.Join(path, "public")
}

// ContentRoot is the absolute-or-relative directory holding Markdown content.
func ContentRoot() string {
	return filepath.Join(RepoPath, ContentDir)
}

// StaticRoot is the directory Hugo copies verbatim into the site root.
func StaticRoot() string {
	return filepath.Join(RepoPath, StaticDir)
}

func GetAppURL() string {
	return getEnv("APP_URL", "http://localhost:8080")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
