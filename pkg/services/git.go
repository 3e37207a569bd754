package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"hugo-lint/pkg/config"
)

// ErrCheckFailed is returned when publishing is refused because the
// content check reported errors.
var ErrCheckFailed = errors.New("content check failed")

// ExecuteGitWithToken runs git in dir with the configured remote swapped for
// an authenticated URL. The token never appears in the returned log. Without
// a token the remote is used as configured (SSH keys, credential helpers).
func ExecuteGitWithToken(ctx context.Context, dir, token string, args ...string) (string, error) {
	if token == "" {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	cmdGetURL := exec.CommandContext(ctx, "git", "remote", "get-url", config.GitRemote)
	cmdGetURL.Dir = dir
	outURL, err := cmdGetURL.Output()
	if err != nil {
		return "Failed to get remote url", err
	}
	remoteURL := strings.TrimSpace(string(outURL))
	u, err := url.Parse(remoteURL)
	if err != nil {
		return "Invalid remote url", err
	}
	u.User = url.UserPassword("oauth2", token)
	authenticatedURL := u.String()

	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == config.GitRemote {
			newArgs[i] = authenticatedURL
		}
	}

	cmd := exec.CommandContext(ctx, "git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	safeLog := strings.ReplaceAll(string(output), authenticatedURL, remoteURL)
	safeLog = strings.ReplaceAll(safeLog, token, "***")
	return safeLog, err
}

// SyncRepo pulls the configured branch and drops the document cache.
func SyncRepo(ctx context.Context, token string) (string, error) {
	var log string
	err := withRepoLock(ctx, config.RepoPath, func() error {
		var err error
		log, err = ExecuteGitWithToken(ctx, config.RepoPath, token, "pull", config.GitRemote, config.GitBranch)
		return err
	})
	if err == nil {
		InvalidateCache()
	}
	return log, err
}

// PublishRepo commits all changes and pushes them. Nothing is committed
// while the content check reports errors.
func PublishRepo(ctx context.Context, token string) (string, error) {
	var log string
	err := withRepoLock(ctx, config.RepoPath, func() error {
		InvalidateCache()
		report, err := Check(ctx)
		if err != nil {
			return err
		}
		if report.Failed() {
			log = fmt.Sprintf("%d error(s) in content; fix them before publishing", report.Errors)
			return ErrCheckFailed
		}

		addCmd := exec.CommandContext(ctx, "git", "add", ".")
		addCmd.Dir = config.RepoPath
		if out, err := addCmd.CombinedOutput(); err != nil {
			log = string(out)
			return err
		}

		msg := fmt.Sprintf("Update via hugo-lint: %s", time.Now().Format("2006-01-02 15:04:05"))
		commitCmd := exec.CommandContext(ctx, "git",
			"-c", "user.name="+config.GitUserName,
			"-c", "user.email="+config.GitUserEmail,
			"commit", "-m", msg)
		commitCmd.Dir = config.RepoPath
		if out, err := commitCmd.CombinedOutput(); err != nil {
			// Nothing to commit still allows pushing earlier commits.
			logger.Info("git commit skipped", "output", strings.TrimSpace(string(out)))
		}

		out, err := ExecuteGitWithToken(ctx, config.RepoPath, token, "push", config.GitRemote, config.GitBranch)
		log = out
		return err
	})
	return log, err
}
