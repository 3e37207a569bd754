package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

var ErrLocked = errors.New("repository is busy")

const lockRetryDelay = 200 * time.Millisecond

// repoLockPath lives outside the repository so it never shows up in git status.
func repoLockPath(repoPath string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	sum := sha1.Sum([]byte(abs))
	return filepath.Join(os.TempDir(), "hugo-lint-"+hex.EncodeToString(sum[:8])+".lock")
}

// withRepoLock runs fn while holding the repository's file lock, so builds,
// pulls, pushes and scaffolding never overlap, even across processes.
func withRepoLock(ctx context.Context, repoPath string, fn func() error) error {
	lock := flock.New(repoLockPath(repoPath))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrLocked, ctx.Err())
		}
		return fmt.Errorf("acquire repository lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release repository lock", "error", err)
		}
	}()
	return fn()
}
