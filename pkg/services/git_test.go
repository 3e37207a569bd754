package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPublishRepoRefusesFailingContent(t *testing.T) {
	writeSite(t, map[string]string{
		"content/posts/untitled.md": "---\ndate: 2024-01-01\n---\n",
	})

	log, err := PublishRepo(context.Background(), "token")
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want ErrCheckFailed", err)
	}
	if log == "" {
		t.Fatal("expected an explanation in the log")
	}
}

func TestPublishRepoChecksUnderRepoLock(t *testing.T) {
	root := writeSite(t, map[string]string{
		"content/posts/untitled.md": "---\ndate: 2024-01-01\n---\n",
	})
	holdRepoLock(t, root)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := PublishRepo(ctx, ""); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
}
