package services

import (
	"os"
	"path/filepath"
	"testing"

	"hugo-lint/pkg/config"
)

// writeSite writes files (path -> content) under a fresh repository root and
// points the package at it for the duration of the test.
func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	prevRepo, prevPublic := config.RepoPath, config.PublicPath
	config.SetRepoPath(root)
	InvalidateCache()
	t.Cleanup(func() {
		config.RepoPath, config.PublicPath = prevRepo, prevPublic
		InvalidateCache()
	})
	return root
}

func blogFixture() map[string]string {
	return map[string]string{
		"hugo.toml": `baseURL = "https://example.org/"
title = "Notes"
`,
		"static/images/layout.png": "png",
		"content/_index.md": `---
title: Home
date: 2024-01-01
---
`,
		"content/posts/_index.md": `---
title: Posts
date: 2024-01-01
---
`,
		"content/posts/swiftui-layout.md": `---
title: SwiftUI Layout
date: 2024-01-10
tags: [Swift, SwiftUI]
series: SwiftUI Basics
---
Read [the next part](swiftui-state.md) or {{< ref "swiftui-state" >}}.

![diagram](/images/layout.png)

See [Apple's docs](https://developer.apple.com/) and [the top](#top).
`,
		"content/posts/swiftui-state.md": `+++
title = "SwiftUI State"
date = 2024-02-01
tags = ["swift"]
series = ["SwiftUI Basics"]
+++
This links to [nowhere](/posts/nope/).
`,
		"content/posts/draft-post.md": `---
title: Work in progress
date: 2024-03-10
draft: true
tags: [Drafts]
---
Not ready.
`,
		"content/posts/untitled.md": `---
date: 2024-03-01
---
No title here.
`,
		"content/projects/app/index.md": `{
  "title": "The App",
  "date": "2024-02-15",
  "series": "Lonely"
}

![shot](screenshot.png)
`,
	}
}
