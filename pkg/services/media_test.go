package services

import (
	"errors"
	"testing"
)

func TestMediaUsagePath(t *testing.T) {
	tests := []struct {
		media, public, want string
	}{
		{"static/uploads", "/uploads", "/uploads/a.png"},
		{"static/uploads", "uploads", "/uploads/a.png"},
		{"static/images", "", "/images/a.png"},
		{"content/posts", "", "a.png"},
		{"assets/img", "", "/assets/img/a.png"},
		{"static/uploads", "https://cdn.example.org/media/", "https://cdn.example.org/media/a.png"},
	}
	for _, tt := range tests {
		if got := MediaUsagePath(tt.media, tt.public, "a.png"); got != tt.want {
			t.Errorf("MediaUsagePath(%q, %q) = %q, want %q", tt.media, tt.public, got, tt.want)
		}
	}
}

func TestListMediaFiles(t *testing.T) {
	writeSite(t, map[string]string{
		"static/admin/config.yml": "media_folder: static/uploads\npublic_folder: /uploads\n" +
			"collections:\n  - name: projects\n    folder: content/projects\n    media_folder: static/shots\n    public_folder: /shots\n",
		"static/uploads/a.png":     "aa",
		"static/uploads/b.jpg":     "bbb",
		"static/uploads/sub/c.png": "c",
	})

	files, err := ListMediaFiles("")
	if err != nil {
		t.Fatalf("ListMediaFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %+v", files)
	}
	if files[0].Name != "a.png" || files[0].Path != "/uploads/a.png" || files[0].Size != 2 {
		t.Fatalf("first file = %+v", files[0])
	}

	// The collection's own folder does not exist yet.
	files, err = ListMediaFiles("projects")
	if err != nil || len(files) != 0 {
		t.Fatalf("files = %+v, err = %v", files, err)
	}
}

func TestListMediaFilesNotConfigured(t *testing.T) {
	writeSite(t, map[string]string{})
	if _, err := ListMediaFiles(""); !errors.Is(err, ErrMediaNotConfigured) {
		t.Fatalf("err = %v, want ErrMediaNotConfigured", err)
	}
}
