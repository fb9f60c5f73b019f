package utils

import (
	"path/filepath"
	"testing"
)

func TestIsPhotoFile(t *testing.T) {
	for name, want := range map[string]bool{
		"me.JPG":     true,
		"me.webp":    true,
		"me.png":     true,
		"notes.txt":  false,
		"noext":      false,
		"archive.gz": false,
	} {
		if got := IsPhotoFile(name); got != want {
			t.Errorf("IsPhotoFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/tmp/My Photo.jpeg", "out", "profile-with-frame", "png")
	want := filepath.Join("out", "My_Photo_profile-with-frame.png")
	if got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
	if got := OutputPath("", "out", "profile-with-frame", "webp"); got != filepath.Join("out", "profile-with-frame.webp") {
		t.Errorf("OutputPath without input = %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename("a:b*c"); got != "a_b_c" {
		t.Errorf("SanitizeFilename = %q", got)
	}
	if got := SanitizeFilename("..."); got != "photo" {
		t.Errorf("SanitizeFilename of dots = %q", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		512:     "512 B",
		1536:    "1.5 KB",
		5 << 20: "5 MB",
	}
	for size, want := range tests {
		if got := FormatFileSize(size); got != want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", size, got, want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(dir) {
		t.Error("Expected directory to exist")
	}
}
