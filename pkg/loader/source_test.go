package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/me.jpg", true},
		{"http://example.com/me.jpg", true},
		{"ftp://example.com/me.jpg", false},
		{"photos/me.jpg", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, expected %v", tt.source, got, tt.want)
		}
	}
}

func TestLoadPhotoFromURL(t *testing.T) {
	data := encodePNG(t, createTestImage(32, 24))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New()
	img, err := l.LoadPhoto(context.Background(), srv.URL+"/me.png")
	if err != nil {
		t.Fatalf("LoadPhoto failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("Expected 32x24, got %dx%d", b.Dx(), b.Dy())
	}

	if _, err := l.LoadPhoto(context.Background(), srv.URL+"/page"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for html, got %v", err)
	}
	if _, err := l.LoadPhoto(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("Expected error for 404")
	}
}

func TestLoadPhotoFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.png")
	if err := os.WriteFile(path, encodePNG(t, createTestImage(10, 12)), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := New().LoadPhoto(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadPhoto failed: %v", err)
	}
	if img.Bounds().Dy() != 12 {
		t.Errorf("Expected height 12, got %d", img.Bounds().Dy())
	}
}
