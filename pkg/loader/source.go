package loader

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const userAgent = "frame-generator/1.0"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// IsURL reports whether source names a remote photo
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// OpenSource opens a photo given as a local path or an http(s) URL.
// The caller closes the returned reader.
func OpenSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if !IsURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open image file: %w", err)
		}
		return f, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download image: HTTP %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: URL does not point to an image (Content-Type: %s)", ErrUnsupportedFormat, ct)
	}
	return resp.Body, nil
}

// LoadPhoto decodes the photo at a local path or http(s) URL
func (l *Loader) LoadPhoto(ctx context.Context, source string) (image.Image, error) {
	if !IsURL(source) {
		return l.LoadPhotoFile(source)
	}
	rc, err := OpenSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return l.DecodePhoto(rc)
}
