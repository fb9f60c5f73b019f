package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDecode            = errors.New("failed to decode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image file too large")
	ErrTooSmall          = errors.New("image too small")
)

// Loader decodes user photos into in-memory bitmaps
type Loader struct {
	config Config
}

// Config holds configuration for photo decoding
type Config struct {
	SupportedFormats []string
	// MaxBytes limits the encoded size of a photo, 0 disables the check.
	MaxBytes int64
	// MinImageSize is the minimum width and height in pixels, 0 disables the check.
	MinImageSize int
}

// FrameSource resolves a frame key into a decoded frame bitmap
type FrameSource interface {
	Frame(ctx context.Context, id string) (image.Image, error)
}

// Pair is a decoded photo together with its frame, ready for compositing
type Pair struct {
	Photo image.Image
	Frame image.Image
}

// DefaultConfig returns the decoding limits shown next to the upload control
func DefaultConfig() Config {
	return Config{
		SupportedFormats: []string{"jpeg", "png", "gif", "webp"},
		MaxBytes:         5 << 20,
		MinImageSize:     0,
	}
}

// New creates a new Loader with default configuration
func New() *Loader {
	return &Loader{config: DefaultConfig()}
}

// NewWithConfig creates a new Loader with custom configuration
func NewWithConfig(config Config) *Loader {
	return &Loader{config: config}
}

// DecodePhoto reads and decodes a photo, applying its EXIF orientation
func (l *Loader) DecodePhoto(r io.Reader) (image.Image, error) {
	data, err := l.readAll(r)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Registered decoders failed, try the libwebp binding before giving up.
		if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
			return l.checked(img, "webp")
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !l.isFormatSupported(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return l.checked(img, format)
}

// LoadPhotoFile decodes the photo stored at path
func (l *Loader) LoadPhotoFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	return l.DecodePhoto(f)
}

// LoadPair decodes the photo and fetches the frame concurrently and
// returns once both are available.
func (l *Loader) LoadPair(ctx context.Context, photo io.Reader, frames FrameSource, frameID string) (Pair, error) {
	var pair Pair
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		img, err := l.DecodePhoto(photo)
		if err != nil {
			return fmt.Errorf("photo: %w", err)
		}
		pair.Photo = img
		return nil
	})
	g.Go(func() error {
		img, err := frames.Frame(gctx, frameID)
		if err != nil {
			return fmt.Errorf("frame %s: %w", frameID, err)
		}
		pair.Frame = img
		return nil
	})

	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// ValidatePhoto checks that a photo meets the minimum size
func (l *Loader) ValidatePhoto(img image.Image) error {
	b := img.Bounds()
	if b.Dx() < l.config.MinImageSize || b.Dy() < l.config.MinImageSize {
		return fmt.Errorf("%w: %dx%d (minimum: %d)", ErrTooSmall, b.Dx(), b.Dy(), l.config.MinImageSize)
	}
	return nil
}

func (l *Loader) checked(img image.Image, format string) (image.Image, error) {
	if !l.isFormatSupported(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err := l.ValidatePhoto(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if l.config.MaxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, l.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > l.config.MaxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, l.config.MaxBytes)
	}
	return data, nil
}

func (l *Loader) isFormatSupported(format string) bool {
	if len(l.config.SupportedFormats) == 0 {
		return true
	}
	for _, supported := range l.config.SupportedFormats {
		if strings.EqualFold(format, supported) || (strings.EqualFold(supported, "jpg") && format == "jpeg") {
			return true
		}
	}
	return false
}
