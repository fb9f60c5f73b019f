package loader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple opaque test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

type stubFrames struct {
	frames map[string]image.Image
}

func (s stubFrames) Frame(ctx context.Context, id string) (image.Image, error) {
	img, ok := s.frames[id]
	if !ok {
		return nil, errors.New("unknown frame")
	}
	return img, nil
}

func TestNew(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("New() returned nil")
	}
	if l.config.MaxBytes != 5<<20 {
		t.Errorf("Expected 5MB limit, got %d", l.config.MaxBytes)
	}
}

func TestDecodePhotoPNG(t *testing.T) {
	img, err := New().DecodePhoto(bytes.NewReader(encodePNG(t, createTestImage(80, 60))))
	if err != nil {
		t.Fatalf("DecodePhoto failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("Expected 80x60, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDecodePhotoJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(40, 30), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}
	img, err := New().DecodePhoto(&buf)
	if err != nil {
		t.Fatalf("DecodePhoto failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("Expected 40x30, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestDecodePhotoUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, createTestImage(10, 10), nil); err != nil {
		t.Fatalf("gif.Encode failed: %v", err)
	}
	l := NewWithConfig(Config{SupportedFormats: []string{"png", "jpg"}})
	_, err := l.DecodePhoto(&buf)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodePhotoTooLarge(t *testing.T) {
	data := encodePNG(t, createTestImage(50, 50))
	l := NewWithConfig(Config{MaxBytes: int64(len(data) - 1)})
	if _, err := l.DecodePhoto(bytes.NewReader(data)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}

	l = NewWithConfig(Config{MaxBytes: int64(len(data))})
	if _, err := l.DecodePhoto(bytes.NewReader(data)); err != nil {
		t.Errorf("Expected photo at the limit to decode, got %v", err)
	}
}

func TestDecodePhotoCorrupt(t *testing.T) {
	if _, err := New().DecodePhoto(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected error for corrupt data")
	}
}

func TestValidatePhoto(t *testing.T) {
	l := NewWithConfig(Config{MinImageSize: 100})
	if err := l.ValidatePhoto(createTestImage(50, 200)); !errors.Is(err, ErrTooSmall) {
		t.Errorf("Expected ErrTooSmall, got %v", err)
	}
	if err := l.ValidatePhoto(createTestImage(100, 100)); err != nil {
		t.Errorf("Expected valid photo, got %v", err)
	}
}

func TestLoadPhotoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, encodePNG(t, createTestImage(20, 20)), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := New().LoadPhotoFile(path); err != nil {
		t.Errorf("LoadPhotoFile failed: %v", err)
	}
	if _, err := New().LoadPhotoFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadPair(t *testing.T) {
	frame := createTestImage(64, 64)
	frames := stubFrames{frames: map[string]image.Image{"frame1": frame}}
	data := encodePNG(t, createTestImage(30, 20))

	pair, err := New().LoadPair(context.Background(), bytes.NewReader(data), frames, "frame1")
	if err != nil {
		t.Fatalf("LoadPair failed: %v", err)
	}
	if pair.Photo == nil || pair.Frame == nil {
		t.Fatal("Expected both photo and frame")
	}
	if pair.Frame != frame {
		t.Error("Expected frame from the source")
	}
}

func TestLoadPairFailsWhenEitherLoadFails(t *testing.T) {
	frames := stubFrames{frames: map[string]image.Image{"frame1": createTestImage(8, 8)}}
	good := encodePNG(t, createTestImage(8, 8))

	if _, err := New().LoadPair(context.Background(), bytes.NewReader(good), frames, "missing"); err == nil {
		t.Error("Expected error for unknown frame")
	}
	if _, err := New().LoadPair(context.Background(), bytes.NewReader([]byte("junk")), frames, "frame1"); err == nil {
		t.Error("Expected error for undecodable photo")
	}
}
