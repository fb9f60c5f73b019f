package output

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/MikeySharma/frame-generator/internal/utils"
	"github.com/MikeySharma/frame-generator/pkg/types"
)

// BaseName is the suggested download name without extension
const BaseName = "profile-with-frame"

// Encoder turns a composited image into a portable byte stream
type Encoder struct {
	Format   types.Format
	Quality  int
	Lossless bool
}

// NewEncoder creates an encoder for the given format.
// WebP output is lossless so that the alpha channel survives unchanged.
func NewEncoder(format types.Format) *Encoder {
	if format == "" {
		format = types.PNG
	}
	return &Encoder{
		Format:   format,
		Quality:  90,
		Lossless: true,
	}
}

// Encode writes img to w in the encoder's format
func (e *Encoder) Encode(w io.Writer, img image.Image) error {
	switch e.Format {
	case types.WebP:
		opts := &webp.Options{Lossless: e.Lossless, Quality: float32(e.Quality), Exact: true}
		if err := webp.Encode(w, img, opts); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
		return nil
	case types.PNG:
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", e.Format)
	}
}

// Bytes encodes img into memory
func (e *Encoder) Bytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img into the file at path, creating parent directories
func (e *Encoder) Save(img image.Image, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := e.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Filename returns the suggested download name for the encoder's format
func (e *Encoder) Filename() string {
	return Filename(e.Format)
}

// Filename returns the suggested download name for a format
func Filename(format types.Format) string {
	if format == "" {
		format = types.PNG
	}
	return BaseName + "." + format.Ext()
}

// DataURL embeds encoded image data into a data: URL
func DataURL(data []byte, format types.Format) string {
	return "data:" + format.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(data)
}
