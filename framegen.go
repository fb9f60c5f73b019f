// Package framegen composes profile pictures with decorative frames.
//
// A photo is center-cropped to a square, scaled by a zoom factor and clipped
// to a circle on a 512x512 transparent canvas. A frame overlay chosen from the
// catalog is scaled by a frame-size factor and drawn centered on top.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		framegen "github.com/MikeySharma/frame-generator"
//		"github.com/MikeySharma/frame-generator/pkg/types"
//	)
//
//	func main() {
//		fg := framegen.New()
//
//		p := types.DefaultParams()
//		p.FrameID = "frame2"
//		p.Zoom = 1.3
//
//		img, err := fg.ComposeFile(context.Background(), "me.jpg", p)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := fg.Save(img, "profile-with-frame.png"); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Loader (pkg/loader): photo decoding with EXIF orientation
// 2. Catalog (pkg/catalog): the embedded frame overlays and their thumbnails
// 3. Compositor (pkg/compositor): the circular clip and layer geometry
// 4. Output (pkg/output): PNG and WebP encoding of the composite
//
// An interactive editing session with recompute-on-change lives in pkg/session
// and is served by the preview server of cmd/framegen.
package framegen

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"

	"github.com/MikeySharma/frame-generator/assets"
	"github.com/MikeySharma/frame-generator/pkg/catalog"
	"github.com/MikeySharma/frame-generator/pkg/compositor"
	"github.com/MikeySharma/frame-generator/pkg/loader"
	"github.com/MikeySharma/frame-generator/pkg/output"
	"github.com/MikeySharma/frame-generator/pkg/session"
	"github.com/MikeySharma/frame-generator/pkg/types"
)

// Version of the frame generator library
const Version = "1.0.0"

// Generator provides a high-level interface for framing profile pictures
type Generator struct {
	loader     *loader.Loader
	catalog    *catalog.Catalog
	compositor *compositor.Compositor
	encoder    *output.Encoder
}

// Options configures a Generator. Zero values select the defaults.
type Options struct {
	Loader     loader.Config
	Compositor compositor.Config
	// Frames holds frames/<id>.png assets; nil selects the embedded set.
	Frames  fs.FS
	Catalog []catalog.Frame
	Format  types.Format
}

// New creates a Generator with the embedded frames and default configuration
func New() *Generator {
	return &Generator{
		loader:     loader.New(),
		catalog:    catalog.New(assets.FS, nil),
		compositor: compositor.New(),
		encoder:    output.NewEncoder(types.PNG),
	}
}

// NewWithConfig creates a Generator with custom configuration
func NewWithConfig(opts Options) *Generator {
	fsys := opts.Frames
	if fsys == nil {
		fsys = assets.FS
	}
	ld := loader.New()
	if opts.Loader.SupportedFormats != nil || opts.Loader.MaxBytes != 0 || opts.Loader.MinImageSize != 0 {
		ld = loader.NewWithConfig(opts.Loader)
	}
	return &Generator{
		loader:     ld,
		catalog:    catalog.New(fsys, opts.Catalog),
		compositor: compositor.NewWithConfig(opts.Compositor),
		encoder:    output.NewEncoder(opts.Format),
	}
}

// Frames returns the available frame catalog entries
func (g *Generator) Frames() []catalog.Frame {
	return g.catalog.Frames()
}

// Catalog returns the underlying frame catalog
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Compositor returns the underlying compositor
func (g *Generator) Compositor() *compositor.Compositor {
	return g.compositor
}

// Encoder returns the output encoder
func (g *Generator) Encoder() *output.Encoder {
	return g.encoder
}

// LoadPhoto decodes a photo from a local path or an http(s) URL
func (g *Generator) LoadPhoto(ctx context.Context, source string) (image.Image, error) {
	return g.loader.LoadPhoto(ctx, source)
}

// Compose draws photo under the frame named by p.FrameID.
// Zoom and frame size are clamped to their slider ranges first.
func (g *Generator) Compose(ctx context.Context, photo image.Image, p types.Params) (*image.NRGBA, error) {
	p = p.Clamped()
	frame, err := g.catalog.Frame(ctx, p.FrameID)
	if err != nil {
		return nil, err
	}
	return g.compositor.Compose(photo, frame, p), nil
}

// ComposeReader decodes a photo from r while loading the frame and composes them
func (g *Generator) ComposeReader(ctx context.Context, r io.Reader, p types.Params) (*image.NRGBA, error) {
	p = p.Clamped()
	pair, err := g.loader.LoadPair(ctx, r, g.catalog, p.FrameID)
	if err != nil {
		return nil, err
	}
	return g.compositor.Compose(pair.Photo, pair.Frame, p), nil
}

// ComposeFile composes the photo at a local path or http(s) URL
func (g *Generator) ComposeFile(ctx context.Context, source string, p types.Params) (*image.NRGBA, error) {
	rc, err := loader.OpenSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, err := g.ComposeReader(ctx, rc, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return img, nil
}

// Save encodes img in the configured format and writes it to path
func (g *Generator) Save(img image.Image, path string) error {
	return g.encoder.Save(img, path)
}

// DataURL encodes img in the configured format as a data: URL for inline previews
func (g *Generator) DataURL(img image.Image) (string, error) {
	data, err := g.encoder.Bytes(img)
	if err != nil {
		return "", err
	}
	return output.DataURL(data, g.encoder.Format), nil
}

// NewSession creates an editing session that recomputes on every change
func (g *Generator) NewSession() *session.Store {
	return session.New(g.compositor, g.catalog, g.encoder)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
