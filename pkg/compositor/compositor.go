package compositor

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/MikeySharma/frame-generator/pkg/types"
)

// Compositor flattens a circularly clipped photo and a frame overlay into one square image
type Compositor struct {
	config Config
}

// Config holds the canvas geometry used by the compositor
type Config struct {
	// CanvasSize is the side of the square output in pixels.
	CanvasSize int
	// ClipDivisor sets the clip radius to CanvasSize/ClipDivisor.
	ClipDivisor float64
	// PhotoScale is the share of the canvas the photo covers at zoom 1.
	PhotoScale float64
}

// DefaultConfig returns the canvas geometry of a 512px profile picture
func DefaultConfig() Config {
	return Config{
		CanvasSize:  512,
		ClipDivisor: 2.5,
		PhotoScale:  0.8,
	}
}

// New creates a new Compositor with default configuration
func New() *Compositor {
	return &Compositor{config: DefaultConfig()}
}

// NewWithConfig creates a new Compositor with custom configuration.
// Zero fields fall back to their defaults.
func NewWithConfig(config Config) *Compositor {
	def := DefaultConfig()
	if config.CanvasSize <= 0 {
		config.CanvasSize = def.CanvasSize
	}
	if config.ClipDivisor <= 0 {
		config.ClipDivisor = def.ClipDivisor
	}
	if config.PhotoScale <= 0 {
		config.PhotoScale = def.PhotoScale
	}
	return &Compositor{config: config}
}

// Config returns the active configuration
func (c *Compositor) Config() Config {
	return c.config
}

// Compose draws the photo layer and the frame layer and flattens them.
// It is a pure function of its inputs: identical inputs give identical pixels.
func (c *Compositor) Compose(photo, frame image.Image, params types.Params) *image.NRGBA {
	canvas := c.PhotoLayer(photo, params.Zoom)
	if frame == nil {
		return canvas
	}
	return imaging.Overlay(canvas, c.FrameLayer(frame, params.FrameSize), image.Pt(0, 0), 1.0)
}

// PhotoLayer returns a transparent canvas with the photo drawn inside the circular clip.
func (c *Compositor) PhotoLayer(photo image.Image, zoom float64) *image.NRGBA {
	s := c.config.CanvasSize
	canvas := imaging.New(s, s, color.NRGBA{})
	if photo == nil {
		return canvas
	}

	src := CenterSquare(photo.Bounds())
	dst := c.PhotoRect(zoom)
	if src.Empty() || dst.Empty() {
		return canvas
	}

	clip := newCircleMask(canvas.Bounds(), c.ClipRadius())
	draw.CatmullRom.Scale(canvas, dst, photo, src, draw.Over, &draw.Options{
		DstMask:  clip,
		DstMaskP: image.Point{},
	})
	return canvas
}

// FrameLayer returns a transparent canvas with the frame scaled by size and centered.
// The frame is never clipped; its own transparency lets the photo show through.
func (c *Compositor) FrameLayer(frame image.Image, size float64) *image.NRGBA {
	s := c.config.CanvasSize
	layer := imaging.New(s, s, color.NRGBA{})
	if frame == nil {
		return layer
	}

	b := frame.Bounds()
	r := c.FrameRect(b.Dx(), b.Dy(), size)
	if r.Empty() {
		return layer
	}

	scaled := imaging.Resize(frame, r.Dx(), r.Dy(), imaging.Lanczos)
	return imaging.PasteCenter(layer, scaled)
}

// ClipRadius returns the radius of the circular photo clip
func (c *Compositor) ClipRadius() float64 {
	return float64(c.config.CanvasSize) / c.config.ClipDivisor
}

// PhotoSide returns the drawn side of the cropped photo square for a zoom level
func (c *Compositor) PhotoSide(zoom float64) int {
	if zoom <= 0 {
		return 0
	}
	return int(math.Round(float64(c.config.CanvasSize) * c.config.PhotoScale * zoom))
}

// PhotoRect returns where the cropped photo square lands on the canvas.
// It may extend past the canvas when zoomed in.
func (c *Compositor) PhotoRect(zoom float64) image.Rectangle {
	side := c.PhotoSide(zoom)
	return centeredRect(c.config.CanvasSize, side, side)
}

// FrameRect returns where a frame of fw×fh lands on the canvas. The frame is
// scaled uniformly so that it fits in CanvasSize*size on its limiting axis.
func (c *Compositor) FrameRect(fw, fh int, size float64) image.Rectangle {
	if fw <= 0 || fh <= 0 || size <= 0 {
		return image.Rectangle{}
	}
	box := float64(c.config.CanvasSize) * size
	scale := math.Min(box/float64(fw), box/float64(fh))
	w := int(math.Floor(float64(fw)*scale + 1e-9))
	h := int(math.Floor(float64(fh)*scale + 1e-9))
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return centeredRect(c.config.CanvasSize, w, h)
}

// CenterSquare returns the largest square centered in r
func CenterSquare(r image.Rectangle) image.Rectangle {
	side := r.Dx()
	if r.Dy() < side {
		side = r.Dy()
	}
	if side <= 0 {
		return image.Rectangle{}
	}
	x0 := r.Min.X + (r.Dx()-side)/2
	y0 := r.Min.Y + (r.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}

// centeredRect positions a w×h box on a square canvas the same way imaging.PasteCenter does
func centeredRect(canvas, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	x0 := canvas/2 - w/2
	y0 := canvas/2 - h/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
