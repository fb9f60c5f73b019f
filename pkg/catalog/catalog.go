package catalog

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"sort"
	"sync"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownFrame = errors.New("unknown frame")

// ThumbnailSize is the side of generated thumbnails in pixels
const ThumbnailSize = 128

// Frame is one entry of the overlay catalog
type Frame struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Asset     string `json:"asset"`
	Thumbnail string `json:"thumbnail"`
}

// Swatch holds the picker colours derived from a frame's pixels
type Swatch struct {
	Accent string `json:"accent"`
	Tint   string `json:"tint"`
}

// DefaultFrames returns the built-in frame catalog
func DefaultFrames() []Frame {
	return []Frame{
		entry("frame1", "Classic"),
		entry("frame2", "Floral"),
		entry("frame3", "Modern"),
		entry("frame4", "Vintage"),
	}
}

func entry(id, name string) Frame {
	return Frame{
		ID:        id,
		Name:      name,
		Asset:     "frames/" + id + ".png",
		Thumbnail: "frames/" + id + "-thumb.png",
	}
}

// Catalog resolves frame keys to decoded overlay bitmaps stored in fsys.
// Decoded frames are cached; the catalog is safe for concurrent use.
type Catalog struct {
	fsys   fs.FS
	frames []Frame
	index  map[string]int

	mu       sync.Mutex
	cache    map[string]image.Image
	swatches map[string]Swatch
}

// New creates a catalog over fsys. A nil frames slice selects DefaultFrames.
func New(fsys fs.FS, frames []Frame) *Catalog {
	if frames == nil {
		frames = DefaultFrames()
	}
	index := make(map[string]int, len(frames))
	for i, f := range frames {
		index[f.ID] = i
	}
	return &Catalog{
		fsys:     fsys,
		frames:   frames,
		index:    index,
		cache:    make(map[string]image.Image),
		swatches: make(map[string]Swatch),
	}
}

// Frames returns the catalog entries in display order
func (c *Catalog) Frames() []Frame {
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// IDs returns the sorted frame keys
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		ids = append(ids, f.ID)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the entry for id
func (c *Catalog) Lookup(id string) (Frame, error) {
	i, ok := c.index[id]
	if !ok {
		return Frame{}, fmt.Errorf("%w: %q", ErrUnknownFrame, id)
	}
	return c.frames[i], nil
}

// FS returns the filesystem holding the frame assets
func (c *Catalog) FS() fs.FS {
	return c.fsys
}

// Frame returns the decoded full resolution overlay for id
func (c *Catalog) Frame(ctx context.Context, id string) (image.Image, error) {
	f, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	img, ok := c.cache[id]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err = c.decode(f.Asset)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[id] = img
	c.mu.Unlock()
	return img, nil
}

// Thumbnail returns the picker thumbnail for id. When the thumbnail asset
// is missing it is generated from the full overlay.
func (c *Catalog) Thumbnail(ctx context.Context, id string) (image.Image, error) {
	f, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	if f.Thumbnail != "" {
		img, err := c.decode(f.Thumbnail)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	full, err := c.Frame(ctx, id)
	if err != nil {
		return nil, err
	}
	return imaging.Fit(full, ThumbnailSize, ThumbnailSize, imaging.Lanczos), nil
}

// Swatch returns the dominant colour of the frame and a light tint of it
func (c *Catalog) Swatch(ctx context.Context, id string) (Swatch, error) {
	c.mu.Lock()
	s, ok := c.swatches[id]
	c.mu.Unlock()
	if ok {
		return s, nil
	}

	img, err := c.Frame(ctx, id)
	if err != nil {
		return Swatch{}, err
	}
	s = swatchOf(img)

	c.mu.Lock()
	c.swatches[id] = s
	c.mu.Unlock()
	return s, nil
}

func (c *Catalog) decode(name string) (image.Image, error) {
	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame asset: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame asset %s: %w", name, err)
	}
	return img, nil
}

var white = colorful.Color{R: 1, G: 1, B: 1}

func swatchOf(img image.Image) Swatch {
	candidates := dominantcolor.FindWeight(img, 4)
	best := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	weight := -1.0
	for _, cand := range candidates {
		if cand.Weight > weight {
			best, weight = cand.RGBA, cand.Weight
		}
	}
	best.A = 255

	accent, _ := colorful.MakeColor(best)
	accent = accent.Clamped()
	tint := accent.BlendLab(white, 0.8).Clamped()
	return Swatch{Accent: accent.Hex(), Tint: tint.Hex()}
}
