package types

import (
	"fmt"
	"math"
	"strings"
)

// Params holds the composite parameters chosen by the user
type Params struct {
	FrameID   string  `json:"frame_id"`
	Zoom      float64 `json:"zoom"`
	FrameSize float64 `json:"frame_size"`
}

// Range describes the bounds and step of a slider-controlled value
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Slider ranges exposed by the input controls
var (
	ZoomRange      = Range{Min: 0.5, Max: 2.0, Step: 0.1, Default: 1.0}
	FrameSizeRange = Range{Min: 0.5, Max: 1.5, Step: 0.1, Default: 0.9}
)

// DefaultFrameID is the frame selected when nothing else was chosen
const DefaultFrameID = "frame1"

// DefaultParams returns the initial parameter set
func DefaultParams() Params {
	return Params{
		FrameID:   DefaultFrameID,
		Zoom:      ZoomRange.Default,
		FrameSize: FrameSizeRange.Default,
	}
}

// Clamp limits v to the range and snaps it to the nearest step.
// NaN maps to the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	if v < r.Min {
		v = r.Min
	}
	if v > r.Max {
		v = r.Max
	}
	if r.Step > 0 {
		steps := math.Round((v - r.Min) / r.Step)
		v = r.Min + steps*r.Step
		// drop float noise such as 1.2000000000000002
		v = math.Round(v*1e6) / 1e6
		if v > r.Max {
			v = r.Max
		}
	}
	return v
}

// Contains reports whether v lies inside the range bounds
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamped returns a copy of p with both scalars clamped to their slider ranges
func (p Params) Clamped() Params {
	p.Zoom = ZoomRange.Clamp(p.Zoom)
	p.FrameSize = FrameSizeRange.Clamp(p.FrameSize)
	return p
}

// Format is an output image encoding
type Format string

// Supported output formats. Both keep the alpha channel.
const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat converts a user supplied format name into a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Ext returns the file extension without the dot
func (f Format) Ext() string {
	return string(f)
}

// MIMEType returns the media type of the encoded image
func (f Format) MIMEType() string {
	switch f {
	case WebP:
		return "image/webp"
	default:
		return "image/png"
	}
}
