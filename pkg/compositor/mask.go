package compositor

import (
	"image"
	"image/color"
)

// circleMask is an alpha mask that is opaque inside a circle and transparent outside.
// A pixel belongs to the circle when its center lies within the radius.
type circleMask struct {
	cx, cy float64
	r      float64
	bounds image.Rectangle
}

func newCircleMask(bounds image.Rectangle, radius float64) *circleMask {
	return &circleMask{
		cx:     float64(bounds.Min.X+bounds.Max.X) / 2,
		cy:     float64(bounds.Min.Y+bounds.Max.Y) / 2,
		r:      radius,
		bounds: bounds,
	}
}

func (m *circleMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (m *circleMask) Bounds() image.Rectangle {
	return m.bounds
}

func (m *circleMask) At(x, y int) color.Color {
	if m.contains(x, y) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

func (m *circleMask) contains(x, y int) bool {
	if !(image.Point{x, y}).In(m.bounds) {
		return false
	}
	dx := float64(x) + 0.5 - m.cx
	dy := float64(y) + 0.5 - m.cy
	return dx*dx+dy*dy <= m.r*m.r
}
