// Package view holds the pan/zoom state of the viewer and the per-frame
// viewport geometry derived from it.
package view

import "math"

const (
	DefaultCenter = 0.5
	DefaultWidth  = 2.2
)

// State is the current center and visible width in model units.
// Width is always a finite positive number.
type State struct {
	Center float64
	Width  float64
}

// New returns a state. A width that is not finite and positive falls back to
// DefaultWidth.
func New(center, width float64) State {
	if !validWidth(width) {
		width = DefaultWidth
	}
	return State{Center: center, Width: width}
}

// Default is the initial view: [0,1] with a margin on either side.
func Default() State {
	return State{Center: DefaultCenter, Width: DefaultWidth}
}

// VisibleRange returns the model-space horizontal interval on screen.
func (s State) VisibleRange() (left, right float64) {
	return s.Center - s.Width/2, s.Center + s.Width/2
}

// PixelScale returns canvas pixels per model unit.
func (s State) PixelScale(canvasWidthPx int) float64 {
	return float64(canvasWidthPx) / s.Width
}

// Height returns the visible vertical span in model units.
func (s State) Height(canvasWidthPx, canvasHeightPx int) float64 {
	if canvasWidthPx <= 0 {
		return 0
	}
	return s.Width * float64(canvasHeightPx) / float64(canvasWidthPx)
}

// Pan moves the center by deltaFraction of the current width.
func (s *State) Pan(deltaFraction float64) {
	s.Center += s.Width * deltaFraction
}

// Zoom multiplies the width by factor. Factors above 1 zoom out.
// There is no clamp, but a step that would leave the width zero, negative or
// non-finite is ignored.
func (s *State) Zoom(factor float64) {
	w := s.Width * factor
	if !validWidth(w) {
		return
	}
	s.Width = w
}

// Viewport snapshots the geometry for one frame on a canvas of the given size.
func (s State) Viewport(canvasWidthPx, canvasHeightPx int) Viewport {
	left, right := s.VisibleRange()
	return Viewport{
		Center:       s.Center,
		Width:        s.Width,
		Height:       s.Height(canvasWidthPx, canvasHeightPx),
		Left:         left,
		Right:        right,
		PixelScale:   s.PixelScale(canvasWidthPx),
		CanvasWidth:  canvasWidthPx,
		CanvasHeight: canvasHeightPx,
	}
}

// Viewport is the immutable geometry of a single frame.
type Viewport struct {
	Center float64
	Width  float64
	Height float64

	Left  float64
	Right float64

	// PixelScale is canvas pixels per model unit.
	PixelScale float64

	CanvasWidth  int
	CanvasHeight int
}

// ToScreenX maps a model x coordinate to a canvas pixel column.
func (v Viewport) ToScreenX(x float64) float64 {
	return v.PixelScale*(x-v.Center) + float64(v.CanvasWidth)/2
}

// ToModelX maps a canvas pixel column back to model space.
func (v Viewport) ToModelX(px float64) float64 {
	return (px-float64(v.CanvasWidth)/2)/v.PixelScale + v.Center
}

func validWidth(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}
