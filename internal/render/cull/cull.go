// Package cull decides whether screen-space shapes can touch a canvas. Both
// renderers use it so they agree on what is drawn.
package cull

import "honnef.co/go/curve"

// canvas is the w×h canvas grown by a pixel on every side, so strokes that
// straddle an edge still count.
func canvas(w, h float64) curve.Rect {
	return curve.Rect{X0: -1, Y0: -1, X1: w + 1, Y1: h + 1}
}

// Box reports whether r overlaps the w×h canvas.
func Box(r curve.Rect, w, h float64) bool {
	if r.IsNaN() || r.IsInf() {
		return false
	}
	return r.Intersect(canvas(w, h)).Area() > 0
}

// Outline reports whether any of c's outline can land on the w×h canvas: its
// bounding box meets the canvas and the canvas is not wholly inside the disk.
func Outline(c curve.Circle, w, h float64) bool {
	// Non-finite centres and radii give a non-finite box.
	if c.Radius < 0 || !Box(c.BoundingBox(), w, h) {
		return false
	}
	cv := canvas(w, h)
	inner := curve.Circle{Center: c.Center, Radius: c.Radius - 1}
	return !(inner.Contains(curve.Pt(cv.X0, cv.Y0)) &&
		inner.Contains(curve.Pt(cv.X1, cv.Y0)) &&
		inner.Contains(curve.Pt(cv.X0, cv.Y1)) &&
		inner.Contains(curve.Pt(cv.X1, cv.Y1)))
}
