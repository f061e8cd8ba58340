package fbdraw

import (
	"image/color"
	"math"

	"honnef.co/go/curve"

	"fordview/hal"
	"fordview/internal/ford"
	"fordview/internal/render/cull"
)

// StrokeCircle draws a one-pixel outline of the circle at (cx, cy) with
// radius r, in canvas pixels. It reports whether anything could have landed on
// the canvas.
//
// Radii up to the canvas size use the midpoint algorithm. Larger circles, which
// zooming produces in the millions of pixels, are scanned column by column and
// row by row over the canvas instead, so their cost does not grow with r.
func (c *Canvas) StrokeCircle(cx, cy, r float64, col color.RGBA) bool {
	w, h := c.size()
	if w == 0 || h == 0 || !(r >= 0) || math.IsInf(r, 0) {
		return false
	}
	if !cull.Outline(curve.Circle{Center: curve.Pt(cx, cy), Radius: r}, float64(w), float64(h)) {
		return false
	}

	pixel := hal.RGB565(col)
	if r <= float64(w+h) {
		c.midpoint(int(math.Round(cx)), int(math.Round(cy)), int(math.Round(r)), pixel)
	} else {
		c.scan(cx, cy, r, w, h, pixel)
	}
	return true
}

func (c *Canvas) midpoint(cx, cy, r int, pixel uint16) {
	if r == 0 {
		c.plot(cx, cy, pixel)
		return
	}
	x, y := r, 0
	e := 1 - r
	for x >= y {
		c.plot(cx+x, cy+y, pixel)
		c.plot(cx-x, cy+y, pixel)
		c.plot(cx+x, cy-y, pixel)
		c.plot(cx-x, cy-y, pixel)
		c.plot(cx+y, cy+x, pixel)
		c.plot(cx-y, cy+x, pixel)
		c.plot(cx+y, cy-x, pixel)
		c.plot(cx-y, cy-x, pixel)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

// scan plots the outline where it crosses each canvas column and row. Columns
// cover the flat parts of the arc and rows the steep parts.
func (c *Canvas) scan(cx, cy, r float64, w, h int, pixel uint16) {
	x0 := max(0, math.Ceil(cx-r))
	x1 := min(float64(w-1), math.Floor(cx+r))
	for px := x0; px <= x1; px++ {
		d := px - cx
		s := math.Sqrt((r - d) * (r + d))
		c.plotf(px, cy-s, pixel)
		c.plotf(px, cy+s, pixel)
	}

	y0 := max(0, math.Ceil(cy-r))
	y1 := min(float64(h-1), math.Floor(cy+r))
	for py := y0; py <= y1; py++ {
		d := py - cy
		s := math.Sqrt((r - d) * (r + d))
		c.plotf(cx-s, py, pixel)
		c.plotf(cx+s, py, pixel)
	}
}

func (c *Canvas) plotf(x, y float64, pixel uint16) {
	x, y = math.Round(x), math.Round(y)
	if x < 0 || y < 0 || x > math.MaxInt32 || y > math.MaxInt32 {
		return
	}
	c.plot(int(x), int(y), pixel)
}

// DrawCircles strokes every instruction in order and labels the ones that
// carry a label. It returns how many reached the canvas.
func (c *Canvas) DrawCircles(circles []ford.Circle, col color.RGBA) int {
	var n int
	for i := range circles {
		ci := &circles[i]
		if !c.StrokeCircle(ci.X, ci.Y, ci.Radius, col) {
			continue
		}
		n++
		if ci.Label != nil {
			c.DrawLabel(ci.X, ci.Y, ci.Label, col)
		}
	}
	return n
}
