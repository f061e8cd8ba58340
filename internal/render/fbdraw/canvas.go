// Package fbdraw rasterizes Ford circle instructions into an RGB565 host
// framebuffer.
package fbdraw

import (
	"image/color"

	"tinygo.org/x/drivers"

	"fordview/hal"
)

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{A: 255}
)

// Canvas draws into a hal.Framebuffer. It implements drivers.Displayer so
// tinyfont can render into it.
type Canvas struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Canvas)(nil)

func New(fb hal.Framebuffer) *Canvas {
	return &Canvas{fb: fb}
}

func (c *Canvas) Size() (x, y int16) {
	if c.fb == nil {
		return 0, 0
	}
	return int16(c.fb.Width()), int16(c.fb.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.plot(int(x), int(y), hal.RGB565(col))
}

func (c *Canvas) Display() error {
	if c.fb == nil {
		return nil
	}
	return c.fb.Present()
}

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.fill(int(x), int(y), int(width), int(height), col)
	return nil
}

func (c *Canvas) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Clear fills the whole framebuffer with col.
func (c *Canvas) Clear(col color.RGBA) {
	if c.fb == nil {
		return
	}
	c.fb.ClearRGB(col.R, col.G, col.B)
}

func (c *Canvas) size() (w, h int) {
	if c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return 0, 0
	}
	return c.fb.Width(), c.fb.Height()
}

func (c *Canvas) plot(x, y int, pixel uint16) {
	w, h := c.size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	buf := c.fb.Buffer()
	off := y*c.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (c *Canvas) fill(x, y, width, height int, col color.RGBA) {
	w, h := c.size()
	x0 := clampInt(x, 0, w)
	y0 := clampInt(y, 0, h)
	x1 := clampInt(x+width, 0, w)
	y1 := clampInt(y+height, 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	pixel := hal.RGB565(col)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
