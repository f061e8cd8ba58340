// Package ggdraw renders Ford circle instructions to an anti-aliased image
// with gogpu/gg, for PNG export.
package ggdraw

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"honnef.co/go/curve"

	"fordview/internal/ford"
	"fordview/internal/render/cull"
)

// pathTolerance is the maximum distance in pixels between a drawn outline
// and the true circle.
const pathTolerance = 0.1

// Frame is one white canvas that instructions are drawn onto.
type Frame struct {
	ctx   *gg.Context
	src   *text.FontSource
	faces map[int]text.Face

	// LineWidth is the stroke width in pixels.
	LineWidth float64
}

// New returns a white width×height frame.
func New(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ggdraw: invalid size %dx%d", width, height)
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ggdraw: load font: %w", err)
	}
	ctx := gg.NewContext(width, height)
	ctx.ClearWithColor(gg.White)
	return &Frame{ctx: ctx, src: src, faces: make(map[int]text.Face), LineWidth: 1}, nil
}

func (f *Frame) face(size float64) text.Face {
	px := int(size)
	if fc, ok := f.faces[px]; ok {
		return fc
	}
	fc := f.src.Face(float64(px))
	f.faces[px] = fc
	return fc
}

// Draw strokes every instruction that reaches the canvas, with labels, and
// returns how many were drawn.
func (f *Frame) Draw(circles []ford.Circle) (int, error) {
	w, h := float64(f.ctx.Width()), float64(f.ctx.Height())

	f.ctx.SetRGB(0, 0, 0)
	f.ctx.SetLineWidth(f.LineWidth)

	var n int
	for i := range circles {
		c := &circles[i]
		circle := curve.Circle{Center: curve.Pt(c.X, c.Y), Radius: c.Radius}
		if !cull.Outline(circle, w, h) {
			continue
		}
		for el := range circle.PathElements(pathTolerance) {
			switch el.Kind {
			case curve.MoveToKind:
				f.ctx.MoveTo(el.P0.X, el.P0.Y)
			case curve.CubicToKind:
				f.ctx.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
			case curve.ClosePathKind:
				f.ctx.ClosePath()
			}
		}
		if err := f.ctx.Stroke(); err != nil {
			return n, fmt.Errorf("ggdraw: stroke %v: %w", c.Frac, err)
		}
		n++
		if c.Label != nil {
			if err := f.drawLabel(c.X, c.Y, c.Label); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// labelBox bounds a label of the given font size and bar height centred on
// (x, y). Glyphs are assumed no wider than an em and no taller than one above
// or below the bar.
func labelBox(x, y float64, l *ford.Label, size, bar float64) curve.Rect {
	digits := float64(max(len(l.Numerator), len(l.Denominator)))
	halfW := digits*size/2 + size/10
	return curve.Rect{X0: x - halfW, Y0: y - bar - size, X1: x + halfW, Y1: y + bar + size}
}

// drawLabel draws l centred on (x, y). The font is capped at the canvas
// height, and labels that cannot reach the canvas are skipped before any
// face is built.
func (f *Frame) drawLabel(x, y float64, l *ford.Label) error {
	if l.FontSize < 1 {
		return nil
	}
	w, h := float64(f.ctx.Width()), float64(f.ctx.Height())
	size, bar := l.FontSize, l.BarHeight
	if size > h {
		bar *= h / size
		size = h
	}
	if !cull.Box(labelBox(x, y, l, size, bar), w, h) {
		return nil
	}

	f.ctx.SetFont(f.face(size))
	numW, _ := f.ctx.MeasureString(l.Numerator)
	denW, _ := f.ctx.MeasureString(l.Denominator)

	barW := math.Max(numW, denW) + size/5
	f.ctx.DrawRectangle(x-barW/2, y-bar/2, barW, bar)
	if err := f.ctx.Fill(); err != nil {
		return fmt.Errorf("ggdraw: label bar: %w", err)
	}
	f.ctx.DrawStringAnchored(l.Numerator, x, y-bar, 0.5, 0)
	f.ctx.DrawStringAnchored(l.Denominator, x, y+bar, 0.5, 1)
	return nil
}

func (f *Frame) Image() image.Image { return f.ctx.Image() }

func (f *Frame) WritePNG(w io.Writer) error { return f.ctx.EncodePNG(w) }

func (f *Frame) SavePNG(path string) error { return f.ctx.SavePNG(path) }

func (f *Frame) Close() error { return f.ctx.Close() }
