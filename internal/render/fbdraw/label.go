package fbdraw

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"fordview/internal/ford"
)

// face is a built-in bitmap font with its line height (em) and the distance
// from the top of a line to its baseline, in pixels.
type face struct {
	font   tinyfont.Fonter
	em     int
	ascent int
}

// faces is ordered by size. tinyfont only ships fixed sizes, so labels snap
// down to the largest face that fits.
var faces = []face{
	{&proggy.TinySZ8pt7b, 10, 8},
	{&freemono.Regular9pt7b, 18, 13},
	{&freemono.Regular12pt7b, 24, 17},
	{&freemono.Regular18pt7b, 35, 25},
	{&freemono.Regular24pt7b, 47, 33},
}

// minLabelSize is the smallest label font size worth drawing.
const minLabelSize = 6

// hudFace draws HUD and panic text.
var hudFace = faces[0]

// faceFor returns the largest face whose em fits size, or the smallest face.
func faceFor(size float64) face {
	best := faces[0]
	for _, f := range faces[1:] {
		if float64(f.em) <= size {
			best = f
		}
	}
	return best
}

// DrawLabel draws l centred on (x, y): the numerator above a divider bar and
// the denominator below it.
func (c *Canvas) DrawLabel(x, y float64, l *ford.Label, col color.RGBA) {
	if l == nil || l.FontSize < minLabelSize {
		return
	}
	w, h := c.size()
	// tinyfont positions are int16; anything this far off-canvas is not
	// visible anyway.
	if x < -float64(w) || x > 2*float64(w) || y < -float64(h) || y > 2*float64(h) {
		return
	}

	f := faceFor(l.FontSize)
	numW, _ := tinyfont.LineWidth(f.font, l.Numerator)
	denW, _ := tinyfont.LineWidth(f.font, l.Denominator)

	barW := l.BarWidth(float64(numW), float64(denW))
	barH := math.Max(1, math.Round(l.BarHeight))
	c.fill(
		int(math.Round(x-barW/2)),
		int(math.Round(y-barH/2)),
		int(math.Round(barW)),
		int(barH),
		col,
	)

	ix, iy := int(math.Round(x)), int(math.Round(y))
	ib := int(barH)
	tinyfont.WriteLine(c, f.font, int16(ix-int(numW)/2), int16(iy-ib), l.Numerator, col)
	tinyfont.WriteLine(c, f.font, int16(ix-int(denW)/2), int16(iy+ib+f.ascent), l.Denominator, col)
}

// Text draws s with its top-left corner at (x, y) in the HUD face.
func (c *Canvas) Text(x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, hudFace.font, int16(x), int16(y+hudFace.ascent), s, col)
}

// LineHeight is the vertical advance of Text lines.
func LineHeight() int { return hudFace.em }

// TextWidth returns the rendered width of s in the HUD face.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(hudFace.font, s)
	return int(outbox)
}
