package ford

import (
	"math"
	"strconv"

	"fordview/internal/rational"
	"fordview/internal/view"
)

// DefaultLabelThreshold is the screen radius above which a circle carries a
// numerator/denominator label.
const DefaultLabelThreshold = 20.0

// Circle is one draw instruction: stroke a circle centred at (X, Y) with
// radius Radius, all in canvas pixels, and draw Label if present.
type Circle struct {
	Frac   rational.Fraction
	X      float64
	Y      float64
	Radius float64
	Label  *Label
}

// Label is the stacked fraction drawn inside large circles: Numerator above
// and Denominator below a divider bar centred on the circle.
type Label struct {
	Numerator   string
	Denominator string

	// FontSize is the em size in pixels, sized so every denominator digit
	// fits across the circle.
	FontSize float64
	// BarHeight is the divider thickness. The bar's width is the widest of the
	// two labels plus FontSize/5, which only the renderer can measure.
	BarHeight float64
}

// BarWidth returns the divider width for labels whose rendered widths are
// numW and denW.
func (l *Label) BarWidth(numW, denW float64) float64 {
	return math.Max(numW, denW) + l.FontSize/5
}

// ModelRadius returns 1/(2b²), the Ford circle radius of a/b in model units.
func ModelRadius(f rational.Fraction) float64 {
	b := float64(f.Den)
	return 1 / (2 * b * b)
}

func newCircle(f rational.Fraction, vp view.Viewport, labelThreshold float64) Circle {
	b := float64(f.Den)
	r := vp.PixelScale / (2 * b * b)
	c := Circle{
		Frac:   f,
		X:      vp.ToScreenX(f.Float()),
		Y:      float64(vp.CanvasHeight) - r,
		Radius: r,
	}
	if r > labelThreshold {
		den := strconv.FormatInt(f.Den, 10)
		size := math.Floor(r * 2 / float64(len(den)) / 4)
		c.Label = &Label{
			Numerator:   strconv.FormatInt(f.Num, 10),
			Denominator: den,
			FontSize:    size,
			BarHeight:   size / 10,
		}
	}
	return c
}
