package ford

import (
	"math"
	"math/big"

	"fordview/internal/rational"
)

// floatTolerance bounds the relative error of evaluating a/b ± 1/(2b²) in
// float64, with headroom. Comparisons closer than this are redone exactly.
const floatTolerance = 1e-14

// cmpEdge compares the point f + side·1/(2b²) with x, where side is -1, 0 or
// +1 (left edge, centre or right edge of the Ford circle of f). It returns
// -1, 0 or +1.
//
// Deep zoom puts viewport edges within a few ulps of tree fractions; there
// float64 alone cannot tell on which side of the edge a fraction lies.
func cmpEdge(f rational.Fraction, side int, x float64) int {
	b := float64(f.Den)
	v := f.Float() + float64(side)/(2*b*b)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsInf(v, 0) {
		return cmpFloat(v, x)
	}
	if math.Abs(v-x) > floatTolerance*(math.Abs(v)+math.Abs(x)) {
		return cmpFloat(v, x)
	}

	var exact big.Rat
	if side == 0 {
		exact.SetFrac(big.NewInt(f.Num), big.NewInt(f.Den))
	} else {
		// (2ab + side) / (2b²)
		num := new(big.Int).Mul(big.NewInt(f.Num), big.NewInt(f.Den))
		num.Lsh(num, 1)
		num.Add(num, big.NewInt(int64(side)))
		den := new(big.Int).Mul(big.NewInt(f.Den), big.NewInt(f.Den))
		den.Lsh(den, 1)
		exact.SetFrac(num, den)
	}
	var xr big.Rat
	xr.SetFloat64(x)
	return exact.Cmp(&xr)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
