// Package rational holds the small amount of exact integer arithmetic the
// Ford circle engine needs: reduced fractions, checked mediants and the
// Stern-Brocot adjacency test.
package rational

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// ErrArithmeticOverflow reports that a numerator or denominator would not fit
// in an int64.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

// Fraction is a rational number Num/Den with Den > 0.
//
// Fractions produced by Mediant from adjacent parents are already in lowest
// terms; nothing here reduces them.
type Fraction struct {
	Num int64
	Den int64
}

// New returns num/den. It does not reduce.
func New(num, den int64) Fraction {
	return Fraction{Num: num, Den: den}
}

// Int returns n/1.
func Int(n int64) Fraction {
	return Fraction{Num: n, Den: 1}
}

func (f Fraction) Float() float64 {
	return float64(f.Num) / float64(f.Den)
}

func (f Fraction) String() string {
	return strconv.FormatInt(f.Num, 10) + "/" + strconv.FormatInt(f.Den, 10)
}

// Mediant returns (l.Num+r.Num)/(l.Den+r.Den).
func Mediant(l, r Fraction) (Fraction, error) {
	num, ok := AddInt64(l.Num, r.Num)
	if !ok {
		return Fraction{}, fmt.Errorf("mediant %v %v: numerator: %w", l, r, ErrArithmeticOverflow)
	}
	den, ok := AddInt64(l.Den, r.Den)
	if !ok {
		return Fraction{}, fmt.Errorf("mediant %v %v: denominator: %w", l, r, ErrArithmeticOverflow)
	}
	return Fraction{Num: num, Den: den}, nil
}

// Adjacent reports whether l.Num*r.Den - r.Num*l.Den is +1 or -1.
// The products are formed in 128 bits so the test itself never overflows.
func Adjacent(l, r Fraction) bool {
	d := sub128(mul128(l.Num, r.Den), mul128(r.Num, l.Den))
	return d == int128{lo: 1} || d == int128{hi: math.MaxUint64, lo: math.MaxUint64}
}

// Reduced reports whether gcd(|Num|, Den) == 1.
func (f Fraction) Reduced() bool {
	if f.Den <= 0 {
		return false
	}
	return gcd(absUint64(f.Num), uint64(f.Den)) == 1
}

// AddInt64 returns a+b and false if the sum does not fit in an int64.
func AddInt64(a, b int64) (int64, bool) {
	s := a + b
	// Overflow iff both operands share a sign that the sum does not.
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		return 0, false
	}
	return s, true
}

// MulInt64 returns a*b and false if the product does not fit in an int64.
func MulInt64(a, b int64) (int64, bool) {
	p := mul128(a, b)
	lo := int64(p.lo)
	// Fits iff the high word is the sign extension of the low word.
	if (lo < 0 && p.hi != math.MaxUint64) || (lo >= 0 && p.hi != 0) {
		return 0, false
	}
	return lo, true
}

type int128 struct {
	hi uint64
	lo uint64
}

func mul128(a, b int64) int128 {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint64(a), absUint64(b))
	v := int128{hi: hi, lo: lo}
	if neg {
		v = neg128(v)
	}
	return v
}

func neg128(v int128) int128 {
	lo, borrow := bits.Sub64(0, v.lo, 0)
	hi, _ := bits.Sub64(0, v.hi, borrow)
	return int128{hi: hi, lo: lo}
}

func sub128(a, b int128) int128 {
	lo, borrow := bits.Sub64(a.lo, b.lo, 0)
	hi, _ := bits.Sub64(a.hi, b.hi, borrow)
	return int128{hi: hi, lo: lo}
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
