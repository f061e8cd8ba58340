package rational

import (
	"errors"
	"math"
	"testing"
)

func TestMediantOfAdjacentIsReducedAndAdjacent(t *testing.T) {
	// Walk a few levels of the tree from 0/1, 1/1 and from a tile further out.
	type pair struct{ l, r Fraction }
	queue := []pair{{Int(0), Int(1)}, {Int(-3), Int(-2)}, {Int(41), Int(42)}}
	for depth := 0; depth < 8; depth++ {
		var next []pair
		for _, p := range queue {
			if !Adjacent(p.l, p.r) {
				t.Fatalf("Adjacent(%v, %v) = false, want true", p.l, p.r)
			}
			m, err := Mediant(p.l, p.r)
			if err != nil {
				t.Fatalf("Mediant(%v, %v): %v", p.l, p.r, err)
			}
			if !m.Reduced() {
				t.Fatalf("Mediant(%v, %v) = %v, not reduced", p.l, p.r, m)
			}
			if !Adjacent(p.l, m) || !Adjacent(m, p.r) {
				t.Fatalf("Mediant(%v, %v) = %v, not adjacent to both parents", p.l, p.r, m)
			}
			if !(p.l.Float() < m.Float() && m.Float() < p.r.Float()) {
				t.Fatalf("Mediant(%v, %v) = %v, not strictly between", p.l, p.r, m)
			}
			next = append(next, pair{p.l, m}, pair{m, p.r})
		}
		queue = next
	}
}

func TestAdjacentRejects(t *testing.T) {
	for _, tc := range []struct {
		l, r Fraction
	}{
		{New(0, 1), New(2, 1)},
		{New(1, 3), New(2, 3)},
		{New(1, 2), New(1, 2)},
	} {
		if Adjacent(tc.l, tc.r) {
			t.Errorf("Adjacent(%v, %v) = true, want false", tc.l, tc.r)
		}
	}
}

func TestAdjacentLargeValues(t *testing.T) {
	// 1/n and 1/(n+1) with n near the int64 limit; the cross products overflow int64.
	n := int64(math.MaxInt64 - 1)
	if !Adjacent(New(1, n+1), New(1, n)) {
		t.Fatal("Adjacent(1/(n+1), 1/n) = false, want true")
	}
}

func TestMediantOverflow(t *testing.T) {
	_, err := Mediant(New(1, math.MaxInt64), New(1, 1))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("Mediant() err = %v, want ErrArithmeticOverflow", err)
	}
	_, err = Mediant(New(math.MinInt64, 1), New(-1, 1))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("Mediant() err = %v, want ErrArithmeticOverflow", err)
	}
}

func TestAddInt64(t *testing.T) {
	for _, tc := range []struct {
		a, b   int64
		want   int64
		wantOK bool
	}{
		{1, 2, 3, true},
		{math.MaxInt64, 0, math.MaxInt64, true},
		{math.MaxInt64, 1, 0, false},
		{math.MinInt64, -1, 0, false},
		{math.MinInt64, math.MaxInt64, -1, true},
	} {
		got, ok := AddInt64(tc.a, tc.b)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Errorf("AddInt64(%d, %d) = %d, %v, want %d, %v", tc.a, tc.b, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMulInt64(t *testing.T) {
	for _, tc := range []struct {
		a, b   int64
		want   int64
		wantOK bool
	}{
		{3, 4, 12, true},
		{-3, 4, -12, true},
		{math.MinInt64, 1, math.MinInt64, true},
		{math.MaxInt64, 2, 0, false},
		{1 << 32, 1 << 31, 0, false},
		{-(1 << 32), 1 << 31, math.MinInt64, true},
	} {
		got, ok := MulInt64(tc.a, tc.b)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Errorf("MulInt64(%d, %d) = %d, %v, want %d, %v", tc.a, tc.b, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFractionString(t *testing.T) {
	if got := New(-3, 7).String(); got != "-3/7" {
		t.Fatalf("String() = %q, want %q", got, "-3/7")
	}
}
