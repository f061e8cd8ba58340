package cull

import (
	"math"
	"testing"

	"honnef.co/go/curve"
)

func TestOutline(t *testing.T) {
	const w, h = 40, 30
	tests := []struct {
		name string
		c    curve.Circle
		want bool
	}{
		{"inside", curve.Circle{Center: curve.Pt(20, 15), Radius: 5}, true},
		{"left of canvas", curve.Circle{Center: curve.Pt(-50, 15), Radius: 10}, false},
		{"straddles edge", curve.Circle{Center: curve.Pt(-5, 15), Radius: 6}, true},
		{"canvas inside disk", curve.Circle{Center: curve.Pt(20, 15), Radius: 1e6}, false},
		{"huge arc crossing", curve.Circle{Center: curve.Pt(20, 1e6+10), Radius: 1e6}, true},
		{"nan radius", curve.Circle{Center: curve.Pt(20, 15), Radius: math.NaN()}, false},
		{"inf radius", curve.Circle{Center: curve.Pt(20, 15), Radius: math.Inf(1)}, false},
		{"nan centre", curve.Circle{Center: curve.Pt(math.NaN(), 15), Radius: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outline(tt.c, w, h); got != tt.want {
				t.Fatalf("Outline(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestBox(t *testing.T) {
	const w, h = 40, 30
	tests := []struct {
		name string
		r    curve.Rect
		want bool
	}{
		{"inside", curve.Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}, true},
		{"covers canvas", curve.Rect{X0: -1e9, Y0: -1e9, X1: 1e9, Y1: 1e9}, true},
		{"above", curve.Rect{X0: 10, Y0: -1e7, X1: 20, Y1: -100}, false},
		{"right", curve.Rect{X0: 100, Y0: 0, X1: 200, Y1: 30}, false},
		{"infinite", curve.Rect{X0: 0, Y0: 0, X1: math.Inf(1), Y1: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Box(tt.r, w, h); got != tt.want {
				t.Fatalf("Box(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}
