package view

import (
	"math"
	"testing"
)

func TestVisibleRange(t *testing.T) {
	s := Default()
	left, right := s.VisibleRange()
	if math.Abs(left-(-0.6)) > 1e-12 || math.Abs(right-1.6) > 1e-12 {
		t.Fatalf("VisibleRange() = (%v, %v), want (-0.6, 1.6)", left, right)
	}
}

func TestPixelScale(t *testing.T) {
	s := New(0.5, 2)
	if got := s.PixelScale(1000); got != 500 {
		t.Fatalf("PixelScale(1000) = %v, want 500", got)
	}
}

func TestPanScalesWithWidth(t *testing.T) {
	s := New(0.5, 2)
	s.Pan(0.25)
	if s.Center != 1 {
		t.Fatalf("Center after Pan(0.25) = %v, want 1", s.Center)
	}
	s.Pan(-1)
	if s.Center != -1 {
		t.Fatalf("Center after Pan(-1) = %v, want -1", s.Center)
	}
}

func TestZoom(t *testing.T) {
	s := New(0, 4)
	s.Zoom(0.5)
	if s.Width != 2 {
		t.Fatalf("Width after Zoom(0.5) = %v, want 2", s.Width)
	}
	s.Zoom(3)
	if s.Width != 6 {
		t.Fatalf("Width after Zoom(3) = %v, want 6", s.Width)
	}
}

func TestZoomKeepsWidthPositive(t *testing.T) {
	s := New(0, 1)
	for _, f := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		s.Zoom(f)
		if s.Width != 1 {
			t.Fatalf("Width after Zoom(%v) = %v, want 1", f, s.Width)
		}
	}

	// Repeated zoom-in has no floor until the width would underflow to zero.
	for i := 0; i < 2000; i++ {
		s.Zoom(0.5)
	}
	if !(s.Width > 0) {
		t.Fatalf("Width = %v, want > 0", s.Width)
	}
}

func TestNewFallsBackToDefaultWidth(t *testing.T) {
	if s := New(3, -1); s.Width != DefaultWidth || s.Center != 3 {
		t.Fatalf("New(3, -1) = %+v, want center 3 width %v", s, DefaultWidth)
	}
}

func TestViewport(t *testing.T) {
	vp := New(0.5, 2.2).Viewport(1000, 500)
	if math.Abs(vp.Height-1.1) > 1e-12 {
		t.Errorf("Height = %v, want 1.1", vp.Height)
	}
	if math.Abs(vp.PixelScale-1000/2.2) > 1e-9 {
		t.Errorf("PixelScale = %v, want %v", vp.PixelScale, 1000/2.2)
	}
	if got := vp.ToScreenX(0.5); got != 500 {
		t.Errorf("ToScreenX(center) = %v, want 500", got)
	}
	if got := vp.ToModelX(vp.ToScreenX(0.25)); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("ToModelX(ToScreenX(0.25)) = %v, want 0.25", got)
	}
	if got := vp.ToScreenX(vp.Left); math.Abs(got) > 1e-9 {
		t.Errorf("ToScreenX(Left) = %v, want 0", got)
	}
}
