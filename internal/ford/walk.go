package ford

import (
	"fmt"
	"math"

	"fordview/internal/rational"
	"fordview/internal/view"
)

// interval is a pair of adjacent fractions with l < r.
type interval struct {
	l rational.Fraction
	r rational.Fraction
}

type walker struct {
	e     *Engine
	vp    view.Viewport
	stats Stats
	stack []interval
	out   []Circle
}

func newWalker(e *Engine, vp view.Viewport) *walker {
	return &walker{e: e, vp: vp, stack: make([]interval, 0, 64)}
}

func (w *walker) emit(f rational.Fraction) {
	w.out = append(w.out, newCircle(f, w.vp, w.e.labelThreshold))
	w.stats.Emitted++
}

// inRange reports whether any descendant of iv can lie in the visible range.
// Every mediant below an interval lies strictly between its boundaries.
func (w *walker) inRange(iv interval) bool {
	return cmpEdge(iv.l, 0, w.vp.Right) <= 0 && cmpEdge(iv.r, 0, w.vp.Left) >= 0
}

// visible reports whether the circle of f overlaps the visible range, using
// its radius as horizontal tolerance.
func (w *walker) visible(f rational.Fraction) bool {
	return cmpEdge(f, 1, w.vp.Left) >= 0 && cmpEdge(f, -1, w.vp.Right) <= 0
}

// split returns the mediant of iv, or ok=false when the mediant's circle is
// below a pixel or cannot be represented.
func (w *walker) split(iv interval) (m rational.Fraction, ok bool, err error) {
	w.stats.Visited++
	b, fits := rational.AddInt64(iv.l.Den, iv.r.Den)
	if !fits {
		return w.overflow(iv, rational.ErrArithmeticOverflow)
	}
	bf := float64(b)
	if w.vp.PixelScale < 2*bf*bf {
		w.stats.ResolutionPruned++
		return m, false, nil
	}
	m, err = rational.Mediant(iv.l, iv.r)
	if err != nil {
		return w.overflow(iv, err)
	}
	return m, true, nil
}

func (w *walker) overflow(iv interval, err error) (rational.Fraction, bool, error) {
	if w.e.overflow == OverflowStrict {
		return rational.Fraction{}, false, fmt.Errorf("traverse %v..%v: %w", iv.l, iv.r, err)
	}
	w.stats.OverflowPruned++
	return rational.Fraction{}, false, nil
}

func (w *walker) push(iv interval) {
	if !w.inRange(iv) {
		w.stats.RangePruned++
		return
	}
	w.stack = append(w.stack, iv)
	w.stats.MaxStack = max(w.stats.MaxStack, len(w.stack))
}

// walk emits the visible mediants below root in pre-order: a node, then its
// left subtree, then its right subtree.
func (w *walker) walk(root interval) error {
	w.stack = w.stack[:0]
	w.push(root)
	for len(w.stack) > 0 {
		n := len(w.stack) - 1
		iv := w.stack[n]
		w.stack = w.stack[:n]

		iv = w.skipRun(iv)
		m, ok, err := w.split(iv)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if w.visible(m) {
			w.emit(m)
		}
		// Right first so the left child is popped next.
		w.push(interval{l: m, r: iv.r})
		w.push(interval{l: iv.l, r: m})
	}
	return nil
}

// minRun is the shortest run worth solving for instead of stepping through.
const minRun = 8

// skipRun jumps over a run of mediants that all fall past one edge of the
// view.
//
// Below (l, r) the left spine has mediants (r + k·l) for k = 1, 2, ...,
// falling towards l, and every right child on it starts at its mediant. While
// those circles sit wholly right of the view they draw nothing and their
// right subtrees are range-pruned, so the walk only ever continues down the
// spine. The leftmost point of circle k is l + (2b_k − b_l)/(2b_k²·b_l) with
// b_k = b_r + k·b_l, decreasing in k, so the run length has a closed form.
// The right spine mirrors this against the left edge.
//
// The float estimate of the run length can overshoot when the view is only a
// few ulps wide, so the last skipped mediant is checked exactly and the run
// halved until the check holds. The edge is monotone along the spine, so the
// whole run is then skippable.
//
// The returned interval has the same output as iv.
func (w *walker) skipRun(iv interval) interval {
	right, left := w.vp.Right, w.vp.Left

	if cmpEdge(iv.r, 0, right) > 0 {
		k := runLength(right-iv.l.Float(), iv.l.Den, iv.r.Den, w.vp.PixelScale)
		k = min(k, fitScale(iv.r, iv.l))
		for ; k >= minRun; k /= 2 {
			// The new right boundary is the last skipped mediant.
			last, ok := addScaled(iv.r, iv.l, k)
			if ok && cmpEdge(last, -1, right) > 0 {
				w.stats.Skipped += int(k)
				return interval{l: iv.l, r: last}
			}
		}
	}

	if cmpEdge(iv.l, 0, left) < 0 {
		k := runLength(iv.r.Float()-left, iv.r.Den, iv.l.Den, w.vp.PixelScale)
		k = min(k, fitScale(iv.l, iv.r))
		for ; k >= minRun; k /= 2 {
			last, ok := addScaled(iv.l, iv.r, k)
			if ok && cmpEdge(last, 1, left) < 0 {
				w.stats.Skipped += int(k)
				return interval{l: last, r: iv.r}
			}
		}
	}

	return iv
}

// runLength returns how many leading spine nodes can be skipped: those whose
// circle edge is more than d beyond the fixed boundary's position, capped at
// the resolution limit. fixed is the denominator of the boundary the spine
// converges to, other is that of the boundary being replaced. One node of
// margin is left for the exact check.
func runLength(d float64, fixed, other int64, pixelScale float64) int64 {
	c := float64(fixed)
	limit := math.Sqrt(pixelScale / 2)
	if d > 0 {
		// Smallest b with (2b − c)/(2b²c) ≤ d, the larger root of
		// 2dc·b² − 2b + c = 0.
		disc := 1 - 2*d*c*c
		if disc < 0 {
			return 0
		}
		limit = math.Min(limit, (1+math.Sqrt(disc))/(2*d*c))
	}
	k := math.Floor((limit-float64(other))/c) - 1
	if !(k >= 1) {
		return 0
	}
	if k > math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	return int64(k)
}

// fitScale returns the largest k for which base + k·step fits in int64.
func fitScale(base, step rational.Fraction) int64 {
	k := (math.MaxInt64 - base.Den) / step.Den
	if step.Num != 0 {
		n := step.Num
		if n < 0 {
			n = -n
		}
		b := base.Num
		if b < 0 {
			b = -b
		}
		if b == math.MinInt64 {
			return 0
		}
		k = min(k, (math.MaxInt64-b)/n)
	}
	return k
}

// addScaled returns base + k·step componentwise.
func addScaled(base, step rational.Fraction, k int64) (rational.Fraction, bool) {
	dn, ok := rational.MulInt64(step.Num, k)
	if !ok {
		return rational.Fraction{}, false
	}
	dd, ok := rational.MulInt64(step.Den, k)
	if !ok {
		return rational.Fraction{}, false
	}
	num, ok := rational.AddInt64(base.Num, dn)
	if !ok {
		return rational.Fraction{}, false
	}
	den, ok := rational.AddInt64(base.Den, dd)
	if !ok {
		return rational.Fraction{}, false
	}
	return rational.Fraction{Num: num, Den: den}, true
}
