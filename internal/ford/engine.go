// Package ford walks the Stern-Brocot mediant tree and turns the Ford circles
// that are visible in a viewport into draw instructions.
//
// The tree is infinite and never materialised. A walk keeps only the pending
// right siblings of the current path on an explicit stack, and stops
// descending once a circle would be smaller than a pixel, so depth follows the
// zoom level instead of a fixed limit.
package ford

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"fordview/internal/rational"
	"fordview/internal/view"
)

// ErrNotAdjacent is returned by Traverse for boundaries that are not
// Stern-Brocot neighbours.
var ErrNotAdjacent = errors.New("boundaries are not adjacent fractions")

// OverflowPolicy selects what happens when a mediant no longer fits in int64.
type OverflowPolicy uint8

const (
	// OverflowPrune stops descending into the subtree, like a resolution
	// prune. Such circles are far below a pixel at any zoom float64 can hold.
	OverflowPrune OverflowPolicy = iota
	// OverflowStrict aborts the walk with an error wrapping
	// rational.ErrArithmeticOverflow.
	OverflowStrict
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowPrune:
		return "prune"
	case OverflowStrict:
		return "strict"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", uint8(p))
	}
}

// ParseOverflowPolicy accepts "prune" or "strict".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "prune", "":
		return OverflowPrune, nil
	case "strict":
		return OverflowStrict, nil
	default:
		return 0, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// Engine computes the draw instructions for a viewport. An Engine holds only
// configuration; it is safe to share between goroutines.
type Engine struct {
	labelThreshold float64
	overflow       OverflowPolicy
	workers        int
	tiling         bool
	log            *slog.Logger
}

type Option func(*Engine)

// WithLabelThreshold sets the pixel radius above which circles are labelled.
func WithLabelThreshold(px float64) Option {
	return func(e *Engine) { e.labelThreshold = px }
}

func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(e *Engine) { e.overflow = p }
}

// WithWorkers walks disjoint subtrees on up to n goroutines. The output is
// identical to a single-threaded walk.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// WithTiling repeats the [0,1] tree across every integer interval in view.
// Without it Frame draws only [0,1] with its two anchor circles.
func WithTiling(on bool) Option {
	return func(e *Engine) { e.tiling = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an engine with the given options applied over the defaults:
// label threshold 20px, overflow pruning, one worker, tiling on.
func New(opts ...Option) *Engine {
	e := &Engine{
		labelThreshold: DefaultLabelThreshold,
		overflow:       OverflowPrune,
		workers:        1,
		tiling:         true,
		log:            slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Tiling() bool { return e.tiling }

// Stats describes the work done for one frame.
type Stats struct {
	Visited          int
	Emitted          int
	RangePruned      int
	ResolutionPruned int
	OverflowPruned   int
	// Skipped counts tree nodes jumped over in runs of off-screen mediants.
	Skipped int
	// MaxStack is the deepest the pending-interval stack got.
	MaxStack int
}

func (s *Stats) add(o Stats) {
	s.Visited += o.Visited
	s.Emitted += o.Emitted
	s.RangePruned += o.RangePruned
	s.ResolutionPruned += o.ResolutionPruned
	s.OverflowPruned += o.OverflowPruned
	s.Skipped += o.Skipped
	s.MaxStack = max(s.MaxStack, o.MaxStack)
}

// Result is the ordered instruction list for a frame. Larger circles come
// before the smaller circles nested between them.
type Result struct {
	Circles []Circle
	Stats   Stats
}

// Instruction returns the draw instruction for f in vp, whether or not f is
// visible.
func (e *Engine) Instruction(f rational.Fraction, vp view.Viewport) Circle {
	return newCircle(f, vp, e.labelThreshold)
}

// Traverse returns the instructions for every mediant strictly between lo and
// hi that is in view and at least a pixel across. lo and hi themselves are
// not included.
func (e *Engine) Traverse(lo, hi rational.Fraction, vp view.Viewport) ([]Circle, error) {
	res, err := e.traverse(lo, hi, vp)
	return res.Circles, err
}

// TraverseStats is Traverse with the walk statistics.
func (e *Engine) TraverseStats(lo, hi rational.Fraction, vp view.Viewport) (Result, error) {
	return e.traverse(lo, hi, vp)
}

func (e *Engine) traverse(lo, hi rational.Fraction, vp view.Viewport) (Result, error) {
	if lo.Den <= 0 || hi.Den <= 0 || !rational.Adjacent(lo, hi) {
		return Result{}, fmt.Errorf("traverse %v %v: %w", lo, hi, ErrNotAdjacent)
	}
	if lo.Float() > hi.Float() {
		lo, hi = hi, lo
	}
	w := newWalker(e, vp)
	if err := e.walkRoots(w, []interval{{l: lo, r: hi}}); err != nil {
		return Result{}, err
	}
	return Result{Circles: w.out, Stats: w.stats}, nil
}

// Frame returns everything drawn for vp: the integer anchor circles followed
// by the mediant trees between them.
func (e *Engine) Frame(vp view.Viewport) (Result, error) {
	w := newWalker(e, vp)

	var roots []interval
	if e.tiling {
		var err error
		roots, err = w.tiles()
		if err != nil {
			return Result{}, err
		}
	} else {
		zero, one := rational.Int(0), rational.Int(1)
		w.emit(zero)
		w.emit(one)
		roots = []interval{{l: zero, r: one}}
	}

	if err := e.walkRoots(w, roots); err != nil {
		return Result{}, err
	}

	e.log.Debug("frame",
		"center", vp.Center,
		"width", vp.Width,
		"circles", len(w.out),
		"visited", w.stats.Visited,
		"skipped", w.stats.Skipped,
		"max_stack", w.stats.MaxStack,
	)
	return Result{Circles: w.out, Stats: w.stats}, nil
}

func (e *Engine) walkRoots(w *walker, roots []interval) error {
	if e.workers > 1 {
		return w.walkParallel(roots, e.workers)
	}
	for _, root := range roots {
		if err := w.walk(root); err != nil {
			return err
		}
	}
	return nil
}

// tileLimit bounds the integers Frame will convert from float64.
const tileLimit = 1 << 62

// tiles emits the visible integer circles and returns the unit intervals that
// overlap the visible range.
func (w *walker) tiles() ([]interval, error) {
	vp := w.vp
	// Integer circles have b = 1, so they obey the same resolution prune.
	if vp.PixelScale < 2 {
		w.stats.ResolutionPruned++
		return nil, nil
	}
	if math.IsNaN(vp.Left) || math.IsNaN(vp.Right) || vp.Left < -tileLimit || vp.Right > tileLimit {
		if w.e.overflow == OverflowStrict {
			return nil, fmt.Errorf("tile range [%g, %g]: %w", vp.Left, vp.Right, rational.ErrArithmeticOverflow)
		}
		w.stats.OverflowPruned++
		return nil, nil
	}

	first := int64(math.Floor(vp.Left - 0.5))
	last := int64(math.Ceil(vp.Right + 0.5))
	for n := first; n <= last; n++ {
		f := rational.Int(n)
		if w.visible(f) {
			w.emit(f)
		}
	}

	var roots []interval
	for n := int64(math.Ceil(vp.Left - 1)); n <= int64(math.Floor(vp.Right)); n++ {
		roots = append(roots, interval{l: rational.Int(n), r: rational.Int(n + 1)})
	}
	return roots, nil
}

// Traverse walks with a default engine. See Engine.Traverse.
func Traverse(lo, hi rational.Fraction, vp view.Viewport) ([]Circle, error) {
	return New().Traverse(lo, hi, vp)
}
