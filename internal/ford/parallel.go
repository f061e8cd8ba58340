package ford

import (
	"math/bits"

	"golang.org/x/sync/errgroup"
)

// segment is one piece of a frame's output in tree order: either a circle
// emitted while splitting the top of the tree, or a subtree walked on its own.
type segment struct {
	circle  Circle
	subtree interval
	walk    bool
}

// walkParallel expands the first levels of every root sequentially, walks the
// resulting subtrees concurrently, and stitches the output back in tree
// order. Sibling subtrees cover disjoint rational ranges, so the walks share
// nothing but the read-only engine and viewport.
func (w *walker) walkParallel(roots []interval, workers int) error {
	depth := bits.Len(uint(workers)) + 2

	var segs []segment
	for _, root := range roots {
		var err error
		segs, err = w.plan(root, depth, segs)
		if err != nil {
			return err
		}
	}

	parts := make([]*walker, len(segs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range segs {
		if !s.walk {
			continue
		}
		sub := newWalker(w.e, w.vp)
		parts[i] = sub
		g.Go(func() error {
			return sub.walk(s.subtree)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range segs {
		if !s.walk {
			w.out = append(w.out, s.circle)
			continue
		}
		w.out = append(w.out, parts[i].out...)
		w.stats.add(parts[i].stats)
	}
	return nil
}

// plan appends the pre-order segments for iv, cutting subtrees off at depth.
// It applies the same pruning as walk, without run skipping.
func (w *walker) plan(iv interval, depth int, segs []segment) ([]segment, error) {
	if !w.inRange(iv) {
		w.stats.RangePruned++
		return segs, nil
	}
	if depth == 0 {
		return append(segs, segment{subtree: iv, walk: true}), nil
	}
	m, ok, err := w.split(iv)
	if err != nil || !ok {
		return segs, err
	}
	if w.visible(m) {
		segs = append(segs, segment{circle: newCircle(m, w.vp, w.e.labelThreshold)})
		w.stats.Emitted++
	}
	segs, err = w.plan(interval{l: iv.l, r: m}, depth-1, segs)
	if err != nil {
		return segs, err
	}
	return w.plan(interval{l: m, r: iv.r}, depth-1, segs)
}
