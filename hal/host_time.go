//go:build !tinygo

package hal

import "time"

// hostTime turns wall-clock time into millisecond ticks. It advances only
// when the host loop calls advance, so ticks arrive in bursts once per frame.
type hostTime struct {
	ch  chan uint64
	seq uint64
	now func() time.Time

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance emits one tick per millisecond since the previous call, or a single
// tick on the first call.
func (t *hostTime) advance() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / time.Millisecond)
	t.acc %= time.Millisecond
	t.emit(n)
}

// emit publishes the next n tick numbers. After a stall longer than the
// channel holds, the oldest numbers are skipped so the newest still arrive.
func (t *hostTime) emit(n uint64) {
	if free := uint64(cap(t.ch) - len(t.ch)); n > free {
		t.seq += n - free
		n = free
	}
	for range n {
		t.seq++
		t.ch <- t.seq
	}
}
