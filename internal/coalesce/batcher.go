// Package coalesce folds bursts of events into a single trailing call.
package coalesce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period used when none is configured.
const DefaultWindow = 500 * time.Millisecond

// DefaultMaxWaitWindows is how many windows a pending event may wait while
// new events keep arriving, unless WithMaxWait says otherwise.
const DefaultMaxWaitWindows = 4

type options struct {
	maxWait time.Duration
}

type Option func(*options)

// WithMaxWait bounds how long the first pending event waits for the burst to
// end. Values below the window are raised to the window.
func WithMaxWait(d time.Duration) Option {
	return func(o *options) {
		o.maxWait = d
	}
}

// Batcher calls fn with the latest event once no further event has arrived for
// window, or once the oldest pending event has waited maxWait. Calls to fn
// never overlap.
type Batcher[E any] struct {
	window  time.Duration
	maxWait time.Duration
	fn      func(E)

	mu           sync.Mutex
	timer        *time.Timer
	latest       E
	hasPending   bool
	pendingSince time.Time
	generation   uint64
	stopped      bool

	fireMu sync.Mutex
}

// New returns a Batcher. A non-positive window falls back to DefaultWindow.
func New[E any](window time.Duration, fn func(E), opts ...Option) *Batcher[E] {
	if window <= 0 {
		window = DefaultWindow
	}
	o := options{maxWait: DefaultMaxWaitWindows * window}
	for _, opt := range opts {
		opt(&o)
	}
	return &Batcher[E]{
		window:  window,
		maxWait: max(o.maxWait, window),
		fn:      fn,
	}
}

// Add records e as the latest event and restarts the window, without pushing
// the call past maxWait after the oldest pending event.
func (b *Batcher[E]) Add(e E) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}

	now := time.Now()
	if !b.hasPending {
		b.pendingSince = now
	}
	b.latest = e
	b.hasPending = true
	b.generation++
	generation := b.generation

	delay := min(b.window, b.pendingSince.Add(b.maxWait).Sub(now))
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(max(delay, 0), func() {
		b.fire(generation)
	})
}

// Flush fires the pending event now instead of waiting for the window.
// It reports whether there was anything to fire.
func (b *Batcher[E]) Flush() bool {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
	}
	generation := b.generation
	b.mu.Unlock()
	return b.fire(generation)
}

// Pending reports whether an event is waiting for its window to close.
func (b *Batcher[E]) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasPending
}

// Stop drops any pending event. Later events are ignored.
func (b *Batcher[E]) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	b.hasPending = false
	var zero E
	b.latest = zero
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Batcher[E]) fire(generation uint64) bool {
	b.fireMu.Lock()
	defer b.fireMu.Unlock()

	b.mu.Lock()
	// a newer Add restarted the window after this timer was armed
	if b.stopped || !b.hasPending || generation != b.generation {
		b.mu.Unlock()
		return false
	}
	e := b.latest
	b.hasPending = false
	var zero E
	b.latest = zero
	b.mu.Unlock()

	b.fn(e)
	return true
}
