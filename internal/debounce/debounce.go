// Package debounce delays a rapidly changing value until it settles.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"
)

// Debouncer delivers the latest value passed to Set once no further Set
// has happened for the configured delay. Each Set cancels the pending
// timer and starts a new one.
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	gen     uint64
	stopped bool
}

// New creates a Debouncer with the given delay.
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// C returns the channel settled values are delivered on. It is closed by Stop.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Delay returns the configured delay.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records v and restarts the timer.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = v
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire delivers the pending value if no newer Set superseded this timer.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || gen != d.gen {
		return
	}
	v := d.pending

	// Replace an undelivered value rather than block.
	select {
	case <-d.out:
	default:
	}
	d.out <- v
}

// Stop cancels any pending delivery and closes C. Later calls to Set are
// ignored. Stop may be called more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.out)
}

// Gen is a generation counter for event-loop debouncing, where a timer
// cannot be cancelled and stale ticks must be ignored instead.
type Gen struct {
	n atomic.Uint64
}

// Next starts a new generation and returns its tag.
func (g *Gen) Next() uint64 {
	return g.n.Add(1)
}

// Current reports whether tag is the latest generation.
func (g *Gen) Current(tag uint64) bool {
	return g.n.Load() == tag
}
