// Package pipeline runs the query-aggregate-project cycle in response to facet changes.
package pipeline

import (
	"sync"
	"time"
)

// DebounceWindow is the quiet period after the last trigger before a refresh runs.
const DebounceWindow = 1000 * time.Millisecond

// Debouncer collapses bursts of Trigger calls into a single call of fn with the
// most recent argument, once no trigger has arrived for the window.
// Runs are not serialized: a trigger arriving while fn executes schedules
// another run that may overlap the first.
type Debouncer[T any] struct {
	window time.Duration
	fn     func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending T
	closed  bool

	wg sync.WaitGroup
}

// NewDebouncer creates a debouncer calling fn after window of quiet.
func NewDebouncer[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Trigger records arg and restarts the quiet window.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.pending = arg

	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}

	d.gen++
	gen := d.gen
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	defer d.wg.Done()

	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	arg := d.pending
	d.mu.Unlock()

	d.fn(arg)
}

// Stop discards a pending trigger and waits for running calls to return.
// Triggers after Stop are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.closed = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	d.wg.Wait()
}
