package search

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback after a quiet
// period. It replaces ad hoc timer-handle juggling with an explicit
// start/cancel/flush contract: an explicit search cancels any pending
// type-ahead trigger so a late timer cannot produce a duplicate update.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	gen     uint64 // bumped on every Trigger/Cancel/Flush; stale timer callbacks check it
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, replacing any pending
// callback that has not fired yet. A timer that expired but lost the race to
// a newer Trigger sees a newer generation and backs off, so the replacement
// always gets its full quiet period.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		fn := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Cancel drops any pending callback without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Flush runs the pending callback immediately, if one is scheduled, and
// cancels its timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.gen++
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
