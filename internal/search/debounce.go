package search

import (
	"sync"
	"time"
)

// DefaultWait is the quiet period after the last keystroke before the URL is synced.
const DefaultWait = 600 * time.Millisecond

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Debouncer)

// WithAfterFunc replaces the timer source.
func WithAfterFunc(after AfterFunc) Option {
	return func(d *Debouncer) {
		d.after = after
	}
}

// Debouncer runs only the last of a burst of calls, once the burst has been
// quiet for the wait period.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	after AfterFunc
	timer Timer
	seq   uint64
}

func NewDebouncer(wait time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{wait: wait, after: systemAfterFunc}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Call cancels the pending call, if any, and schedules fn.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.after(d.wait, func() {
		d.mu.Lock()
		// A newer Call or Stop won while this timer was firing.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Stop discards the pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
