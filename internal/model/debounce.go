package model

import (
	"sync"
	"time"
)

// DefaultDebounce is the default search debounce delay.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer delays a call until no newer call was triggered for a while.
type Debouncer struct {
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
	mx      sync.Mutex
}

// NewDebouncer returns a new debouncer. A non positive delay fires triggers
// synchronously.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the debounce delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mx.Lock()
	if d.stopped {
		d.mx.Unlock()
		return
	}
	d.cancelLocked()
	if d.delay <= 0 {
		d.mx.Unlock()
		fn()
		return
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mx.Lock()
		if d.stopped || gen != d.gen {
			d.mx.Unlock()
			return
		}
		d.timer = nil
		d.mx.Unlock()
		fn()
	})
	d.mx.Unlock()
}

// Pending returns true if a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mx.Lock()
	defer d.mx.Unlock()

	return d.timer != nil
}

// Cancel drops the pending call if any.
func (d *Debouncer) Cancel() {
	d.mx.Lock()
	defer d.mx.Unlock()

	d.cancelLocked()
}

// Stop cancels the pending call and ignores subsequent triggers.
func (d *Debouncer) Stop() {
	d.mx.Lock()
	defer d.mx.Unlock()

	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
