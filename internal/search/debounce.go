// Package search implements the autocomplete inputs: a debounced remote
// lookup for schools and a synchronous prefix filter for companies.
package search

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a remote lookup is issued.
const DefaultDelay = 500 * time.Millisecond

// State is the debouncer's timer state.
type State int

const (
	// Idle means no timer is armed.
	Idle State = iota
	// Pending means a timer is armed and has not fired.
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Debouncer holds at most one armed timer. Every arm or cancel advances a
// sequence number; work started for an older number is stale.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any pending call and arms fn to run once the delay elapses
// without another Trigger or Cancel. fn receives the sequence number of this
// arm. It returns that number, or 0 after Stop.
func (d *Debouncer) Trigger(fn func(seq uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return 0
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn(seq)
	})
	return seq
}

// Cancel disarms the pending timer and marks any in-flight work stale.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels and refuses further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Current reports whether seq belongs to the latest arm and the debouncer is
// still running.
func (d *Debouncer) Current(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && seq == d.seq
}

// State reports whether a timer is armed.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		return Pending
	}
	return Idle
}
