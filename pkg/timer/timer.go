// Package timer implements the writing session countdown. It is driven by
// explicit Tick calls so the owner decides where the one-second clock lives.
package timer

import (
	"fmt"
	"sync"
	"time"
)

// DefaultDuration is the countdown length when none is configured.
const DefaultDuration = 15 * time.Minute

const (
	step        = 5 * time.Minute
	maxDuration = 45 * time.Minute
)

// State is the countdown phase.
type State int

const (
	Idle State = iota
	Running
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Timer counts down in whole seconds. It is safe for concurrent use.
type Timer struct {
	mu        sync.Mutex
	duration  time.Duration
	remaining time.Duration
	state     State
}

// New returns an idle timer set to d, or DefaultDuration when d <= 0.
func New(d time.Duration) *Timer {
	if d <= 0 {
		d = DefaultDuration
	}
	d = d.Truncate(time.Second)
	return &Timer{duration: d, remaining: d}
}

// Tick advances a running timer by one second. It reports whether the timer
// expired on this tick.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Running {
		return false
	}
	if t.remaining <= time.Second {
		t.remaining = 0
		t.state = Expired
		return true
	}
	t.remaining -= time.Second
	return false
}

// Toggle starts or pauses the countdown. Starting with nothing left restarts
// from the full duration.
func (t *Timer) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.state == Running:
		t.state = Idle
	case t.remaining == 0:
		t.remaining = t.duration
		t.state = Running
	default:
		t.state = Running
	}
}

// Reset returns to the full duration and stops.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = t.duration
	t.state = Idle
}

// Adjust nudges the remaining time by delta rounded to five minute steps while
// the timer is not running. The result is clamped to [0, 45m].
func (t *Timer) Adjust(delta time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running || delta == 0 {
		return
	}
	steps := delta / step
	if steps == 0 {
		if delta > 0 {
			steps = 1
		} else {
			steps = -1
		}
	}
	next := (t.remaining/step + steps) * step
	if next < 0 {
		next = 0
	}
	if next > maxDuration {
		next = maxDuration
	}
	t.remaining = next
	if t.state == Expired && next > 0 {
		t.state = Idle
	}
}

// Remaining is the time left on the clock.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// State reports the current phase.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Duration is the configured full length.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// String renders the remaining time as m:ss.
func (t *Timer) String() string {
	return Format(t.Remaining())
}

// Format renders d as m:ss.
func Format(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
