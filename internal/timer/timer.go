// Package timer implements the CHIP-8 countdown timers.
// The delay and sound timers count down at 60 Hz of wall clock time,
// independent of the instruction rate of the virtual machine.
package timer

import "time"

// Frequency is the rate in Hz at which a running timer decrements.
const Frequency = 60

// Period is the minimum wall clock time between two decrements.
const Period = time.Second / Frequency

// Timer is an 8-bit countdown value driven by wall clock time.
// The zero value is not usable, use New.
type Timer struct {
	value        uint8
	running      bool
	lastDecrease time.Time
	now          func() time.Time
}

// New returns an idle timer. The now function is used to read the current
// time, passing nil uses time.Now.
func New(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{
		now: now,
	}
}

// Start sets the count to value and starts counting down from the current time.
// Starting with 0 leaves the timer idle.
func (t *Timer) Start(value uint8) {
	t.value = value
	t.running = value != 0
	if t.running {
		t.lastDecrease = t.now()
	}
}

// Tick decrements the count by one if the timer is running and at least
// one period elapsed since the last decrement.
func (t *Timer) Tick() {
	if !t.running {
		return
	}

	now := t.now()
	if now.Sub(t.lastDecrease) < Period {
		return
	}

	t.value--
	t.lastDecrease = now
	if t.value == 0 {
		t.running = false
	}
}

// Value returns the current count.
func (t *Timer) Value() uint8 {
	return t.value
}

// Active returns whether the count is not zero.
func (t *Timer) Active() bool {
	return t.running
}
