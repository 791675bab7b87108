// Package pacer throttles an execution loop to a fixed instruction rate.
package pacer

import (
	"sync"
	"time"
)

// DefaultSpeed is the instruction rate in Hz used when no speed is configured.
const DefaultSpeed = 500

// Pacer makes every call to Pace take at least one instruction interval of
// wall clock time. Cycles that ran longer than the interval are not repaid.
// The speed may be changed from other goroutines while Pace is running.
type Pacer struct {
	mu       sync.Mutex
	speed    uint
	interval time.Duration

	last    time.Time
	hasLast bool

	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a pacer for the given speed in Hz, 0 selects DefaultSpeed.
// Nil now and sleep functions default to time.Now and time.Sleep.
func New(speed uint, now func() time.Time, sleep func(time.Duration)) *Pacer {
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}

	p := &Pacer{
		now:   now,
		sleep: sleep,
	}
	p.SetSpeed(speed)
	return p
}

// SetSpeed changes the instruction rate, 0 resets it to DefaultSpeed.
func (p *Pacer) SetSpeed(speed uint) {
	if speed == 0 {
		speed = DefaultSpeed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = speed
	p.interval = time.Second / time.Duration(speed)
}

// Speed returns the instruction rate in Hz.
func (p *Pacer) Speed() uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Interval returns the minimum duration of one instruction cycle.
func (p *Pacer) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Pace blocks until one interval passed since the previous call.
// The first call after creation or Reset only records the current time.
func (p *Pacer) Pace() {
	interval := p.Interval()
	now := p.now()
	if p.hasLast {
		elapsed := now.Sub(p.last)
		if elapsed < interval {
			p.sleep(interval - elapsed)
			now = p.now()
		}
	}

	p.last = now
	p.hasLast = true
}

// Reset forgets the timestamp of the previous instruction.
func (p *Pacer) Reset() {
	p.hasLast = false
}
