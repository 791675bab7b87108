package pacer

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

// fakeClock advances its time when sleeping so that the pacer observes the sleep.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestNew_Speed(t *testing.T) {
	tests := []struct {
		name     string
		speed    uint
		want     uint
		interval time.Duration
	}{
		{"default on zero", 0, DefaultSpeed, 2 * time.Millisecond},
		{"custom", 1000, 1000, time.Millisecond},
		{"slow", 60, 60, time.Second / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.speed, nil, nil)
			assert.Equal(t, tt.want, p.Speed())
			assert.Equal(t, tt.interval, p.Interval())
		})
	}
}

func TestPacer_SleepsRemainder(t *testing.T) {
	clock := newFakeClock()
	p := New(500, clock.Now, clock.Sleep)

	p.Pace()
	assert.Empty(t, clock.sleeps)

	clock.now = clock.now.Add(500 * time.Microsecond)
	p.Pace()
	assert.Len(t, clock.sleeps, 1)
	assert.Equal(t, 1500*time.Microsecond, clock.sleeps[0])

	// the recorded timestamp includes the sleep, so an instant call sleeps a full interval
	p.Pace()
	assert.Len(t, clock.sleeps, 2)
	assert.Equal(t, 2*time.Millisecond, clock.sleeps[1])
}

func TestPacer_NoCatchUp(t *testing.T) {
	clock := newFakeClock()
	p := New(500, clock.Now, clock.Sleep)

	p.Pace()
	clock.now = clock.now.Add(10 * time.Millisecond)
	p.Pace()
	assert.Empty(t, clock.sleeps)

	clock.now = clock.now.Add(2 * time.Millisecond)
	p.Pace()
	assert.Empty(t, clock.sleeps)

	clock.now = clock.now.Add(time.Millisecond)
	p.Pace()
	assert.Len(t, clock.sleeps, 1)
	assert.Equal(t, time.Millisecond, clock.sleeps[0])
}

func TestPacer_SetSpeedLive(t *testing.T) {
	clock := newFakeClock()
	p := New(500, clock.Now, clock.Sleep)
	p.Pace()

	p.SetSpeed(100)
	assert.Equal(t, uint(100), p.Speed())
	p.Pace()
	assert.Equal(t, 10*time.Millisecond, clock.sleeps[0])

	p.SetSpeed(0)
	assert.Equal(t, uint(DefaultSpeed), p.Speed())
}

func TestPacer_Reset(t *testing.T) {
	clock := newFakeClock()
	p := New(500, clock.Now, clock.Sleep)
	p.Pace()
	p.Reset()
	p.Pace()
	assert.Empty(t, clock.sleeps)
}

func TestPacer_SetSpeedWhilePacing(t *testing.T) {
	p := New(1000, nil, func(time.Duration) {})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 100 {
			p.SetSpeed(uint(100 + i))
		}
	}()

	for range 100 {
		p.Pace()
	}
	<-done
	assert.Equal(t, uint(199), p.Speed())
	assert.Equal(t, time.Second/199, p.Interval())
}
