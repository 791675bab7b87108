package vm

import (
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrogolib/assert"
)

type mockDisplay struct {
	clears int
	draws  int
	last   framebuffer.Frame
}

func (d *mockDisplay) Clear() {
	d.clears++
	d.last = framebuffer.Frame{}
}

func (d *mockDisplay) Draw(frame framebuffer.Frame) {
	d.draws++
	d.last = frame
}

type mockKeys struct {
	pressed  [KeyCount]bool
	next     uint8
	waits    int
	onGetKey func()
}

func (k *mockKeys) IsKeyPressed(key uint8) bool {
	return int(key) < KeyCount && k.pressed[key]
}

func (k *mockKeys) GetKey() uint8 {
	k.waits++
	if k.onGetKey != nil {
		k.onGetKey()
	}
	return k.next
}

// mockClock is a manual clock, sleeping advances the time instantly.
type mockClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	return c.now
}

func (c *mockClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type testMachine struct {
	*Machine
	display *mockDisplay
	keys    *mockKeys
	clock   *mockClock
}

// newTestMachine returns a machine running on a manual clock with the
// opcodes loaded as program.
func newTestMachine(t *testing.T, opcodes []uint16, options ...Option) *testMachine {
	t.Helper()

	tm := &testMachine{
		display: &mockDisplay{},
		keys:    &mockKeys{},
		clock:   newMockClock(),
	}
	options = append([]Option{WithClock(tm.clock.Now, tm.clock.Sleep)}, options...)
	tm.Machine = New(tm.display, tm.keys, options...)

	if len(opcodes) > 0 {
		assert.NoError(t, tm.LoadProgram(words(opcodes...)))
	}
	return tm
}

// steps executes n instructions that are expected to succeed.
func (tm *testMachine) steps(t *testing.T, n int) {
	t.Helper()
	for range n {
		assert.NoError(t, tm.Step())
	}
}

// words encodes opcodes as big-endian program bytes.
func words(opcodes ...uint16) []byte {
	data := make([]byte, 0, 2*len(opcodes))
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}
