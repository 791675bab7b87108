package vm

import "github.com/retroenv/retrochip8/internal/framebuffer"

// Display presents the framebuffer of the machine.
// Implementations must not block for an unbounded time.
type Display interface {
	// Clear blanks the output.
	Clear()
	// Draw presents the full frame. The frame is a copy owned by the callee.
	Draw(frame framebuffer.Frame)
}

// KeyInput provides the state of the hexadecimal keypad.
type KeyInput interface {
	// IsKeyPressed returns whether the key 0x0-0xF is currently held down.
	IsKeyPressed(key uint8) bool
	// GetKey blocks until one of the 16 keys is pressed and returns it.
	GetKey() uint8
}

// ClockControl changes the instruction rate of a running machine.
type ClockControl interface {
	ClockSpeed() uint
	SetClockSpeed(speed uint)
}
