// Package window provides a frontend rendering to a graphical window.
package window

import (
	"fmt"
	"image/color"

	"github.com/retroenv/retrochip8/internal/framebuffer"
)

// DefaultScale is the default number of window pixels per CHIP-8 pixel.
const DefaultScale = 10

// Colors of set and cleared pixels.
var (
	ForegroundColor = color.RGBA{R: 0xE0, G: 0xF0, B: 0xE0, A: 0xFF}
	BackgroundColor = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF}
)

// Config configures the window.
type Config struct {
	Title string // window title and ROM name shown in the status bar
	Scale int    // window pixels per CHIP-8 pixel, DefaultScale if not positive
	Speed uint   // clock speed shown in the status bar
}

// writeRGBA converts the frame to RGBA pixels.
// The destination needs to hold 4 bytes per pixel.
func writeRGBA(dst []byte, frame framebuffer.Frame) {
	for i, p := range frame {
		c := BackgroundColor
		if p != 0 {
			c = ForegroundColor
		}
		offset := i * 4
		dst[offset] = c.R
		dst[offset+1] = c.G
		dst[offset+2] = c.B
		dst[offset+3] = c.A
	}
}

// SpeedStep is the clock speed change in Hz of one +/- key press.
const SpeedStep = 50

// statusText returns the status bar line.
func statusText(title string, speed uint) string {
	return fmt.Sprintf("%s  %d Hz  +/-: speed  F12: hide", title, speed)
}

// adjustSpeed changes the speed by steps of SpeedStep, never going below
// SpeedStep.
func adjustSpeed(speed uint, steps int) uint {
	adjusted := int(speed) + steps*SpeedStep
	if adjusted < SpeedStep {
		return SpeedStep
	}
	return uint(adjusted)
}
