package window

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrogolib/assert"
)

func TestWriteRGBA(t *testing.T) {
	var buf framebuffer.Buffer
	buf.DrawSprite(1, 0, []byte{0x80})

	dst := make([]byte, framebuffer.Size*4)
	writeRGBA(dst, buf.Frame())

	assert.Equal(t, []byte{BackgroundColor.R, BackgroundColor.G, BackgroundColor.B, BackgroundColor.A}, dst[0:4])
	assert.Equal(t, []byte{ForegroundColor.R, ForegroundColor.G, ForegroundColor.B, ForegroundColor.A}, dst[4:8])
}

func TestStatusText(t *testing.T) {
	text := statusText("pong.ch8", 700)
	assert.Equal(t, "pong.ch8  700 Hz  +/-: speed  F12: hide", text)
}

func TestAdjustSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speed    uint
		steps    int
		expected uint
	}{
		{"faster", 500, 1, 550},
		{"slower", 500, -1, 450},
		{"lower bound", 60, -1, SpeedStep},
		{"stays at lower bound", SpeedStep, -3, SpeedStep},
		{"unchanged", 700, 0, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adjustSpeed(tt.speed, tt.steps))
		})
	}
}
