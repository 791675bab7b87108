// Package framebuffer implements the monochrome CHIP-8 display memory.
package framebuffer

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
	Size   = Width * Height
)

// SpriteWidth is the width in pixels of one sprite row byte.
const SpriteWidth = 8

// Frame is a snapshot of all pixels, indexed by x + y*Width.
// Every entry is either 0 or 1.
type Frame [Size]byte

// Pixel returns the pixel at the given coordinates, wrapping them to the screen.
func (f Frame) Pixel(x, y int) byte {
	return f[index(x, y)]
}

// Buffer is the framebuffer owned by the machine.
type Buffer struct {
	pixels Frame
}

// Clear turns all pixels off.
func (b *Buffer) Clear() {
	b.pixels = Frame{}
}

// Frame returns a copy of the current pixels.
func (b *Buffer) Frame() Frame {
	return b.pixels
}

// Pixel returns the pixel at the given coordinates, wrapping them to the screen.
func (b *Buffer) Pixel(x, y int) byte {
	return b.pixels.Pixel(x, y)
}

// DrawSprite XORs the sprite rows onto the buffer with its top left corner
// at x, y. Every row is one byte, the most significant bit is the leftmost
// pixel. Pixels that fall off an edge wrap around to the opposite edge.
// It returns whether any pixel was turned off by the draw.
func (b *Buffer) DrawSprite(x, y uint8, rows []byte) bool {
	collision := false

	for row, bits := range rows {
		for col := range SpriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}

			i := index(int(x)+col, int(y)+row)
			if b.pixels[i] == 1 {
				collision = true
			}
			b.pixels[i] ^= 1
		}
	}

	return collision
}

// index maps wrapped screen coordinates to a buffer index.
func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return x + y*Width
}
