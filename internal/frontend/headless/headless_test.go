package headless

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrogolib/assert"
)

func TestBackend_Display(t *testing.T) {
	b := New()

	var buf framebuffer.Buffer
	buf.DrawSprite(1, 2, []byte{0x80})
	b.Draw(buf.Frame())

	assert.Equal(t, 1, b.Draws())
	assert.Equal(t, byte(1), b.Frame().Pixel(1, 2))

	b.Clear()
	assert.Equal(t, 1, b.Clears())
	assert.Equal(t, framebuffer.Frame{}, b.Frame())
}

func TestBackend_KeyState(t *testing.T) {
	b := New()
	assert.False(t, b.IsKeyPressed(0xA))

	b.SetKey(0xA, true)
	assert.True(t, b.IsKeyPressed(0xA))
	assert.False(t, b.IsKeyPressed(0xB))
	assert.False(t, b.IsKeyPressed(0x10))

	b.SetKey(0xA, false)
	assert.False(t, b.IsKeyPressed(0xA))
}

func TestBackend_ScriptedKeys(t *testing.T) {
	b := New(3, 0x1C)

	assert.Equal(t, uint8(3), b.GetKey())
	assert.Equal(t, uint8(0xC), b.GetKey())

	b.PushKeys(7)
	assert.Equal(t, uint8(7), b.GetKey())
}

func TestBackend_GetKeyWaitsForPush(t *testing.T) {
	b := New()
	keys := make(chan uint8)
	go func() {
		keys <- b.GetKey()
	}()

	time.Sleep(10 * time.Millisecond)
	b.PushKeys(9)

	select {
	case key := <-keys:
		assert.Equal(t, uint8(9), key)
	case <-time.After(time.Second):
		t.Fatal("GetKey did not return after a key was pushed")
	}
}

func TestBackend_RunReleasesKeyWait(t *testing.T) {
	b := New()
	ctx, cancel := context.WithCancel(context.Background())

	err := b.Run(ctx, func(ctx context.Context) error {
		cancel()
		key := b.GetKey()
		assert.Equal(t, uint8(0), key)
		return ctx.Err()
	})
	assert.True(t, errors.Is(err, context.Canceled))

	// a shut down backend never blocks
	assert.NoError(t, b.Close())
	assert.Equal(t, uint8(0), b.GetKey())
}

func TestRender(t *testing.T) {
	var buf framebuffer.Buffer
	buf.DrawSprite(0, 0, []byte{0xA0})
	buf.DrawSprite(63, 31, []byte{0x80})

	lines := strings.Split(strings.TrimSuffix(Render(buf.Frame()), "\n"), "\n")
	assert.Len(t, lines, framebuffer.Height)
	assert.Equal(t, "#.#"+strings.Repeat(".", 61), lines[0])
	assert.Equal(t, strings.Repeat(".", 63)+"#", lines[31])
	assert.Equal(t, strings.Repeat(".", 64), lines[1])
}
