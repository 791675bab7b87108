// Package headless provides a frontend without any host display or keyboard.
// It records the drawn frames, answers key queries from a settable key state
// and serves key waits from a scripted key queue. It is used for scripted
// runs and tests.
package headless

import (
	"context"
	"strings"
	"sync"

	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Pixel characters used by Render.
const (
	PixelOn  = '#'
	PixelOff = '.'
)

// Backend is a frontend that keeps all output in memory.
type Backend struct {
	mu      sync.Mutex
	clears  int
	draws   int
	frame   framebuffer.Frame
	pressed [vm.KeyCount]bool
	queue   []uint8

	queued    chan struct{} // signals a pushed key
	done      chan struct{} // closed on shutdown
	closeOnce sync.Once
}

// New returns a headless backend that serves the given keys to key waits
// in order.
func New(keys ...uint8) *Backend {
	b := &Backend{
		queued: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	b.PushKeys(keys...)
	return b
}

// Clear blanks the recorded frame.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clears++
	b.frame = framebuffer.Frame{}
}

// Draw records the frame.
func (b *Backend) Draw(frame framebuffer.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draws++
	b.frame = frame
}

// IsKeyPressed returns the key state set by SetKey.
func (b *Backend) IsKeyPressed(key uint8) bool {
	if int(key) >= vm.KeyCount {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pressed[key]
}

// GetKey returns the next scripted key. If the queue is empty it blocks
// until a key is pushed or the backend shuts down, which returns key 0.
func (b *Backend) GetKey() uint8 {
	for {
		b.mu.Lock()
		if len(b.queue) > 0 {
			key := b.queue[0]
			b.queue = b.queue[1:]
			b.mu.Unlock()
			return key
		}
		b.mu.Unlock()

		select {
		case <-b.queued:
		case <-b.done:
			return 0
		}
	}
}

// SetKey sets the state of a key as returned by IsKeyPressed.
func (b *Backend) SetKey(key uint8, pressed bool) {
	if int(key) >= vm.KeyCount {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pressed[key] = pressed
}

// PushKeys appends keys to the queue served by GetKey.
func (b *Backend) PushKeys(keys ...uint8) {
	if len(keys) == 0 {
		return
	}

	b.mu.Lock()
	for _, key := range keys {
		b.queue = append(b.queue, key&0xF)
	}
	b.mu.Unlock()

	select {
	case b.queued <- struct{}{}:
	default:
	}
}

// Run calls the loop on the calling goroutine. Key waits are released once
// the context is done.
func (b *Backend) Run(ctx context.Context, loop func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		b.shutdown()
	}()

	return loop(ctx)
}

// Close releases blocked key waits.
func (b *Backend) Close() error {
	b.shutdown()
	return nil
}

// Clears returns the number of Clear calls.
func (b *Backend) Clears() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clears
}

// Draws returns the number of Draw calls.
func (b *Backend) Draws() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draws
}

// Frame returns the last drawn frame.
func (b *Backend) Frame() framebuffer.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

func (b *Backend) shutdown() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

// Render returns the frame as text, one line per row with PixelOn for set
// and PixelOff for cleared pixels.
func Render(frame framebuffer.Frame) string {
	var sb strings.Builder
	sb.Grow(framebuffer.Height * (framebuffer.Width + 1))

	for y := range framebuffer.Height {
		for x := range framebuffer.Width {
			if frame[x+y*framebuffer.Width] != 0 {
				sb.WriteByte(PixelOn)
			} else {
				sb.WriteByte(PixelOff)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
