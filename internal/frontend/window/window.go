//go:build !headless

package window

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/image/font/basicfont"
)

const (
	statusBarHeight = 18
	keyQueueLength  = 16
)

// PressTimeout is the age after which a queued key press no longer
// satisfies a key wait.
const PressTimeout = 100 * time.Millisecond

type keyPress struct {
	key uint8
	at  time.Time
}

// Backend shows the frames in an ebiten window and reads the keypad from
// the keyboard. Ebiten needs the main goroutine, Run therefore executes the
// machine loop on a separate goroutine.
type Backend struct {
	cfg Config
	ctx context.Context

	mu         sync.Mutex
	frame      framebuffer.Frame
	pressed    [vm.KeyCount]bool
	showStatus bool
	clock      vm.ClockControl

	image  *ebiten.Image
	pixels []byte

	now       func() time.Time
	presses   chan keyPress
	done      chan struct{}
	closeOnce sync.Once
}

// New returns a window backend. The window opens when Run is called.
func New(cfg Config) (*Backend, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	return &Backend{
		cfg:     cfg,
		pixels:  make([]byte, framebuffer.Size*4),
		now:     time.Now,
		presses: make(chan keyPress, keyQueueLength),
		done:    make(chan struct{}),
	}, nil
}

// Clear blanks the window.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = framebuffer.Frame{}
}

// Draw sets the frame shown on the next window refresh.
func (b *Backend) Draw(frame framebuffer.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = frame
}

// IsKeyPressed returns whether the mapped keyboard key is held down.
func (b *Backend) IsKeyPressed(key uint8) bool {
	if int(key) >= vm.KeyCount {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pressed[key]
}

// GetKey blocks until a mapped key is pressed and returns it. Presses
// older than PressTimeout are ignored. Returns 0 when the window closes.
func (b *Backend) GetKey() uint8 {
	for {
		select {
		case press := <-b.presses:
			if b.now().Sub(press.at) < PressTimeout {
				return press.key
			}
		case <-b.done:
			return 0
		}
	}
}

// ControlSpeed lets the +/- keys change the clock speed of the machine.
// The status bar shows the current speed of the machine.
func (b *Backend) ControlSpeed(clock vm.ClockControl) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clock = clock
}

// Run opens the window and runs the loop on a separate goroutine until the
// loop returns or the window is closed.
func (b *Backend) Run(ctx context.Context, loop func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	b.ctx = ctx

	result := make(chan error, 1)
	go func() {
		err := loop(ctx)
		cancel()
		result <- err
	}()
	go func() {
		<-ctx.Done()
		b.shutdown()
	}()

	ebiten.SetWindowSize(framebuffer.Width*b.cfg.Scale, framebuffer.Height*b.cfg.Scale)
	ebiten.SetWindowTitle(b.cfg.Title)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(b); err != nil {
		cancel()
		<-result
		return fmt.Errorf("running window: %w", err)
	}

	// window closed by the user
	cancel()
	return <-result
}

// Close releases blocked key waits.
func (b *Backend) Close() error {
	b.shutdown()
	return nil
}

// Update implements ebiten.Game.
func (b *Backend) Update() error {
	if b.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	b.mu.Lock()
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		b.showStatus = !b.showStatus
	}
	for key, mapped := range keyMap {
		b.pressed[key] = anyKeyPressed(mapped)
	}
	clock := b.clock
	b.mu.Unlock()

	if clock != nil {
		switch {
		case anyKeyJustPressed(fasterKeys):
			b.changeSpeed(clock, 1)
		case anyKeyJustPressed(slowerKeys):
			b.changeSpeed(clock, -1)
		}
	}

	for key, mapped := range keyMap {
		if anyKeyJustPressed(mapped) {
			b.queuePress(uint8(key))
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (b *Backend) Draw(screen *ebiten.Image) {
	if b.image == nil {
		b.image = ebiten.NewImage(framebuffer.Width, framebuffer.Height)
	}

	b.mu.Lock()
	writeRGBA(b.pixels, b.frame)
	showStatus := b.showStatus
	b.mu.Unlock()

	b.image.WritePixels(b.pixels)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.cfg.Scale), float64(b.cfg.Scale))
	screen.DrawImage(b.image, op)

	if showStatus {
		b.drawStatusBar(screen)
	}
}

// changeSpeed adjusts the clock speed of the machine by steps.
func (b *Backend) changeSpeed(clock vm.ClockControl, steps int) {
	clock.SetClockSpeed(adjustSpeed(clock.ClockSpeed(), steps))
}

// speed returns the clock speed shown in the status bar.
func (b *Backend) speed() uint {
	b.mu.Lock()
	clock := b.clock
	b.mu.Unlock()
	if clock != nil {
		return clock.ClockSpeed()
	}
	return b.cfg.Speed
}

// Layout implements ebiten.Game.
func (b *Backend) Layout(_, _ int) (int, int) {
	return framebuffer.Width * b.cfg.Scale, framebuffer.Height * b.cfg.Scale
}

func (b *Backend) drawStatusBar(screen *ebiten.Image) {
	width := framebuffer.Width * b.cfg.Scale
	height := framebuffer.Height * b.cfg.Scale
	if statusBarHeight >= height {
		return
	}

	y := height - statusBarHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(width), statusBarHeight, color.RGBA{A: 180})
	text.Draw(screen, statusText(b.cfg.Title, b.speed()), basicfont.Face7x13, 6, y+13, ForegroundColor)
}

// queuePress records a key press for a pending or upcoming key wait.
func (b *Backend) queuePress(key uint8) {
	press := keyPress{key: key, at: b.now()}
	select {
	case b.presses <- press:
		return
	default:
	}

	// queue full of presses nobody waited for, replace the oldest
	select {
	case <-b.presses:
	default:
	}
	select {
	case b.presses <- press:
	default:
	}
}

func (b *Backend) shutdown() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
