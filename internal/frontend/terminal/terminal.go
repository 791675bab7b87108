// Package terminal provides a frontend rendering to an interactive terminal.
//
// Every pixel is drawn as two block characters to keep the aspect ratio.
// Terminals report key presses but no key releases, a key therefore counts
// as held for KeyHold after its last press event.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/term"
)

// KeyHold is the duration a key counts as pressed after a press event.
const KeyHold = 150 * time.Millisecond

// ErrNotTerminal is returned if stdin or stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("terminal frontend requires an interactive terminal")

const (
	pixelOn        = '█'
	pixelOff       = ' '
	charsPerPixel  = 2
	keyQueueLength = 16
)

type keyPress struct {
	key uint8
	at  time.Time
}

// Backend renders frames with tcell and reads the keypad from the keyboard.
type Backend struct {
	screen tcell.Screen
	style  tcell.Style
	now    func() time.Time

	mu        sync.Mutex
	lastPress [vm.KeyCount]time.Time

	presses   chan keyPress
	done      chan struct{}
	closeOnce sync.Once
}

// New initializes the terminal screen. Stdin and stdout have to be terminals.
func New() (*Backend, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	return newBackend(screen, time.Now)
}

// newBackend initializes the given screen.
func newBackend(screen tcell.Screen, now func() time.Time) (*Backend, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	return &Backend{
		screen:  screen,
		style:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
		now:     now,
		presses: make(chan keyPress, keyQueueLength),
		done:    make(chan struct{}),
	}, nil
}

// Clear blanks the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
	b.screen.Show()
}

// Draw renders the frame.
func (b *Backend) Draw(frame framebuffer.Frame) {
	for y := range framebuffer.Height {
		for x := range framebuffer.Width {
			r := pixelOff
			if frame[x+y*framebuffer.Width] != 0 {
				r = pixelOn
			}
			for i := range charsPerPixel {
				b.screen.SetContent(x*charsPerPixel+i, y, r, nil, b.style)
			}
		}
	}
	b.screen.Show()
}

// IsKeyPressed returns whether the key was pressed within KeyHold.
func (b *Backend) IsKeyPressed(key uint8) bool {
	if int(key) >= vm.KeyCount {
		return false
	}

	b.mu.Lock()
	last := b.lastPress[key]
	b.mu.Unlock()
	return !last.IsZero() && b.now().Sub(last) < KeyHold
}

// GetKey blocks until a key is pressed and returns it. Presses older than
// KeyHold are ignored. Returns 0 when the backend shuts down.
func (b *Backend) GetKey() uint8 {
	for {
		select {
		case press := <-b.presses:
			if b.now().Sub(press.at) < KeyHold {
				return press.key
			}
		case <-b.done:
			return 0
		}
	}
}

// Run reads keyboard events in the background and calls the loop on the
// calling goroutine. Escape or Ctrl+C cancel the context of the loop.
func (b *Backend) Run(ctx context.Context, loop func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go b.pollEvents(cancel)
	go func() {
		<-ctx.Done()
		b.shutdown()
	}()

	return loop(ctx)
}

// Close restores the terminal.
func (b *Backend) Close() error {
	b.shutdown()
	b.screen.Fini()
	return nil
}

// pollEvents handles terminal events until the screen is finalized or the
// user quits.
func (b *Backend) pollEvents(quit context.CancelFunc) {
	for {
		event := b.screen.PollEvent()
		switch ev := event.(type) {
		case nil:
			return

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				quit()
				return
			case tcell.KeyRune:
				if key, ok := keyFromRune(ev.Rune()); ok {
					b.press(key)
				}
			default:
			}

		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
}

// press records a key press event.
func (b *Backend) press(key uint8) {
	now := b.now()
	b.mu.Lock()
	b.lastPress[key] = now
	b.mu.Unlock()

	select {
	case b.presses <- keyPress{key: key, at: now}:
	default: // queue full, nobody is waiting for keys
	}
}

func (b *Backend) shutdown() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

// keyFromRune maps the hexadecimal digits 0-9 and a-f to keypad keys.
func keyFromRune(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 0xA, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 0xA, true
	default:
		return 0, false
	}
}
