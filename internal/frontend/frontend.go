// Package frontend selects the host adapter that displays the framebuffer
// and provides the keypad state to the machine.
package frontend

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Backend is a frontend that implements the display and keypad of the
// machine and owns the host event loop.
type Backend interface {
	vm.Display
	vm.KeyInput

	// Run calls the loop with a context that is cancelled when the user
	// quits and returns the loop result.
	Run(ctx context.Context, loop func(ctx context.Context) error) error
	// Close releases the host resources.
	Close() error
}

// SpeedControlled is implemented by frontends that let the user change
// the clock speed while the machine runs.
type SpeedControlled interface {
	ControlSpeed(clock vm.ClockControl)
}

// Config contains the settings of all frontends.
type Config struct {
	Title string // ROM name
	Scale int    // window pixel scale
	Speed uint   // clock speed in Hz
}

// New returns the frontend with the given name.
func New(name string, cfg Config) (Backend, error) {
	switch strings.ToLower(name) {
	case options.BackendWindow:
		b, err := window.New(window.Config{
			Title: cfg.Title,
			Scale: cfg.Scale,
			Speed: cfg.Speed,
		})
		if err != nil {
			return nil, fmt.Errorf("creating window frontend: %w", err)
		}
		return b, nil

	case options.BackendTerminal:
		b, err := terminal.New()
		if err != nil {
			return nil, fmt.Errorf("creating terminal frontend: %w", err)
		}
		return b, nil

	case options.BackendHeadless:
		return headless.New(), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}
