//go:build headless

package window

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrUnavailable is returned when the binary was built without window support.
var ErrUnavailable = errors.New("window frontend not available in headless build")

// Backend is not available in headless builds.
type Backend struct{}

// New returns ErrUnavailable.
func New(Config) (*Backend, error) {
	return nil, ErrUnavailable
}

func (b *Backend) Clear() {}
func (b *Backend) Draw(framebuffer.Frame) {}
func (b *Backend) IsKeyPressed(uint8) bool { return false }
func (b *Backend) GetKey() uint8 { return 0 }
func (b *Backend) Close() error { return nil }
func (b *Backend) ControlSpeed(vm.ClockControl) {}
func (b *Backend) Run(context.Context, func(context.Context) error) error {
	return ErrUnavailable
}
