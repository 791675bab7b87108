// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Names of the selectable frontends.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Backends lists all frontend names.
var Backends = []string{BackendWindow, BackendTerminal, BackendHeadless}

// Default option values.
const (
	DefaultBackend = BackendWindow
	DefaultScale   = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"ROM file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Backend string `flag:"b" usage:"frontend: window, terminal, headless" default:"window"`
	System  string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Speed   uint   `flag:"speed" usage:"instructions per second" default:"500"`
	Scale   int    `flag:"scale" usage:"window pixel scale" default:"10"`
	MaxSize int    `flag:"maxsize" usage:"maximum ROM size in bytes" default:"3584"`
	Cycles  uint64 `flag:"cycles" usage:"stop after this many instructions"`
	Dump    bool   `flag:"dump" usage:"print the final frame as text"`
	Trace   bool   `flag:"trace" usage:"log every executed instruction"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
}

// New returns program options with default values for the given ROM file.
func New(input string) Program {
	return Program{
		Parameters: Parameters{Input: input},
		Flags: Flags{
			Backend: DefaultBackend,
			Speed:   vm.DefaultClockSpeed,
			Scale:   DefaultScale,
			MaxSize: vm.MaxProgramSize,
		},
	}
}

// NewMachine returns the machine options derived from the program options.
// The logger is used for instruction tracing if enabled.
func NewMachine(opts Program, logger *log.Logger) []vm.Option {
	machineOptions := []vm.Option{
		vm.WithClockSpeed(opts.Speed),
		vm.WithMaxProgramSize(opts.MaxSize),
	}
	if opts.Trace && logger != nil {
		machineOptions = append(machineOptions, vm.WithTrace(logger))
	}
	return machineOptions
}
