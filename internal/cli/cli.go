// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Only one ROM file can be run, got %d arguments", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Backend = strings.ToLower(opts.Backend)
	if !slices.Contains(options.Backends, opts.Backend) {
		return fmt.Errorf("unsupported backend: %s. Valid options: %s",
			opts.Backend, strings.Join(options.Backends, ", "))
	}

	opts.System = strings.ToLower(opts.System)

	if opts.Speed == 0 {
		opts.Speed = vm.DefaultClockSpeed
	}

	if opts.MaxSize < 1 || opts.MaxSize > vm.MaxProgramSize {
		return fmt.Errorf("invalid maximum ROM size %d, valid range is 1-%d", opts.MaxSize, vm.MaxProgramSize)
	}

	if opts.Scale < 1 {
		return fmt.Errorf("invalid window scale %d, must be at least 1", opts.Scale)
	}

	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Backend, "b", options.DefaultBackend, "frontend to use (window/terminal/headless)")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.UintVar(&opts.Speed, "speed", vm.DefaultClockSpeed, "instructions executed per second, 0 uses the default")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "pixel scale of the window frontend")
	flags.IntVar(&opts.MaxSize, "maxsize", vm.MaxProgramSize, "maximum ROM size in bytes")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after executing this many instructions, 0 runs until quit")
	flags.BoolVar(&opts.Dump, "dump", false, "print the final frame as text after the run")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
