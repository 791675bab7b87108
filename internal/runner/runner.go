// Package runner orchestrates loading and running a ROM.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Runner orchestrates the complete run workflow.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	output   io.Writer // destination of frame dumps
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		output:   os.Stdout,
	}
}

// Execute detects the system, loads the ROM and runs it in the selected
// frontend until the user quits, the cycle limit is reached or the machine
// halts.
func (r *Runner) Execute(ctx context.Context, opts options.Program) error {
	system, err := r.detector.Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	program, err := r.loader.Load(opts.Input, opts.MaxSize)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	backend, err := frontend.New(opts.Backend, frontend.Config{
		Title: filepath.Base(opts.Input),
		Scale: opts.Scale,
		Speed: opts.Speed,
	})
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}
	defer func() { _ = backend.Close() }()

	machine := vm.New(backend, backend, options.NewMachine(opts, r.logger)...)
	if err := machine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if controlled, ok := backend.(frontend.SpeedControlled); ok {
		controlled.ControlSpeed(machine)
	}

	r.printInfo(opts, system, len(program))

	err = backend.Run(ctx, func(ctx context.Context) error {
		return runMachine(ctx, machine, opts.Cycles)
	})
	r.logResult(machine, err)

	if opts.Dump {
		if _, dumpErr := fmt.Fprint(r.output, headless.Render(machine.Frame())); dumpErr != nil {
			return fmt.Errorf("writing frame dump: %w", dumpErr)
		}
	}
	return err
}

// runMachine runs the machine until the context is done or it halts. A
// non zero cycle limit stops the run after that many instructions.
func runMachine(ctx context.Context, machine *vm.Machine, cycles uint64) error {
	if cycles == 0 {
		return machine.Run(ctx)
	}

	for machine.Cycles() < cycles {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := machine.Step(); err != nil {
			return err
		}
	}
	return nil
}

// printInfo prints information about the ROM being run.
func (r *Runner) printInfo(opts options.Program, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	r.logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
		log.String("frontend", opts.Backend),
		log.Int("speed", int(opts.Speed)),
	)
}

// logResult logs the final machine state.
func (r *Runner) logResult(machine *vm.Machine, err error) {
	var execErr *vm.ExecutionError
	if errors.As(err, &execErr) {
		r.logger.Warn("Machine halted",
			log.Hex("pc", execErr.PC),
			log.Hex("opcode", uint16(execErr.Opcode)),
			log.String("instruction", vm.Mnemonic(execErr.Opcode)),
			log.Err(execErr.Err),
		)
	}

	r.logger.Debug("Execution stopped",
		log.Stringer("state", machine.State()),
		log.Hex("pc", machine.PC()),
		log.Int("cycles", int(machine.Cycles())),
	)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
