package vm

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// State is the execution state of a machine.
type State int

// Machine states.
const (
	Uninitialized State = iota // no program loaded
	Ready                      // program loaded, no instruction executed yet
	Running                    // executing instructions
	Halted                     // stopped by an execution error
)

var stateNames = map[State]string{
	Uninitialized: "uninitialized",
	Ready:         "ready",
	Running:       "running",
	Halted:        "halted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// State returns the execution state of the machine.
func (m *Machine) State() State {
	return m.state
}

// Err returns the error that halted the machine, or nil.
func (m *Machine) Err() error {
	return m.err
}

// Step executes a single instruction, paces the execution to the clock
// speed and ticks the timers. Once a step failed, the machine is halted and
// every further call returns the same *ExecutionError.
func (m *Machine) Step() error {
	switch m.state {
	case Halted:
		return m.err
	case Uninitialized:
		return m.halt(&ExecutionError{PC: m.pc, Err: ErrNoProgram})
	default:
	}
	m.state = Running

	pc := m.pc
	op, err := m.fetch()
	if err != nil {
		return m.halt(&ExecutionError{PC: pc, Err: err})
	}

	if m.logger != nil {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", uint16(op)),
			log.String("instruction", Mnemonic(op)))
	}

	if err := m.execute(op); err != nil {
		return m.halt(&ExecutionError{PC: pc, Opcode: op, Err: err})
	}
	m.cycles++

	m.pacer.Pace()
	m.delay.Tick()
	m.sound.Tick()
	return nil
}

// Run executes instructions until the context is done or an instruction
// fails. A cancelled context returns the context error and leaves the
// machine resumable.
func (m *Machine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
}

// fetch reads the big-endian opcode at the program counter.
func (m *Machine) fetch() (Opcode, error) {
	if int(m.pc)+OpcodeSize > MemorySize {
		return 0, fmt.Errorf("%w: fetch at $%04X", ErrMemoryBounds, m.pc)
	}
	return decodeOpcode(m.memory[m.pc], m.memory[m.pc+1]), nil
}

// halt stops the machine with the error and returns it.
func (m *Machine) halt(err *ExecutionError) error {
	m.state = Halted
	m.err = err
	return err
}
