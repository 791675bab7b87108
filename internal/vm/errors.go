package vm

import (
	"errors"
	"fmt"
)

// Errors returned when loading a program.
var (
	ErrEmptyProgram    = errors.New("program is empty")
	ErrProgramTooLarge = errors.New("program exceeds maximum size")
	ErrProgramLoaded   = errors.New("program already loaded")
)

// Errors that halt the machine.
var (
	ErrNoProgram      = errors.New("no program loaded")
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrMemoryBounds   = errors.New("memory access out of bounds")
)

// ExecutionError is the error that halted the machine, together with the
// program counter and the opcode that caused it.
type ExecutionError struct {
	PC     uint16
	Opcode Opcode
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing opcode %04X at $%03X: %s", uint16(e.Opcode), e.PC, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
