package vm

import "github.com/retroenv/retrochip8/internal/pacer"

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where programs are loaded and start execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits between ProgramStart and MaxAddress.
	MaxProgramSize = MaxAddress - ProgramStart + 1

	// FontStart is the memory address of the built-in hexadecimal font set.
	FontStart = 0x050
)

// CPU constants.
const (
	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, the register written by flag setting opcodes.
	FlagRegister = 0xF

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// OpcodeSize is the size of one instruction in bytes.
	OpcodeSize = 2

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16

	// DefaultClockSpeed is the default instruction rate in Hz.
	DefaultClockSpeed = pacer.DefaultSpeed
)
