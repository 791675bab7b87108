package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	tm := newTestMachine(t, nil)

	assert.Equal(t, Uninitialized, tm.State())
	assert.Equal(t, uint(DefaultClockSpeed), tm.ClockSpeed())
	assert.Equal(t, MaxProgramSize, tm.MaxProgramSize())

	for i, b := range fontSet {
		value, err := tm.ReadMemory(uint16(FontStart + i))
		assert.NoError(t, err)
		assert.Equal(t, b, value)
	}

	value, err := tm.ReadMemory(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), value)
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		options []Option
		err     error
	}{
		{"single instruction", 2, nil, nil},
		{"full memory", MaxProgramSize, nil, nil},
		{"empty", 0, nil, ErrEmptyProgram},
		{"too large", MaxProgramSize + 1, nil, ErrProgramTooLarge},
		{"limited size", 3072, []Option{WithMaxProgramSize(3072)}, nil},
		{"above limited size", 3073, []Option{WithMaxProgramSize(3072)}, ErrProgramTooLarge},
		{"invalid limit ignored", MaxProgramSize, []Option{WithMaxProgramSize(5000)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := newTestMachine(t, nil, tt.options...)
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = 0xAA
			}

			err := tm.LoadProgram(program)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.Equal(t, Uninitialized, tm.State())

				for address := ProgramStart; address <= MaxAddress; address++ {
					value, err := tm.ReadMemory(uint16(address))
					assert.NoError(t, err)
					assert.Equal(t, byte(0), value)
				}
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, Ready, tm.State())
			assert.Equal(t, uint16(ProgramStart), tm.PC())

			value, err := tm.ReadMemory(uint16(ProgramStart + tt.size - 1))
			assert.NoError(t, err)
			assert.Equal(t, byte(0xAA), value)
		})
	}
}

func TestLoadProgram_Twice(t *testing.T) {
	tm := newTestMachine(t, []uint16{0x6001})

	err := tm.LoadProgram(words(0x6102))
	assert.True(t, errors.Is(err, ErrProgramLoaded))

	value, err := tm.ReadMemory(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x60), value)
}

func TestReadMemory_OutOfBounds(t *testing.T) {
	tm := newTestMachine(t, nil)

	_, err := tm.ReadMemory(MaxAddress)
	assert.NoError(t, err)

	_, err = tm.ReadMemory(MemorySize)
	assert.True(t, errors.Is(err, ErrMemoryBounds))
}

func TestRegister_InvalidIndex(t *testing.T) {
	tm := newTestMachine(t, []uint16{0x6F42})
	tm.steps(t, 1)

	assert.Equal(t, uint8(0x42), tm.Register(0xF))
	assert.Equal(t, uint8(0), tm.Register(RegisterCount))
	assert.Equal(t, uint8(0x42), tm.Registers()[FlagRegister])
}

func TestSetClockSpeed(t *testing.T) {
	tm := newTestMachine(t, nil, WithClockSpeed(700))
	assert.Equal(t, uint(700), tm.ClockSpeed())

	tm.SetClockSpeed(1000)
	assert.Equal(t, uint(1000), tm.ClockSpeed())

	tm.SetClockSpeed(0)
	assert.Equal(t, uint(DefaultClockSpeed), tm.ClockSpeed())
}
