package vm

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/framebuffer"
	"github.com/retroenv/retrochip8/internal/pacer"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the complete state of one CHIP-8 virtual machine.
// A machine is owned by a single goroutine and is not safe for concurrent use.
type Machine struct {
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16

	stack [StackSize]uint16
	sp    int

	memory [MemorySize]byte
	screen framebuffer.Buffer

	delay *timer.Timer
	sound *timer.Timer
	pacer *pacer.Pacer

	display Display
	keys    KeyInput
	random  func() byte
	logger  *log.Logger // instruction trace, nil if disabled

	maxProgramSize int
	state          State
	err            error
	cycles         uint64
}

type config struct {
	clockSpeed     uint
	maxProgramSize int
	random         func() byte
	now            func() time.Time
	sleep          func(time.Duration)
	logger         *log.Logger
}

// Option configures a machine on creation.
type Option func(*config)

// WithClockSpeed sets the instruction rate in Hz, 0 selects DefaultClockSpeed.
func WithClockSpeed(speed uint) Option {
	return func(c *config) {
		c.clockSpeed = speed
	}
}

// WithMaxProgramSize limits the size of loadable programs. Values outside
// of 1..MaxProgramSize are ignored.
func WithMaxProgramSize(size int) Option {
	return func(c *config) {
		if size > 0 && size <= MaxProgramSize {
			c.maxProgramSize = size
		}
	}
}

// WithRandom sets the source of random bytes used by the CXNN opcode.
func WithRandom(random func() byte) Option {
	return func(c *config) {
		c.random = random
	}
}

// WithClock sets the functions used to read the time and to sleep,
// shared by the clock pacer and the timers.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(c *config) {
		c.now = now
		c.sleep = sleep
	}
}

// WithTrace logs every executed instruction at debug level to the logger.
func WithTrace(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New returns a machine with cleared registers, memory and framebuffer and
// the font set loaded. Display and keys must not be nil.
func New(display Display, keys KeyInput, options ...Option) *Machine {
	cfg := config{
		maxProgramSize: MaxProgramSize,
		random: func() byte {
			return byte(rand.Uint32())
		},
	}
	for _, option := range options {
		option(&cfg)
	}

	m := &Machine{
		delay:          timer.New(cfg.now),
		sound:          timer.New(cfg.now),
		pacer:          pacer.New(cfg.clockSpeed, cfg.now, cfg.sleep),
		display:        display,
		keys:           keys,
		random:         cfg.random,
		logger:         cfg.logger,
		maxProgramSize: cfg.maxProgramSize,
		state:          Uninitialized,
	}
	copy(m.memory[FontStart:], fontSet[:])
	return m
}

// LoadProgram copies the program into memory at ProgramStart and prepares
// the machine for execution. On error the machine is left unchanged.
func (m *Machine) LoadProgram(program []byte) error {
	if m.state != Uninitialized {
		return ErrProgramLoaded
	}
	if len(program) == 0 {
		return ErrEmptyProgram
	}
	if len(program) > m.maxProgramSize {
		return fmt.Errorf("%w: %d bytes, %d allowed", ErrProgramTooLarge, len(program), m.maxProgramSize)
	}

	copy(m.memory[ProgramStart:], program)
	m.pc = ProgramStart
	m.state = Ready
	return nil
}

// MaxProgramSize returns the largest program size accepted by LoadProgram.
func (m *Machine) MaxProgramSize() int {
	return m.maxProgramSize
}

// SetClockSpeed changes the instruction rate in Hz, 0 resets it to DefaultClockSpeed.
// It may be called from another goroutine while Run executes.
func (m *Machine) SetClockSpeed(speed uint) {
	m.pacer.SetSpeed(speed)
}

// ClockSpeed returns the instruction rate in Hz.
func (m *Machine) ClockSpeed() uint {
	return m.pacer.Speed()
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vx, 0 for an invalid index.
func (m *Machine) Register(x uint8) uint8 {
	if int(x) >= RegisterCount {
		return 0
	}
	return m.registers[x]
}

// Registers returns a copy of all registers.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.registers
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: address $%04X", ErrMemoryBounds, address)
	}
	return m.memory[address], nil
}

// Frame returns a copy of the framebuffer.
func (m *Machine) Frame() framebuffer.Frame {
	return m.screen.Frame()
}

// StackDepth returns the number of return addresses on the stack.
func (m *Machine) StackDepth() int {
	return m.sp
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delay.Value()
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.sound.Value()
}

// Cycles returns the number of executed instructions.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// memoryRange returns the memory slice of length n starting at address.
func (m *Machine) memoryRange(address uint16, n int) ([]byte, error) {
	end := int(address) + n
	if end > MemorySize {
		return nil, fmt.Errorf("%w: %d bytes at $%04X", ErrMemoryBounds, n, address)
	}
	return m.memory[address:end], nil
}

// push stores a return address on the stack.
func (m *Machine) push(address uint16) error {
	if m.sp >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = address
	m.sp++
	return nil
}

// pop removes the most recent return address from the stack.
func (m *Machine) pop() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.stack[m.sp], nil
}
