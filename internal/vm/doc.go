// Package vm implements the CHIP-8 virtual machine.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted instruction set from the 1970s designed for
// simple games. The machine state consists of:
//   - 16 general-purpose 8-bit registers V0-VF, VF doubling as flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a stack of 16 return addresses
//   - 4KB of memory
//   - a 64x32 monochrome framebuffer
//   - a delay and a sound timer counting down at 60 Hz
//
// # Memory Layout
//
//	0x000-0x1FF: Interpreter area, the font set is stored at FontStart
//	0x200-0xFFF: Program and data area
//
// # Execution
//
// Every call to Machine.Step fetches the big-endian instruction at the
// program counter, executes it, paces the loop to the configured clock
// speed and ticks both timers. Fatal conditions halt the machine for good.
//
// # Usage Example
//
//	machine := vm.New(display, keys, vm.WithClockSpeed(700))
//	if err := machine.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	if err := machine.Run(ctx); err != nil {
//		return fmt.Errorf("running program: %w", err)
//	}
//
// Display and key handling are provided by the host through the Display
// and KeyInput interfaces.
package vm
