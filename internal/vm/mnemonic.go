package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the assembly representation of the opcode, for example
// "drw V1, V2, $5". Words that do not decode to an instruction are returned
// as a data word.
func Mnemonic(op Opcode) string {
	instruction := lookupInstruction(op)
	if instruction == nil {
		return fmt.Sprintf("dw $%04X", uint16(op))
	}

	name := instruction.Name
	if params := formatParams(name, op); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// lookupInstruction returns the instruction definition matching the opcode.
func lookupInstruction(op Opcode) *chip8.Instruction {
	w := uint16(op)
	for _, opcode := range chip8.Opcodes[int(op.Family())] {
		if opcode.Info.Mask&w == opcode.Info.Value {
			return opcode.Instruction
		}
	}
	return nil
}

// formatParams formats the operands of an instruction.
func formatParams(name string, op Opcode) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		if op.Family() == 0xB {
			return fmt.Sprintf("V0, $%03X", op.Addr())
		}
		return fmt.Sprintf("$%03X", op.Addr())
	case chip8.CallName:
		return fmt.Sprintf("$%03X", op.Addr())
	case chip8.SeName, chip8.SneName:
		return formatCompare(op)
	case chip8.LdName:
		return formatLoad(op)
	case chip8.AddName:
		return formatAdd(op)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", op.X())
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", op.X(), op.Y(), op.N())
	}
	return ""
}

// formatCompare formats SE and SNE with an immediate or register operand.
func formatCompare(op Opcode) string {
	switch op.Family() {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	default:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	}
}

// formatLoad formats the LD variants of the 6, 8, A and F families.
func formatLoad(op Opcode) string {
	x := op.X()
	switch op.Family() {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", x, op.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, op.Y())
	case 0xA:
		return fmt.Sprintf("I, $%03X", op.Addr())
	}

	switch op.NN() {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats ADD with an immediate, register or index operand.
func formatAdd(op Opcode) string {
	switch op.Family() {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	default:
		return fmt.Sprintf("I, V%X", op.X())
	}
}
