package vm

// Opcode is a 16-bit CHIP-8 instruction word.
type Opcode uint16

// decodeOpcode combines the big-endian instruction bytes.
func decodeOpcode(high, low byte) Opcode {
	return Opcode(uint16(high)<<8 | uint16(low))
}

// Family returns the high nibble that selects the instruction group.
func (o Opcode) Family() uint8 {
	return uint8(o >> 12)
}

// Addr returns the 12-bit address operand NNN.
func (o Opcode) Addr() uint16 {
	return uint16(o) & 0x0FFF
}

// X returns the register index in the second nibble.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0xF
}

// Y returns the register index in the third nibble.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0xF
}

// NN returns the 8-bit immediate operand.
func (o Opcode) NN() uint8 {
	return uint8(o)
}

// N returns the 4-bit immediate operand.
func (o Opcode) N() uint8 {
	return uint8(o) & 0xF
}
