package vm

// execute runs the semantic handler of the opcode. Handlers that do not
// jump, call, return or skip advance the program counter by one instruction.
//
//nolint:cyclop,funlen // flat dispatch over all opcode families
func (m *Machine) execute(op Opcode) error {
	switch op.Family() {
	case 0x0:
		switch op {
		case 0x00E0:
			m.clearScreen()
			return nil
		case 0x00EE:
			return m.returnFromSubroutine()
		}

	case 0x1:
		m.pc = op.Addr()
		return nil

	case 0x2:
		return m.callSubroutine(op)

	case 0x3:
		m.skipIf(m.registers[op.X()] == op.NN())
		return nil

	case 0x4:
		m.skipIf(m.registers[op.X()] != op.NN())
		return nil

	case 0x5:
		m.skipIf(m.registers[op.X()] == m.registers[op.Y()])
		return nil

	case 0x6:
		m.registers[op.X()] = op.NN()
		m.next()
		return nil

	case 0x7:
		m.registers[op.X()] += op.NN()
		m.next()
		return nil

	case 0x8:
		return m.executeArithmetic(op)

	case 0x9:
		m.skipIf(m.registers[op.X()] != m.registers[op.Y()])
		return nil

	case 0xA:
		m.index = op.Addr()
		m.next()
		return nil

	case 0xB:
		m.pc = uint16(m.registers[0]) + op.Addr()
		return nil

	case 0xC:
		m.registers[op.X()] = m.random() & op.NN()
		m.next()
		return nil

	case 0xD:
		return m.drawSprite(op)

	case 0xE:
		return m.executeKeySkip(op)

	case 0xF:
		return m.executeMisc(op)
	}

	return ErrUnknownOpcode
}

// executeArithmetic handles the 8XYN register to register operations.
func (m *Machine) executeArithmetic(op Opcode) error {
	x, y := op.X(), op.Y()
	vx, vy := m.registers[x], m.registers[y]

	switch op.N() {
	case 0x0:
		m.registers[x] = vy

	case 0x1:
		m.registers[x] = vx | vy

	case 0x2:
		m.registers[x] = vx & vy

	case 0x3:
		m.registers[x] = vx ^ vy

	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.registers[x] = uint8(sum)
		m.registers[FlagRegister] = flag(sum > 0xFF)

	case 0x5:
		m.registers[x] = vx - vy
		m.registers[FlagRegister] = flag(vx >= vy)

	case 0x6:
		m.registers[x] = vx >> 1
		m.registers[FlagRegister] = vx & 0x01

	case 0x7:
		m.registers[x] = vy - vx
		m.registers[FlagRegister] = flag(vy >= vx)

	case 0xE:
		m.registers[x] = vx << 1
		m.registers[FlagRegister] = vx >> 7

	default:
		return ErrUnknownOpcode
	}

	m.next()
	return nil
}

// executeKeySkip handles the EX9E and EXA1 keypad skips.
func (m *Machine) executeKeySkip(op Opcode) error {
	key := m.registers[op.X()] & 0xF

	switch op.NN() {
	case 0x9E:
		m.skipIf(m.keys.IsKeyPressed(key))
	case 0xA1:
		m.skipIf(!m.keys.IsKeyPressed(key))
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// executeMisc handles the FXNN timer, keypad, index and memory operations.
//
//nolint:cyclop // one case per opcode
func (m *Machine) executeMisc(op Opcode) error {
	x := op.X()

	switch op.NN() {
	case 0x07:
		m.registers[x] = m.delay.Value()

	case 0x0A:
		m.registers[x] = m.keys.GetKey() & 0xF
		// waiting for a key is not instruction time
		m.pacer.Reset()

	case 0x15:
		m.delay.Start(m.registers[x])

	case 0x18:
		m.sound.Start(m.registers[x])

	case 0x1E:
		sum := uint32(m.index) + uint32(m.registers[x])
		m.index = uint16(sum)
		m.registers[FlagRegister] = flag(sum > 0xFFFF)

	case 0x29:
		m.index = glyphAddress(m.registers[x])

	case 0x33:
		if err := m.storeBCD(x); err != nil {
			return err
		}

	case 0x55:
		mem, err := m.memoryRange(m.index, int(x)+1)
		if err != nil {
			return err
		}
		copy(mem, m.registers[:x+1])

	case 0x65:
		mem, err := m.memoryRange(m.index, int(x)+1)
		if err != nil {
			return err
		}
		copy(m.registers[:x+1], mem)

	default:
		return ErrUnknownOpcode
	}

	m.next()
	return nil
}

func (m *Machine) clearScreen() {
	m.screen.Clear()
	m.display.Clear()
	m.next()
}

func (m *Machine) returnFromSubroutine() error {
	address, err := m.pop()
	if err != nil {
		return err
	}
	m.pc = address
	return nil
}

func (m *Machine) callSubroutine(op Opcode) error {
	if err := m.push(m.pc + OpcodeSize); err != nil {
		return err
	}
	m.pc = op.Addr()
	return nil
}

// drawSprite draws the N byte sprite at I to the coordinates in Vx and Vy.
// VF is set to 1 if any set pixel was turned off, otherwise 0.
func (m *Machine) drawSprite(op Opcode) error {
	rows, err := m.memoryRange(m.index, int(op.N()))
	if err != nil {
		return err
	}

	x, y := m.registers[op.X()], m.registers[op.Y()]
	m.registers[FlagRegister] = 0
	if m.screen.DrawSprite(x, y, rows) {
		m.registers[FlagRegister] = 1
	}

	m.display.Draw(m.screen.Frame())
	m.next()
	return nil
}

// storeBCD writes the hundreds, tens and units digits of Vx to I, I+1 and I+2.
func (m *Machine) storeBCD(x uint8) error {
	mem, err := m.memoryRange(m.index, 3)
	if err != nil {
		return err
	}

	value := m.registers[x]
	mem[0] = value / 100
	mem[1] = value / 10 % 10
	mem[2] = value % 10
	return nil
}

// next advances the program counter to the following instruction.
func (m *Machine) next() {
	m.pc += OpcodeSize
}

// skipIf advances the program counter past the following instruction if
// the condition is met, otherwise to the following instruction.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2 * OpcodeSize
		return
	}
	m.pc += OpcodeSize
}

// flag converts a condition to the 0 or 1 value stored in VF.
func flag(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}
