package hw

import "fmt"

// DisasmOp is one disassembled instruction, with its operand rendered
// the way Nintendulator logs do (resolved addresses and memory values).
type DisasmOp struct {
	PC      uint16
	Buf     []byte
	Name    string
	Oper    string
	Illegal bool
}

// Disasm decodes the instruction at pc without side effects.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	opcode := c.bus.Peek(pc)
	size := instructionSizes[opcode]
	mode := instructionModes[opcode]

	d := DisasmOp{
		PC:      pc,
		Name:    instructionNames[opcode],
		Illegal: illegalOpcode(opcode),
	}
	for i := uint8(0); i < size; i++ {
		d.Buf = append(d.Buf, c.bus.Peek(pc+uint16(i)))
	}

	peek16 := func(addr uint16) uint16 {
		lo := uint16(c.bus.Peek(addr))
		hi := uint16(c.bus.Peek(addr + 1))
		return hi<<8 | lo
	}
	peek16bug := func(addr uint16) uint16 {
		lo := uint16(c.bus.Peek(addr))
		hi := uint16(c.bus.Peek(addr&0xFF00 | uint16(uint8(addr)+1)))
		return hi<<8 | lo
	}

	var op1 uint8
	if size > 1 {
		op1 = d.Buf[1]
	}

	switch mode {
	case modeImplied:
	case modeAccumulator:
		d.Oper = "A"
	case modeImmediate:
		d.Oper = fmt.Sprintf("#$%02X", op1)
	case modeZeroPage:
		addr := uint16(op1)
		d.Oper = fmt.Sprintf("$%02X = %02X", op1, c.bus.Peek(addr))
	case modeZeroPageX:
		addr := uint16(op1+c.X) & 0xFF
		d.Oper = fmt.Sprintf("$%02X,X @ %02X = %02X", op1, addr, c.bus.Peek(addr))
	case modeZeroPageY:
		addr := uint16(op1+c.Y) & 0xFF
		d.Oper = fmt.Sprintf("$%02X,Y @ %02X = %02X", op1, addr, c.bus.Peek(addr))
	case modeAbsolute:
		addr := peek16(pc + 1)
		if d.Name == "JMP" || d.Name == "JSR" {
			d.Oper = fmt.Sprintf("$%04X", addr)
		} else {
			d.Oper = fmt.Sprintf("$%04X = %02X", addr, c.bus.Peek(addr))
		}
	case modeAbsoluteX:
		base := peek16(pc + 1)
		addr := base + uint16(c.X)
		d.Oper = fmt.Sprintf("$%04X,X @ %04X = %02X", base, addr, c.bus.Peek(addr))
	case modeAbsoluteY:
		base := peek16(pc + 1)
		addr := base + uint16(c.Y)
		d.Oper = fmt.Sprintf("$%04X,Y @ %04X = %02X", base, addr, c.bus.Peek(addr))
	case modeIndirect:
		ptr := peek16(pc + 1)
		d.Oper = fmt.Sprintf("($%04X) = %04X", ptr, peek16bug(ptr))
	case modeIndexedIndirect:
		zp := op1 + c.X
		addr := peek16bug(uint16(zp))
		d.Oper = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", op1, zp, addr, c.bus.Peek(addr))
	case modeIndirectIndexed:
		base := peek16bug(uint16(op1))
		addr := base + uint16(c.Y)
		d.Oper = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", op1, base, addr, c.bus.Peek(addr))
	case modeRelative:
		offset := uint16(op1)
		addr := pc + 2 + offset
		if offset >= 0x80 {
			addr -= 0x100
		}
		d.Oper = fmt.Sprintf("$%04X", addr)
	}
	return d
}

// illegalOpcode reports whether the opcode should carry the
// undocumented-instruction marker in trace logs.
func illegalOpcode(opcode uint8) bool {
	name := instructionNames[opcode]
	switch name {
	case "LAX", "SAX", "DCP", "ISB", "SLO", "RLA", "SRE", "RRA",
		"KIL", "ANC", "ALR", "ARR", "XAA", "AHX", "TAS", "SHX", "SHY",
		"LAS", "AXS":
		return true
	case "NOP":
		return opcode != 0xEA
	case "SBC":
		return opcode == 0xEB
	}
	return false
}
