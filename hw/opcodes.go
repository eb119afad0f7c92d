package hw

// Addressing modes.
const (
	modeAbsolute = iota + 1
	modeAbsoluteX
	modeAbsoluteY
	modeAccumulator
	modeImmediate
	modeImplied
	modeIndexedIndirect
	modeIndirect
	modeIndirectIndexed
	modeRelative
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
)

// instructionModes indicates the addressing mode for each opcode.
var instructionModes = [256]uint8{
	6, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	1, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	6, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	6, 7, 6, 7, 11, 11, 11, 11, 6, 5, 4, 5, 8, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 13, 13, 6, 3, 6, 3, 2, 2, 3, 3,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 13, 13, 6, 3, 6, 3, 2, 2, 3, 3,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
	5, 7, 5, 7, 11, 11, 11, 11, 6, 5, 6, 5, 1, 1, 1, 1,
	10, 9, 6, 9, 12, 12, 12, 12, 6, 3, 6, 3, 2, 2, 2, 2,
}

// instructionSizes is derived from the addressing modes at init time.
var instructionSizes [256]uint8

func init() {
	for op, mode := range instructionModes {
		switch mode {
		case modeImplied, modeAccumulator:
			instructionSizes[op] = 1
		case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
			instructionSizes[op] = 3
		default:
			instructionSizes[op] = 2
		}
	}
	for op, name := range instructionNames {
		fn, ok := mnemonics[name]
		if !ok {
			fn = nop
		}
		instructions[op] = fn
	}
}

// instructionCycles indicates the base number of cycles for each opcode.
var instructionCycles = [256]uint8{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

// instructionPageCycles indicates the number of extra cycles when a page
// boundary is crossed.
var instructionPageCycles = [256]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0,
}

// instructionNames gives the mnemonic for each opcode. Undocumented
// opcodes keep their conventional names; the ones this core does not
// implement fall back to NOP at dispatch.
var instructionNames = [256]string{
	"BRK", "ORA", "KIL", "SLO", "NOP", "ORA", "ASL", "SLO",
	"PHP", "ORA", "ASL", "ANC", "NOP", "ORA", "ASL", "SLO",
	"BPL", "ORA", "KIL", "SLO", "NOP", "ORA", "ASL", "SLO",
	"CLC", "ORA", "NOP", "SLO", "NOP", "ORA", "ASL", "SLO",
	"JSR", "AND", "KIL", "RLA", "BIT", "AND", "ROL", "RLA",
	"PLP", "AND", "ROL", "ANC", "BIT", "AND", "ROL", "RLA",
	"BMI", "AND", "KIL", "RLA", "NOP", "AND", "ROL", "RLA",
	"SEC", "AND", "NOP", "RLA", "NOP", "AND", "ROL", "RLA",
	"RTI", "EOR", "KIL", "SRE", "NOP", "EOR", "LSR", "SRE",
	"PHA", "EOR", "LSR", "ALR", "JMP", "EOR", "LSR", "SRE",
	"BVC", "EOR", "KIL", "SRE", "NOP", "EOR", "LSR", "SRE",
	"CLI", "EOR", "NOP", "SRE", "NOP", "EOR", "LSR", "SRE",
	"RTS", "ADC", "KIL", "RRA", "NOP", "ADC", "ROR", "RRA",
	"PLA", "ADC", "ROR", "ARR", "JMP", "ADC", "ROR", "RRA",
	"BVS", "ADC", "KIL", "RRA", "NOP", "ADC", "ROR", "RRA",
	"SEI", "ADC", "NOP", "RRA", "NOP", "ADC", "ROR", "RRA",
	"NOP", "STA", "NOP", "SAX", "STY", "STA", "STX", "SAX",
	"DEY", "NOP", "TXA", "XAA", "STY", "STA", "STX", "SAX",
	"BCC", "STA", "KIL", "AHX", "STY", "STA", "STX", "SAX",
	"TYA", "STA", "TXS", "TAS", "SHY", "STA", "SHX", "AHX",
	"LDY", "LDA", "LDX", "LAX", "LDY", "LDA", "LDX", "LAX",
	"TAY", "LDA", "TAX", "LAX", "LDY", "LDA", "LDX", "LAX",
	"BCS", "LDA", "KIL", "LAX", "LDY", "LDA", "LDX", "LAX",
	"CLV", "LDA", "TSX", "LAS", "LDY", "LDA", "LDX", "LAX",
	"CPY", "CMP", "NOP", "DCP", "CPY", "CMP", "DEC", "DCP",
	"INY", "CMP", "DEX", "AXS", "CPY", "CMP", "DEC", "DCP",
	"BNE", "CMP", "KIL", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CLD", "CMP", "NOP", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CPX", "SBC", "NOP", "ISB", "CPX", "SBC", "INC", "ISB",
	"INX", "SBC", "NOP", "SBC", "CPX", "SBC", "INC", "ISB",
	"BEQ", "SBC", "KIL", "ISB", "NOP", "SBC", "INC", "ISB",
	"SED", "SBC", "NOP", "ISB", "NOP", "SBC", "INC", "ISB",
}

var instructions [256]func(*CPU, stepInfo)

// mnemonics maps instruction names to their implementation. Names absent
// from the map (the exotic unstable opcodes) decode as NOP.
var mnemonics = map[string]func(*CPU, stepInfo){
	"ADC": adc, "AND": and, "ASL": asl, "BCC": bcc, "BCS": bcs,
	"BEQ": beq, "BIT": bit, "BMI": bmi, "BNE": bne, "BPL": bpl,
	"BRK": brk, "BVC": bvc, "BVS": bvs, "CLC": clc, "CLD": cld,
	"CLI": cli, "CLV": clv, "CMP": cmp, "CPX": cpx, "CPY": cpy,
	"DEC": dec, "DEX": dex, "DEY": dey, "EOR": eor, "INC": inc,
	"INX": inx, "INY": iny, "JMP": jmp, "JSR": jsr, "LDA": lda,
	"LDX": ldx, "LDY": ldy, "LSR": lsr, "NOP": nop, "ORA": ora,
	"PHA": pha, "PHP": php, "PLA": pla, "PLP": plp, "ROL": rol,
	"ROR": ror, "RTI": rti, "RTS": rts, "SBC": sbc, "SEC": sec,
	"SED": sed, "SEI": sei, "STA": sta, "STX": stx, "STY": sty,
	"TAX": tax, "TAY": tay, "TSX": tsx, "TXA": txa, "TXS": txs,
	"TYA": tya,

	// undocumented opcodes exercised by nestest
	"LAX": lax, "SAX": sax, "DCP": dcp, "ISB": isb,
	"SLO": slo, "RLA": rla, "SRE": sre, "RRA": rra,
}

/* official instructions */

// ADC - Add with Carry
func adc(c *CPU, info stepInfo) {
	a := c.A
	b := c.bus.Read(info.address)
	sum := uint16(a) + uint16(b) + uint16(c.P.ibit(Carry))
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
	c.P.checkCV(a, b, sum)
}

// SBC - Subtract with Carry
func sbc(c *CPU, info stepInfo) {
	a := c.A
	b := ^c.bus.Read(info.address)
	sum := uint16(a) + uint16(b) + uint16(c.P.ibit(Carry))
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
	c.P.checkCV(a, b, sum)
}

// AND - Logical AND
func and(c *CPU, info stepInfo) {
	c.A &= c.bus.Read(info.address)
	c.P.checkNZ(c.A)
}

// ORA - Logical Inclusive OR
func ora(c *CPU, info stepInfo) {
	c.A |= c.bus.Read(info.address)
	c.P.checkNZ(c.A)
}

// EOR - Exclusive OR
func eor(c *CPU, info stepInfo) {
	c.A ^= c.bus.Read(info.address)
	c.P.checkNZ(c.A)
}

// ASL - Arithmetic Shift Left
func asl(c *CPU, info stepInfo) {
	if info.mode == modeAccumulator {
		c.P.set(Carry, c.A&0x80 != 0)
		c.A <<= 1
		c.P.checkNZ(c.A)
		return
	}
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&0x80 != 0)
	v <<= 1
	c.bus.Write(info.address, v)
	c.P.checkNZ(v)
}

// LSR - Logical Shift Right
func lsr(c *CPU, info stepInfo) {
	if info.mode == modeAccumulator {
		c.P.set(Carry, c.A&1 != 0)
		c.A >>= 1
		c.P.checkNZ(c.A)
		return
	}
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&1 != 0)
	v >>= 1
	c.bus.Write(info.address, v)
	c.P.checkNZ(v)
}

// ROL - Rotate Left
func rol(c *CPU, info stepInfo) {
	carry := c.P.ibit(Carry)
	if info.mode == modeAccumulator {
		c.P.set(Carry, c.A&0x80 != 0)
		c.A = c.A<<1 | carry
		c.P.checkNZ(c.A)
		return
	}
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&0x80 != 0)
	v = v<<1 | carry
	c.bus.Write(info.address, v)
	c.P.checkNZ(v)
}

// ROR - Rotate Right
func ror(c *CPU, info stepInfo) {
	carry := c.P.ibit(Carry)
	if info.mode == modeAccumulator {
		c.P.set(Carry, c.A&1 != 0)
		c.A = c.A>>1 | carry<<7
		c.P.checkNZ(c.A)
		return
	}
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&1 != 0)
	v = v>>1 | carry<<7
	c.bus.Write(info.address, v)
	c.P.checkNZ(v)
}

// BIT - Bit Test
func bit(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address)
	c.P.set(Overflow, v&0x40 != 0)
	c.P.set(Negative, v&0x80 != 0)
	c.P.set(Zero, v&c.A == 0)
}

func compare(c *CPU, a, b uint8) {
	c.P.checkNZ(a - b)
	c.P.set(Carry, a >= b)
}

// CMP - Compare accumulator
func cmp(c *CPU, info stepInfo) { compare(c, c.A, c.bus.Read(info.address)) }

// CPX - Compare X register
func cpx(c *CPU, info stepInfo) { compare(c, c.X, c.bus.Read(info.address)) }

// CPY - Compare Y register
func cpy(c *CPU, info stepInfo) { compare(c, c.Y, c.bus.Read(info.address)) }

// branches

func bcc(c *CPU, info stepInfo) {
	if !c.P.has(Carry) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func bcs(c *CPU, info stepInfo) {
	if c.P.has(Carry) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func beq(c *CPU, info stepInfo) {
	if c.P.has(Zero) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func bne(c *CPU, info stepInfo) {
	if !c.P.has(Zero) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func bmi(c *CPU, info stepInfo) {
	if c.P.has(Negative) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func bpl(c *CPU, info stepInfo) {
	if !c.P.has(Negative) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func bvc(c *CPU, info stepInfo) {
	if !c.P.has(Overflow) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

func bvs(c *CPU, info stepInfo) {
	if c.P.has(Overflow) {
		c.PC = info.address
		c.addBranchCycles(info)
	}
}

// BRK - Force Interrupt. Same sequence as IRQ but B is pushed set and
// the byte after the opcode is skipped.
func brk(c *CPU, info stepInfo) {
	c.push16(c.PC + 1)
	c.push8(uint8(c.P | Break | Unused))
	c.P.set(IntDisable, true)
	c.PC = c.read16(0xFFFE)
}

// flag instructions

func clc(c *CPU, info stepInfo) { c.P.set(Carry, false) }
func cld(c *CPU, info stepInfo) { c.P.set(Decimal, false) }
func cli(c *CPU, info stepInfo) { c.P.set(IntDisable, false) }
func clv(c *CPU, info stepInfo) { c.P.set(Overflow, false) }
func sec(c *CPU, info stepInfo) { c.P.set(Carry, true) }
func sed(c *CPU, info stepInfo) { c.P.set(Decimal, true) }
func sei(c *CPU, info stepInfo) { c.P.set(IntDisable, true) }

// increments and decrements

func dec(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address) - 1
	c.bus.Write(info.address, v)
	c.P.checkNZ(v)
}

func inc(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address) + 1
	c.bus.Write(info.address, v)
	c.P.checkNZ(v)
}

func dex(c *CPU, info stepInfo) { c.X--; c.P.checkNZ(c.X) }
func dey(c *CPU, info stepInfo) { c.Y--; c.P.checkNZ(c.Y) }
func inx(c *CPU, info stepInfo) { c.X++; c.P.checkNZ(c.X) }
func iny(c *CPU, info stepInfo) { c.Y++; c.P.checkNZ(c.Y) }

// jumps and subroutines

func jmp(c *CPU, info stepInfo) {
	c.PC = info.address
}

func jsr(c *CPU, info stepInfo) {
	c.push16(c.PC - 1)
	c.PC = info.address
}

func rts(c *CPU, info stepInfo) {
	c.PC = c.pull16() + 1
}

func rti(c *CPU, info stepInfo) {
	c.P = P(c.pull8())&^Break | Unused
	c.PC = c.pull16()
}

// loads and stores

func lda(c *CPU, info stepInfo) { c.A = c.bus.Read(info.address); c.P.checkNZ(c.A) }
func ldx(c *CPU, info stepInfo) { c.X = c.bus.Read(info.address); c.P.checkNZ(c.X) }
func ldy(c *CPU, info stepInfo) { c.Y = c.bus.Read(info.address); c.P.checkNZ(c.Y) }

func sta(c *CPU, info stepInfo) { c.bus.Write(info.address, c.A) }
func stx(c *CPU, info stepInfo) { c.bus.Write(info.address, c.X) }
func sty(c *CPU, info stepInfo) { c.bus.Write(info.address, c.Y) }

// stack and transfers

func pha(c *CPU, info stepInfo) { c.push8(c.A) }

func php(c *CPU, info stepInfo) {
	// PHP pushes B set, like BRK.
	c.push8(uint8(c.P | Break | Unused))
}

func pla(c *CPU, info stepInfo) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, info stepInfo) {
	c.P = P(c.pull8())&^Break | Unused
}

func tax(c *CPU, info stepInfo) { c.X = c.A; c.P.checkNZ(c.X) }
func tay(c *CPU, info stepInfo) { c.Y = c.A; c.P.checkNZ(c.Y) }
func tsx(c *CPU, info stepInfo) { c.X = c.SP; c.P.checkNZ(c.X) }
func txa(c *CPU, info stepInfo) { c.A = c.X; c.P.checkNZ(c.A) }
func txs(c *CPU, info stepInfo) { c.SP = c.X }
func tya(c *CPU, info stepInfo) { c.A = c.Y; c.P.checkNZ(c.A) }

// NOP - No Operation. Also the decode target for the unimplemented
// unstable opcodes; the multi-byte variants still consume their operand
// thanks to the size and cycle tables.
func nop(c *CPU, info stepInfo) {}

/* undocumented instructions (the set nestest exercises) */

// LAX - load A and X with the same value.
func lax(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address)
	c.A = v
	c.X = v
	c.P.checkNZ(v)
}

// SAX - store A AND X.
func sax(c *CPU, info stepInfo) {
	c.bus.Write(info.address, c.A&c.X)
}

// DCP - DEC then CMP.
func dcp(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address) - 1
	c.bus.Write(info.address, v)
	compare(c, c.A, v)
}

// ISB - INC then SBC.
func isb(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address) + 1
	c.bus.Write(info.address, v)

	a := c.A
	b := ^v
	sum := uint16(a) + uint16(b) + uint16(c.P.ibit(Carry))
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
	c.P.checkCV(a, b, sum)
}

// SLO - ASL then ORA.
func slo(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&0x80 != 0)
	v <<= 1
	c.bus.Write(info.address, v)
	c.A |= v
	c.P.checkNZ(c.A)
}

// RLA - ROL then AND.
func rla(c *CPU, info stepInfo) {
	carry := c.P.ibit(Carry)
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&0x80 != 0)
	v = v<<1 | carry
	c.bus.Write(info.address, v)
	c.A &= v
	c.P.checkNZ(c.A)
}

// SRE - LSR then EOR.
func sre(c *CPU, info stepInfo) {
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&1 != 0)
	v >>= 1
	c.bus.Write(info.address, v)
	c.A ^= v
	c.P.checkNZ(c.A)
}

// RRA - ROR then ADC.
func rra(c *CPU, info stepInfo) {
	carry := c.P.ibit(Carry)
	v := c.bus.Read(info.address)
	c.P.set(Carry, v&1 != 0)
	v = v>>1 | carry<<7
	c.bus.Write(info.address, v)

	a := c.A
	sum := uint16(a) + uint16(v) + uint16(c.P.ibit(Carry))
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
	c.P.checkCV(a, v, sum)
}
