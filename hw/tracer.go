package hw

import (
	"fmt"
	"io"
	"strings"
)

// tracer emits one Nintendulator-compatible line per executed
// instruction:
//
//	C000  4C F5 C5  JMP $C5F5                        A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
type tracer struct {
	w   io.Writer
	cpu *CPU
	ppu *PPU
}

// SetTracePPU attaches the PPU so the trace can include dot/scanline
// positions.
func (c *CPU) SetTracePPU(ppu *PPU) {
	if c.tracer != nil {
		c.tracer.ppu = ppu
	}
}

func (t *tracer) write() {
	c := t.cpu
	d := c.Disasm(c.PC)

	var bytes strings.Builder
	for i, b := range d.Buf {
		if i > 0 {
			bytes.WriteByte(' ')
		}
		fmt.Fprintf(&bytes, "%02X", b)
	}

	star := " "
	if d.Illegal {
		star = "*"
	}

	asm := d.Name
	if d.Oper != "" {
		asm += " " + d.Oper
	}

	scanline, dot := 0, 0
	if t.ppu != nil {
		scanline, dot = t.ppu.Scanline, t.ppu.Cycle
		if scanline == 261 {
			scanline = -1
		}
	}

	fmt.Fprintf(t.w, "%04X  %-9s%s%-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d\n",
		d.PC, bytes.String(), star, asm,
		c.A, c.X, c.Y, uint8(c.P), c.SP,
		scanline, dot, c.Cycles)
}
