package ines

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// PrintInfos writes a human-readable description of the rom.
func (rom *Rom) PrintInfos(w io.Writer) {
	fmt.Fprintf(w, "PRG ROM:   %d bytes (%d x 16KB)\n", rom.PRGSize(), rom.PRGSize()/16384)
	fmt.Fprintf(w, "CHR ROM:   %d bytes (%d x 8KB)\n", rom.CHRSize(), rom.CHRSize()/8192)
	fmt.Fprintf(w, "mapper:    %d\n", rom.Mapper())
	fmt.Fprintf(w, "mirroring: %s\n", rom.Mirroring())
	fmt.Fprintf(w, "battery:   %t\n", rom.HasBattery())
	fmt.Fprintf(w, "trainer:   %t\n", rom.HasTrainer())
}

// JSONInfos returns the same description as PrintInfos, as a JSON object.
func (rom *Rom) JSONInfos() []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("prg_size", func(e *jx.Encoder) { e.Int(rom.PRGSize()) })
		e.Field("chr_size", func(e *jx.Encoder) { e.Int(rom.CHRSize()) })
		e.Field("mapper", func(e *jx.Encoder) { e.Int(int(rom.Mapper())) })
		e.Field("mirroring", func(e *jx.Encoder) { e.Str(rom.Mirroring().String()) })
		e.Field("battery", func(e *jx.Encoder) { e.Bool(rom.HasBattery()) })
		e.Field("trainer", func(e *jx.Encoder) { e.Bool(rom.HasTrainer()) })
	})
	return e.Bytes()
}
