// Package hwdefs holds constants shared between the hardware packages.
package hwdefs

// IRQSource identifies one of the level-triggered interrupt lines ORed
// into the CPU /IRQ input.
type IRQSource uint8

const (
	ExternalIRQ IRQSource = 1 << iota
	FrameCounterIRQ
	DMCIRQ
	MapperIRQ
)

// NTSC 2A03 timings.
const (
	CPUClockRate = 1789773 // Hz

	// Locations reserved for vector pointers.
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)
