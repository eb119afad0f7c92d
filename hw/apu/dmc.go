package apu

import (
	"famicore/emu/log"
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
)

// dmcPeriods is the NTSC rate table, in APU cycles.
var dmcPeriods = [16]uint16{
	214, 190, 170, 160, 143, 127, 113, 107, 95, 80, 71, 64, 53, 42, 36, 27,
}

// dmcChannel plays delta-modulated samples fetched straight from CPU
// memory. Each fetch steals CPU cycles through the DMA stall; when the
// sample runs out it stops, loops, or raises an IRQ depending on the
// control bits.
type dmcChannel struct {
	sys System

	irqEnabled bool
	irqPending bool
	loop       bool

	level uint8 // 7-bit DAC output

	sampleAddress uint16
	sampleLength  uint16

	currentAddress uint16
	bytesRemaining uint16

	shift    uint8
	bitCount uint8

	timerPeriod uint16
	timerValue  uint16
}

// $4010
func (d *dmcChannel) writeControl(val uint8) {
	d.irqEnabled = val&0x80 != 0
	d.loop = val&0x40 != 0
	d.timerPeriod = dmcPeriods[val&0x0F]
	if !d.irqEnabled {
		d.irqPending = false
		d.sys.ClearIRQ(hwdefs.DMCIRQ)
	}
}

// $4011
func (d *dmcChannel) writeLevel(val uint8) {
	d.level = val & 0x7F
}

// $4012: sample address is $C000 + N*64
func (d *dmcChannel) writeAddress(val uint8) {
	d.sampleAddress = 0xC000 | uint16(val)<<6
}

// $4013: sample length is N*16 + 1 bytes
func (d *dmcChannel) writeLength(val uint8) {
	d.sampleLength = uint16(val)<<4 | 1
}

func (d *dmcChannel) restart() {
	d.currentAddress = d.sampleAddress
	d.bytesRemaining = d.sampleLength
}

// setEnabled handles the $4015 enable bit: clearing stops playback,
// setting restarts the sample if it had run out.
func (d *dmcChannel) setEnabled(on bool) {
	if !on {
		d.bytesRemaining = 0
	} else if d.bytesRemaining == 0 {
		d.restart()
	}
}

func (d *dmcChannel) stepTimer() {
	d.stepReader()
	if d.timerValue == 0 {
		d.timerValue = d.timerPeriod
		d.stepShifter()
	} else {
		d.timerValue--
	}
}

// stepReader refills the shift register. The fetch halts the CPU for 4
// cycles (the exact 1-4 cycle figure depends on the bus phase, which
// this core does not track).
func (d *dmcChannel) stepReader() {
	if d.bytesRemaining == 0 || d.bitCount != 0 {
		return
	}
	d.sys.StallCPU(4)
	d.shift = d.sys.ReadMem(d.currentAddress)
	d.bitCount = 8

	d.currentAddress++
	if d.currentAddress == 0 {
		// address wraps to the start of PRG space
		d.currentAddress = 0x8000
	}
	d.bytesRemaining--
	if d.bytesRemaining == 0 {
		if d.loop {
			d.restart()
		} else if d.irqEnabled {
			d.irqPending = true
			d.sys.SetIRQ(hwdefs.DMCIRQ)
			log.ModSound.DebugZ("DMC IRQ").End()
		}
	}
}

func (d *dmcChannel) stepShifter() {
	if d.bitCount == 0 {
		return
	}
	if d.shift&1 != 0 {
		if d.level <= 125 {
			d.level += 2
		}
	} else {
		if d.level >= 2 {
			d.level -= 2
		}
	}
	d.shift >>= 1
	d.bitCount--
}

func (d *dmcChannel) output() uint8 {
	return d.level
}

func (d *dmcChannel) state() snapshot.DMC {
	return snapshot.DMC{
		Enabled:        d.bytesRemaining > 0,
		Level:          d.level,
		SampleAddress:  d.sampleAddress,
		SampleLength:   d.sampleLength,
		CurrentAddress: d.currentAddress,
		BytesRemaining: d.bytesRemaining,
		Shift:          d.shift,
		BitCount:       d.bitCount,
		TimerPeriod:    d.timerPeriod,
		TimerValue:     d.timerValue,
		Loop:           d.loop,
		IRQEnabled:     d.irqEnabled,
		IRQPending:     d.irqPending,
	}
}

func (d *dmcChannel) restore(s *snapshot.DMC) {
	d.level = s.Level
	d.sampleAddress = s.SampleAddress
	d.sampleLength = s.SampleLength
	d.currentAddress = s.CurrentAddress
	d.bytesRemaining = s.BytesRemaining
	d.shift = s.Shift
	d.bitCount = s.BitCount
	d.timerPeriod = s.TimerPeriod
	d.timerValue = s.TimerValue
	d.loop = s.Loop
	d.irqEnabled = s.IRQEnabled
	d.irqPending = s.IRQPending
}
