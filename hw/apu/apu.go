// Package apu emulates the 2A03 audio unit: two square channels, a
// triangle, a noise channel and the DMC, sequenced by the frame counter
// and mixed through the non-linear DAC into a band-limited resampler.
package apu

import (
	"famicore/emu/log"
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
)

// System is the APU's view of the rest of the machine: the IRQ lines it
// drives and the CPU it stalls for DMC sample fetches.
type System interface {
	SetIRQ(src hwdefs.IRQSource)
	ClearIRQ(src hwdefs.IRQSource)
	StallCPU(cycles uint32)
	CPUCycle() uint64
	ReadMem(addr uint16) uint8
}

// APU is clocked once per CPU cycle by the owner.
type APU struct {
	sys   System
	mixer *Mixer

	cycles     uint64 // total cycles, for $4017 write alignment
	frameCycle uint32 // cycles since last EndFrame, mixer timestamps

	square1  squareChannel
	square2  squareChannel
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	frameCounter frameCounter
}

func New(sys System) *APU {
	a := &APU{
		sys:   sys,
		mixer: newMixer(44100),
	}
	a.square1.channel = 1
	a.square2.channel = 2
	a.noise.shift = 1
	a.dmc.sys = sys
	a.frameCounter.apu = a
	return a
}

// Reset silences the APU, as if $4015 had been written with 0.
func (a *APU) Reset() {
	a.WriteRegister(0x4015, 0)
	a.frameCounter.reset()
	a.noise.shift = 1
	a.mixer.reset()
	a.frameCycle = 0
}

// SetSampleRate sets the output rate of the resampler.
func (a *APU) SetSampleRate(hz int) {
	a.mixer.setSampleRate(hz)
}

// Step advances the APU by one CPU cycle.
func (a *APU) Step() {
	a.cycles++
	// square, noise and DMC timers tick at half the CPU rate, the
	// triangle at the full rate
	if a.cycles&1 == 0 {
		a.square1.stepTimer()
		a.square2.stepTimer()
		a.noise.stepTimer()
		a.dmc.stepTimer()
	}
	a.triangle.stepTimer()
	a.frameCounter.step()

	a.mixer.setOutput(a.frameCycle, a.output())
	a.frameCycle++
}

// EndFrame flushes the current time frame into the resampler. The owner
// calls it once per video frame.
func (a *APU) EndFrame() {
	a.mixer.endFrame(a.frameCycle)
	a.frameCycle = 0
}

// TakeSamples drains queued samples into dst.
func (a *APU) TakeSamples(dst []int16) int {
	return a.mixer.take(dst)
}

// output mixes the five channels through the DAC lookup formulas.
func (a *APU) output() int16 {
	p1 := a.square1.output()
	p2 := a.square2.output()
	t := a.triangle.output()
	n := a.noise.output()
	d := a.dmc.output()

	pulseOut := pulseTable[p1+p2]
	tndOut := tndTable[3*uint16(t)+2*uint16(n)+uint16(d)]
	return int16((pulseOut + tndOut) * outputScale)
}

// clockQuarter drives envelopes and the triangle linear counter.
func (a *APU) clockQuarter() {
	a.square1.envelope.clock()
	a.square2.envelope.clock()
	a.noise.envelope.clock()
	a.triangle.clockLinear()
}

// clockHalf additionally drives length counters and sweep units.
func (a *APU) clockHalf() {
	a.clockQuarter()
	a.square1.length.clock()
	a.square2.length.clock()
	a.triangle.length.clock()
	a.noise.length.clock()
	a.square1.clockSweep()
	a.square2.clockSweep()
}

// WriteRegister services CPU writes to $4000-$4013, $4015 and $4017.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.square1.writeControl(val)
	case 0x4001:
		a.square1.writeSweep(val)
	case 0x4002:
		a.square1.writeTimerLow(val)
	case 0x4003:
		a.square1.writeTimerHigh(val)
	case 0x4004:
		a.square2.writeControl(val)
	case 0x4005:
		a.square2.writeSweep(val)
	case 0x4006:
		a.square2.writeTimerLow(val)
	case 0x4007:
		a.square2.writeTimerHigh(val)
	case 0x4008:
		a.triangle.writeControl(val)
	case 0x400A:
		a.triangle.writeTimerLow(val)
	case 0x400B:
		a.triangle.writeTimerHigh(val)
	case 0x400C:
		a.noise.writeControl(val)
	case 0x400E:
		a.noise.writePeriod(val)
	case 0x400F:
		a.noise.writeLength(val)
	case 0x4010:
		a.dmc.writeControl(val)
	case 0x4011:
		a.dmc.writeLevel(val)
	case 0x4012:
		a.dmc.writeAddress(val)
	case 0x4013:
		a.dmc.writeLength(val)
	case 0x4015:
		a.writeStatus(val)
	case 0x4017:
		a.frameCounter.write(val)
	}
}

// $4015 write: channel enables. Disabling a channel zeroes its length
// counter. The DMC IRQ flag is always cleared.
func (a *APU) writeStatus(val uint8) {
	a.square1.length.setEnabled(val&0x01 != 0)
	a.square2.length.setEnabled(val&0x02 != 0)
	a.triangle.length.setEnabled(val&0x04 != 0)
	a.noise.length.setEnabled(val&0x08 != 0)
	a.dmc.setEnabled(val&0x10 != 0)

	a.dmc.irqPending = false
	a.sys.ClearIRQ(hwdefs.DMCIRQ)

	log.ModSound.DebugZ("channel enables").Hex8("val", val).End()
}

// ReadStatus services $4015 reads: channel length flags, DMC activity
// and the IRQ flags. Reading clears the frame IRQ flag.
func (a *APU) ReadStatus() uint8 {
	val := a.PeekStatus()
	a.frameCounter.irqPending = false
	a.sys.ClearIRQ(hwdefs.FrameCounterIRQ)
	return val
}

// PeekStatus reads $4015 without side effects.
func (a *APU) PeekStatus() uint8 {
	var val uint8
	if a.square1.length.value > 0 {
		val |= 0x01
	}
	if a.square2.length.value > 0 {
		val |= 0x02
	}
	if a.triangle.length.value > 0 {
		val |= 0x04
	}
	if a.noise.length.value > 0 {
		val |= 0x08
	}
	if a.dmc.bytesRemaining > 0 {
		val |= 0x10
	}
	if a.frameCounter.irqPending {
		val |= 0x40
	}
	if a.dmc.irqPending {
		val |= 0x80
	}
	return val
}

func (a *APU) State() snapshot.APU {
	return snapshot.APU{
		Cycles:       a.cycles,
		FrameCycle:   a.frameCycle,
		Pulse1:       a.square1.state(),
		Pulse2:       a.square2.state(),
		Triangle:     a.triangle.state(),
		Noise:        a.noise.state(),
		DMC:          a.dmc.state(),
		FrameCounter: a.frameCounter.state(),
	}
}

func (a *APU) Restore(s *snapshot.APU) {
	a.cycles = s.Cycles
	a.frameCycle = s.FrameCycle
	a.square1.restore(&s.Pulse1)
	a.square2.restore(&s.Pulse2)
	a.triangle.restore(&s.Triangle)
	a.noise.restore(&s.Noise)
	a.dmc.restore(&s.DMC)
	a.frameCounter.restore(&s.FrameCounter)
	a.mixer.reset()
}
