package apu

import (
	"testing"

	"famicore/hw/hwdefs"
)

type stubSystem struct {
	irqs   hwdefs.IRQSource
	stalls uint32
	mem    func(addr uint16) uint8
}

func (s *stubSystem) SetIRQ(src hwdefs.IRQSource)   { s.irqs |= src }
func (s *stubSystem) ClearIRQ(src hwdefs.IRQSource) { s.irqs &^= src }
func (s *stubSystem) StallCPU(n uint32)             { s.stalls += n }
func (s *stubSystem) CPUCycle() uint64              { return 0 }

func (s *stubSystem) ReadMem(addr uint16) uint8 {
	if s.mem != nil {
		return s.mem(addr)
	}
	return 0
}

func newTestAPU() (*APU, *stubSystem) {
	sys := &stubSystem{}
	return New(sys), sys
}

func TestLengthCounterLoad(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08) // length index 1 -> 254

	if a.square1.length.value != 254 {
		t.Errorf("length = %d, want 254", a.square1.length.value)
	}
	if a.PeekStatus()&0x01 == 0 {
		t.Error("status bit 0 should report a non-zero length")
	}
}

func TestLengthCounterLoadIgnoredWhileDisabled(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4003, 0x08)
	if a.square1.length.value != 0 {
		t.Error("length load should be ignored while the channel is disabled")
	}
}

func TestDisableZeroesLengthCounter(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4015, 0x0F)
	a.WriteRegister(0x4003, 0x08)
	a.WriteRegister(0x400B, 0x08)
	a.WriteRegister(0x4015, 0x00)

	if a.square1.length.value != 0 || a.triangle.length.value != 0 {
		t.Error("disabling channels should zero their length counters")
	}
	if a.PeekStatus()&0x0F != 0 {
		t.Errorf("status = %#02x, want no channel bits", a.PeekStatus())
	}
}

func TestLengthCounterHalt(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x20) // halt
	a.WriteRegister(0x4003, 0x08)

	a.clockHalf()
	if a.square1.length.value != 254 {
		t.Error("halted length counter should not decrement")
	}

	a.WriteRegister(0x4000, 0x00)
	a.clockHalf()
	if a.square1.length.value != 253 {
		t.Errorf("length = %d, want 253", a.square1.length.value)
	}
}

func TestFrameIRQ(t *testing.T) {
	a, sys := newTestAPU()

	for i := 0; i < 29830; i++ {
		a.Step()
	}
	if !a.frameCounter.irqPending {
		t.Error("frame IRQ should be pending after a 4-step sequence")
	}
	if sys.irqs&hwdefs.FrameCounterIRQ == 0 {
		t.Error("frame IRQ line should be asserted")
	}

	// reading $4015 acknowledges it
	val := a.ReadStatus()
	if val&0x40 == 0 {
		t.Error("status read should report the frame IRQ")
	}
	if a.frameCounter.irqPending {
		t.Error("status read should clear the frame IRQ")
	}
	if sys.irqs&hwdefs.FrameCounterIRQ != 0 {
		t.Error("status read should release the IRQ line")
	}
}

func TestFrameIRQInhibit(t *testing.T) {
	a, sys := newTestAPU()

	a.WriteRegister(0x4017, 0x40)
	for i := 0; i < 2*29830; i++ {
		a.Step()
	}
	if a.frameCounter.irqPending || sys.irqs != 0 {
		t.Error("inhibited frame counter should not raise IRQ")
	}
}

func TestFrameCounterMode1ClocksImmediately(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x00) // length index 0 -> 10

	a.WriteRegister(0x4017, 0x80)
	for i := 0; i < 4; i++ { // let the write delay elapse
		a.Step()
	}
	if a.square1.length.value != 9 {
		t.Errorf("length = %d, want 9 (immediate half-frame clock)", a.square1.length.value)
	}
}

func TestEnvelopeDecay(t *testing.T) {
	var e envelope
	e.write(0x00) // decay mode, period 0
	e.restart()

	e.clock()
	if e.decay != 15 {
		t.Fatalf("decay = %d after start, want 15", e.decay)
	}
	for i := 0; i < 15; i++ {
		e.clock()
	}
	if e.decay != 0 {
		t.Errorf("decay = %d, want 0", e.decay)
	}
	e.clock()
	if e.decay != 0 {
		t.Error("non-looping envelope should stay at 0")
	}
}

func TestEnvelopeConstantVolume(t *testing.T) {
	var e envelope
	e.write(0x17) // constant volume 7
	if e.volume() != 7 {
		t.Errorf("volume = %d, want 7", e.volume())
	}
}

func TestSweepMutesOutOfRange(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x3F) // constant volume 15, halt
	a.WriteRegister(0x4002, 0x04) // period 4 < 8: muted
	a.WriteRegister(0x4003, 0x08)

	// force the duty sequencer onto a high step
	a.square1.dutyMode = 3
	a.square1.dutyValue = 0
	if a.square1.output() != 0 {
		t.Error("square with period < 8 should be silent")
	}

	a.square1.timerPeriod = 0x800
	if a.square1.output() != 0 {
		t.Error("square with period > $7FF should be silent")
	}

	a.square1.timerPeriod = 0x100
	if a.square1.output() == 0 {
		t.Error("square in range should output its volume")
	}
}

func TestSweepNegateModes(t *testing.T) {
	a, _ := newTestAPU()

	// pulse 1 negates in ones' complement
	a.square1.timerPeriod = 0x100
	a.square1.sweep = sweep{enabled: true, negate: true, shift: 2}
	a.square1.shiftPeriod()
	if a.square1.timerPeriod != 0x100-0x40-1 {
		t.Errorf("pulse1 period = %#x, want %#x", a.square1.timerPeriod, 0x100-0x40-1)
	}

	a.square2.timerPeriod = 0x100
	a.square2.sweep = sweep{enabled: true, negate: true, shift: 2}
	a.square2.shiftPeriod()
	if a.square2.timerPeriod != 0x100-0x40 {
		t.Errorf("pulse2 period = %#x, want %#x", a.square2.timerPeriod, 0x100-0x40)
	}
}

func TestTriangleGating(t *testing.T) {
	a, _ := newTestAPU()

	a.WriteRegister(0x4015, 0x04)
	a.WriteRegister(0x4008, 0x05) // linear period 5
	a.WriteRegister(0x400A, 0x00)
	a.WriteRegister(0x400B, 0x08) // length load + linear reload
	a.clockQuarter()              // linear counter reloads

	pos := a.triangle.seqPos
	a.triangle.stepTimer()
	if a.triangle.seqPos == pos {
		t.Error("triangle sequence should advance when both counters are non-zero")
	}

	a.triangle.linearValue = 0
	pos = a.triangle.seqPos
	for i := 0; i < 10; i++ {
		a.triangle.stepTimer()
	}
	if a.triangle.seqPos != pos {
		t.Error("triangle sequence should hold when the linear counter is zero")
	}
}

func TestNoiseLFSR(t *testing.T) {
	a, _ := newTestAPU()
	a.noise.timerPeriod = 0

	// shift = 1: feedback = bit0 ^ bit1 = 1 -> bit 14
	a.noise.stepTimer()
	if a.noise.shift != 0x4000 {
		t.Errorf("shift = %#04x, want 0x4000", a.noise.shift)
	}

	// short mode taps bit 6
	a.noise.shift = 0x41
	a.noise.mode = true
	a.noise.stepTimer()
	if a.noise.shift != 0x20 {
		t.Errorf("shift = %#04x, want 0x0020", a.noise.shift)
	}
}

func TestDMCFetchStallsCPU(t *testing.T) {
	a, sys := newTestAPU()
	sys.mem = func(addr uint16) uint8 { return 0xAA }

	a.WriteRegister(0x4012, 0x00) // sample at $C000
	a.WriteRegister(0x4013, 0x01) // 17 bytes
	a.WriteRegister(0x4015, 0x10)

	a.dmc.stepTimer()
	if sys.stalls != 4 {
		t.Errorf("DMC fetch stalled %d cycles, want 4", sys.stalls)
	}
	if a.dmc.bytesRemaining != 16 {
		t.Errorf("bytesRemaining = %d, want 16", a.dmc.bytesRemaining)
	}
	if a.dmc.currentAddress != 0xC001 {
		t.Errorf("currentAddress = %#04x, want 0xC001", a.dmc.currentAddress)
	}
}

func TestDMCIRQAndAcknowledge(t *testing.T) {
	a, sys := newTestAPU()
	sys.mem = func(addr uint16) uint8 { return 0 }

	a.WriteRegister(0x4010, 0x80) // IRQ enabled, no loop
	a.WriteRegister(0x4012, 0x00)
	a.WriteRegister(0x4013, 0x00) // 1 byte
	a.WriteRegister(0x4015, 0x10)

	a.dmc.stepTimer() // fetches the single byte
	if !a.dmc.irqPending {
		t.Error("DMC should raise IRQ when the sample ends")
	}
	if sys.irqs&hwdefs.DMCIRQ == 0 {
		t.Error("DMC IRQ line should be asserted")
	}

	// $4015 write clears the DMC IRQ
	a.WriteRegister(0x4015, 0x00)
	if a.dmc.irqPending || sys.irqs&hwdefs.DMCIRQ != 0 {
		t.Error("$4015 write should clear the DMC IRQ")
	}
}

func TestDMCLevelDeltas(t *testing.T) {
	a, _ := newTestAPU()

	a.dmc.level = 64
	a.dmc.shift = 0b01
	a.dmc.bitCount = 2

	a.dmc.stepShifter() // bit 1: +2
	if a.dmc.level != 66 {
		t.Errorf("level = %d, want 66", a.dmc.level)
	}
	a.dmc.stepShifter() // bit 0: -2
	if a.dmc.level != 64 {
		t.Errorf("level = %d, want 64", a.dmc.level)
	}

	// clamping
	a.dmc.level = 126
	a.dmc.shift = 1
	a.dmc.bitCount = 1
	a.dmc.stepShifter()
	if a.dmc.level != 126 {
		t.Errorf("level = %d, want 126 (clamped)", a.dmc.level)
	}
}

func TestMixerSamplesPerFrame(t *testing.T) {
	a, _ := newTestAPU()
	a.SetSampleRate(44100)

	// make some noise so deltas flow
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x3F)
	a.WriteRegister(0x4002, 0x40)
	a.WriteRegister(0x4003, 0x08)

	const frameCycles = 29780
	for i := 0; i < frameCycles; i++ {
		a.Step()
	}
	a.EndFrame()

	dst := make([]int16, 2048)
	n := a.TakeSamples(dst)
	// 29780 / 1789773 * 44100 ≈ 733.8
	if n < 730 || n > 738 {
		t.Errorf("got %d samples for one frame, want ~734", n)
	}
}

func TestMixerTablesMonotonic(t *testing.T) {
	for i := 1; i < len(pulseTable); i++ {
		if pulseTable[i] <= pulseTable[i-1] {
			t.Fatalf("pulseTable not increasing at %d", i)
		}
	}
	for i := 1; i < len(tndTable); i++ {
		if tndTable[i] <= tndTable[i-1] {
			t.Fatalf("tndTable not increasing at %d", i)
		}
	}
}
