package hw

import "testing"

func TestControllerShiftRegister(t *testing.T) {
	nes := testNES(t, []byte{0xEA})
	b := bus{nes}

	// A, Start and Right held
	state := uint8(1<<ButtonA | 1<<ButtonStart | 1<<ButtonRight)
	nes.SetButtons(0, state)

	b.Write(0x4016, 1) // strobe high
	b.Write(0x4016, 0) // falling edge latches

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		if got := b.Read(0x4016); got != w {
			t.Errorf("read %d = %d, want %d", i, got, w)
		}
	}
	// reads past the eighth return 1
	for i := 0; i < 4; i++ {
		if got := b.Read(0x4016); got != 1 {
			t.Errorf("read past 8th = %d, want 1", got)
		}
	}
}

func TestControllerStrobeHighContinuouslyLatches(t *testing.T) {
	nes := testNES(t, []byte{0xEA})
	b := bus{nes}

	b.Write(0x4016, 1)
	nes.SetButtons(0, 1<<ButtonA)
	for i := 0; i < 3; i++ {
		if got := b.Read(0x4016); got != 1 {
			t.Errorf("strobed read = %d, want current A state 1", got)
		}
	}
	nes.SetButtons(0, 0)
	if got := b.Read(0x4016); got != 0 {
		t.Errorf("strobed read = %d, want 0 after release", got)
	}
}

func TestControllerSecondPort(t *testing.T) {
	nes := testNES(t, []byte{0xEA})
	b := bus{nes}

	nes.SetButtons(1, 1<<ButtonB)
	b.Write(0x4016, 1)
	b.Write(0x4016, 0)

	if got := b.Read(0x4017); got != 0 {
		t.Errorf("port 2 bit 0 (A) = %d, want 0", got)
	}
	if got := b.Read(0x4017); got != 1 {
		t.Errorf("port 2 bit 1 (B) = %d, want 1", got)
	}
}
