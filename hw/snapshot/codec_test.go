package snapshot

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := &NES{}
	state.CPU.PC = 0xC123
	state.CPU.Cycles = 123456789
	state.RAM[0x200] = 0x42
	state.PPU.V = 0x2ABC
	state.PPU.W = true
	state.PPU.Nametables[0x123] = 0x99
	state.APU.Noise.Shift = 0x4000
	state.APU.FrameCounter.Cycle = 14913
	state.Mapper.Control = 0x1C
	state.Mapper.PRGRAM[0] = 0x77

	data := Encode(state)
	if string(data[:4]) != Magic {
		t.Fatalf("magic = %q, want %q", data[:4], Magic)
	}
	if data[4] != Version {
		t.Fatalf("version byte = %d, want %d", data[4], Version)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("state mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	_, err := Decode([]byte("XXXX\x01rest"))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecodeBadVersion(t *testing.T) {
	data := Encode(&NES{})
	data[4] = 42
	_, err := Decode(data)
	if !errors.Is(err, ErrVersion) {
		t.Fatalf("err = %v, want ErrVersion", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := Encode(&NES{})
	_, err := Decode(data[:len(data)/2])
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestDecodeTrailingGarbage(t *testing.T) {
	data := append(Encode(&NES{}), 0xFF)
	_, err := Decode(data)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}
