package hw

import (
	"fmt"
	"testing"
)

/* general testing helpers */

func tcheck(tb testing.TB, err error) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s\n", err)
}

func tcheckf(tb testing.TB, err error, format string, args ...any) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s: %s\n", fmt.Sprintf(format, args...), err)
}

// testRomImage builds a 32KB NROM iNES image with the given program at
// $8000 and the reset vector pointing to it.
func testRomImage(prg []byte) []byte {
	header := make([]byte, 16)
	copy(header, "NES\x1a")
	header[4] = 2 // 2 x 16KB PRG
	header[5] = 1 // 1 x 8KB CHR

	img := append(header, make([]byte, 0x8000+0x2000)...)
	copy(img[16:], prg)
	img[16+0x7FFC] = 0x00 // reset vector = $8000
	img[16+0x7FFD] = 0x80
	return img
}

// testNES powers up a machine running the given program.
func testNES(tb testing.TB, prg []byte) *NES {
	tb.Helper()
	nes, err := New(testRomImage(prg))
	tcheck(tb, err)
	return nes
}
