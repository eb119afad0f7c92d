package hw

import "image/color"

// defaultColors is the conventional 2C02 NTSC palette.
var defaultColors = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
}

// defaultPalette is the same palette as a 192-byte RGB blob, the format
// accepted by LoadPalette.
var defaultPalette [192]byte

func init() {
	for i, c := range defaultColors {
		defaultPalette[i*3+0] = byte(c >> 16)
		defaultPalette[i*3+1] = byte(c >> 8)
		defaultPalette[i*3+2] = byte(c)
	}
}

// paletteTable holds the 64 palette colors for each of the 8 emphasis
// bit combinations from PPUMASK.
type paletteTable [8][64]color.RGBA

// emphasisFactors attenuates the non-emphasized channels. Index is the
// raw emphasis bits (bit 0 red, bit 1 green, bit 2 blue).
var emphasisFactors = [8][3]float64{
	{1.00, 1.00, 1.00},
	{1.00, 0.85, 0.85}, // red
	{0.85, 1.00, 0.85}, // green
	{0.85, 0.85, 0.70},
	{0.85, 0.85, 1.00}, // blue
	{0.85, 0.70, 0.85},
	{0.70, 0.85, 0.85},
	{0.70, 0.70, 0.70},
}

func (pt *paletteTable) load(rgb []byte) {
	for e := 0; e < 8; e++ {
		f := emphasisFactors[e]
		for i := 0; i < 64; i++ {
			pt[e][i] = color.RGBA{
				R: uint8(float64(rgb[i*3+0]) * f[0]),
				G: uint8(float64(rgb[i*3+1]) * f[1]),
				B: uint8(float64(rgb[i*3+2]) * f[2]),
				A: 0xFF,
			}
		}
	}
}
