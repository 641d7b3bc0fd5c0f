// Package color converts sampled screen pixels into textual color notations.
package color

import "fmt"

// RGB is a sampled 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Decode unpacks a 0xRRGGBB pixel value. Bits above 23 (padding or alpha on
// 32bpp visuals) are ignored.
func Decode(pixel uint32) RGB {
	return RGB{
		R: uint8((pixel >> 16) & 0xFF),
		G: uint8((pixel >> 8) & 0xFF),
		B: uint8(pixel & 0xFF),
	}
}

// Packed returns the color as a 0xRRGGBB value.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
