// Package color holds the pixel color conversions shared by the texture
// sampler, the compositing entry points and the reference programs:
// float and 8-bit packing, sRGB transfer tables and YUV matrices.
package color

import "github.com/gogpu/swgl/wide"

// ColorF32 represents a color with float32 components in [0,1].
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// U8ToF32 converts ColorU8 to ColorF32.
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// F32ToU8 converts ColorF32 to ColorU8, clamping and rounding.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{R: Unorm8(c.R), G: Unorm8(c.G), B: Unorm8(c.B), A: Unorm8(c.A)}
}

// Unorm8 clamps v to [0,1] and rounds it to 8 bits.
func Unorm8(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Premultiply scales the color channels by alpha.
func (c ColorF32) Premultiply() ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// BGRA packs c into the little-endian word of a BGRA8 pixel.
func (c ColorU8) BGRA() uint32 {
	return uint32(c.B) | uint32(c.G)<<8 | uint32(c.R)<<16 | uint32(c.A)<<24
}

// FromBGRA unpacks a BGRA8 pixel word.
func FromBGRA(p uint32) ColorU8 {
	return ColorU8{B: uint8(p), G: uint8(p >> 8), R: uint8(p >> 16), A: uint8(p >> 24)} // #nosec G115
}

// Lanes spreads c across a chunk in BGRA lane order, 8-bit per lane.
func (c ColorU8) Lanes() wide.U16x16 {
	return wide.SplatPixel([4]uint16{uint16(c.B), uint16(c.G), uint16(c.R), uint16(c.A)})
}
