// Scalar helpers for the per-pixel float formulas.
//
// The lane formulas use wide.U16x16.MulDiv255, (a*b + a) >> 8, which is exact
// at 0 and 255. The scalar path rounds to nearest instead.
package blend

import "github.com/chewxy/math32"

// div255 divides x by 255 with rounding, for x up to 255*255.
func div255(x uint32) uint32 {
	x += 128
	return (x + (x >> 8)) >> 8
}

// mulDiv255 multiplies two 8-bit values and divides by 255 with rounding.
func mulDiv255(a, b uint16) uint16 {
	return uint16(div255(uint32(a) * uint32(b))) // #nosec G115
}

// unpremultiply returns c/a in [0, 1].
func unpremultiply(c, a uint16) float32 {
	if a == 0 {
		return 0
	}
	return math32.Min(float32(c)/float32(a), 1)
}

// unorm rounds a value in [0, 255] to an integer, clamping.
func unorm(v float32) uint16 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint16(v + 0.5)
}
