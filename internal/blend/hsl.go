// This file implements the non-separable HSL blend equations (hue,
// saturation, color, luminosity).
package blend

import (
	"github.com/gogpu/swgl/wide"
)

// Lum returns the luminance of a color using BT.601 coefficients.
func Lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation (max - min) of a color.
func Sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

// ClipColor clips color components to [0,1] while preserving luminance.
func ClipColor(r, g, b float32) (float32, float32, float32) {
	l := Lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// SetLum sets the luminance of a color while preserving hue and saturation.
func SetLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat sets the saturation of a color while preserving hue.
// Gray inputs stay gray.
func SetSat(r, g, b, s float32) (float32, float32, float32) {
	lo, mid, hi := sortRGB(&r, &g, &b)
	if *hi > *lo {
		*mid = ((*mid - *lo) * s) / (*hi - *lo)
		*hi = s
		*lo = 0
	}
	return r, g, b
}

// sortRGB returns pointers to r, g, b ordered by value.
func sortRGB(r, g, b *float32) (lo, mid, hi *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func hslBlendHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(sr, sg, sb, Sat(dr, dg, db))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

// SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func hslBlendSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(dr, dg, db, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

// SetLum(Cs, Lum(Cb))
func hslBlendColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(sr, sg, sb, Lum(dr, dg, db))
}

// SetLum(Cb, Lum(Cs))
func hslBlendLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(dr, dg, db, Lum(sr, sg, sb))
}

type mixFunc func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32)

// nonSeparable lifts a function of unpremultiplied RGB triplets into a
// formula. Each pixel is converted to float, unpremultiplied, mixed and
// composited with the W3C formula.
func nonSeparable(mix mixFunc) func(src, dst wide.U16x16, p *Params) wide.U16x16 {
	return func(src, dst wide.U16x16, _ *Params) wide.U16x16 {
		var out wide.U16x16
		for i := 0; i < wide.ChunkPixels; i++ {
			s, d := src.Pixel(i), dst.Pixel(i)
			b, g, r, a := compositePixel(s, d, mix)
			out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = b, g, r, a
		}
		return out
	}
}

// compositePixel blends one BGRA pixel.
func compositePixel(s, d [4]uint16, mix mixFunc) (b, g, r, a uint16) {
	sa, da := s[3], d[3]
	if sa == 0 {
		return d[0], d[1], d[2], da
	}
	if da == 0 {
		return s[0], s[1], s[2], sa
	}

	sb, sg, sr := unpremultiply(s[0], sa), unpremultiply(s[1], sa), unpremultiply(s[2], sa)
	db, dg, dr := unpremultiply(d[0], da), unpremultiply(d[1], da), unpremultiply(d[2], da)
	mr, mg, mb := mix(sr, sg, sb, dr, dg, db)

	saf, daf := float32(sa)/255, float32(da)/255
	k := saf * daf * 255
	invSa, invDa := 255-sa, 255-da
	chan8 := func(sc, dc uint16, m float32) uint16 {
		v := uint32(mulDiv255(dc, invSa)) + uint32(mulDiv255(sc, invDa)) + uint32(unorm(m*k))
		return uint16(min(v, 255)) // #nosec G115
	}
	return chan8(s[0], d[0], mb), chan8(s[1], d[1], mg), chan8(s[2], d[2], mr),
		sa + da - mulDiv255(sa, da)
}
