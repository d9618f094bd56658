package color

import "github.com/chewxy/math32"

// sRGB transfer lookup tables.
//
// srgbToLinear maps an sRGB byte to linear [0,1]. linearToSRGB maps linear
// light quantized to 12 bits back to an sRGB byte.
var (
	srgbToLinear [256]float32
	linearToSRGB [4096]uint8
)

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = SRGBToLinear(float32(i) / 255)
	}
	for i := range linearToSRGB {
		linearToSRGB[i] = Unorm8(LinearToSRGB(float32(i) / 4095))
	}
}

// SRGBToLinear applies the sRGB EOTF to a component in [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the sRGB OETF to a component in [0,1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1/2.4) - 0.055
}

// SRGBToLinearFast converts an sRGB byte through the lookup table.
func SRGBToLinearFast(s uint8) float32 {
	return srgbToLinear[s]
}

// LinearToSRGBFast converts linear light to an sRGB byte through the lookup
// table. Input is clamped to [0,1].
func LinearToSRGBFast(l float32) uint8 {
	i := int(math32.Min(math32.Max(l, 0), 1)*4095 + 0.5)
	return linearToSRGB[min(i, 4095)]
}

// MixLinear interpolates two sRGB-encoded colors in linear light.
// Alpha interpolates directly.
func MixLinear(a, b ColorF32, t float32) ColorF32 {
	mix := func(x, y float32) float32 {
		lx, ly := SRGBToLinear(x), SRGBToLinear(y)
		return LinearToSRGB(lx + (ly-lx)*t)
	}
	return ColorF32{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: a.A + (b.A-a.A)*t}
}
