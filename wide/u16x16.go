package wide

// U16x16 holds a chunk of four pixels widened to 16 bits per channel.
//
// Lanes are interleaved in storage order: lane p*4+c is channel c of pixel p.
// For BGRA8 targets c runs B, G, R, A. R8 targets replicate the single
// channel into all four lanes of a pixel so that the same blend formulas
// apply unchanged.
//
// Arithmetic wraps at 16 bits. Blend formulas rely on this.
type U16x16 [16]uint16

// SplatU16 creates U16x16 with all elements set to n.
func SplatU16(n uint16) U16x16 {
	var r U16x16
	for i := range r {
		r[i] = n
	}
	return r
}

// SplatPixel repeats one 4-channel pixel across the chunk.
func SplatPixel(p [4]uint16) U16x16 {
	var r U16x16
	for i := range r {
		r[i] = p[i&3]
	}
	return r
}

// Pixel returns the four channels of pixel i.
func (v U16x16) Pixel(i int) [4]uint16 {
	return [4]uint16{v[i*4], v[i*4+1], v[i*4+2], v[i*4+3]}
}

// Add performs wrapping element-wise addition.
func (v U16x16) Add(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub performs wrapping element-wise subtraction.
func (v U16x16) Sub(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul performs wrapping element-wise multiplication.
func (v U16x16) Mul(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// MulDiv255 approximates v*o/255 as (v*o + v) >> 8 in 16-bit lanes.
// Exact at 0 and 255, which keeps opaque and transparent blends lossless.
func (v U16x16) MulDiv255(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = (v[i]*o[i] + v[i]) >> 8
	}
	return r
}

// MulDiv256 computes (v*o) >> 8 in 16-bit lanes.
func (v U16x16) MulDiv256(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = (v[i] * o[i]) >> 8
	}
	return r
}

// Div255 divides each element by 255 with rounding, for values up to 255*255.
func (v U16x16) Div255() U16x16 {
	var r U16x16
	for i := range v {
		x := uint32(v[i])
		r[i] = uint16((x + 128 + ((x + 128) >> 8)) >> 8) // #nosec G115
	}
	return r
}

// Inv computes 255 - v for each element.
func (v U16x16) Inv() U16x16 {
	var r U16x16
	for i := range v {
		r[i] = 255 - v[i]
	}
	return r
}

// Shr shifts each element right by n.
func (v U16x16) Shr(n uint) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] >> n
	}
	return r
}

// Shl shifts each element left by n.
func (v U16x16) Shl(n uint) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] << n
	}
	return r
}

// And performs element-wise bitwise and.
func (v U16x16) And(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] & o[i]
	}
	return r
}

// Or performs element-wise bitwise or.
func (v U16x16) Or(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] | o[i]
	}
	return r
}

// Xor performs element-wise bitwise xor.
func (v U16x16) Xor(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = v[i] ^ o[i]
	}
	return r
}

// Min performs element-wise minimum.
func (v U16x16) Min(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = min(v[i], o[i])
	}
	return r
}

// Max performs element-wise maximum.
func (v U16x16) Max(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = max(v[i], o[i])
	}
	return r
}

// Clamp clamps each element to [0, maxVal].
func (v U16x16) Clamp(maxVal uint16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = min(v[i], maxVal)
	}
	return r
}

// Greater returns an all-ones lane mask where v > o.
func (v U16x16) Greater(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		if v[i] > o[i] {
			r[i] = 0xFFFF
		}
	}
	return r
}

// Equal returns an all-ones lane mask where v == o.
func (v U16x16) Equal(o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		if v[i] == o[i] {
			r[i] = 0xFFFF
		}
	}
	return r
}

// Select takes lanes from v where mask is nonzero and from o elsewhere.
func (v U16x16) Select(mask, o U16x16) U16x16 {
	var r U16x16
	for i := range v {
		r[i] = (v[i] & mask[i]) | (o[i] &^ mask[i])
	}
	return r
}

// Alphas broadcasts the alpha lane of each pixel to all of its channels.
func (v U16x16) Alphas() U16x16 {
	var r U16x16
	for p := 0; p < 4; p++ {
		a := v[p*4+3]
		r[p*4], r[p*4+1], r[p*4+2], r[p*4+3] = a, a, a, a
	}
	return r
}

// WithAlpha replaces the alpha lane of each pixel with the matching lane of a.
func (v U16x16) WithAlpha(a U16x16) U16x16 {
	r := v
	for p := 0; p < 4; p++ {
		r[p*4+3] = a[p*4+3]
	}
	return r
}

// AlphaMask has 0xFFFF in every alpha lane and 0 in the color lanes.
var AlphaMask = U16x16{
	0, 0, 0, 0xFFFF, 0, 0, 0, 0xFFFF,
	0, 0, 0, 0xFFFF, 0, 0, 0, 0xFFFF,
}

// Pack narrows to 8 bits per lane, saturating at 255.
func (v U16x16) Pack() U8x16 {
	var r U8x16
	for i := range v {
		r[i] = uint8(min(v[i], 255)) // #nosec G115
	}
	return r
}

// Float returns the four channels of pixel p scaled to [0, 1].
func (v U16x16) Float(p int) [4]float32 {
	const s = 1.0 / 255
	return [4]float32{
		float32(v[p*4]) * s, float32(v[p*4+1]) * s,
		float32(v[p*4+2]) * s, float32(v[p*4+3]) * s,
	}
}
