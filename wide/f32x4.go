package wide

import (
	"math/bits"

	"github.com/chewxy/math32"
)

// F32x4 represents 4 float32 values, one per pixel of a chunk.
type F32x4 [4]float32

// Splat4 creates F32x4 with all elements set to n.
func Splat4(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// Ramp4 returns {base, base+step, base+2*step, base+3*step}.
// This is how a linearly interpolated value is spread across a chunk.
func Ramp4(base, step float32) F32x4 {
	return F32x4{base, base + step, base + 2*step, base + 3*step}
}

// Add performs element-wise addition.
func (v F32x4) Add(o F32x4) F32x4 {
	return F32x4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub performs element-wise subtraction.
func (v F32x4) Sub(o F32x4) F32x4 {
	return F32x4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Mul performs element-wise multiplication.
func (v F32x4) Mul(o F32x4) F32x4 {
	return F32x4{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

// Div performs element-wise division.
// Division by zero follows IEEE 754.
func (v F32x4) Div(o F32x4) F32x4 {
	return F32x4{v[0] / o[0], v[1] / o[1], v[2] / o[2], v[3] / o[3]}
}

// Scale multiplies every element by s.
func (v F32x4) Scale(s float32) F32x4 {
	return F32x4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Recip returns 1/v for each element.
func (v F32x4) Recip() F32x4 {
	return F32x4{1 / v[0], 1 / v[1], 1 / v[2], 1 / v[3]}
}

// Min performs element-wise minimum.
func (v F32x4) Min(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Min(v[i], o[i])
	}
	return r
}

// Max performs element-wise maximum.
func (v F32x4) Max(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Max(v[i], o[i])
	}
	return r
}

// Clamp clamps each element to [lo, hi].
func (v F32x4) Clamp(lo, hi float32) F32x4 {
	var r F32x4
	for i := range v {
		switch {
		case v[i] < lo:
			r[i] = lo
		case v[i] > hi:
			r[i] = hi
		default:
			r[i] = v[i]
		}
	}
	return r
}

// Floor rounds each element toward negative infinity.
func (v F32x4) Floor() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Floor(v[i])
	}
	return r
}

// Fract returns v - floor(v).
func (v F32x4) Fract() F32x4 {
	return v.Sub(v.Floor())
}

// Abs returns |v| for each element.
func (v F32x4) Abs() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Abs(v[i])
	}
	return r
}

// Sqrt computes the square root of each element.
func (v F32x4) Sqrt() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = math32.Sqrt(v[i])
	}
	return r
}

// Lerp performs v + (o - v) * t per element.
func (v F32x4) Lerp(o, t F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] + (o[i]-v[i])*t[i]
	}
	return r
}

// Trunc converts to I32x4 truncating toward zero.
func (v F32x4) Trunc() I32x4 {
	return I32x4{int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3])}
}

// Round converts to I32x4 rounding half away from zero.
func (v F32x4) Round() I32x4 {
	var r I32x4
	for i := range v {
		r[i] = int32(math32.Round(v[i]))
	}
	return r
}

// Less returns a lane mask of v < o.
func (v F32x4) Less(o F32x4) Mask4 {
	var m Mask4
	for i := range v {
		if v[i] < o[i] {
			m |= 1 << i
		}
	}
	return m
}

// GreaterEqual returns a lane mask of v >= o.
func (v F32x4) GreaterEqual(o F32x4) Mask4 {
	return v.Less(o) ^ MaskAll
}

// Select returns v where m is set and o elsewhere.
func (v F32x4) Select(m Mask4, o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		if m.Has(i) {
			r[i] = v[i]
		} else {
			r[i] = o[i]
		}
	}
	return r
}

// Mask4 is a 4-lane boolean mask, one bit per lane.
type Mask4 uint8

// MaskAll has every lane set.
const MaskAll Mask4 = 0xF

// Has reports whether lane i is set.
func (m Mask4) Has(i int) bool { return m&(1<<i) != 0 }

// FirstN returns a mask with the first n lanes set.
func FirstN(n int) Mask4 {
	if n >= 4 {
		return MaskAll
	}
	if n <= 0 {
		return 0
	}
	return Mask4(1<<n) - 1
}

// Count returns the number of set lanes.
func (m Mask4) Count() int { return bits.OnesCount8(uint8(m & MaskAll)) }

// Pixels expands the mask to U16x16 lanes, 0xFFFF for every channel of a
// set pixel.
func (m Mask4) Pixels() U16x16 {
	var r U16x16
	for p := 0; p < 4; p++ {
		if m.Has(p) {
			r[p*4], r[p*4+1], r[p*4+2], r[p*4+3] = 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
		}
	}
	return r
}
