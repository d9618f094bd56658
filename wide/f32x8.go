package wide

import "github.com/chewxy/math32"

// F32x8 represents 8 float32 values. Streaming conversions that touch two
// chunks at once (YUV compositing) run in these.
type F32x8 [8]float32

// SplatF32 creates F32x8 with all elements set to n.
func SplatF32(n float32) F32x8 {
	var r F32x8
	for i := range r {
		r[i] = n
	}
	return r
}

// Join concatenates two F32x4 into one F32x8.
func Join(lo, hi F32x4) F32x8 {
	return F32x8{lo[0], lo[1], lo[2], lo[3], hi[0], hi[1], hi[2], hi[3]}
}

// Halves splits v into its low and high F32x4.
func (v F32x8) Halves() (lo, hi F32x4) {
	return F32x4{v[0], v[1], v[2], v[3]}, F32x4{v[4], v[5], v[6], v[7]}
}

// Add performs element-wise addition.
func (v F32x8) Add(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub performs element-wise subtraction.
func (v F32x8) Sub(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul performs element-wise multiplication.
func (v F32x8) Mul(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// Scale multiplies every element by s.
func (v F32x8) Scale(s float32) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// MulAdd computes v*m + a per element.
func (v F32x8) MulAdd(m, a F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i]*m[i] + a[i]
	}
	return r
}

// Clamp clamps each element to [lo, hi].
func (v F32x8) Clamp(lo, hi float32) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = math32.Min(math32.Max(v[i], lo), hi)
	}
	return r
}

// Lerp performs v + (o - v) * t per element.
func (v F32x8) Lerp(o, t F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] + (o[i]-v[i])*t[i]
	}
	return r
}

// Unorm8 converts normalized values to 8-bit, clamping and rounding.
func (v F32x8) Unorm8() [8]uint8 {
	var r [8]uint8
	for i := range v {
		r[i] = uint8(unorm8(v[i])) // #nosec G115
	}
	return r
}
