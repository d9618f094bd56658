package wide

// I32x4 represents 4 int32 values, one per pixel of a chunk.
type I32x4 [4]int32

// SplatI32 creates I32x4 with all elements set to n.
func SplatI32(n int32) I32x4 {
	return I32x4{n, n, n, n}
}

// Add performs element-wise addition.
func (v I32x4) Add(o I32x4) I32x4 {
	return I32x4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub performs element-wise subtraction.
func (v I32x4) Sub(o I32x4) I32x4 {
	return I32x4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Mul performs element-wise multiplication.
func (v I32x4) Mul(o I32x4) I32x4 {
	return I32x4{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

// Shr shifts each element right arithmetically by n.
func (v I32x4) Shr(n uint) I32x4 {
	return I32x4{v[0] >> n, v[1] >> n, v[2] >> n, v[3] >> n}
}

// Clamp clamps each element to [lo, hi].
func (v I32x4) Clamp(lo, hi int32) I32x4 {
	var r I32x4
	for i := range v {
		r[i] = min(max(v[i], lo), hi)
	}
	return r
}

// Float converts each element to float32.
func (v I32x4) Float() F32x4 {
	return F32x4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}
