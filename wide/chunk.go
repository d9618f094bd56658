package wide

// Chunk geometry.
const (
	// ChunkPixels is the number of pixels processed together.
	ChunkPixels = 4
)

// LoadBGRA loads up to n (1..4) BGRA8 pixels from row.
// Lanes past n are zero.
func LoadBGRA(row []byte, n int) U16x16 {
	var r U16x16
	n = min(n, ChunkPixels) * 4
	for i := 0; i < n; i++ {
		r[i] = uint16(row[i])
	}
	return r
}

// StoreBGRA stores the first n (1..4) pixels of v into row.
// Lanes are expected to be in [0, 255].
func StoreBGRA(row []byte, v U16x16, n int) {
	n = min(n, ChunkPixels) * 4
	for i := 0; i < n; i++ {
		row[i] = uint8(v[i]) // #nosec G115
	}
}

// LoadR8 loads up to n (1..4) R8 pixels, replicating each into 4 lanes.
func LoadR8(row []byte, n int) U16x16 {
	var r U16x16
	for p := 0; p < min(n, ChunkPixels); p++ {
		c := uint16(row[p])
		r[p*4], r[p*4+1], r[p*4+2], r[p*4+3] = c, c, c, c
	}
	return r
}

// StoreR8 stores the first n (1..4) pixels of v into an R8 row.
// The red lane (index 2 in BGRA order) carries the value.
func StoreR8(row []byte, v U16x16, n int) {
	for p := 0; p < min(n, ChunkPixels); p++ {
		row[p] = uint8(v[p*4+2]) // #nosec G115
	}
}

// PackR8 converts BGRA-ordered lanes to replicated R8 lanes by copying the
// red channel of each pixel into all four lanes.
func (v U16x16) PackR8() U16x16 {
	var r U16x16
	for p := 0; p < 4; p++ {
		c := v[p*4+2]
		r[p*4], r[p*4+1], r[p*4+2], r[p*4+3] = c, c, c, c
	}
	return r
}

// FromFloat packs normalized per-pixel colors into BGRA-ordered lanes.
// Channels are clamped to [0, 1] and rounded to 8 bits.
// r, g, b, a hold one value per pixel.
func FromFloat(r, g, b, a F32x4) U16x16 {
	var out U16x16
	for p := 0; p < 4; p++ {
		out[p*4] = unorm8(b[p])
		out[p*4+1] = unorm8(g[p])
		out[p*4+2] = unorm8(r[p])
		out[p*4+3] = unorm8(a[p])
	}
	return out
}

func unorm8(f float32) uint16 {
	switch {
	case !(f > 0): // also catches NaN
		return 0
	case f >= 1:
		return 255
	}
	return uint16(f*255 + 0.5)
}
