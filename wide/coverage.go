package wide

// Coverage scales a chunk by per-pixel antialiasing coverage in [0, 256].
//
// Each pixel i of v is multiplied by cov[i] and shifted down by 8, so 256 is a
// pass-through and 0 clears the pixel.
func (v U16x16) Coverage(cov I32x4) U16x16 {
	var r U16x16
	for p := 0; p < 4; p++ {
		c := uint32(min(max(cov[p], 0), 256)) // #nosec G115
		for k := 0; k < 4; k++ {
			r[p*4+k] = uint16((uint32(v[p*4+k]) * c) >> 8) // #nosec G115
		}
	}
	return r
}

// InvCoverage returns the chunk scaled by 256-cov, the share of the existing
// destination that survives a partially covered replace.
func (v U16x16) InvCoverage(cov I32x4) U16x16 {
	var inv I32x4
	for p := range cov {
		inv[p] = 256 - min(max(cov[p], 0), 256)
	}
	return v.Coverage(inv)
}

// CoverageFromDistance maps signed distances (in pixels, positive inside)
// to 8.8 fixed point coverage, saturating one half pixel from the edge.
func CoverageFromDistance(d F32x4) I32x4 {
	var r I32x4
	for i := range d {
		c := (d[i] + 0.5) * 256
		switch {
		case !(c > 0):
			r[i] = 0
		case c >= 256:
			r[i] = 256
		default:
			r[i] = int32(c)
		}
	}
	return r
}

// MinCoverage combines two coverage vectors.
func MinCoverage(a, b I32x4) I32x4 {
	var r I32x4
	for i := range a {
		r[i] = min(a[i], b[i])
	}
	return r
}
