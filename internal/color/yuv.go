package color

import "github.com/gogpu/swgl/wide"

// YUVSpace selects the matrix used to convert YUV planes to RGB.
type YUVSpace uint8

// Supported color spaces. Rec601, Rec709 and Rec2020 are limited (video)
// range. Identity treats the planes as G, B, R without offsets.
const (
	Rec601 YUVSpace = iota
	Rec709
	Rec2020
	Identity
)

func (s YUVSpace) String() string {
	switch s {
	case Rec601:
		return "rec601"
	case Rec709:
		return "rec709"
	case Rec2020:
		return "rec2020"
	case Identity:
		return "identity"
	default:
		return "unknown"
	}
}

// YUVMatrix converts biased YUV samples to RGB.
type YUVMatrix struct {
	// YBias, UVBias are subtracted before the matrix applies.
	YBias, UVBias float32
	YScale        float32
	RV, GU, GV    float32
	BU            float32
	identity      bool
}

var matrices = [...]YUVMatrix{
	Rec601:   {YBias: 16.0 / 255, UVBias: 128.0 / 255, YScale: 1.16438, RV: 1.59603, GU: -0.39176, GV: -0.81297, BU: 2.01723},
	Rec709:   {YBias: 16.0 / 255, UVBias: 128.0 / 255, YScale: 1.16438, RV: 1.79274, GU: -0.21325, GV: -0.53291, BU: 2.11240},
	Rec2020:  {YBias: 16.0 / 255, UVBias: 128.0 / 255, YScale: 1.16438, RV: 1.67867, GU: -0.18733, GV: -0.65042, BU: 2.14177},
	Identity: {YScale: 1, identity: true},
}

// Matrix returns the conversion matrix for s. Unknown spaces use Rec601.
func (s YUVSpace) Matrix() YUVMatrix {
	if int(s) >= len(matrices) {
		return matrices[Rec601]
	}
	return matrices[s]
}

// Convert maps one normalized YUV sample to RGB in [0,1].
func (m YUVMatrix) Convert(y, u, v float32) (r, g, b float32) {
	if m.identity {
		return clamp01(v), clamp01(y), clamp01(u)
	}
	y = (y - m.YBias) * m.YScale
	u -= m.UVBias
	v -= m.UVBias
	return clamp01(y + m.RV*v), clamp01(y + m.GU*u + m.GV*v), clamp01(y + m.BU*u)
}

// Convert8 converts eight samples at once.
func (m YUVMatrix) Convert8(y, u, v wide.F32x8) (r, g, b wide.F32x8) {
	if m.identity {
		return v.Clamp(0, 1), y.Clamp(0, 1), u.Clamp(0, 1)
	}
	y = y.Sub(wide.SplatF32(m.YBias)).Scale(m.YScale)
	u = u.Sub(wide.SplatF32(m.UVBias))
	v = v.Sub(wide.SplatF32(m.UVBias))
	r = v.MulAdd(wide.SplatF32(m.RV), y)
	g = u.MulAdd(wide.SplatF32(m.GU), v.MulAdd(wide.SplatF32(m.GV), y))
	b = u.MulAdd(wide.SplatF32(m.BU), y)
	return r.Clamp(0, 1), g.Clamp(0, 1), b.Clamp(0, 1)
}

// Rescale16 normalizes a sample stored in a 16-bit plane whose significant
// bits were shifted down by shift (e.g. 10-bit video has shift 6).
func Rescale16(v uint16, shift uint) float32 {
	return float32(uint32(v)<<shift) / 65535
}

func clamp01(v float32) float32 {
	switch {
	case !(v > 0):
		return 0
	case v > 1:
		return 1
	}
	return v
}
