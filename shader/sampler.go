package shader

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/color"
	"github.com/gogpu/swgl/wide"
)

// Sampler reads a bound texture. Coordinates passed to the Sample methods
// are normalized; results are channel-major RGBA.
type Sampler interface {
	Size() (width, height int)
	Format() gputypes.TextureFormat
	// Sample filters with the texture's filter mode.
	Sample(u, v wide.F32x4) [4]wide.F32x4
	SampleNearest(u, v wide.F32x4) [4]wide.F32x4
	SampleLinear(u, v wide.F32x4) [4]wide.F32x4
	// SampleBGRA returns packed 8-bit BGRA lanes.
	SampleBGRA(u, v wide.F32x4) wide.U16x16
	// Fetch reads texels by integer coordinate, clamped to the edges.
	Fetch(x, y wide.I32x4) [4]wide.F32x4
	// Texel16 reads the raw value of a 16-bit single channel texel.
	Texel16(x, y int) uint16
	// Gradient looks up a gradient table of entries (color, delta) pairs
	// starting at texel address.
	Gradient(address, entries int, pos wide.F32x4) [4]wide.F32x4
}

// YUVColorSpace selects the YUV to RGB matrix.
type YUVColorSpace = color.YUVSpace

// YUV color spaces.
const (
	Rec601   = color.Rec601
	Rec709   = color.Rec709
	Rec2020  = color.Rec2020
	Identity = color.Identity
)

// YUV describes three planes sampled together. Planes wider than 8 bits
// must all share the same bit depth, given by Shift: a value v of a 16-bit
// plane is read as (v << Shift) / 65535.
type YUV struct {
	Y, U, V Sampler
	Space   YUVColorSpace
	Shift   uint
}

// plane samples the first channel of s at normalized coordinates.
func (y *YUV) plane(s Sampler, u, v wide.F32x4) wide.F32x4 {
	if s.Format() != gputypes.TextureFormatR16Unorm || y.Shift == 0 {
		return s.Sample(u, v)[0]
	}
	w, h := s.Size()
	var r wide.F32x4
	for i := range r {
		x := int(u[i] * float32(w))
		row := int(v[i] * float32(h))
		r[i] = color.Rescale16(s.Texel16(x, row), y.Shift)
	}
	return r
}

// Sample converts the planes at normalized coordinates to opaque RGBA.
func (y *YUV) Sample(u, v wide.F32x4) [4]wide.F32x4 {
	ly := y.plane(y.Y, u, v)
	lu := y.plane(y.U, u, v)
	lv := y.plane(y.V, u, v)
	m := y.Space.Matrix()
	var out [4]wide.F32x4
	for i := 0; i < wide.ChunkPixels; i++ {
		out[0][i], out[1][i], out[2][i] = m.Convert(ly[i], lu[i], lv[i])
	}
	out[3] = wide.Splat4(1)
	return out
}

// SampleYUV is shorthand for building a YUV and sampling it once.
func SampleYUV(y, u, v Sampler, space YUVColorSpace, shift uint, s, t wide.F32x4) [4]wide.F32x4 {
	yuv := YUV{Y: y, U: u, V: v, Space: space, Shift: shift}
	return yuv.Sample(s, t)
}
