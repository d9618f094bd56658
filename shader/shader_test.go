package shader

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"

	"github.com/gogpu/swgl/wide"
)

// constSampler returns the same value from every texel.
type constSampler struct {
	format gputypes.TextureFormat
	value  float32
	raw    uint16
}

func (s constSampler) Size() (int, int)               { return 2, 2 }
func (s constSampler) Format() gputypes.TextureFormat { return s.format }
func (s constSampler) Sample(u, v wide.F32x4) [4]wide.F32x4 {
	return [4]wide.F32x4{wide.Splat4(s.value), {}, {}, wide.Splat4(1)}
}
func (s constSampler) Fetch(x, y wide.I32x4) [4]wide.F32x4 {
	return s.Sample(wide.F32x4{}, wide.F32x4{})
}
func (s constSampler) SampleNearest(u, v wide.F32x4) [4]wide.F32x4 { return s.Sample(u, v) }
func (s constSampler) SampleLinear(u, v wide.F32x4) [4]wide.F32x4  { return s.Sample(u, v) }
func (s constSampler) SampleBGRA(u, v wide.F32x4) wide.U16x16      { return wide.U16x16{} }
func (s constSampler) Texel16(x, y int) uint16                     { return s.raw }
func (s constSampler) Gradient(int, int, wide.F32x4) [4]wide.F32x4 { return [4]wide.F32x4{} }

func TestFragmentHelpers(t *testing.T) {
	var f Fragment
	f.SetColor([4]float32{1, 0.5, 0, 1})
	assert.Equal(t, wide.Splat4(0.5), f.Color[1])
	f.Discard = wide.MaskAll
	f.Reset()
	assert.Equal(t, wide.Mask4(0), f.Discard)
	assert.Equal(t, wide.F32x4{}, f.Color[0])
	assert.Nil(t, f.Texture(3))
}

func TestPrimitiveEdges(t *testing.T) {
	p := Primitive{NumVertices: 3}
	p.SetAllEdgesAA()
	assert.Equal(t, uint8(0b111), p.AAEdges)
	p.NumVertices = 4
	p.SetAllEdgesAA()
	assert.Equal(t, uint8(0b1111), p.AAEdges)
	assert.Nil(t, p.Texture(0))
}

func TestBlendOverrideString(t *testing.T) {
	assert.Equal(t, "drop-shadow", BlendDropShadow.String())
	assert.Equal(t, "unknown", BlendOverride(9).String())
}

func TestSampleYUVIdentity(t *testing.T) {
	y := constSampler{format: gputypes.TextureFormatR8Unorm, value: 0.25}
	u := constSampler{format: gputypes.TextureFormatR8Unorm, value: 0.5}
	v := constSampler{format: gputypes.TextureFormatR8Unorm, value: 0.75}
	c := SampleYUV(y, u, v, Identity, 0, wide.Splat4(0.5), wide.Splat4(0.5))
	// identity planes are G, B, R
	assert.InDelta(t, 0.75, c[0][0], 1e-6)
	assert.InDelta(t, 0.25, c[1][0], 1e-6)
	assert.InDelta(t, 0.5, c[2][0], 1e-6)
	assert.Equal(t, wide.Splat4(1), c[3])
}

func TestSampleYUVRec601Black(t *testing.T) {
	y := constSampler{format: gputypes.TextureFormatR8Unorm, value: 16.0 / 255}
	uv := constSampler{format: gputypes.TextureFormatR8Unorm, value: 128.0 / 255}
	c := SampleYUV(y, uv, uv, Rec601, 0, wide.Splat4(0), wide.Splat4(0))
	for ch := 0; ch < 3; ch++ {
		assert.InDelta(t, 0, c[ch][2], 1e-4)
	}
}

func TestSampleYUV16Bit(t *testing.T) {
	// 10-bit samples stored in 16-bit planes, rescaled by 6 bits
	y := constSampler{format: gputypes.TextureFormatR16Unorm, raw: 1023}
	c := SampleYUV(y, y, y, Identity, 6, wide.Splat4(0), wide.Splat4(0))
	assert.InDelta(t, 1, c[0][0], 1e-3)
}
