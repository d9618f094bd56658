package swgl_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"log/slog"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/swgl"
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/shaders"
	"github.com/gogpu/swgl/wide"
)

// fixture is a context rendering into one RGBA8 texture.
type fixture struct {
	t      *testing.T
	ctx    *swgl.Context
	tex    uint32
	fb     uint32
	w, h   int
	withUV bool
}

func newFixture(t *testing.T, w, h int, opts ...swgl.ContextOption) *fixture {
	t.Helper()
	ctx := swgl.NewContext(opts...)
	t.Cleanup(ctx.Destroy)

	f := &fixture{t: t, ctx: ctx, w: w, h: h, withUV: true}
	f.tex = ctx.GenTextures(1)[0]
	ctx.BindTexture(f.tex)
	ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, w, h)
	f.fb = ctx.GenFramebuffers(1)[0]
	ctx.BindFramebuffer(swgl.Framebuffer, f.fb)
	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, f.tex)
	require.Equal(t, swgl.FramebufferComplete, ctx.CheckFramebufferStatus(swgl.Framebuffer))
	ctx.Viewport(0, 0, w, h)
	ctx.BindVertexArray(ctx.GenVertexArrays(1)[0])
	return f
}

func (f *fixture) addDepth() uint32 {
	d := f.ctx.GenTextures(1)[0]
	f.ctx.BindTexture(d)
	f.ctx.TexStorage2D(gputypes.TextureFormatDepth24Plus, f.w, f.h)
	f.ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.DepthAttachment, d)
	require.Equal(f.t, swgl.FramebufferComplete, f.ctx.CheckFramebufferStatus(swgl.Framebuffer))
	return d
}

func (f *fixture) clear(r, g, b, a float32) {
	f.ctx.ClearColor(r, g, b, a)
	f.ctx.Clear(swgl.ColorBufferBit | swgl.DepthBufferBit)
}

func floats(v ...float32) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(x))
	}
	return b
}

func shorts(v ...uint16) []byte {
	b := make([]byte, 2*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[i*2:], x)
	}
	return b
}

var quadIndices = shorts(0, 1, 2, 2, 1, 3)

// rect draws program prog over window pixels [x0, x1)×[y0, y1) at clip
// depth z, with texture coordinates spanning [0, 1] in attribute 1.
func (f *fixture) rect(prog uint32, x0, y0, x1, y1, z float32) {
	ctx := f.ctx
	ctx.UseProgram(prog)
	bufs := ctx.GenBuffers(2)
	defer ctx.DeleteBuffers(bufs...)

	ctx.BindBuffer(swgl.ArrayBuffer, bufs[0])
	data := floats(
		x0, y0, z, 0, 0,
		x1, y0, z, 1, 0,
		x0, y1, z, 0, 1,
		x1, y1, z, 1, 1,
	)
	ctx.BufferData(swgl.ArrayBuffer, len(data), data)
	ctx.VertexAttribPointer(0, 3, swgl.AttribFloat, false, 20, 0)
	ctx.EnableVertexAttribArray(0)
	if f.withUV {
		ctx.VertexAttribPointer(1, 2, swgl.AttribFloat, false, 20, 12)
		ctx.EnableVertexAttribArray(1)
	}

	ctx.BindBuffer(swgl.ElementArrayBuffer, bufs[1])
	ctx.BufferData(swgl.ElementArrayBuffer, len(quadIndices), quadIndices)
	ctx.DrawElementsInstanced(gputypes.PrimitiveTopologyTriangleList, 6, gputypes.IndexFormatUint16, 0, 1)
}

func (f *fixture) solid(c [4]float32) uint32 {
	p := shaders.NewSolidColor(c)
	p.Transform = shaders.Ortho(float32(f.w), float32(f.h))
	return f.ctx.CreateProgram(p)
}

func (f *fixture) pixel(x, y int) [4]byte {
	var out [4]byte
	f.ctx.ReadPixels(x, y, 1, 1, swgl.RGBA, swgl.UnsignedByte, out[:])
	return out
}

func TestSolidQuadReadsBack(t *testing.T) {
	for _, delayed := range []bool{true, false} {
		f := newFixture(t, 1, 1, swgl.WithDelayedClear(delayed))
		f.clear(0, 0, 0, 0)
		f.rect(f.solid([4]float32{1, 0, 0, 1}), 0, 0, 1, 1, 0)
		assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(0, 0), "delayed=%v", delayed)
	}
}

func TestClearOnly(t *testing.T) {
	f := newFixture(t, 3, 2)
	f.clear(0.2, 0.4, 0.6, 1)
	out := make([]byte, 3*2*4)
	f.ctx.ReadPixels(0, 0, 3, 2, swgl.BGRA, swgl.UnsignedByte, out)
	for i := 0; i < 6; i++ {
		assert.Equal(t, []byte{153, 102, 51, 255}, out[i*4:i*4+4])
	}
}

func TestScissoredClear(t *testing.T) {
	f := newFixture(t, 4, 4)
	f.clear(1, 0, 0, 1)
	f.ctx.Enable(swgl.ScissorTest)
	f.ctx.Scissor(1, 1, 2, 2)
	f.clear(0, 1, 0, 1)

	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(0, 0))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, f.pixel(1, 1))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, f.pixel(2, 2))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(3, 3))
}

func TestDepthLessKeepsNearer(t *testing.T) {
	red := [4]byte{255, 0, 0, 255}
	green := [4]byte{0, 255, 0, 255}

	t.Run("nearer second", func(t *testing.T) {
		f := newFixture(t, 4, 1)
		f.addDepth()
		f.ctx.Enable(swgl.DepthTest)
		f.clear(0, 0, 0, 0)
		f.rect(f.solid([4]float32{1, 0, 0, 1}), 0, 0, 3, 1, 0.5)
		f.rect(f.solid([4]float32{0, 1, 0, 1}), 1, 0, 4, 1, -0.5)
		assert.Equal(t, red, f.pixel(0, 0))
		assert.Equal(t, green, f.pixel(1, 0))
		assert.Equal(t, green, f.pixel(2, 0))
		assert.Equal(t, green, f.pixel(3, 0))
	})
	t.Run("nearer first", func(t *testing.T) {
		f := newFixture(t, 4, 1)
		f.addDepth()
		f.ctx.Enable(swgl.DepthTest)
		f.clear(0, 0, 0, 0)
		f.rect(f.solid([4]float32{0, 1, 0, 1}), 1, 0, 4, 1, -0.5)
		f.rect(f.solid([4]float32{1, 0, 0, 1}), 0, 0, 3, 1, 0.5)
		assert.Equal(t, red, f.pixel(0, 0))
		assert.Equal(t, green, f.pixel(1, 0))
		assert.Equal(t, green, f.pixel(2, 0))
	})
	t.Run("depth readback", func(t *testing.T) {
		f := newFixture(t, 2, 1)
		f.addDepth()
		f.ctx.Enable(swgl.DepthTest)
		f.clear(0, 0, 0, 0)
		f.rect(f.solid([4]float32{1, 1, 1, 1}), 0, 0, 1, 1, -0.5)

		out := make([]byte, 8)
		f.ctx.ReadPixels(0, 0, 2, 1, swgl.DepthComponent, swgl.Float, out)
		assert.InDelta(t, 0.25, math.Float32frombits(binary.LittleEndian.Uint32(out)), 1e-5)
		assert.InDelta(t, 1, math.Float32frombits(binary.LittleEndian.Uint32(out[4:])), 1e-5)
	})
}

func TestBlendIdentities(t *testing.T) {
	dst := [4]byte{51, 102, 153, 255}
	tests := []struct {
		name     string
		src, dst gputypes.BlendFactor
		color    [4]float32
		want     [4]byte
	}{
		{"one zero returns white source", gputypes.BlendFactorOne, gputypes.BlendFactorZero, [4]float32{1, 1, 1, 1}, [4]byte{255, 255, 255, 255}},
		{"over with zero source keeps dst", gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha, [4]float32{}, dst},
		{"over with opaque source", gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha, [4]float32{0, 0, 1, 1}, [4]byte{0, 0, 255, 255}},
		{"inverse color with zero source keeps dst", gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrc, [4]float32{}, dst},
		{"additive with zero source", gputypes.BlendFactorOne, gputypes.BlendFactorOne, [4]float32{}, dst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1, 1)
			f.clear(0.2, 0.4, 0.6, 1)
			f.ctx.Enable(swgl.Blend)
			f.ctx.BlendFunc(tt.src, tt.dst)
			f.rect(f.solid(tt.color), 0, 0, 1, 1, 0)
			assert.Equal(t, tt.want, f.pixel(0, 0))
		})
	}
}

func TestTexSubImageRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format gputypes.TextureFormat
		pf     swgl.PixelFormat
		pt     swgl.PixelType
		bpp    int
	}{
		{"rgba8", gputypes.TextureFormatRGBA8Unorm, swgl.RGBA, swgl.UnsignedByte, 4},
		{"bgra8", gputypes.TextureFormatBGRA8Unorm, swgl.BGRA, swgl.UnsignedByte, 4},
		{"r8", gputypes.TextureFormatR8Unorm, swgl.Red, swgl.UnsignedByte, 1},
		{"rg8", gputypes.TextureFormatRG8Unorm, swgl.RG, swgl.UnsignedByte, 2},
		{"r16", gputypes.TextureFormatR16Unorm, swgl.Red, swgl.UnsignedShort, 2},
		{"rgba32f", gputypes.TextureFormatRGBA32Float, swgl.RGBA, swgl.Float, 16},
		{"rgba32i", gputypes.TextureFormatRGBA32Sint, swgl.RGBAInteger, swgl.Int, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := swgl.NewContext()
			defer ctx.Destroy()

			tex := ctx.GenTextures(1)[0]
			ctx.BindTexture(tex)
			ctx.TexStorage2D(tt.format, 5, 3)
			fb := ctx.GenFramebuffers(1)[0]
			ctx.BindFramebuffer(swgl.Framebuffer, fb)
			ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, tex)

			const w, h = 3, 2
			in := make([]byte, w*h*tt.bpp)
			for i := range in {
				in[i] = byte(i*7 + 3)
			}
			if tt.pt == swgl.Float {
				vals := make([]float32, w*h*4)
				for i := range vals {
					vals[i] = float32(i) * 0.25
				}
				in = floats(vals...)
			}
			ctx.TexSubImage2D(1, 1, w, h, tt.pf, tt.pt, in)

			out := make([]byte, len(in))
			ctx.ReadPixels(1, 1, w, h, tt.pf, tt.pt, out)
			assert.Equal(t, in, out)
		})
	}
}

func TestUnpackAndPackBuffers(t *testing.T) {
	f := newFixture(t, 2, 1)
	ctx := f.ctx
	bufs := ctx.GenBuffers(2)
	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	ctx.BindBuffer(swgl.PixelUnpackBuffer, bufs[0])
	ctx.BufferData(swgl.PixelUnpackBuffer, len(pixels), pixels)
	ctx.BindTexture(f.tex)
	ctx.TexSubImage2D(0, 0, 2, 1, swgl.RGBA, swgl.UnsignedByte, nil)
	ctx.BindBuffer(swgl.PixelUnpackBuffer, 0)

	ctx.BindBuffer(swgl.PixelPackBuffer, bufs[1])
	ctx.BufferData(swgl.PixelPackBuffer, len(pixels), nil)
	ctx.ReadPixels(0, 0, 2, 1, swgl.RGBA, swgl.UnsignedByte, nil)
	out := make([]byte, len(pixels))
	ctx.GetBufferSubData(swgl.PixelPackBuffer, 0, out)
	assert.Equal(t, pixels, out)
}

func TestBufferSubData(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	b := ctx.GenBuffers(1)[0]
	ctx.BindBuffer(swgl.ArrayBuffer, b)
	ctx.BufferData(swgl.ArrayBuffer, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	ctx.BufferSubData(swgl.ArrayBuffer, 4, []byte{9, 9})
	// out of range writes are rejected
	ctx.BufferSubData(swgl.ArrayBuffer, 7, []byte{0, 0})

	out := make([]byte, 8)
	ctx.GetBufferSubData(swgl.ArrayBuffer, 0, out)
	assert.Equal(t, []byte{1, 2, 3, 4, 9, 9, 7, 8}, out)

	// growing keeps the prefix
	ctx.BufferData(swgl.ArrayBuffer, 16, nil)
	ctx.GetBufferSubData(swgl.ArrayBuffer, 0, out)
	assert.Equal(t, []byte{1, 2, 3, 4, 9, 9, 7, 8}, out)
}

func TestTexturedProgram(t *testing.T) {
	texels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	for _, aa := range []bool{false, true} {
		f := newFixture(t, 4, 4)
		f.clear(0, 0, 0, 0)
		ctx := f.ctx
		src := ctx.GenTextures(1)[0]
		ctx.ActiveTexture(1)
		ctx.BindTexture(src)
		ctx.TexImage2D(gputypes.TextureFormatRGBA8Unorm, 2, 2, swgl.RGBA, swgl.UnsignedByte, texels)
		ctx.TexParameter(swgl.TextureMagFilter, gputypes.FilterModeNearest)
		ctx.ActiveTexture(0)

		p := shaders.NewTextured(1)
		p.Transform = shaders.Ortho(4, 4)
		p.Antialias = aa
		f.rect(ctx.CreateProgram(p), 0, 0, 4, 4, 0)

		assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(0, 0), "aa=%v", aa)
		assert.Equal(t, [4]byte{0, 255, 0, 255}, f.pixel(3, 1), "aa=%v", aa)
		assert.Equal(t, [4]byte{0, 0, 255, 255}, f.pixel(1, 2), "aa=%v", aa)
		assert.Equal(t, [4]byte{255, 255, 255, 255}, f.pixel(2, 3), "aa=%v", aa)
	}
}

func TestGenericAttribute(t *testing.T) {
	f := newFixture(t, 1, 1)
	f.withUV = false
	f.clear(0, 0, 0, 0)
	p := shaders.NewVertexColor()
	p.Transform = shaders.Ortho(1, 1)
	f.ctx.VertexAttrib4f(1, 0, 0, 1, 1)
	f.rect(f.ctx.CreateProgram(p), 0, 0, 1, 1, 0)
	assert.Equal(t, [4]byte{0, 0, 255, 255}, f.pixel(0, 0))
}

// offsetProgram places a unit square at the x offset of attribute 1 and
// colors it with attribute 2.
type offsetProgram struct{ w, h float32 }

func (p *offsetProgram) NumVaryings() int { return 4 }

func (p *offsetProgram) Vertex(prim *shader.Primitive) {
	for i := 0; i < prim.NumVertices; i++ {
		a := &prim.Attribs[i]
		x := a[0][0] + a[1][0]
		prim.Vertices[i].Position = f32.Vec4{x/p.w*2 - 1, a[0][1]/p.h*2 - 1, 0, 1}
		copy(prim.Vertices[i].Varyings[:4], a[2][:])
	}
}

func (p *offsetProgram) Fragment(f *shader.Fragment) {
	f.Color = [4]wide.F32x4{f.Varyings[0], f.Varyings[1], f.Varyings[2], f.Varyings[3]}
}

func TestInstancedDivisor(t *testing.T) {
	f := newFixture(t, 4, 1)
	f.clear(0, 0, 0, 0)
	ctx := f.ctx

	data := floats(0, 0, 1, 0, 0, 1, 1, 1) // corners
	data = append(data, floats(0, 1, 2, 3)...)
	data = append(data, 255, 0, 0, 255, 0, 255, 0, 255) // colors
	b := ctx.GenBuffers(2)
	ctx.BindBuffer(swgl.ArrayBuffer, b[0])
	ctx.BufferData(swgl.ArrayBuffer, len(data), data)
	ctx.VertexAttribPointer(0, 2, swgl.AttribFloat, false, 0, 0)
	ctx.VertexAttribPointer(1, 1, swgl.AttribFloat, false, 0, 32)
	ctx.VertexAttribPointer(2, 4, swgl.AttribUnsignedByte, true, 0, 48)
	ctx.VertexAttribDivisor(1, 1)
	ctx.VertexAttribDivisor(2, 2)
	for i := 0; i < 3; i++ {
		ctx.EnableVertexAttribArray(i)
	}
	ctx.BindBuffer(swgl.ElementArrayBuffer, b[1])
	ctx.BufferData(swgl.ElementArrayBuffer, len(quadIndices), quadIndices)

	ctx.UseProgram(ctx.CreateProgram(&offsetProgram{w: 4, h: 1}))
	ctx.DrawElementsInstanced(gputypes.PrimitiveTopologyTriangleList, 6, gputypes.IndexFormatUint16, 0, 4)

	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(0, 0))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(1, 0))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, f.pixel(2, 0))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, f.pixel(3, 0))
}

func TestOutOfRangeIndicesAreRejected(t *testing.T) {
	f := newFixture(t, 1, 1)
	f.clear(0, 0, 0, 0)
	ctx := f.ctx
	ctx.UseProgram(f.solid([4]float32{1, 1, 1, 1}))
	b := ctx.GenBuffers(1)[0]
	ctx.BindBuffer(swgl.ElementArrayBuffer, b)
	ctx.BufferData(swgl.ElementArrayBuffer, len(quadIndices), quadIndices)
	ctx.DrawElementsInstanced(gputypes.PrimitiveTopologyTriangleList, 6, gputypes.IndexFormatUint16, 4, 1)
	assert.Equal(t, [4]byte{}, f.pixel(0, 0))
}

func TestLine(t *testing.T) {
	f := newFixture(t, 4, 4)
	f.withUV = false
	f.clear(0, 0, 0, 0)
	ctx := f.ctx
	ctx.UseProgram(f.solid([4]float32{1, 0, 0, 1}))
	b := ctx.GenBuffers(1)[0]
	ctx.BindBuffer(swgl.ArrayBuffer, b)
	data := floats(0, 1.5, 0, 4, 1.5, 0)
	ctx.BufferData(swgl.ArrayBuffer, len(data), data)
	ctx.VertexAttribPointer(0, 3, swgl.AttribFloat, false, 0, 0)
	ctx.EnableVertexAttribArray(0)
	ctx.DrawArrays(gputypes.PrimitiveTopologyLineList, 0, 2)

	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(2, 1))
	assert.Equal(t, [4]byte{}, f.pixel(2, 3))
}

func TestClipMask(t *testing.T) {
	f := newFixture(t, 4, 1)
	f.clear(0, 0, 0, 1)
	ctx := f.ctx
	mask := ctx.GenTextures(1)[0]
	ctx.BindTexture(mask)
	ctx.TexImage2D(gputypes.TextureFormatR8Unorm, 4, 1, swgl.Red, swgl.UnsignedByte, []byte{255, 0, 255, 0})
	ctx.SetClipMask(mask, 0, 0)

	f.rect(f.solid([4]float32{1, 0, 0, 1}), 0, 0, 4, 1, 0)
	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(0, 0))
	assert.Equal(t, [4]byte{0, 0, 0, 255}, f.pixel(1, 0))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(2, 0))
	assert.Equal(t, [4]byte{0, 0, 0, 255}, f.pixel(3, 0))
}

func TestSamplesPassedQuery(t *testing.T) {
	f := newFixture(t, 4, 4)
	f.clear(0, 0, 0, 0)
	q := f.ctx.GenQueries(2)

	f.ctx.BeginQuery(swgl.SamplesPassed, q[0])
	f.ctx.BeginQuery(swgl.TimeElapsed, q[1])
	f.rect(f.solid([4]float32{1, 1, 1, 1}), 1, 1, 3, 3, 0)
	f.rect(f.solid([4]float32{1, 1, 1, 1}), 0, 0, 1, 1, 0)
	f.ctx.EndQuery(swgl.TimeElapsed)
	f.ctx.EndQuery(swgl.SamplesPassed)

	assert.Equal(t, uint64(5), f.ctx.GetQueryResult(q[0]))
	assert.Equal(t, uint64(0), f.ctx.GetQueryResult(999))

	// a new query resets the count
	f.ctx.BeginQuery(swgl.SamplesPassed, q[0])
	f.ctx.EndQuery(swgl.SamplesPassed)
	assert.Equal(t, uint64(0), f.ctx.GetQueryResult(q[0]))
}

func TestFramebufferStatus(t *testing.T) {
	ctx := swgl.NewContext(swgl.WithMaxTextureSize(8))
	defer ctx.Destroy()
	assert.Equal(t, 8, ctx.MaxTextureSize())

	fb := ctx.GenFramebuffers(1)[0]
	ctx.BindFramebuffer(swgl.Framebuffer, fb)
	assert.Equal(t, swgl.FramebufferIncompleteMissingAttachment, ctx.CheckFramebufferStatus(swgl.Framebuffer))

	tex := ctx.GenTextures(2)
	ctx.BindTexture(tex[0])
	ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, 16, 16)
	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, tex[0])
	assert.Equal(t, swgl.FramebufferIncompleteAttachment, ctx.CheckFramebufferStatus(swgl.Framebuffer))

	ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, 8, 8)
	assert.Equal(t, swgl.FramebufferComplete, ctx.CheckFramebufferStatus(swgl.Framebuffer))

	ctx.BindTexture(tex[1])
	ctx.TexStorage2D(gputypes.TextureFormatRG8Unorm, 8, 8)
	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, tex[1])
	assert.Equal(t, swgl.FramebufferUnsupported, ctx.CheckFramebufferStatus(swgl.Framebuffer))

	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, tex[0])
	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.DepthAttachment, tex[1])
	assert.Equal(t, swgl.FramebufferIncompleteAttachment, ctx.CheckFramebufferStatus(swgl.Framebuffer))
}

func TestDeleteTextureDetaches(t *testing.T) {
	f := newFixture(t, 2, 2)
	ctx := f.ctx

	l := ctx.LockTexture(f.tex)
	require.NotNil(t, l)
	ctx.DeleteTextures(f.tex)
	assert.Equal(t, swgl.FramebufferComplete, ctx.CheckFramebufferStatus(swgl.Framebuffer))
	l.Unlock()
	l.Unlock()

	ctx.DeleteTextures(f.tex)
	assert.Equal(t, swgl.FramebufferIncompleteMissingAttachment, ctx.CheckFramebufferStatus(swgl.Framebuffer))
}

func TestLockedTextureRejectsReallocation(t *testing.T) {
	f := newFixture(t, 2, 2)
	l := f.ctx.LockFramebuffer(f.fb)
	require.NotNil(t, l)
	defer l.Unlock()

	f.ctx.BindTexture(f.tex)
	f.ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, 4, 4)
	w, h := l.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, gputypes.TextureFormatBGRA8Unorm, l.Format())
	assert.Equal(t, 8, l.Stride())
	assert.Nil(t, f.ctx.LockTexture(12345))
}

func TestDeleteProgramInUse(t *testing.T) {
	f := newFixture(t, 2, 1)
	f.clear(0, 0, 0, 0)
	prog := f.solid([4]float32{1, 1, 1, 1})
	f.ctx.UseProgram(prog)
	f.ctx.DeleteProgram(prog)

	// still current, so it keeps drawing
	f.rect(prog, 0, 0, 1, 1, 0)
	assert.Equal(t, [4]byte{255, 255, 255, 255}, f.pixel(0, 0))

	other := f.solid([4]float32{1, 0, 0, 1})
	f.ctx.UseProgram(other)
	f.ctx.UseProgram(prog)
	f.rect(other, 1, 0, 2, 1, 0)
	assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(1, 0))
	assert.Equal(t, -1, f.ctx.GetAttribLocation(prog, "aPosition"))

	f.ctx.DeleteProgram(other)
	f.ctx.UseProgram(0)
	f.clear(0, 0, 0, 0)
	f.rect(other, 0, 0, 2, 1, 0)
	assert.Equal(t, [4]byte{}, f.pixel(0, 0))
}

func TestAttribLocations(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()

	id := ctx.CreateProgram(shaders.NewTextured(0))
	assert.Equal(t, 1, ctx.GetAttribLocation(id, "aTexCoord"))
	ctx.BindAttribLocation(id, 5, "aTexCoord")
	assert.Equal(t, 5, ctx.GetAttribLocation(id, "aTexCoord"))

	plain := ctx.CreateProgram(&offsetProgram{w: 1, h: 1})
	assert.Equal(t, -1, ctx.GetAttribLocation(plain, "aOffset"))
	ctx.BindAttribLocation(plain, 1, "aOffset")
	assert.Equal(t, 1, ctx.GetAttribLocation(plain, "aOffset"))
	assert.Equal(t, -1, ctx.GetAttribLocation(999, "aOffset"))
}

func TestCopyTexSubImage(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.clear(0, 0, 1, 1)
	ctx := f.ctx
	dst := ctx.GenTextures(1)[0]
	ctx.BindTexture(dst)
	ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, 4, 4)
	ctx.CopyTexSubImage2D(2, 2, 0, 0, 2, 2)

	l := ctx.LockTexture(dst)
	require.NotNil(t, l)
	defer l.Unlock()
	img, err := l.Image()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffff), rgba(img, 3, 3)[2])
	assert.Equal(t, uint32(0), rgba(img, 0, 0)[3])
}

func TestTextureOffset(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.ctx.SetTextureOffset(f.tex, 10, 10)
	f.ctx.Viewport(10, 10, 2, 2)
	f.clear(0, 0, 0, 0)
	f.rect(f.solid([4]float32{1, 1, 1, 1}), 0, 0, 1, 1, 0)
	assert.Equal(t, [4]byte{255, 255, 255, 255}, f.pixel(10, 10))
	assert.Equal(t, [4]byte{}, f.pixel(11, 11))
}

func TestExternalBuffer(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	tex := ctx.GenTextures(1)[0]
	buf := make([]byte, 2*16)
	ctx.SetTextureBuffer(tex, gputypes.TextureFormatBGRA8Unorm, 2, 2, 16, buf)
	fb := ctx.GenFramebuffers(1)[0]
	ctx.BindFramebuffer(swgl.Framebuffer, fb)
	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, tex)
	ctx.ClearColor(0, 1, 0, 1)
	ctx.Clear(swgl.ColorBufferBit)

	l := ctx.LockTexture(tex)
	require.NotNil(t, l)
	defer l.Unlock()
	assert.Equal(t, []byte{0, 255, 0, 255}, buf[16:20])
	assert.Equal(t, 16, l.Stride())
}

func rgba(img image.Image, x, y int) [4]uint32 {
	r, g, b, a := img.At(x, y).RGBA()
	return [4]uint32{r, g, b, a}
}

func TestComposite(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	ids := ctx.GenTextures(3)
	upload := func(id uint32, f gputypes.TextureFormat, w, h int, pf swgl.PixelFormat, data []byte) *swgl.LockedTexture {
		ctx.BindTexture(id)
		ctx.TexImage2D(f, w, h, pf, swgl.UnsignedByte, data)
		l := ctx.LockTexture(id)
		require.NotNil(t, l)
		t.Cleanup(l.Unlock)
		return l
	}
	src := upload(ids[0], gputypes.TextureFormatRGBA8Unorm, 2, 1, swgl.RGBA, []byte{255, 0, 0, 255, 0, 0, 128, 128})
	dst := upload(ids[1], gputypes.TextureFormatRGBA8Unorm, 4, 2, swgl.RGBA, make([]byte, 32))
	mask := upload(ids[2], gputypes.TextureFormatR8Unorm, 1, 1, swgl.Red, []byte{7})

	err := dst.Composite(src, swgl.CompositeParams{Src: image.Rect(0, 0, 2, 1), Dst: image.Rect(0, 0, 4, 2), Opaque: true})
	require.NoError(t, err)
	img, err := dst.Image()
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, rgba(img, 1, y))
		assert.Equal(t, [4]uint32{0, 0, 128 * 0x101, 128 * 0x101}, rgba(img, 2, y))
	}

	// premultiplied over an opaque pixel
	err = dst.Composite(src, swgl.CompositeParams{Src: image.Rect(1, 0, 2, 1), Dst: image.Rect(0, 0, 1, 1)})
	require.NoError(t, err)
	c := rgba(img, 0, 0)
	assert.InDelta(t, 127*0x101, c[0], 0x101)
	assert.InDelta(t, 128*0x101, c[2], 0x101)
	assert.InDelta(t, 0xffff, c[3], 0x101)

	// clip limits the written pixels
	err = dst.Composite(src, swgl.CompositeParams{
		Src: image.Rect(1, 0, 2, 1), Dst: image.Rect(0, 0, 4, 2),
		Clip: image.Rect(3, 1, 4, 2), Opaque: true,
	})
	require.NoError(t, err)
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, rgba(img, 1, 1))
	assert.Equal(t, [4]uint32{0, 0, 128 * 0x101, 128 * 0x101}, rgba(img, 3, 1))

	assert.ErrorIs(t, dst.Composite(mask, swgl.CompositeParams{Src: image.Rect(0, 0, 1, 1), Dst: image.Rect(0, 0, 1, 1)}), swgl.ErrCompositeFormat)
	assert.ErrorIs(t, dst.Composite(src, swgl.CompositeParams{Dst: image.Rect(0, 0, 1, 1)}), swgl.ErrCompositeRect)
}

func TestCompositeFlip(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	ids := ctx.GenTextures(2)
	ctx.BindTexture(ids[0])
	ctx.TexImage2D(gputypes.TextureFormatR8Unorm, 1, 2, swgl.Red, swgl.UnsignedByte, []byte{10, 20})
	ctx.BindTexture(ids[1])
	ctx.TexStorage2D(gputypes.TextureFormatR8Unorm, 1, 2)

	src, dst := ctx.LockTexture(ids[0]), ctx.LockTexture(ids[1])
	require.NotNil(t, src)
	require.NotNil(t, dst)
	defer src.Unlock()
	defer dst.Unlock()

	r := image.Rect(0, 0, 1, 2)
	require.NoError(t, dst.Composite(src, swgl.CompositeParams{Src: r, Dst: r, FlipY: true, Opaque: true}))
	assert.Equal(t, byte(20), dst.Bytes()[0])
	assert.Equal(t, byte(10), dst.Bytes()[dst.Stride()])
}

func TestCompositeYUV(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	ids := ctx.GenTextures(6)
	plane := func(id uint32, w, h int, data []byte) *swgl.LockedTexture {
		ctx.BindTexture(id)
		ctx.TexImage2D(gputypes.TextureFormatR8Unorm, w, h, swgl.Red, swgl.UnsignedByte, nil)
		ctx.TexSubImage2D(0, 0, w, h, swgl.Red, swgl.UnsignedByte, data)
		l := ctx.LockTexture(id)
		require.NotNil(t, l)
		t.Cleanup(l.Unlock)
		return l
	}
	y := plane(ids[0], 2, 2, []byte{10, 20, 30, 40})
	u := plane(ids[1], 1, 1, []byte{200})
	v := plane(ids[2], 1, 1, []byte{100})
	ctx.BindTexture(ids[3])
	ctx.TexStorage2D(gputypes.TextureFormatBGRA8Unorm, 2, 2)
	dst := ctx.LockTexture(ids[3])
	require.NotNil(t, dst)
	defer dst.Unlock()

	r := image.Rect(0, 0, 2, 2)
	require.NoError(t, dst.CompositeYUV(y, u, v, shader.Identity, 0, swgl.CompositeParams{Src: r, Dst: r}))
	px := dst.Bytes()
	assert.Equal(t, []byte{200, 10, 100, 255}, px[0:4])
	assert.Equal(t, []byte{200, 20, 100, 255}, px[4:8])
	assert.Equal(t, []byte{200, 40, 100, 255}, px[dst.Stride()+4:dst.Stride()+8])

	black := plane(ids[4], 2, 2, []byte{16, 16, 16, 16})
	gray := plane(ids[5], 1, 1, []byte{128})
	require.NoError(t, dst.CompositeYUV(black, gray, gray, shader.Rec601, 0, swgl.CompositeParams{Src: r, Dst: r}))
	assert.Equal(t, []byte{0, 0, 0, 255}, dst.Bytes()[0:4])

	assert.ErrorIs(t, y.CompositeYUV(y, u, v, shader.Rec709, 0, swgl.CompositeParams{Src: r, Dst: r}), swgl.ErrCompositeFormat)
}

func TestCompositeYUV16(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	ids := ctx.GenTextures(4)
	plane := func(id uint32, w, h int, data ...uint16) *swgl.LockedTexture {
		ctx.BindTexture(id)
		ctx.TexImage2D(gputypes.TextureFormatR16Unorm, w, h, swgl.Red, swgl.UnsignedShort, shorts(data...))
		l := ctx.LockTexture(id)
		require.NotNil(t, l)
		t.Cleanup(l.Unlock)
		return l
	}
	ctx.BindTexture(ids[3])
	ctx.TexStorage2D(gputypes.TextureFormatBGRA8Unorm, 2, 2)
	dst := ctx.LockTexture(ids[3])
	require.NotNil(t, dst)
	defer dst.Unlock()
	r := image.Rect(0, 0, 2, 2)

	// full-range 16-bit samples, k*257 is exactly k/255
	y := plane(ids[0], 2, 2, 10*257, 20*257, 30*257, 40*257)
	u := plane(ids[1], 1, 1, 200*257)
	v := plane(ids[2], 1, 1, 100*257)
	require.NoError(t, dst.CompositeYUV(y, u, v, shader.Identity, 0, swgl.CompositeParams{Src: r, Dst: r}))
	px := dst.Bytes()
	assert.Equal(t, []byte{200, 10, 100, 255}, px[0:4])
	assert.Equal(t, []byte{200, 20, 100, 255}, px[4:8])
	assert.Equal(t, []byte{200, 30, 100, 255}, px[dst.Stride():dst.Stride()+4])

	// 10-bit samples stored in the low bits
	y = plane(ids[0], 2, 2, 1023, 1023, 0, 0)
	u = plane(ids[1], 1, 1, 512)
	v = plane(ids[2], 1, 1, 256)
	require.NoError(t, dst.CompositeYUV(y, u, v, shader.Identity, 6, swgl.CompositeParams{Src: r, Dst: r}))
	px = dst.Bytes()
	assert.InDelta(t, 255, px[1], 1)
	assert.InDelta(t, 0, px[dst.Stride()+1], 1)
	assert.InDelta(t, 128, px[0], 1)
	assert.InDelta(t, 64, px[2], 1)
}

// clipSpaceProgram takes clip-space positions straight from attribute 0.
type clipSpaceProgram struct{ aa uint8 }

func (p *clipSpaceProgram) NumVaryings() int { return 0 }

func (p *clipSpaceProgram) Vertex(prim *shader.Primitive) {
	for i := 0; i < prim.NumVertices; i++ {
		prim.Vertices[i].Position = prim.Attribs[i][0]
	}
	prim.AAEdges = p.aa
}

func (p *clipSpaceProgram) Fragment(f *shader.Fragment) {
	f.SetColor([4]float32{1, 0, 0, 1})
}

// clipQuad draws a quad whose corners, in index order, are the four given
// clip-space positions.
func (f *fixture) clipQuad(aa uint8, corners ...float32) {
	ctx := f.ctx
	ctx.UseProgram(ctx.CreateProgram(&clipSpaceProgram{aa: aa}))
	bufs := ctx.GenBuffers(2)
	defer ctx.DeleteBuffers(bufs...)
	data := floats(corners...)
	ctx.BindBuffer(swgl.ArrayBuffer, bufs[0])
	ctx.BufferData(swgl.ArrayBuffer, len(data), data)
	ctx.VertexAttribPointer(0, 4, swgl.AttribFloat, false, 0, 0)
	ctx.EnableVertexAttribArray(0)
	ctx.BindBuffer(swgl.ElementArrayBuffer, bufs[1])
	ctx.BufferData(swgl.ElementArrayBuffer, len(quadIndices), quadIndices)
	ctx.DrawElementsInstanced(gputypes.PrimitiveTopologyTriangleList, 6, gputypes.IndexFormatUint16, 0, 1)
}

func TestNearPlaneRemovesOnlyAAEdge(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.clear(0, 0, 0, 0)
	// indices run 0,1,3,2 around the quad, so edge 2 joins the two far
	// corners behind the near plane
	f.clipQuad(1<<2,
		-1, -1, 0, 1,
		1, -1, 0, 1,
		-2, 2, -6, 2,
		2, 2, -6, 2,
	)
	for x := 0; x < 8; x++ {
		assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(x, 0), "pixel (%d, 0)", x)
		assert.Equal(t, [4]byte{255, 0, 0, 255}, f.pixel(x, 2), "pixel (%d, 2)", x)
		assert.Equal(t, [4]byte{}, f.pixel(x, 3), "pixel (%d, 3)", x)
	}
}

func TestHugeClipCoordinates(t *testing.T) {
	for _, e := range []float32{1e12, 1e19} {
		f := newFixture(t, 8, 8)
		f.clear(0, 0, 0, 0)
		f.clipQuad(0,
			-e, -e, 0, 1,
			e, -e, 0, 1,
			-e, e, 0, 1,
			e, e, 0, 1,
		)
		var img [8 * 8 * 4]byte
		f.ctx.ReadPixels(0, 0, 8, 8, swgl.RGBA, swgl.UnsignedByte, img[:])
		covered := 0
		for i := 0; i < len(img); i += 4 {
			if img[i] == 255 {
				covered++
			}
		}
		assert.Equal(t, 64, covered, "extent %g", e)
	}
}

func TestCurrentContext(t *testing.T) {
	ctx := swgl.NewContext()
	swgl.MakeCurrent(ctx)
	assert.Same(t, ctx, swgl.Current())

	ctx.Reference()
	ctx.Destroy()
	assert.Same(t, ctx, swgl.Current())
	ctx.Destroy()
	assert.Nil(t, swgl.Current())
	assert.Equal(t, swgl.NoError, ctx.GetError())
}

func TestRejectedCallsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := swgl.NewContext(swgl.WithLogger(logger), swgl.WithTextureUnits(2))
	defer ctx.Destroy()

	ctx.ActiveTexture(2)
	assert.Contains(t, buf.String(), "swgl: ActiveTexture: unit out of range")
	ctx.DepthFunc(gputypes.CompareFunction(42))
	assert.Contains(t, buf.String(), "swgl: DepthFunc")
	assert.Contains(t, buf.String(), "swgl: context created")
}

func TestCapabilities(t *testing.T) {
	ctx := swgl.NewContext()
	defer ctx.Destroy()
	for _, c := range []swgl.Capability{swgl.Blend, swgl.DepthTest, swgl.ScissorTest} {
		assert.False(t, ctx.IsEnabled(c), c.String())
		ctx.Enable(c)
		assert.True(t, ctx.IsEnabled(c), c.String())
		ctx.Disable(c)
		assert.False(t, ctx.IsEnabled(c), c.String())
	}
}
