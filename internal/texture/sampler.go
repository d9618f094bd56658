package texture

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/wide"
)

// texel returns the bytes of texel (x, y) clamped to the edges. Rows with a
// pending delayed clear read as the clear value without being resolved.
func (t *Texture) texel(x, y int) []byte {
	x = max(0, min(x, t.width-1))
	y = max(0, min(y, t.height-1))
	bpp := t.info.BytesPerPixel
	if t.pending.test(y) {
		return t.clearPixel[:bpp]
	}
	off := y*t.stride + x*bpp
	return t.buf[off : off+bpp]
}

// Texel returns texel (x, y) as normalized RGBA, clamped to the edges.
func (t *Texture) Texel(x, y int) [4]float32 {
	if t.Empty() {
		return [4]float32{0, 0, 0, 0}
	}
	if t.info.Depth {
		x = max(0, min(x, t.width-1))
		y = max(0, min(y, t.height-1))
		return [4]float32{depth.ToFloat(t.depth.Row(y).At(x)), 0, 0, 1}
	}
	p := t.texel(x, y)
	switch t.format {
	case gputypes.TextureFormatBGRA8Unorm:
		return [4]float32{
			float32(p[2]) / 255, float32(p[1]) / 255,
			float32(p[0]) / 255, float32(p[3]) / 255,
		}
	case gputypes.TextureFormatR8Unorm:
		return [4]float32{float32(p[0]) / 255, 0, 0, 1}
	case gputypes.TextureFormatRG8Unorm:
		return [4]float32{float32(p[0]) / 255, float32(p[1]) / 255, 0, 1}
	case gputypes.TextureFormatR16Unorm:
		return [4]float32{float32(binary.LittleEndian.Uint16(p)) / 0xFFFF, 0, 0, 1}
	case gputypes.TextureFormatRGBA32Float:
		var c [4]float32
		for i := range c {
			c[i] = math32.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		}
		return c
	case gputypes.TextureFormatRGBA32Sint:
		var c [4]float32
		for i, v := range t.TexelInt(x, y) {
			c[i] = float32(v)
		}
		return c
	}
	return [4]float32{0, 0, 0, 0}
}

// TexelInt returns texel (x, y) of an integer texture.
func (t *Texture) TexelInt(x, y int) [4]int32 {
	var c [4]int32
	if t.Empty() || t.format != gputypes.TextureFormatRGBA32Sint {
		return c
	}
	p := t.texel(x, y)
	for i := range c {
		c[i] = int32(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return c
}

// Texel16 returns the raw 16-bit value of texel (x, y) of an R16 texture.
func (t *Texture) Texel16(x, y int) uint16 {
	if t.Empty() || t.format != gputypes.TextureFormatR16Unorm {
		return 0
	}
	return binary.LittleEndian.Uint16(t.texel(x, y))
}

// Texel8 returns the first channel of texel (x, y) of an 8-bit texture.
func (t *Texture) Texel8(x, y int) uint8 {
	if t.Empty() || t.info.BytesPerPixel > 4 || t.info.Depth {
		return 0
	}
	if t.format == gputypes.TextureFormatBGRA8Unorm {
		return t.texel(x, y)[2]
	}
	return t.texel(x, y)[0]
}

func transpose(c [4][4]float32) [4]wide.F32x4 {
	var r [4]wide.F32x4
	for lane := range c {
		for ch := range c[lane] {
			r[ch][lane] = c[lane][ch]
		}
	}
	return r
}

// Fetch reads four texels by integer coordinate. The result is channel-major.
func (t *Texture) Fetch(x, y wide.I32x4) [4]wide.F32x4 {
	var c [4][4]float32
	for i := range c {
		c[i] = t.Texel(int(x[i]), int(y[i]))
	}
	return transpose(c)
}

// SampleNearest samples four normalized coordinates with nearest filtering.
func (t *Texture) SampleNearest(u, v wide.F32x4) [4]wide.F32x4 {
	var c [4][4]float32
	w, h := float32(t.width), float32(t.height)
	for i := range c {
		c[i] = t.Texel(int(math32.Floor(u[i]*w)), int(math32.Floor(v[i]*h)))
	}
	return transpose(c)
}

// SampleLinear samples four normalized coordinates with bilinear filtering.
func (t *Texture) SampleLinear(u, v wide.F32x4) [4]wide.F32x4 {
	var c [4][4]float32
	w, h := float32(t.width), float32(t.height)
	for i := range c {
		c[i] = t.bilinear(u[i]*w-0.5, v[i]*h-0.5)
	}
	return transpose(c)
}

func (t *Texture) bilinear(x, y float32) [4]float32 {
	x0, y0 := math32.Floor(x), math32.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)
	c00 := t.Texel(ix, iy)
	c10 := t.Texel(ix+1, iy)
	c01 := t.Texel(ix, iy+1)
	c11 := t.Texel(ix+1, iy+1)
	var r [4]float32
	for ch := range r {
		top := c00[ch] + (c10[ch]-c00[ch])*fx
		bottom := c01[ch] + (c11[ch]-c01[ch])*fx
		r[ch] = top + (bottom-top)*fy
	}
	return r
}

// Sample samples with the texture's filter. Without mipmaps only the
// magnification filter applies.
func (t *Texture) Sample(u, v wide.F32x4) [4]wide.F32x4 {
	if t.MagFilter == gputypes.FilterModeLinear {
		return t.SampleLinear(u, v)
	}
	return t.SampleNearest(u, v)
}

// SampleBGRA samples four normalized coordinates of an 8-bit texture and
// returns packed BGRA lanes.
func (t *Texture) SampleBGRA(u, v wide.F32x4) wide.U16x16 {
	if t.MagFilter != gputypes.FilterModeLinear && t.format == gputypes.TextureFormatBGRA8Unorm && !t.Empty() {
		var r wide.U16x16
		w, h := float32(t.width), float32(t.height)
		for i := 0; i < wide.ChunkPixels; i++ {
			p := t.texel(int(math32.Floor(u[i]*w)), int(math32.Floor(v[i]*h)))
			r[i*4], r[i*4+1], r[i*4+2], r[i*4+3] = uint16(p[0]), uint16(p[1]), uint16(p[2]), uint16(p[3])
		}
		return r
	}
	c := t.Sample(u, v)
	return wide.FromFloat(c[0], c[1], c[2], c[3])
}

// Gradient looks up a gradient table stored in an RGBA32F texture. Entry i
// occupies texels address+2i (color) and address+2i+1 (delta to the next
// color); texel indices run row-major. pos is clamped to [0, 1].
func (t *Texture) Gradient(address, entries int, pos wide.F32x4) [4]wide.F32x4 {
	var c [4][4]float32
	if entries <= 0 || t.Empty() {
		return transpose(c)
	}
	for i := range c {
		p := max(0, min(pos[i], 1)) * float32(entries)
		idx := min(int(p), entries-1)
		frac := p - float32(idx)
		base := address + 2*idx
		col := t.Texel(base%t.width, base/t.width)
		delta := t.Texel((base+1)%t.width, (base+1)/t.width)
		for ch := range c[i] {
			c[i][ch] = col[ch] + delta[ch]*frac
		}
	}
	return transpose(c)
}
