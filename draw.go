package swgl

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/raster"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/shader"
)

// noClip is the scissor used while scissoring is off.
var noClip = raster.Rect{X0: -1 << 30, Y0: -1 << 30, X1: 1 << 30, Y1: 1 << 30}

// DrawArrays draws count sequential vertices starting at first.
func (c *Context) DrawArrays(mode gputypes.PrimitiveTopology, first, count int) {
	c.DrawArraysInstanced(mode, first, count, 1)
}

// DrawArraysInstanced draws count sequential vertices starting at first,
// instances times.
func (c *Context) DrawArraysInstanced(mode gputypes.PrimitiveTopology, first, count, instances int) {
	c.DrawElementsInstanced(mode, count, gputypes.IndexFormatUndefined, first, instances)
}

// DrawElementsInstanced draws count vertices instances times. With
// IndexFormatUndefined the vertices are offset, offset+1, ...; otherwise
// indices of indexType are read from the element buffer starting at byte
// offset.
//
// Two consecutive triangles indexed a, a+1, a+2, a+2, a+1, a+3 are drawn as
// the single quad a, a+1, a+3, a+2.
func (c *Context) DrawElementsInstanced(mode gputypes.PrimitiveTopology, count int, indexType gputypes.IndexFormat, offset, instances int) {
	if count <= 0 || instances <= 0 || offset < 0 {
		return
	}
	var per int
	switch mode {
	case gputypes.PrimitiveTopologyTriangleList:
		per = 3
	case gputypes.PrimitiveTopologyLineList:
		per = 2
	default:
		c.warn("DrawElementsInstanced", "unsupported primitive topology", "mode", mode)
		return
	}

	p, ok := c.programs.Find(c.currentProgram)
	if !ok || p.impl == nil {
		c.warn("DrawElementsInstanced", "no program in use")
		return
	}
	va := c.boundVertexArray()
	c.validate(va)

	idx := indices{format: indexType, base: offset}
	if indexType != gputypes.IndexFormatUndefined {
		if indexType != gputypes.IndexFormatUint16 && indexType != gputypes.IndexFormatUint32 {
			c.warn("DrawElementsInstanced", "invalid index type", "type", indexType)
			return
		}
		if offset+count*int(indexType.Size()) > len(va.elements) {
			c.warn("DrawElementsInstanced", "indices out of range", "count", count, "offset", offset, "size", len(va.elements))
			return
		}
		idx.data = va.elements
	}

	if !c.beginDraw(p.impl) {
		return
	}
	d := drawCall{ctx: c, prog: p.impl, va: va}
	for inst := 0; inst < instances; inst++ {
		d.instance = inst
		i := 0
		for i+per <= count {
			if per == 3 && i+6 <= count {
				if a, ok := idx.quad(i); ok {
					d.draw(a, a+1, a+3, a+2)
					i += 6
					continue
				}
			}
			if per == 3 {
				d.draw(idx.at(i), idx.at(i+1), idx.at(i+2))
			} else {
				d.draw(idx.at(i), idx.at(i+1))
			}
			i += per
		}
	}
	c.endDraw()
}

// indices reads vertex indices from an element buffer or generates them.
type indices struct {
	format gputypes.IndexFormat
	data   []byte
	base   int
}

func (ix *indices) at(i int) int {
	switch ix.format {
	case gputypes.IndexFormatUint16:
		return int(binary.LittleEndian.Uint16(ix.data[ix.base+i*2:]))
	case gputypes.IndexFormatUint32:
		return int(binary.LittleEndian.Uint32(ix.data[ix.base+i*4:]))
	default:
		return ix.base + i
	}
}

// quad reports whether the six indices at i form two triangles sharing the
// diagonal a+1, a+2 of a quad.
func (ix *indices) quad(i int) (int, bool) {
	a := ix.at(i)
	want := [6]int{a, a + 1, a + 2, a + 2, a + 1, a + 3}
	for k := 1; k < 6; k++ {
		if ix.at(i+k) != want[k] {
			return 0, false
		}
	}
	return a, true
}

// drawCall assembles primitives for one draw.
type drawCall struct {
	ctx      *Context
	prog     shader.Program
	va       *vertexArray
	instance int
	prim     shader.Primitive
}

func (d *drawCall) draw(vertices ...int) {
	c := d.ctx
	p := &d.prim
	*p = shader.Primitive{
		NumVertices: len(vertices),
		Instance:    d.instance,
		Textures:    c.samplers,
	}
	for v, index := range vertices {
		for a := 0; a < shader.MaxAttribs; a++ {
			if a < d.va.count {
				p.Attribs[v][a] = d.va.fetch(a, index, d.instance, &c.generic[a])
			} else {
				p.Attribs[v][a] = c.generic[a]
			}
		}
	}
	d.prog.Vertex(p)
	c.raster.DrawPrimitive(p)
}

// beginDraw prepares the rasterizer for the draw framebuffer. It reports
// false when nothing can be drawn.
func (c *Context) beginDraw(prog shader.Program) bool {
	color, depth := c.attachments(c.drawFramebuffer)
	if color == nil && depth == nil {
		c.warn("Draw", "framebuffer has no attachments", "framebuffer", c.drawFramebuffer)
		return false
	}
	if depth != nil && depth.Depth() == nil {
		depth = nil
	}
	c.updateBlendKey()

	for i := range c.samplers {
		c.samplers[i] = nil
		if t := c.boundTexture(i); t != nil {
			c.samplers[i] = t
		}
	}

	st := raster.State{
		Viewport:   c.viewport,
		Clip:       noClip,
		DepthTest:  c.depthTest && depth != nil,
		DepthFunc:  c.depthFunc,
		DepthWrite: c.depthMask,
		Blend:      c.blendKey,
		BlendColor: c.blendColor,
		LineWidth:  c.lineWidth,
	}
	if c.scissorTest {
		st.Clip = c.scissor
	}
	if c.clipMask != 0 {
		if m, ok := c.textures.Find(c.clipMask); ok {
			st.ClipMask = m
			st.ClipMaskOrigin = c.clipMaskOrigin
		}
	}
	c.raster.ResetSamples()
	if err := c.raster.Begin(raster.Target{Color: color, Depth: depth}, st, prog, c.samplers); err != nil {
		c.warn("Draw", err.Error(), "format", color.Format())
		return false
	}
	return true
}

// endDraw credits the draw's samples to an active samples query.
func (c *Context) endDraw() {
	if id := c.activeQueries[SamplesPassed]; id != 0 {
		if q, ok := c.queries.Find(id); ok {
			q.value += c.raster.SamplesPassed()
		}
	}
}

var _ shader.Sampler = (*texture.Texture)(nil)
