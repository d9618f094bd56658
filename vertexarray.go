package swgl

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/swgl/shader"
)

// attrib describes one vertex attribute array.
type attrib struct {
	size       int
	typ        AttribType
	normalized bool
	stride     int
	offset     int
	divisor    int
	buffer     uint32
	enabled    bool

	// resolved by validate
	data []byte
}

// vertexArray is a set of attribute arrays plus an element buffer.
type vertexArray struct {
	attribs       [shader.MaxAttribs]attrib
	elementBuffer uint32

	validated bool
	elements  []byte
	// count is one past the highest enabled attribute.
	count int
}

func (va *vertexArray) uses(id uint32) bool {
	if va.elementBuffer == id {
		return true
	}
	for i := range va.attribs {
		if va.attribs[i].buffer == id {
			return true
		}
	}
	return false
}

func (va *vertexArray) detachBuffer(id uint32) {
	if va.elementBuffer == id {
		va.elementBuffer = 0
	}
	for i := range va.attribs {
		if va.attribs[i].buffer == id {
			va.attribs[i].buffer = 0
		}
	}
	va.validated = false
}

// validate resolves buffer storage for every enabled attribute.
func (c *Context) validate(va *vertexArray) {
	if va.validated {
		return
	}
	va.count = 0
	for i := range va.attribs {
		a := &va.attribs[i]
		a.data = nil
		if !a.enabled {
			continue
		}
		va.count = i + 1
		if b, ok := c.buffers.Find(a.buffer); ok && a.buffer != 0 {
			a.data = b.data
		}
	}
	va.elements = nil
	if b, ok := c.buffers.Find(va.elementBuffer); ok && va.elementBuffer != 0 {
		va.elements = b.data
	}
	va.validated = true
}

func (c *Context) attribIndex(call string, index int) (*vertexArray, bool) {
	if index < 0 || index >= shader.MaxAttribs {
		c.warn(call, "attribute index out of range", "index", index)
		return nil, false
	}
	return c.boundVertexArray(), true
}

// VertexAttribPointer sources attribute index from the bound array buffer:
// size components of type typ, stride bytes apart (0 for tightly packed),
// starting at byte offset.
func (c *Context) VertexAttribPointer(index, size int, typ AttribType, normalized bool, stride, offset int) {
	va, ok := c.attribIndex("VertexAttribPointer", index)
	if !ok {
		return
	}
	if size < 1 || size > 4 || typ.Size() == 0 || stride < 0 || offset < 0 {
		c.warn("VertexAttribPointer", "invalid layout", "size", size, "type", typ, "stride", stride, "offset", offset)
		return
	}
	a := &va.attribs[index]
	a.size, a.typ, a.normalized = size, typ, normalized
	a.stride, a.offset = stride, offset
	a.buffer = c.arrayBuffer
	va.validated = false
}

// VertexAttribDivisor makes attribute index advance once per divisor
// instances instead of once per vertex. A divisor of 0 restores per-vertex
// stepping.
func (c *Context) VertexAttribDivisor(index, divisor int) {
	va, ok := c.attribIndex("VertexAttribDivisor", index)
	if !ok {
		return
	}
	va.attribs[index].divisor = max(divisor, 0)
}

// EnableVertexAttribArray reads attribute index from its array.
func (c *Context) EnableVertexAttribArray(index int) {
	if va, ok := c.attribIndex("EnableVertexAttribArray", index); ok {
		va.attribs[index].enabled = true
		va.validated = false
	}
}

// DisableVertexAttribArray makes attribute index use its generic value.
func (c *Context) DisableVertexAttribArray(index int) {
	if va, ok := c.attribIndex("DisableVertexAttribArray", index); ok {
		va.attribs[index].enabled = false
		va.validated = false
	}
}

// VertexAttrib4f sets the generic value of attribute index, used while its
// array is disabled.
func (c *Context) VertexAttrib4f(index int, x, y, z, w float32) {
	if index < 0 || index >= shader.MaxAttribs {
		c.warn("VertexAttrib4f", "attribute index out of range", "index", index)
		return
	}
	c.generic[index] = f32.Vec4{x, y, z, w}
}

// fetch decodes attribute i for a vertex and instance. Missing components
// default to (0, 0, 0, 1); reads past the end of the buffer yield the
// generic value.
func (va *vertexArray) fetch(i, vertex, instance int, generic *f32.Vec4) f32.Vec4 {
	a := &va.attribs[i]
	if !a.enabled || a.data == nil {
		return *generic
	}
	n := vertex
	if a.divisor > 0 {
		n = instance / a.divisor
	}
	cs := a.typ.Size()
	stride := a.stride
	if stride == 0 {
		stride = a.size * cs
	}
	off := a.offset + n*stride
	if n < 0 || off+a.size*cs > len(a.data) {
		return *generic
	}
	v := f32.Vec4{0, 0, 0, 1}
	for k := 0; k < a.size; k++ {
		v[k] = decode(a.data[off+k*cs:], a.typ, a.normalized)
	}
	return v
}

// decode converts one component. Normalized signed values map to [-1, 1]
// with the most negative value clamped.
func decode(p []byte, typ AttribType, normalized bool) float32 {
	switch typ {
	case AttribFloat:
		return math32.Float32frombits(binary.LittleEndian.Uint32(p))
	case AttribByte:
		v := float32(int8(p[0]))
		if normalized {
			return max(v/127, -1)
		}
		return v
	case AttribUnsignedByte:
		v := float32(p[0])
		if normalized {
			return v / 255
		}
		return v
	case AttribShort:
		v := float32(int16(binary.LittleEndian.Uint16(p))) // #nosec G115
		if normalized {
			return max(v/32767, -1)
		}
		return v
	case AttribUnsignedShort:
		v := float32(binary.LittleEndian.Uint16(p))
		if normalized {
			return v / 65535
		}
		return v
	case AttribInt:
		v := float32(int32(binary.LittleEndian.Uint32(p))) // #nosec G115
		if normalized {
			return max(v/2147483647, -1)
		}
		return v
	case AttribUnsignedInt:
		v := float32(binary.LittleEndian.Uint32(p))
		if normalized {
			return v / 4294967295
		}
		return v
	}
	return 0
}
