package swgl

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f32"
)

func TestBufferGrowth(t *testing.T) {
	var b buffer
	assert.True(t, b.allocate(100))
	assert.Equal(t, 100, cap(b.data))
	assert.False(t, b.allocate(50))
	assert.Len(t, b.data, 50)
	assert.False(t, b.allocate(100))

	b.data[0] = 7
	assert.True(t, b.allocate(101))
	assert.Equal(t, 150, cap(b.data))
	assert.Equal(t, byte(7), b.data[0])
}

func TestQuadDetection(t *testing.T) {
	seq := indices{base: 4}
	_, ok := seq.quad(0)
	assert.False(t, ok)

	ix := indices{format: gputypes.IndexFormatUint16, data: []byte{
		4, 0, 5, 0, 6, 0, 6, 0, 5, 0, 7, 0,
		0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0,
	}}
	a, ok := ix.quad(0)
	assert.True(t, ok)
	assert.Equal(t, 4, a)
	_, ok = ix.quad(6)
	assert.False(t, ok)
	assert.Equal(t, 6, seq.at(2))
}

func TestDecodeAttributes(t *testing.T) {
	tests := []struct {
		name       string
		p          []byte
		typ        AttribType
		normalized bool
		want       float32
	}{
		{"ubyte", []byte{255}, AttribUnsignedByte, false, 255},
		{"ubyte normalized", []byte{255}, AttribUnsignedByte, true, 1},
		{"byte normalized min clamps", []byte{0x80}, AttribByte, true, -1},
		{"byte", []byte{0xfe}, AttribByte, false, -2},
		{"short normalized", []byte{0xff, 0x7f}, AttribShort, true, 1},
		{"ushort", []byte{0x34, 0x12}, AttribUnsignedShort, false, 0x1234},
		{"int", []byte{0xff, 0xff, 0xff, 0xff}, AttribInt, false, -1},
		{"float", []byte{0, 0, 0x80, 0x3f}, AttribFloat, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(tt.p, tt.typ, tt.normalized))
		})
	}
}

func TestFetchFallsBackToGeneric(t *testing.T) {
	va := &vertexArray{}
	va.attribs[0] = attrib{size: 2, typ: AttribFloat, enabled: true, data: []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0x40}}
	generic := f32.Vec4{9, 9, 9, 9}

	assert.Equal(t, f32.Vec4{1, 2, 0, 1}, va.fetch(0, 0, 0, &generic))
	assert.Equal(t, generic, va.fetch(0, 1, 0, &generic))
	assert.Equal(t, generic, va.fetch(1, 0, 0, &generic))

	va.attribs[0].divisor = 2
	assert.Equal(t, f32.Vec4{1, 2, 0, 1}, va.fetch(0, 5, 1, &generic))
}

func TestBufferDeleteDetachesFromVertexArrays(t *testing.T) {
	c := NewContext()
	defer c.Destroy()
	va := c.GenVertexArrays(1)[0]
	c.BindVertexArray(va)
	b := c.GenBuffers(1)[0]
	c.BindBuffer(ArrayBuffer, b)
	c.BufferData(ArrayBuffer, 16, nil)
	c.VertexAttribPointer(0, 4, AttribFloat, false, 0, 0)
	c.BindBuffer(ElementArrayBuffer, b)

	c.DeleteBuffers(b)
	v := c.boundVertexArray()
	assert.Equal(t, uint32(0), v.attribs[0].buffer)
	assert.Equal(t, uint32(0), v.elementBuffer)
	assert.Equal(t, uint32(0), c.arrayBuffer)
}
