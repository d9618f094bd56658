// Package shaders provides ready-made programs for the swgl rasterizer.
//
// Every program reads its position from attribute slot 0 and its second
// input (color, texture coordinate or gradient point) from slot 1. The
// slots are named "aPosition" and a per-program name, and can be moved with
// BindAttribLocation. Positions are multiplied by Transform, which
// constructors set to the identity; Ortho maps window pixels to clip space.
//
// Colors handed to and produced by programs are premultiplied RGBA unless a
// field says otherwise.
package shaders

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/swgl/shader"
)

// Attribute slots used by default.
const (
	SlotPosition = 0
	SlotInput    = 1
)

// Identity is the identity transform.
var Identity = f32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Ortho returns the transform mapping window pixels [0, width)×[0, height)
// to clip space with z passed through.
func Ortho(width, height float32) f32.Mat4 {
	return f32.Mat4{
		2 / width, 0, 0, -1,
		0, 2 / height, 0, -1,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func apply(m *f32.Mat4, v f32.Vec4) f32.Vec4 {
	var r f32.Vec4
	for row := 0; row < 4; row++ {
		r[row] = m[4*row]*v[0] + m[4*row+1]*v[1] + m[4*row+2]*v[2] + m[4*row+3]*v[3]
	}
	return r
}

// Base holds what every program shares: the position transform, the
// antialiasing switch and the attribute slot names.
type Base struct {
	// Transform maps attribute positions to clip space.
	Transform f32.Mat4
	// Antialias marks every edge of each primitive antialiased.
	Antialias bool

	names [2]string
	slots [2]int
}

func newBase(input string) Base {
	return Base{
		Transform: Identity,
		names:     [2]string{"aPosition", input},
		slots:     [2]int{SlotPosition, SlotInput},
	}
}

// AttribLocation returns the slot of the named attribute or -1.
func (b *Base) AttribLocation(name string) int {
	for i, n := range b.names {
		if n != "" && n == name {
			return b.slots[i]
		}
	}
	return -1
}

// BindAttribLocation moves the named attribute to slot index.
func (b *Base) BindAttribLocation(name string, index int) {
	if index < 0 || index >= shader.MaxAttribs {
		return
	}
	for i, n := range b.names {
		if n != "" && n == name {
			b.slots[i] = index
		}
	}
}

// input returns the second attribute of vertex v.
func (b *Base) input(p *shader.Primitive, v int) f32.Vec4 {
	return p.Attribs[v][b.slots[1]]
}

// position transforms the corners of p and applies the AA switch.
func (b *Base) position(p *shader.Primitive) {
	for i := 0; i < p.NumVertices; i++ {
		p.Vertices[i].Position = apply(&b.Transform, p.Attribs[i][b.slots[0]])
	}
	if b.Antialias {
		p.SetAllEdgesAA()
	}
}
