package shaders

import (
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/wide"
)

// SolidColor fills primitives with one color.
type SolidColor struct {
	Base
	Color [4]float32
}

// NewSolidColor returns a program filling with the premultiplied color c.
func NewSolidColor(c [4]float32) *SolidColor {
	return &SolidColor{Base: newBase("aColor"), Color: c}
}

func (s *SolidColor) NumVaryings() int { return 0 }

func (s *SolidColor) Vertex(p *shader.Primitive) { s.position(p) }

func (s *SolidColor) Fragment(f *shader.Fragment) { f.SetColor(s.Color) }

// VertexColor interpolates a per-vertex color read from "aColor".
type VertexColor struct {
	Base
}

// NewVertexColor returns a vertex color program.
func NewVertexColor() *VertexColor {
	return &VertexColor{Base: newBase("aColor")}
}

func (v *VertexColor) NumVaryings() int { return 4 }

func (v *VertexColor) Vertex(p *shader.Primitive) {
	v.position(p)
	for i := 0; i < p.NumVertices; i++ {
		c := v.input(p, i)
		copy(p.Vertices[i].Varyings[:4], c[:])
	}
}

func (v *VertexColor) Fragment(f *shader.Fragment) {
	f.Color = [4]wide.F32x4{f.Varyings[0], f.Varyings[1], f.Varyings[2], f.Varyings[3]}
}
