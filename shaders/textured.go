package shaders

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/wide"
)

// Textured samples the texture bound to Unit at the coordinate read from
// "aTexCoord". With an 8-bit BGRA texture and target it shades whole spans
// without going through the float fragment path.
type Textured struct {
	Base
	Unit int
	// Opacity scales the sampled color. Constructors set it to 1.
	Opacity float32
}

// NewTextured returns a program sampling texture unit.
func NewTextured(unit int) *Textured {
	return &Textured{Base: newBase("aTexCoord"), Unit: unit, Opacity: 1}
}

func (t *Textured) NumVaryings() int { return 2 }

func (t *Textured) Vertex(p *shader.Primitive) {
	t.position(p)
	for i := 0; i < p.NumVertices; i++ {
		uv := t.input(p, i)
		p.Vertices[i].Varyings[0] = uv[0]
		p.Vertices[i].Varyings[1] = uv[1]
	}
}

func (t *Textured) Fragment(f *shader.Fragment) {
	s := f.Texture(t.Unit)
	if s == nil {
		return
	}
	f.Color = s.Sample(f.Varyings[0], f.Varyings[1])
	if t.Opacity != 1 {
		for i := range f.Color {
			f.Color[i] = f.Color[i].Scale(t.Opacity)
		}
	}
}

// CanDrawSpan implements shader.SpanDrawer.
func (t *Textured) CanDrawSpan(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatBGRA8Unorm && t.Opacity == 1
}

// DrawSpan copies texels straight into the span.
func (t *Textured) DrawSpan(s shader.Span) {
	tex := s.Texture(t.Unit)
	if tex == nil || tex.Format() != gputypes.TextureFormatBGRA8Unorm {
		return
	}
	for s.Len() > 0 {
		u, du := s.Varying(0)
		v, dv := s.Varying(1)
		s.Commit(tex.SampleBGRA(wide.Ramp4(u, du), wide.Ramp4(v, dv)), min(wide.ChunkPixels, s.Len()))
	}
}
