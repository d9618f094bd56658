package shaders

import (
	"github.com/gogpu/swgl/internal/color"
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/wide"
)

// Gradient shades a linear gradient running from Start to End, given in
// the same space as the vertex positions. The gradient parameter is
// computed per vertex from "aPosition" and interpolated.
//
// When Entries is positive the colors come from a gradient table in the
// RGBA32F texture bound to Unit, starting at texel Address. Otherwise the
// two straight-alpha stops From and To are mixed, in linear light when
// LinearLight is set.
type Gradient struct {
	Base
	Start, End [2]float32

	Unit    int
	Address int
	Entries int

	From, To    [4]float32
	LinearLight bool
}

// NewGradient returns a two-stop gradient program.
func NewGradient(start, end [2]float32, from, to [4]float32) *Gradient {
	return &Gradient{Base: newBase(""), Start: start, End: end, From: from, To: to}
}

func (g *Gradient) NumVaryings() int { return 1 }

// param projects the point (x, y) onto the gradient axis.
func (g *Gradient) param(x, y float32) float32 {
	dx, dy := g.End[0]-g.Start[0], g.End[1]-g.Start[1]
	l := dx*dx + dy*dy
	if l == 0 {
		return 0
	}
	return ((x-g.Start[0])*dx + (y-g.Start[1])*dy) / l
}

func (g *Gradient) Vertex(p *shader.Primitive) {
	g.position(p)
	for i := 0; i < p.NumVertices; i++ {
		pos := p.Attribs[i][g.slots[0]]
		p.Vertices[i].Varyings[0] = g.param(pos[0], pos[1])
	}
}

func (g *Gradient) Fragment(f *shader.Fragment) {
	t := f.Varyings[0].Clamp(0, 1)
	if g.Entries > 0 {
		if s := f.Texture(g.Unit); s != nil {
			f.Color = s.Gradient(g.Address, g.Entries, t)
		}
		return
	}
	from := color.ColorF32{R: g.From[0], G: g.From[1], B: g.From[2], A: g.From[3]}
	to := color.ColorF32{R: g.To[0], G: g.To[1], B: g.To[2], A: g.To[3]}
	for i := 0; i < wide.ChunkPixels; i++ {
		var c color.ColorF32
		if g.LinearLight {
			c = color.MixLinear(from, to, t[i])
		} else {
			c = color.ColorF32{
				R: from.R + (to.R-from.R)*t[i],
				G: from.G + (to.G-from.G)*t[i],
				B: from.B + (to.B-from.B)*t[i],
				A: from.A + (to.A-from.A)*t[i],
			}
		}
		c = c.Premultiply()
		f.Color[0][i], f.Color[1][i], f.Color[2][i], f.Color[3][i] = c.R, c.G, c.B, c.A
	}
}
