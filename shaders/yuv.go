package shaders

import "github.com/gogpu/swgl/shader"

// YUV converts three planes bound to Planes to opaque RGB at the
// coordinate read from "aTexCoord".
type YUV struct {
	Base
	Planes [3]int
	Space  shader.YUVColorSpace
	// Shift is the rescale shift of 16-bit planes; all planes must share
	// one bit depth.
	Shift uint
}

// NewYUV returns a program reading Y, U and V from units 0, 1 and 2.
func NewYUV(space shader.YUVColorSpace, shift uint) *YUV {
	return &YUV{Base: newBase("aTexCoord"), Planes: [3]int{0, 1, 2}, Space: space, Shift: shift}
}

func (y *YUV) NumVaryings() int { return 2 }

func (y *YUV) Vertex(p *shader.Primitive) {
	y.position(p)
	for i := 0; i < p.NumVertices; i++ {
		uv := y.input(p, i)
		p.Vertices[i].Varyings[0] = uv[0]
		p.Vertices[i].Varyings[1] = uv[1]
	}
}

func (y *YUV) Fragment(f *shader.Fragment) {
	py, pu, pv := f.Texture(y.Planes[0]), f.Texture(y.Planes[1]), f.Texture(y.Planes[2])
	if py == nil || pu == nil || pv == nil {
		return
	}
	f.Color = shader.SampleYUV(py, pu, pv, y.Space, y.Shift, f.Varyings[0], f.Varyings[1])
}
