// Package raster converts primitives produced by a shader.Program into
// pixels.
//
// Primitives are convex polygons (triangles, quads, or lines widened into
// quads). Polygons whose vertices share w take the 2D path: they are
// projected once and scanned with affine interpolation. Everything else
// takes the perspective path, which clips against the near and far planes
// first and interpolates varyings divided by w.
//
// Each row is scanned as one span that is tested against the run-length
// depth buffer, shaded four pixels at a time and blended into the color
// target. The span loops are generic over the color format.
package raster

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/color"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/wide"
)

// ErrUnsupportedTarget is returned when the color target format cannot be
// rendered to.
var ErrUnsupportedTarget = errors.New("raster: unsupported color target format")

// Rect is a half-open pixel rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{max(r.X0, o.X0), max(r.Y0, o.Y0), min(r.X1, o.X1), min(r.Y1, o.Y1)}
}

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }

// Target is the framebuffer a draw renders into. Either attachment may be
// nil.
type Target struct {
	Color *texture.Texture
	Depth *texture.Texture
}

// State is the fixed-function state of a draw.
type State struct {
	// Viewport maps normalized device coordinates to window pixels.
	Viewport Rect
	// Clip restricts writes, in window pixels (scissor).
	Clip Rect

	DepthTest  bool
	DepthFunc  gputypes.CompareFunction
	DepthWrite bool

	// Blend is the formula selected by the blend state, without modifiers.
	Blend      blend.Key
	BlendColor gputypes.Color

	// ClipMask is an optional R8 coverage mask whose texel (0, 0) lies at
	// ClipMaskOrigin in window pixels. Pixels outside it are clipped.
	ClipMask       *texture.Texture
	ClipMaskOrigin [2]int

	LineWidth float32
}

// Rasterizer draws primitives for one program and state.
type Rasterizer struct {
	target   Target
	state    State
	prog     shader.Program
	textures []shader.Sampler

	varyings int
	discard  bool
	spans    shader.SpanDrawer
	offX     int
	offY     int
	clip     Rect

	key     blend.Key
	params  blend.Params
	frag    shader.Fragment
	poly    polygon
	lines   []edgeLine
	clipBuf [maxPoints]ClipVertex

	samples uint64
}

// New returns an idle rasterizer.
func New() *Rasterizer {
	return &Rasterizer{lines: make([]edgeLine, 0, maxPoints)}
}

// Begin prepares a draw. textures are the samplers bound to each unit.
func (r *Rasterizer) Begin(t Target, s State, prog shader.Program, textures []shader.Sampler) error {
	r.target, r.state, r.prog, r.textures = t, s, prog, textures
	r.frag.Textures = textures
	r.varyings = min(max(prog.NumVaryings(), 0), shader.MaxVaryings)
	r.discard = false
	if d, ok := prog.(shader.DiscardUser); ok {
		r.discard = d.UsesDiscard()
	}

	var bounds Rect
	switch {
	case t.Color != nil:
		f := t.Color.Format()
		if f != gputypes.TextureFormatBGRA8Unorm && f != gputypes.TextureFormatR8Unorm {
			return ErrUnsupportedTarget
		}
		r.offX, r.offY = t.Color.Offset()
		bounds = Rect{0, 0, t.Color.Width(), t.Color.Height()}
	case t.Depth != nil:
		r.offX, r.offY = t.Depth.Offset()
		bounds = Rect{0, 0, t.Depth.Width(), t.Depth.Height()}
	}
	if t.Color != nil && t.Depth != nil {
		bounds = bounds.Intersect(Rect{0, 0, t.Depth.Width(), t.Depth.Height()})
	}

	r.spans = nil
	if sd, ok := prog.(shader.SpanDrawer); ok && t.Color != nil && sd.CanDrawSpan(t.Color.Format()) {
		r.spans = sd
	}

	// the clip rect is kept in target pixels
	clip := Rect{s.Clip.X0 - r.offX, s.Clip.Y0 - r.offY, s.Clip.X1 - r.offX, s.Clip.Y1 - r.offY}
	r.clip = bounds.Intersect(clip)
	if m := s.ClipMask; m != nil {
		ox, oy := s.ClipMaskOrigin[0]-r.offX, s.ClipMaskOrigin[1]-r.offY
		r.clip = r.clip.Intersect(Rect{ox, oy, ox + m.Width(), oy + m.Height()})
	}
	return nil
}

// SamplesPassed returns the number of pixels written since the last reset.
func (r *Rasterizer) SamplesPassed() uint64 { return r.samples }

// ResetSamples zeroes the sample counter.
func (r *Rasterizer) ResetSamples() { r.samples = 0 }

// Key returns the blend key used by the last primitive.
func (r *Rasterizer) Key() blend.Key { return r.key }

// DrawPrimitive rasterizes p after the vertex stage has filled its
// vertices.
func (r *Rasterizer) DrawPrimitive(p *shader.Primitive) {
	if r.prog == nil || r.clip.Empty() || p.NumVertices < 2 || p.NumVertices > 4 {
		return
	}
	if p.NumVertices == 2 {
		r.lineToQuad(p)
	}
	r.selectBlend(p)

	if r.needsPerspective(p) {
		r.setupPerspective(p)
	} else {
		r.setup2D(p)
	}
	if r.poly.n < 3 {
		return
	}
	// clipping can remove every AA edge
	r.key = r.key.WithModifiers(r.poly.aa != 0, r.state.ClipMask != nil)
	if r.target.Color != nil && r.target.Color.Format() == gputypes.TextureFormatR8Unorm {
		drawPolygon[r8](r)
		return
	}
	drawPolygon[rgba8](r)
}

func colorLanes(c gputypes.Color) wide.U16x16 {
	u := color.F32ToU8(color.ColorF32{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)})
	return u.Lanes()
}

// selectBlend derives the blend key and constant color for p.
func (r *Rasterizer) selectBlend(p *shader.Primitive) {
	k := r.state.Blend
	c := r.state.BlendColor
	switch p.BlendOverride {
	case shader.BlendDropShadow:
		k, c = blend.KeyDropShadow, p.BlendColor
	case shader.BlendSubpixelText:
		k, c = blend.KeySubpixelText, p.BlendColor
	}
	r.key = k
	r.params.Color = colorLanes(c)
}

// needsPerspective reports whether p cannot be drawn with affine
// interpolation: the vertices disagree in w, a vertex is behind the eye,
// or depth testing needs per-sample depth.
func (r *Rasterizer) needsPerspective(p *shader.Primitive) bool {
	w0 := p.Vertices[0].Position[3]
	if w0 <= 0 {
		return true
	}
	z0 := p.Vertices[0].Position[2]
	for i := 1; i < p.NumVertices; i++ {
		pos := p.Vertices[i].Position
		if pos[3] != w0 {
			return true
		}
		if r.state.DepthTest && r.target.Depth != nil && pos[2] != z0 {
			return true
		}
	}
	return false
}

// window maps a clip-space position to target pixels and window depth.
func (r *Rasterizer) window(x, y, z, w float32) (wx, wy, wz float32) {
	vp := r.state.Viewport
	inv := 1 / w
	vw, vh := float32(vp.X1-vp.X0), float32(vp.Y1-vp.Y0)
	wx = float32(vp.X0-r.offX) + (x*inv+1)*0.5*vw
	wy = float32(vp.Y0-r.offY) + (y*inv+1)*0.5*vh
	wz = min(max((z*inv+1)*0.5, 0), 1)
	return wx, wy, wz
}

func (r *Rasterizer) setup2D(p *shader.Primitive) {
	poly := &r.poly
	poly.n = p.NumVertices
	poly.aa = uint16(p.AAEdges)
	poly.perspective = false
	poly.nv = interpVarying + r.varyings
	for i := 0; i < p.NumVertices; i++ {
		v := &p.Vertices[i]
		pt := &poly.pts[i]
		pt.x, pt.y, pt.v[interpZ] = r.window(v.Position[0], v.Position[1], v.Position[2], v.Position[3])
		pt.v[interpW] = 1 / v.Position[3]
		copy(pt.v[interpClip:interpVarying], v.ClipDistance[:])
		copy(pt.v[interpVarying:], v.Varyings[:r.varyings])
	}
	r.clearUnusedClipDistances(p)
}

func (r *Rasterizer) setupPerspective(p *shader.Primitive) {
	in := r.clipBuf[:p.NumVertices]
	for i := range in {
		v := &p.Vertices[i]
		in[i].Pos = [4]float32(v.Position)
		copy(in[i].Attrs[:], v.ClipDistance[:])
		copy(in[i].Attrs[shader.MaxClipDistances:], v.Varyings[:r.varyings])
	}
	nattrs := shader.MaxClipDistances + r.varyings
	out, aa := ClipPolygon(in, uint16(p.AAEdges), nattrs)

	poly := &r.poly
	poly.n = len(out)
	poly.aa = aa
	poly.perspective = true
	poly.nv = interpVarying + r.varyings
	for i := range out {
		v := &out[i]
		w := v.Pos[3]
		if w <= 0 {
			w = math32.SmallestNonzeroFloat32
		}
		pt := &poly.pts[i]
		pt.x, pt.y, pt.v[interpZ] = r.window(v.Pos[0], v.Pos[1], v.Pos[2], w)
		inv := 1 / w
		pt.v[interpW] = inv
		for k := 0; k < nattrs; k++ {
			pt.v[interpClip+k] = v.Attrs[k] * inv
		}
	}
	r.clearUnusedClipDistances(p)
}

// clearUnusedClipDistances zeroes distances the program did not write so
// they never clip.
func (r *Rasterizer) clearUnusedClipDistances(p *shader.Primitive) {
	for i := 0; i < r.poly.n; i++ {
		for k := p.NumClipDistances; k < shader.MaxClipDistances; k++ {
			r.poly.pts[i].v[interpClip+k] = 0
		}
	}
}

// lineToQuad widens a line into a quad at least one pixel wide across its
// minor axis.
func (r *Rasterizer) lineToQuad(p *shader.Primitive) {
	v0, v1 := p.Vertices[0], p.Vertices[1]
	vp := r.state.Viewport
	vw, vh := float32(vp.X1-vp.X0), float32(vp.Y1-vp.Y0)
	if vw <= 0 || vh <= 0 {
		p.NumVertices = 0
		return
	}
	dx := (v1.Position[0]/v1.Position[3] - v0.Position[0]/v0.Position[3]) * vw
	dy := (v1.Position[1]/v1.Position[3] - v0.Position[1]/v0.Position[3]) * vh
	half := max(r.state.LineWidth, 1) / 2

	axis, scale := 1, 2/vh
	if math32.Abs(dx) < math32.Abs(dy) {
		axis, scale = 0, 2/vw
	}
	offset := func(v shader.Vertex, sign float32) shader.Vertex {
		v.Position[axis] += sign * half * scale * v.Position[3]
		return v
	}
	p.Vertices[0] = offset(v0, -1)
	p.Vertices[1] = offset(v1, -1)
	p.Vertices[2] = offset(v1, 1)
	p.Vertices[3] = offset(v0, 1)
	p.Attribs[2], p.Attribs[3] = p.Attribs[1], p.Attribs[0]
	p.NumVertices = 4
	p.AAEdges = 0
}
