package shader

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// BlendOverride lets the vertex stage request an engine blend mode for the
// primitive, taking precedence over the context blend state.
type BlendOverride uint8

// Engine blend overrides.
const (
	BlendNone BlendOverride = iota
	// BlendDropShadow multiplies source alpha by BlendColor, then composites
	// over.
	BlendDropShadow
	// BlendSubpixelText treats the source as a per-channel coverage mask for
	// BlendColor.
	BlendSubpixelText
)

func (b BlendOverride) String() string {
	switch b {
	case BlendNone:
		return "none"
	case BlendDropShadow:
		return "drop-shadow"
	case BlendSubpixelText:
		return "subpixel-text"
	}
	return "unknown"
}

// Vertex is one transformed corner.
type Vertex struct {
	// Position is the clip-space position.
	Position f32.Vec4
	// ClipDistance holds user clip distances. Pixels with a negative
	// interpolated distance are discarded.
	ClipDistance [MaxClipDistances]float32
	// Varyings are interpolated across the primitive.
	Varyings [MaxVaryings]float32
}

// Primitive is the unit of work of the vertex stage: a line, a triangle or
// a quad.
type Primitive struct {
	// NumVertices is 2, 3 or 4.
	NumVertices int
	// Instance is the instance index being drawn.
	Instance int
	// Attribs holds the attribute values of every corner.
	Attribs [4][MaxAttribs]f32.Vec4

	// Vertices receives the output of the vertex stage.
	Vertices [4]Vertex
	// NumClipDistances is how many entries of Vertex.ClipDistance are used.
	NumClipDistances int
	// AAEdges has bit i set when the edge from vertex i to vertex i+1 is
	// antialiased. Zero disables antialiasing.
	AAEdges uint8
	// BlendOverride selects an engine blend mode; BlendColor is its
	// constant color.
	BlendOverride BlendOverride
	BlendColor    gputypes.Color

	// Textures holds the samplers bound to each texture unit.
	Textures []Sampler
}

// Attrib returns attribute index of vertex v.
func (p *Primitive) Attrib(v, index int) f32.Vec4 {
	return p.Attribs[v][index]
}

// Texture returns the sampler bound to unit, or nil.
func (p *Primitive) Texture(unit int) Sampler {
	if unit < 0 || unit >= len(p.Textures) {
		return nil
	}
	return p.Textures[unit]
}

// SetAllEdgesAA marks every edge of the primitive antialiased.
func (p *Primitive) SetAllEdgesAA() {
	p.AAEdges = 1<<p.NumVertices - 1
}
