// Package shader defines the contract between the rasterizer and the
// programs it runs.
//
// A Program replaces the vertex and fragment stages of a GPU pipeline. The
// rasterizer calls Vertex once per primitive with the decoded attributes of
// every corner, then calls Fragment once per chunk of four pixels with the
// varyings interpolated for those pixels. Programs may additionally
// implement DiscardUser, SpanDrawer and AttribBinder.
//
// Shader compilation is out of scope: programs are ordinary Go values whose
// uniforms are plain fields set by the caller.
package shader

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/wide"
)

// Limits of the pipeline.
const (
	// MaxAttribs is the number of vertex attribute slots.
	MaxAttribs = 16
	// MaxVaryings is the number of scalar varyings a program may output.
	MaxVaryings = 16
	// MaxClipDistances is the number of user clip distances.
	MaxClipDistances = 4
)

// Program is a vertex and fragment stage pair.
type Program interface {
	// NumVaryings returns how many scalar varyings Vertex writes.
	NumVaryings() int
	// Vertex transforms the corners of p.
	Vertex(p *Primitive)
	// Fragment shades one chunk of pixels.
	Fragment(f *Fragment)
}

// DiscardUser is implemented by programs whose Fragment may set
// Fragment.Discard. The rasterizer then cannot assume every covered pixel
// is written.
type DiscardUser interface {
	UsesDiscard() bool
}

// SpanDrawer is implemented by programs that can shade whole spans faster
// than chunk by chunk.
type SpanDrawer interface {
	// CanDrawSpan reports whether spans targeting format are supported.
	CanDrawSpan(format gputypes.TextureFormat) bool
	// DrawSpan shades a prefix of s by committing pixels. The rasterizer
	// shades whatever is left, starting at s.X(), through Fragment.
	DrawSpan(s Span)
}

// AttribBinder is implemented by programs that name their attributes.
type AttribBinder interface {
	// AttribLocation returns the slot of the named attribute or -1.
	AttribLocation(name string) int
	// BindAttribLocation assigns the named attribute to slot index.
	BindAttribLocation(name string, index int)
}

// Span is a run of pixels on one row handed to SpanDrawer.DrawSpan.
type Span interface {
	// Len returns the number of pixels left in the span.
	Len() int
	// X and Y return the framebuffer position of the next pixel.
	X() int
	Y() int
	// Format returns the format of the color target.
	Format() gputypes.TextureFormat
	// Varying returns varying i at the next pixel and its per-pixel step.
	Varying(i int) (start, step float32)
	// Commit blends up to four pixels of BGRA lanes through the active
	// blend state and advances by n pixels.
	Commit(px wide.U16x16, n int)
	// Texture returns the sampler bound to unit, or nil.
	Texture(unit int) Sampler
}
