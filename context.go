package swgl

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/raster"
	"github.com/gogpu/swgl/internal/store"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/shader"
)

// Context holds every GL object and all bound state of one rendering
// context.
//
// A Context is not safe for concurrent use. Other goroutines may only touch
// textures through a LockedTexture. Every method works on its receiver; the
// process-wide current context exists only for callers that want
// GL-style implicit state and is never consulted internally.
type Context struct {
	refs atomic.Int32
	opts contextOptions

	textures     *store.Store[texture.Texture]
	buffers      *store.Store[buffer]
	framebuffers *store.Store[framebuffer]
	vertexArrays *store.Store[vertexArray]
	programs     *store.Store[program]
	queries      *store.Store[query]

	// bindings
	activeUnit        int
	units             []uint32
	arrayBuffer       uint32
	pixelPackBuffer   uint32
	pixelUnpackBuffer uint32
	readFramebuffer   uint32
	drawFramebuffer   uint32
	vertexArray       uint32
	currentProgram    uint32
	activeQueries     [TimeElapsed + 1]uint32

	// fixed-function state
	viewport      raster.Rect
	scissor       raster.Rect
	scissorTest   bool
	depthTest     bool
	depthMask     bool
	depthFunc     gputypes.CompareFunction
	blendEnabled  bool
	blendState    gputypes.BlendState
	blendEquation blend.Equation
	blendColor    gputypes.Color
	blendKey      blend.Key
	blendDirty    bool
	clearColor    gputypes.Color
	clearDepth    float32
	lineWidth     float32

	clipMask       uint32
	clipMaskOrigin [2]int

	generic [shader.MaxAttribs]f32.Vec4

	raster   *raster.Rasterizer
	samplers []shader.Sampler
}

// current is the process-wide current context.
var current atomic.Pointer[Context]

// NewContext creates a context with one reference. The default framebuffer
// is object 0 and has no attachments; render into textures attached to a
// generated framebuffer.
func NewContext(opts ...ContextOption) *Context {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	c := &Context{
		opts:      options,
		units:     make([]uint32, options.textureUnits),
		samplers:  make([]shader.Sampler, options.textureUnits),
		depthMask: true,
		depthFunc: gputypes.CompareFunctionLess,
		blendState: gputypes.BlendState{
			Color: gputypes.BlendComponent{SrcFactor: gputypes.BlendFactorOne, DstFactor: gputypes.BlendFactorZero, Operation: gputypes.BlendOperationAdd},
			Alpha: gputypes.BlendComponent{SrcFactor: gputypes.BlendFactorOne, DstFactor: gputypes.BlendFactorZero, Operation: gputypes.BlendOperationAdd},
		},
		clearDepth: 1,
		lineWidth:  1,
		raster:     raster.New(),
	}
	c.textures = store.New(c.onEraseTexture)
	c.buffers = store.New(c.onEraseBuffer)
	c.framebuffers = store.New(c.onEraseFramebuffer)
	c.vertexArrays = store.New(c.onEraseVertexArray)
	c.programs = store.New(c.onEraseProgram)
	c.queries = store.New(c.onEraseQuery)
	for i := range c.generic {
		c.generic[i] = f32.Vec4{0, 0, 0, 1}
	}
	c.refs.Store(1)
	c.logger().Debug("swgl: context created",
		"textureUnits", options.textureUnits,
		"maxTextureSize", options.maxTextureSize,
		"delayedClear", options.delayedClear)
	return c
}

// Reference adds a reference to the context.
func (c *Context) Reference() {
	c.refs.Add(1)
}

// Destroy drops a reference. The last reference releases every object and
// detaches the context if it is current. Locked textures stay alive for
// their LockedTexture holders.
func (c *Context) Destroy() {
	if c.refs.Add(-1) > 0 {
		return
	}
	current.CompareAndSwap(c, nil)
	c.textures = store.New[texture.Texture](nil)
	c.buffers = store.New[buffer](nil)
	c.framebuffers = store.New[framebuffer](nil)
	c.vertexArrays = store.New[vertexArray](nil)
	c.programs = store.New[program](nil)
	c.queries = store.New[query](nil)
	c.logger().Debug("swgl: context destroyed")
}

// MakeCurrent makes c the process-wide current context. Passing nil clears
// it.
//
// There is one current slot per process, not per goroutine: MakeCurrent on
// one goroutine changes what Current returns on all of them. The slot
// itself is safe for concurrent use, but a Context is not; goroutines that
// render in parallel should each own a Context and pass it explicitly.
func MakeCurrent(c *Context) {
	current.Store(c)
}

// Current returns the process-wide current context, or nil.
func Current() *Context {
	return current.Load()
}

// GetError always returns NoError: rejected calls are logged instead.
func (c *Context) GetError() Error {
	return NoError
}

// MaxTextureSize returns the largest supported texture dimension.
func (c *Context) MaxTextureSize() int {
	return c.opts.maxTextureSize
}

// boundTexture returns the texture bound to unit, or nil.
func (c *Context) boundTexture(unit int) *texture.Texture {
	if unit < 0 || unit >= len(c.units) || c.units[unit] == 0 {
		return nil
	}
	t, _ := c.textures.Find(c.units[unit])
	return t
}

// activeTexture returns the texture bound to the active unit. Unit bindings
// to the null object are rejected.
func (c *Context) activeTexture(call string) *texture.Texture {
	id := c.units[c.activeUnit]
	if id == 0 {
		c.warn(call, "no texture bound", "unit", c.activeUnit)
		return nil
	}
	return c.textures.Get(id)
}
