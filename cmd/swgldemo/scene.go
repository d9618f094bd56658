package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/swgl"
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/shaders"
)

var errInvalidScene = errors.New("invalid scene")

// Scene is the TOML description of one frame.
type Scene struct {
	Width  int        `toml:"width"`
	Height int        `toml:"height"`
	Clear  [4]float32 `toml:"clear"`
	Depth  bool       `toml:"depth"`

	DelayedClear   *bool `toml:"delayed_clear"`
	MaxTextureSize int   `toml:"max_texture_size"`

	Quads []Quad `toml:"quad"`
}

// Quad is one axis-aligned rectangle. Colors are straight alpha.
type Quad struct {
	// Rect is x0, y0, x1, y1 in pixels.
	Rect [4]float32 `toml:"rect"`
	// Z is the clip-space depth used when the scene has a depth buffer.
	Z float32 `toml:"z"`
	// Kind is "solid", "gradient" or "checker".
	Kind  string     `toml:"kind"`
	Color [4]float32 `toml:"color"`
	// To is the second gradient stop or checker color.
	To     [4]float32 `toml:"to"`
	Linear bool       `toml:"linear"`
	// Cell is the checker cell size in pixels.
	Cell int `toml:"cell"`
	// Blend is "replace", "over", "add", "multiply" or "screen".
	Blend     string `toml:"blend"`
	Antialias bool   `toml:"antialias"`
}

// DecodeScene reads a scene. Unknown keys are rejected.
func DecodeScene(r io.Reader) (*Scene, error) {
	var s Scene
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", errInvalidScene, s.Width, s.Height)
	}
	return &s, nil
}

func (s *Scene) options() []swgl.ContextOption {
	var opts []swgl.ContextOption
	if s.DelayedClear != nil {
		opts = append(opts, swgl.WithDelayedClear(*s.DelayedClear))
	}
	if s.MaxTextureSize > 0 {
		opts = append(opts, swgl.WithMaxTextureSize(s.MaxTextureSize))
	}
	return opts
}

func premultiply(c [4]float32) [4]float32 {
	return [4]float32{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

func floatBytes(v ...float32) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math32.Float32bits(x))
	}
	return b
}

// renderer draws quads into one framebuffer.
type renderer struct {
	ctx    *swgl.Context
	scene  *Scene
	vbo    uint32
	ibo    uint32
	target uint32
}

// Render draws s and reads the result back.
func Render(s *Scene) (*image.RGBA, error) {
	ctx := swgl.NewContext(s.options()...)
	defer ctx.Destroy()
	r := &renderer{ctx: ctx, scene: s}

	if err := r.setup(); err != nil {
		return nil, err
	}
	for i := range s.Quads {
		if err := r.draw(&s.Quads[i]); err != nil {
			return nil, fmt.Errorf("quad %d: %w", i, err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	ctx.ReadPixels(0, 0, s.Width, s.Height, swgl.RGBA, swgl.UnsignedByte, img.Pix)
	return img, nil
}

func (r *renderer) setup() error {
	ctx, s := r.ctx, r.scene
	ids := ctx.GenTextures(2)
	r.target = ids[0]
	ctx.BindTexture(r.target)
	ctx.TexStorage2D(gputypes.TextureFormatRGBA8Unorm, s.Width, s.Height)

	fb := ctx.GenFramebuffers(1)[0]
	ctx.BindFramebuffer(swgl.Framebuffer, fb)
	ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.ColorAttachment0, r.target)
	if s.Depth {
		ctx.BindTexture(ids[1])
		ctx.TexStorage2D(gputypes.TextureFormatDepth24Plus, s.Width, s.Height)
		ctx.FramebufferTexture2D(swgl.Framebuffer, swgl.DepthAttachment, ids[1])
		ctx.Enable(swgl.DepthTest)
	}
	if st := ctx.CheckFramebufferStatus(swgl.Framebuffer); st != swgl.FramebufferComplete {
		return fmt.Errorf("%w: framebuffer %v", errInvalidScene, st)
	}

	ctx.Viewport(0, 0, s.Width, s.Height)
	ctx.BindVertexArray(ctx.GenVertexArrays(1)[0])
	bufs := ctx.GenBuffers(2)
	r.vbo, r.ibo = bufs[0], bufs[1]

	ctx.BindBuffer(swgl.ArrayBuffer, r.vbo)
	ctx.VertexAttribPointer(0, 3, swgl.AttribFloat, false, 20, 0)
	ctx.VertexAttribPointer(1, 2, swgl.AttribFloat, false, 20, 12)
	ctx.EnableVertexAttribArray(0)
	ctx.EnableVertexAttribArray(1)

	idx := []byte{0, 0, 1, 0, 2, 0, 2, 0, 1, 0, 3, 0}
	ctx.BindBuffer(swgl.ElementArrayBuffer, r.ibo)
	ctx.BufferData(swgl.ElementArrayBuffer, len(idx), idx)

	c := s.Clear
	ctx.ClearColor(c[0]*c[3], c[1]*c[3], c[2]*c[3], c[3])
	ctx.Clear(swgl.ColorBufferBit | swgl.DepthBufferBit)
	return nil
}

func (r *renderer) blend(name string) error {
	ctx := r.ctx
	ctx.BlendEquation(swgl.FuncAdd)
	switch name {
	case "", "replace":
		ctx.Disable(swgl.Blend)
		return nil
	case "over":
		ctx.BlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha)
	case "add":
		ctx.BlendFunc(gputypes.BlendFactorOne, gputypes.BlendFactorOne)
	case "multiply":
		ctx.BlendEquation(swgl.Multiply)
	case "screen":
		ctx.BlendEquation(swgl.Screen)
	default:
		return fmt.Errorf("%w: blend %q", errInvalidScene, name)
	}
	ctx.Enable(swgl.Blend)
	return nil
}

// program builds the program for q, uploading a checker texture when
// needed.
func (r *renderer) program(q *Quad) (shader.Program, error) {
	ortho := shaders.Ortho(float32(r.scene.Width), float32(r.scene.Height))
	switch q.Kind {
	case "", "solid":
		p := shaders.NewSolidColor(premultiply(q.Color))
		p.Transform, p.Antialias = ortho, q.Antialias
		return p, nil
	case "gradient":
		p := shaders.NewGradient([2]float32{q.Rect[0], q.Rect[1]}, [2]float32{q.Rect[2], q.Rect[1]}, q.Color, q.To)
		p.Transform, p.Antialias, p.LinearLight = ortho, q.Antialias, q.Linear
		return p, nil
	case "checker":
		if q.Cell <= 0 {
			return nil, fmt.Errorf("%w: checker cell %d", errInvalidScene, q.Cell)
		}
		r.uploadChecker(q)
		p := shaders.NewTextured(1)
		p.Transform, p.Antialias = ortho, q.Antialias
		return p, nil
	}
	return nil, fmt.Errorf("%w: kind %q", errInvalidScene, q.Kind)
}

func (r *renderer) uploadChecker(q *Quad) {
	ctx := r.ctx
	cols := max(1, int(math32.Ceil((q.Rect[2]-q.Rect[0])/float32(q.Cell))))
	rows := max(1, int(math32.Ceil((q.Rect[3]-q.Rect[1])/float32(q.Cell))))
	a, b := premultiply(q.Color), premultiply(q.To)
	px := make([]byte, 0, cols*rows*4)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			for _, v := range c {
				px = append(px, uint8(min(max(v, 0), 1)*255+0.5))
			}
		}
	}
	tex := ctx.GenTextures(1)[0]
	ctx.ActiveTexture(1)
	ctx.BindTexture(tex)
	ctx.TexImage2D(gputypes.TextureFormatRGBA8Unorm, cols, rows, swgl.RGBA, swgl.UnsignedByte, px)
	ctx.TexParameter(swgl.TextureMagFilter, gputypes.FilterModeNearest)
	ctx.ActiveTexture(0)
}

func (r *renderer) draw(q *Quad) error {
	ctx := r.ctx
	if err := r.blend(q.Blend); err != nil {
		return err
	}
	p, err := r.program(q)
	if err != nil {
		return err
	}
	id := ctx.CreateProgram(p)
	defer ctx.DeleteProgram(id)
	ctx.UseProgram(id)

	x0, y0, x1, y1, z := q.Rect[0], q.Rect[1], q.Rect[2], q.Rect[3], q.Z
	data := floatBytes(
		x0, y0, z, 0, 0,
		x1, y0, z, 1, 0,
		x0, y1, z, 0, 1,
		x1, y1, z, 1, 1,
	)
	ctx.BindBuffer(swgl.ArrayBuffer, r.vbo)
	ctx.BufferData(swgl.ArrayBuffer, len(data), data)
	ctx.DrawElementsInstanced(gputypes.PrimitiveTopologyTriangleList, 6, gputypes.IndexFormatUint16, 0, 1)
	return nil
}
