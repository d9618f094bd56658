package swgl

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/texture"
)

// logTextureError reports a failed texture operation.
func (c *Context) logTextureError(call string, err error, args ...any) {
	reason := err.Error()
	if errors.Is(err, texture.ErrLocked) {
		reason = "texture is locked"
	}
	c.warn(call, reason, args...)
}

// TexStorage2D allocates storage for the texture bound to the active unit.
// RGBA8 is stored as BGRA8 and every depth format as Depth24Plus.
func (c *Context) TexStorage2D(format gputypes.TextureFormat, width, height int) {
	t := c.activeTexture("TexStorage2D")
	if t == nil {
		return
	}
	c.allocate("TexStorage2D", t, format, width, height)
}

func (c *Context) allocate(call string, t *texture.Texture, format gputypes.TextureFormat, width, height int) bool {
	realloc, err := t.Allocate(format, width, height, c.opts.maxTextureSize)
	if err != nil {
		c.logTextureError(call, err, "format", format, "width", width, "height", height)
		return false
	}
	if realloc {
		c.logger().Debug("swgl: texture allocated", "format", t.Format(), "width", width, "height", height)
	}
	return true
}

// TexImage2D allocates the texture bound to the active unit and uploads
// data, given in client format pf and type pt, when data is non-nil. With
// a pixel unpack buffer bound and nil data, the pixels come from the buffer.
func (c *Context) TexImage2D(format gputypes.TextureFormat, width, height int, pf PixelFormat, pt PixelType, data []byte) {
	t := c.activeTexture("TexImage2D")
	if t == nil || !c.allocate("TexImage2D", t, format, width, height) {
		return
	}
	if data != nil || c.pixelUnpackBuffer != 0 {
		c.upload("TexImage2D", t, texture.Rect{W: width, H: height}, pf, pt, data)
	}
}

// TexSubImage2D uploads a rectangle of the texture bound to the active
// unit. With a pixel unpack buffer bound and nil data, the pixels come from
// the buffer.
func (c *Context) TexSubImage2D(x, y, width, height int, pf PixelFormat, pt PixelType, data []byte) {
	t := c.activeTexture("TexSubImage2D")
	if t == nil {
		return
	}
	c.upload("TexSubImage2D", t, texture.Rect{X: x, Y: y, W: width, H: height}, pf, pt, data)
}

func (c *Context) upload(call string, t *texture.Texture, r texture.Rect, pf PixelFormat, pt PixelType, data []byte) {
	tr, ok := transfer(pf, pt)
	if !ok {
		c.warn(call, "unsupported pixel format", "format", pf, "type", pt)
		return
	}
	if data == nil && c.pixelUnpackBuffer != 0 {
		data = c.buffers.Get(c.pixelUnpackBuffer).data
	}
	if err := t.Upload(r, tr, data, 0); err != nil {
		c.logTextureError(call, err, "rect", r, "internal", t.Format())
	}
}

// TexParameter sets a filter of the texture bound to the active unit.
func (c *Context) TexParameter(param TexParam, value gputypes.FilterMode) {
	t := c.activeTexture("TexParameter")
	if t == nil {
		return
	}
	if value != gputypes.FilterModeNearest && value != gputypes.FilterModeLinear {
		c.warn("TexParameter", "invalid filter", "value", value)
		return
	}
	switch param {
	case TextureMinFilter:
		t.MinFilter = value
	case TextureMagFilter:
		t.MagFilter = value
	default:
		c.warn("TexParameter", "invalid parameter", "param", param)
	}
}

// SetTextureBuffer makes texture id use a caller-owned pixel buffer with
// the given row stride in bytes (0 for packed). The texture never
// reallocates it. A nil buf returns the texture to internal storage.
func (c *Context) SetTextureBuffer(id uint32, format gputypes.TextureFormat, width, height, stride int, buf []byte) {
	if id == 0 {
		c.warn("SetTextureBuffer", "null texture")
		return
	}
	t := c.textures.Get(id)
	if err := t.SetBuffer(buf, format, width, height, stride); err != nil {
		c.logTextureError("SetTextureBuffer", err, "id", id, "format", format, "width", width, "height", height)
	}
}

// SetTextureOffset places texture id at window position (x, y): rendering
// and readback subtract the offset after the viewport transform.
func (c *Context) SetTextureOffset(id uint32, x, y int) {
	t, ok := c.textures.Find(id)
	if !ok || id == 0 {
		c.warn("SetTextureOffset", "unknown texture", "id", id)
		return
	}
	t.SetOffset(x, y)
}

// ReadPixels reads a rectangle in window pixels from the read framebuffer
// into out. DepthComponent reads the depth attachment. With a pixel pack
// buffer bound and nil out, the pixels go to the start of the buffer.
func (c *Context) ReadPixels(x, y, width, height int, pf PixelFormat, pt PixelType, out []byte) {
	tr, ok := transfer(pf, pt)
	if !ok {
		c.warn("ReadPixels", "unsupported pixel format", "format", pf, "type", pt)
		return
	}
	color, depth := c.attachments(c.readFramebuffer)
	t := color
	if pf == DepthComponent {
		t = depth
	}
	if t == nil {
		c.warn("ReadPixels", "missing attachment", "framebuffer", c.readFramebuffer)
		return
	}
	if out == nil && c.pixelPackBuffer != 0 {
		out = c.buffers.Get(c.pixelPackBuffer).data
	}
	ox, oy := t.Offset()
	r := texture.Rect{X: x - ox, Y: y - oy, W: width, H: height}
	if err := t.Read(r, tr, out, 0); err != nil {
		c.logTextureError("ReadPixels", err, "rect", r, "internal", t.Format())
	}
}

// CopyTexSubImage2D copies a rectangle at window position (x, y) of the
// read framebuffer's color attachment to (dx, dy) of the texture bound to
// the active unit.
func (c *Context) CopyTexSubImage2D(dx, dy, x, y, width, height int) {
	dst := c.activeTexture("CopyTexSubImage2D")
	if dst == nil {
		return
	}
	src, _ := c.attachments(c.readFramebuffer)
	if src == nil {
		c.warn("CopyTexSubImage2D", "read framebuffer has no color attachment", "framebuffer", c.readFramebuffer)
		return
	}
	ox, oy := src.Offset()
	if err := dst.CopyRect(dx, dy, src, x-ox, y-oy, width, height); err != nil {
		c.logTextureError("CopyTexSubImage2D", err, "src", src.Format(), "dst", dst.Format())
	}
}
