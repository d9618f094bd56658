package swgl

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/raster"
	"github.com/gogpu/swgl/internal/texture"
)

// framebuffer names the textures attached to it.
type framebuffer struct {
	color uint32
	depth uint32
}

func (fb *framebuffer) detach(id uint32) {
	if fb.color == id {
		fb.color = 0
	}
	if fb.depth == id {
		fb.depth = 0
	}
}

func (c *Context) framebufferBinding(target FramebufferTarget) (uint32, bool) {
	switch target {
	case Framebuffer, DrawFramebuffer:
		return c.drawFramebuffer, true
	case ReadFramebuffer:
		return c.readFramebuffer, true
	}
	return 0, false
}

// attachments returns the color and depth textures of framebuffer id.
// Either may be nil.
func (c *Context) attachments(id uint32) (color, depth *texture.Texture) {
	fb := c.framebuffers.Get(id)
	if fb.color != 0 {
		color, _ = c.textures.Find(fb.color)
	}
	if fb.depth != 0 {
		depth, _ = c.textures.Find(fb.depth)
	}
	return color, depth
}

// FramebufferTexture2D attaches texture id to the framebuffer bound to
// target. Id 0 detaches.
func (c *Context) FramebufferTexture2D(target FramebufferTarget, attachment Attachment, id uint32) {
	fbID, ok := c.framebufferBinding(target)
	if !ok {
		c.warn("FramebufferTexture2D", "invalid target", "target", target)
		return
	}
	if id != 0 {
		if _, ok := c.textures.Find(id); !ok {
			c.warn("FramebufferTexture2D", "unknown texture", "id", id)
			return
		}
	}
	fb := c.framebuffers.Get(fbID)
	switch attachment {
	case ColorAttachment0:
		fb.color = id
	case DepthAttachment:
		fb.depth = id
	default:
		c.warn("FramebufferTexture2D", "invalid attachment", "attachment", attachment)
	}
}

// CheckFramebufferStatus reports whether the framebuffer bound to target
// can be rendered to.
func (c *Context) CheckFramebufferStatus(target FramebufferTarget) FramebufferStatus {
	fbID, ok := c.framebufferBinding(target)
	if !ok {
		c.warn("CheckFramebufferStatus", "invalid target", "target", target)
		return FramebufferUnsupported
	}
	fb := c.framebuffers.Get(fbID)
	if fb.color == 0 && fb.depth == 0 {
		return FramebufferIncompleteMissingAttachment
	}
	color, depth := c.attachments(fbID)
	if (fb.color != 0 && (color == nil || color.Empty())) || (fb.depth != 0 && (depth == nil || depth.Empty())) {
		return FramebufferIncompleteAttachment
	}
	if depth != nil && !depth.Info().Depth {
		return FramebufferIncompleteAttachment
	}
	if color != nil {
		switch color.Format() {
		case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatR8Unorm:
		default:
			return FramebufferUnsupported
		}
		if depth != nil && (depth.Width() < color.Width() || depth.Height() < color.Height()) {
			return FramebufferIncompleteAttachment
		}
	}
	return FramebufferComplete
}

// scissorRect returns the scissor in target pixels of a texture with the
// given offset and size, or the whole texture when scissoring is off.
func (c *Context) scissorRect(t *texture.Texture) raster.Rect {
	bounds := raster.Rect{X1: t.Width(), Y1: t.Height()}
	if !c.scissorTest {
		return bounds
	}
	ox, oy := t.Offset()
	s := c.scissor
	return bounds.Intersect(raster.Rect{X0: s.X0 - ox, Y0: s.Y0 - oy, X1: s.X1 - ox, Y1: s.Y1 - oy})
}

// Clear writes the clear values into the buffers of the draw framebuffer
// selected by mask, limited by the scissor. A color clear of the whole
// attachment is delayed when delayed clears are enabled.
func (c *Context) Clear(mask ClearMask) {
	color, depth := c.attachments(c.drawFramebuffer)
	if mask&ColorBufferBit != 0 && color != nil && !color.Empty() {
		r := c.scissorRect(color)
		p := color.PackColor(c.clearColor)
		full := r == raster.Rect{X1: color.Width(), Y1: color.Height()}
		switch {
		case r.Empty():
		case full && c.opts.delayedClear:
			color.SetDelayedClear(p)
			c.logger().Debug("swgl: delayed clear", "rows", color.Height())
		default:
			if full {
				color.CancelDelayedClear()
			}
			color.ClearRect(r.X0, r.Y0, r.X1, r.Y1, p)
		}
	}
	if mask&DepthBufferBit != 0 && depth != nil && c.depthMask {
		r := c.scissorRect(depth)
		if !r.Empty() {
			depth.ClearDepth(r.X0, r.Y0, r.X1, r.Y1, c.clearDepth)
		}
	}
}
