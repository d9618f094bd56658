package swgl

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/raster"
)

// BlendEquationMode selects how source and destination combine.
type BlendEquationMode = blend.Equation

// Blend equations. FuncAdd, FuncSubtract, FuncReverseSubtract, Min and Max
// use the blend factors; the others are advanced equations that ignore
// them.
const (
	FuncAdd             = blend.EquationAdd
	FuncSubtract        = blend.EquationSubtract
	FuncReverseSubtract = blend.EquationReverseSubtract
	Min                 = blend.EquationMin
	Max                 = blend.EquationMax
	Multiply            = blend.EquationMultiply
	Screen              = blend.EquationScreen
	Overlay             = blend.EquationOverlay
	Darken              = blend.EquationDarken
	Lighten             = blend.EquationLighten
	ColorDodge          = blend.EquationColorDodge
	ColorBurn           = blend.EquationColorBurn
	HardLight           = blend.EquationHardLight
	SoftLight           = blend.EquationSoftLight
	Difference          = blend.EquationDifference
	Exclusion           = blend.EquationExclusion
	HSLHue              = blend.EquationHue
	HSLSaturation       = blend.EquationSaturation
	HSLColor            = blend.EquationColor
	HSLLuminosity       = blend.EquationLuminosity
)

// BlendFactorOneMinusSrc1Color is the dual-source factor weighting the
// destination by the fragment's secondary color.
const BlendFactorOneMinusSrc1Color = blend.FactorOneMinusSrc1

// Viewport sets the mapping from normalized device coordinates to window
// pixels.
func (c *Context) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.warn("Viewport", "negative size", "width", width, "height", height)
		return
	}
	c.viewport = raster.Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

// Scissor sets the scissor rectangle in window pixels.
func (c *Context) Scissor(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.warn("Scissor", "negative size", "width", width, "height", height)
		return
	}
	c.scissor = raster.Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

// Enable turns a capability on.
func (c *Context) Enable(capability Capability) { c.setCapability("Enable", capability, true) }

// Disable turns a capability off.
func (c *Context) Disable(capability Capability) { c.setCapability("Disable", capability, false) }

// IsEnabled reports whether a capability is on.
func (c *Context) IsEnabled(capability Capability) bool {
	switch capability {
	case Blend:
		return c.blendEnabled
	case DepthTest:
		return c.depthTest
	case ScissorTest:
		return c.scissorTest
	}
	return false
}

func (c *Context) setCapability(call string, capability Capability, on bool) {
	switch capability {
	case Blend:
		if c.blendEnabled != on {
			c.blendEnabled = on
			c.blendDirty = true
		}
	case DepthTest:
		c.depthTest = on
	case ScissorTest:
		c.scissorTest = on
	default:
		c.warn(call, "invalid capability", "capability", capability)
	}
}

// BlendFunc sets the same source and destination factors for color and
// alpha.
func (c *Context) BlendFunc(src, dst gputypes.BlendFactor) {
	c.BlendFuncSeparate(src, dst, src, dst)
}

// BlendFuncSeparate sets color and alpha blend factors.
func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gputypes.BlendFactor) {
	c.blendState.Color.SrcFactor, c.blendState.Color.DstFactor = srcRGB, dstRGB
	c.blendState.Alpha.SrcFactor, c.blendState.Alpha.DstFactor = srcAlpha, dstAlpha
	c.blendDirty = true
}

// BlendEquation sets the blend equation.
func (c *Context) BlendEquation(mode BlendEquationMode) {
	c.blendEquation = mode
	c.blendDirty = true
}

// BlendColor sets the constant blend color.
func (c *Context) BlendColor(r, g, b, a float32) {
	c.blendColor = gputypes.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// DepthFunc sets the depth comparison.
func (c *Context) DepthFunc(fn gputypes.CompareFunction) {
	if fn < gputypes.CompareFunctionNever || fn > gputypes.CompareFunctionAlways {
		c.warn("DepthFunc", "invalid compare function", "func", fn)
		return
	}
	c.depthFunc = fn
}

// DepthMask enables or disables depth writes.
func (c *Context) DepthMask(write bool) { c.depthMask = write }

// ClearColor sets the color Clear writes.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = gputypes.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// ClearDepth sets the depth Clear writes, clamped to [0, 1].
func (c *Context) ClearDepth(d float32) {
	c.clearDepth = min(max(d, 0), 1)
}

// LineWidth sets the width of lines in pixels.
func (c *Context) LineWidth(w float32) {
	if !(w > 0) {
		c.warn("LineWidth", "width must be positive", "width", w)
		return
	}
	c.lineWidth = w
}

// SetClipMask sets an R8 texture whose texel (0, 0) lies at window pixel
// (x, y). Draws are clipped to it and modulated by its values. A texture id
// of 0 removes the mask.
func (c *Context) SetClipMask(id uint32, x, y int) {
	if id != 0 {
		t, ok := c.textures.Find(id)
		if !ok || t.Format() != gputypes.TextureFormatR8Unorm {
			c.warn("SetClipMask", "clip mask must be an R8 texture", "id", id)
			return
		}
	}
	c.clipMask = id
	c.clipMaskOrigin = [2]int{x, y}
}

// updateBlendKey derives the blend formula after blend state changes.
// Unsupported state falls back to replace.
func (c *Context) updateBlendKey() {
	if !c.blendDirty {
		return
	}
	c.blendDirty = false
	k, err := blend.KeyFor(c.blendEnabled, c.blendState, c.blendEquation)
	if err != nil {
		c.logger().Warn("swgl: unsupported blend state, using replace", "err", err)
	}
	c.blendKey = k
	c.logger().Debug("swgl: blend key", "key", k)
}
