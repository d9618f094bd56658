package swgl

import (
	"fmt"

	"github.com/gogpu/swgl/internal/texture"
)

// Error is a GL error code. swgl logs rejected calls instead of recording
// errors, so GetError always reports NoError.
type Error uint32

// NoError is the only error code GetError returns.
const NoError Error = 0

// Capability is a server-side capability toggled by Enable and Disable.
type Capability uint8

// Capabilities.
const (
	Blend Capability = iota + 1
	DepthTest
	ScissorTest
)

func (c Capability) String() string {
	switch c {
	case Blend:
		return "Blend"
	case DepthTest:
		return "DepthTest"
	case ScissorTest:
		return "ScissorTest"
	default:
		return fmt.Sprintf("Capability(%d)", uint8(c))
	}
}

// ClearMask selects the buffers Clear writes.
type ClearMask uint8

// Clear bits.
const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// BufferTarget is a buffer binding point.
type BufferTarget uint8

// Buffer binding points.
const (
	ArrayBuffer BufferTarget = iota + 1
	ElementArrayBuffer
	PixelPackBuffer
	PixelUnpackBuffer
)

// FramebufferTarget is a framebuffer binding point.
type FramebufferTarget uint8

// Framebuffer binding points. Framebuffer binds both read and draw.
const (
	Framebuffer FramebufferTarget = iota + 1
	ReadFramebuffer
	DrawFramebuffer
)

// Attachment names a framebuffer attachment point.
type Attachment uint8

// Attachment points.
const (
	ColorAttachment0 Attachment = iota + 1
	DepthAttachment
)

// FramebufferStatus is the completeness of a framebuffer.
type FramebufferStatus uint8

// Framebuffer statuses.
const (
	FramebufferComplete FramebufferStatus = iota + 1
	FramebufferIncompleteAttachment
	FramebufferIncompleteMissingAttachment
	FramebufferUnsupported
)

func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferComplete:
		return "Complete"
	case FramebufferIncompleteAttachment:
		return "IncompleteAttachment"
	case FramebufferIncompleteMissingAttachment:
		return "IncompleteMissingAttachment"
	case FramebufferUnsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("FramebufferStatus(%d)", uint8(s))
	}
}

// PixelFormat is the channel layout of client pixel data.
type PixelFormat uint8

// Client pixel formats.
const (
	RGBA PixelFormat = iota + 1
	BGRA
	Red
	RG
	RGBAInteger
	DepthComponent
)

// PixelType is the component type of client pixel data.
type PixelType uint8

// Client pixel component types.
const (
	UnsignedByte PixelType = iota + 1
	UnsignedShort
	Float
	Int
)

// transfer maps a client format and type onto a texture transfer layout.
func transfer(f PixelFormat, t PixelType) (texture.Transfer, bool) {
	switch {
	case f == RGBA && t == UnsignedByte:
		return texture.TransferRGBA8, true
	case f == BGRA && t == UnsignedByte:
		return texture.TransferBGRA8, true
	case f == Red && t == UnsignedByte:
		return texture.TransferR8, true
	case f == Red && t == UnsignedShort:
		return texture.TransferR16, true
	case f == RG && t == UnsignedByte:
		return texture.TransferRG8, true
	case f == RGBA && t == Float:
		return texture.TransferRGBA32F, true
	case f == RGBAInteger && t == Int:
		return texture.TransferRGBA32I, true
	case f == DepthComponent && t == Float:
		return texture.TransferDepth32F, true
	}
	return 0, false
}

// AttribType is the component type of a vertex attribute.
type AttribType uint8

// Vertex attribute component types.
const (
	AttribFloat AttribType = iota + 1
	AttribByte
	AttribUnsignedByte
	AttribShort
	AttribUnsignedShort
	AttribInt
	AttribUnsignedInt
)

// Size returns the size of one component in bytes.
func (t AttribType) Size() int {
	switch t {
	case AttribByte, AttribUnsignedByte:
		return 1
	case AttribShort, AttribUnsignedShort:
		return 2
	case AttribFloat, AttribInt, AttribUnsignedInt:
		return 4
	default:
		return 0
	}
}

// QueryTarget selects what a query measures.
type QueryTarget uint8

// Query targets.
const (
	SamplesPassed QueryTarget = iota + 1
	TimeElapsed
)

// TexParam names a texture parameter.
type TexParam uint8

// Texture parameters. Their values are gputypes.FilterMode.
const (
	TextureMinFilter TexParam = iota + 1
	TextureMagFilter
)
