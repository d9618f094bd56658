package texture

import "github.com/gogpu/gputypes"

// FormatInfo contains metadata about an internal texture format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int
	// Channels is the number of color channels.
	Channels int
	// Float indicates 32-bit float channels.
	Float bool
	// Integer indicates unnormalized integer channels.
	Integer bool
	// Depth indicates a depth attachment backed by a run-length buffer.
	Depth bool
}

// formatInfoTable lists the formats textures can be stored in. Four-channel
// 8-bit color is always stored in BGRA order.
var formatInfoTable = map[gputypes.TextureFormat]FormatInfo{
	gputypes.TextureFormatBGRA8Unorm:  {BytesPerPixel: 4, Channels: 4},
	gputypes.TextureFormatR8Unorm:     {BytesPerPixel: 1, Channels: 1},
	gputypes.TextureFormatRG8Unorm:    {BytesPerPixel: 2, Channels: 2},
	gputypes.TextureFormatR16Unorm:    {BytesPerPixel: 2, Channels: 1},
	gputypes.TextureFormatRGBA32Float: {BytesPerPixel: 16, Channels: 4, Float: true},
	gputypes.TextureFormatRGBA32Sint:  {BytesPerPixel: 16, Channels: 4, Integer: true},
	gputypes.TextureFormatDepth24Plus: {BytesPerPixel: 4, Channels: 1, Depth: true},
}

// Info returns the FormatInfo for an internal format.
func Info(f gputypes.TextureFormat) (FormatInfo, bool) {
	info, ok := formatInfoTable[f]
	return info, ok
}

// InternalFormat maps a requested format onto the storage format.
// RGBA8 is stored as BGRA8. Unsupported formats map to Undefined.
func InternalFormat(f gputypes.TextureFormat) gputypes.TextureFormat {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case gputypes.TextureFormatDepth24Plus, gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth16Unorm, gputypes.TextureFormatDepth32Float:
		return gputypes.TextureFormatDepth24Plus
	}
	if _, ok := formatInfoTable[f]; ok {
		return f
	}
	return gputypes.TextureFormatUndefined
}

// Transfer is the external pixel layout of uploads and readbacks.
type Transfer uint8

// Pixel transfer layouts.
const (
	TransferRGBA8 Transfer = iota
	TransferBGRA8
	TransferR8
	TransferRG8
	TransferR16
	TransferRGBA32F
	TransferRGBA32I
	TransferDepth32F
)

// BytesPerPixel returns the size of one transferred pixel.
func (t Transfer) BytesPerPixel() int {
	switch t {
	case TransferR8:
		return 1
	case TransferRG8, TransferR16:
		return 2
	case TransferRGBA32F, TransferRGBA32I:
		return 16
	default:
		return 4
	}
}

// swapsChannels reports whether moving pixels between t and the internal
// format f exchanges the red and blue channels.
func (t Transfer) swapsChannels(f gputypes.TextureFormat) bool {
	return t == TransferRGBA8 && f == gputypes.TextureFormatBGRA8Unorm
}

// compatible reports whether t can be copied to or from format f.
func (t Transfer) compatible(f gputypes.TextureFormat) bool {
	switch t {
	case TransferRGBA8, TransferBGRA8:
		return f == gputypes.TextureFormatBGRA8Unorm
	case TransferR8:
		return f == gputypes.TextureFormatR8Unorm
	case TransferRG8:
		return f == gputypes.TextureFormatRG8Unorm
	case TransferR16:
		return f == gputypes.TextureFormatR16Unorm
	case TransferRGBA32F:
		return f == gputypes.TextureFormatRGBA32Float
	case TransferRGBA32I:
		return f == gputypes.TextureFormatRGBA32Sint
	case TransferDepth32F:
		return f == gputypes.TextureFormatDepth24Plus
	}
	return false
}
