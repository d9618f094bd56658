// Package texture implements texture storage for the rasterizer.
//
// A Texture owns (or borrows) a pixel buffer in one of the internal formats
// listed by Info, tracks a lock count shared with compositor threads, and
// supports delayed clears: a full clear only records the value and marks
// every row, and rows are physically cleared the first time something
// touches them. Depth textures own a run-length depth.Buffer instead of bytes.
package texture

import (
	"encoding/binary"
	"errors"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/depth"
)

// Common errors for texture operations.
var (
	// ErrLocked is returned when a locked texture would be reallocated.
	ErrLocked = errors.New("texture: texture is locked")

	// ErrInvalidDimensions is returned for negative or oversized dimensions
	// and for rectangles outside the texture.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrInvalidFormat is returned when a format is not supported or a
	// transfer layout does not match the internal format.
	ErrInvalidFormat = errors.New("texture: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("texture: data buffer too small")
)

// Texture is a 2D image with delayed-clear bookkeeping.
//
// Thread safety: only the lock count may be touched from other goroutines.
// Everything else belongs to the owning context.
type Texture struct {
	buf      []byte
	format   gputypes.TextureFormat
	info     FormatInfo
	width    int
	height   int
	stride   int
	external bool

	offsetX, offsetY int

	locked atomic.Int32

	// MinFilter and MagFilter select sampling. Sampling always uses
	// MagFilter since there are no mipmaps.
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode

	clearPixel [16]byte
	pending    rowMask

	depth *depth.Buffer
}

// New returns an empty texture.
func New() *Texture {
	return &Texture{
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
	}
}

// Format returns the internal format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Info returns the metadata of the internal format.
func (t *Texture) Info() FormatInfo { return t.info }

// Width returns the width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in pixels.
func (t *Texture) Height() int { return t.height }

// Size returns width and height.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Stride returns the number of bytes between rows.
func (t *Texture) Stride() int { return t.stride }

// External reports whether the pixel buffer is owned by the caller.
func (t *Texture) External() bool { return t.external }

// Bytes returns the backing pixel buffer.
func (t *Texture) Bytes() []byte { return t.buf }

// Depth returns the depth buffer of a depth texture, or nil.
func (t *Texture) Depth() *depth.Buffer { return t.depth }

// Empty reports whether the texture has no storage.
func (t *Texture) Empty() bool { return t.width == 0 || t.height == 0 }

// SetOffset sets the offset subtracted from window coordinates when the
// texture is used as a render target.
func (t *Texture) SetOffset(x, y int) { t.offsetX, t.offsetY = x, y }

// Offset returns the render target offset.
func (t *Texture) Offset() (int, int) { return t.offsetX, t.offsetY }

// Lock forces outstanding delayed clears and increments the lock count.
// It must be called by the owning context.
func (t *Texture) Lock() {
	t.ForceClear()
	t.locked.Add(1)
}

// Unlock decrements the lock count. Safe from any goroutine.
func (t *Texture) Unlock() {
	t.locked.Add(-1)
}

// Locked reports whether the texture has outstanding locks.
func (t *Texture) Locked() bool { return t.locked.Load() > 0 }

func rowBytes(width, bpp int) int {
	return (width*bpp + 3) &^ 3
}

// Allocate sizes the texture for format and dimensions. Internal buffers
// grow on demand and never shrink while large enough; external buffers must
// already be large enough. It reports whether storage was reallocated.
func (t *Texture) Allocate(format gputypes.TextureFormat, width, height, maxSize int) (bool, error) {
	if t.Locked() {
		return false, ErrLocked
	}
	if width < 0 || height < 0 || (maxSize > 0 && (width > maxSize || height > maxSize)) {
		return false, ErrInvalidDimensions
	}
	internal := InternalFormat(format)
	info, ok := Info(internal)
	if !ok {
		return false, ErrInvalidFormat
	}

	if info.Depth {
		if width > depth.MaxWidth {
			return false, ErrInvalidDimensions
		}
		t.setShape(internal, info, width, height)
		t.buf, t.stride, t.external = nil, 0, false
		if t.depth == nil {
			t.depth = depth.New(width, height)
			return true, nil
		}
		t.depth.Resize(width, height)
		return false, nil
	}
	if t.external {
		rowLen := width * info.BytesPerPixel
		if t.stride < rowLen || (height > 0 && len(t.buf) < t.stride*(height-1)+rowLen) {
			return false, ErrDataTooSmall
		}
		t.setShape(internal, info, width, height)
		t.depth = nil
		return false, nil
	}
	t.setShape(internal, info, width, height)
	t.depth = nil

	stride := rowBytes(width, info.BytesPerPixel)
	size := stride * height
	t.stride = stride
	if cap(t.buf) >= size {
		t.buf = t.buf[:size]
		return false, nil
	}
	t.buf = make([]byte, size)
	return true, nil
}

func (t *Texture) setShape(format gputypes.TextureFormat, info FormatInfo, width, height int) {
	t.format, t.info = format, info
	t.width, t.height = width, height
	t.pending.resize(height)
}

// SetBuffer makes the texture render into a caller supplied buffer. A
// stride of 0 selects the packed stride. A nil buffer reverts to internal
// allocation.
func (t *Texture) SetBuffer(buf []byte, format gputypes.TextureFormat, width, height, stride int) error {
	if t.Locked() {
		return ErrLocked
	}
	if buf == nil {
		t.external = false
		t.buf = nil
		_, err := t.Allocate(format, width, height, 0)
		return err
	}
	internal := InternalFormat(format)
	info, ok := Info(internal)
	if !ok || info.Depth {
		return ErrInvalidFormat
	}
	if width < 0 || height < 0 {
		return ErrInvalidDimensions
	}
	if stride == 0 {
		stride = width * info.BytesPerPixel
	}
	if stride < width*info.BytesPerPixel {
		return ErrInvalidDimensions
	}
	if height > 0 && len(buf) < stride*(height-1)+width*info.BytesPerPixel {
		return ErrDataTooSmall
	}
	t.buf, t.stride, t.external = buf, stride, true
	t.setShape(internal, info, width, height)
	t.depth = nil
	return nil
}

// Row returns the bytes of row y.
func (t *Texture) Row(y int) []byte {
	off := y * t.stride
	return t.buf[off : off+t.width*t.info.BytesPerPixel]
}

// PackColor converts a normalized RGBA color to the texel bytes of the
// internal format.
func (t *Texture) PackColor(c gputypes.Color) [16]byte {
	var p [16]byte
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	switch t.format {
	case gputypes.TextureFormatBGRA8Unorm:
		p[0], p[1], p[2], p[3] = unorm8(b), unorm8(g), unorm8(r), unorm8(a)
	case gputypes.TextureFormatR8Unorm:
		p[0] = unorm8(r)
	case gputypes.TextureFormatRG8Unorm:
		p[0], p[1] = unorm8(r), unorm8(g)
	case gputypes.TextureFormatR16Unorm:
		binary.LittleEndian.PutUint16(p[:], unorm16(r))
	case gputypes.TextureFormatRGBA32Float:
		for i, v := range [4]float32{r, g, b, a} {
			binary.LittleEndian.PutUint32(p[i*4:], math32.Float32bits(v))
		}
	case gputypes.TextureFormatRGBA32Sint:
		for i, v := range [4]float32{r, g, b, a} {
			binary.LittleEndian.PutUint32(p[i*4:], uint32(int32(v)))
		}
	}
	return p
}

func unorm8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func unorm16(v float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xFFFF
	}
	return uint16(v*0xFFFF + 0.5)
}

// fill writes the texel pattern p over columns [x0, x1) of row y.
func (t *Texture) fill(y, x0, x1 int, p *[16]byte) {
	if x0 >= x1 {
		return
	}
	bpp := t.info.BytesPerPixel
	row := t.Row(y)[x0*bpp : x1*bpp]
	n := copy(row, p[:bpp])
	for n < len(row) {
		n += copy(row[n:], row[:n])
	}
}

// SetDelayedClear records a full clear to pixel p. No row is written until
// it is prepared.
func (t *Texture) SetDelayedClear(p [16]byte) {
	t.clearPixel = p
	t.pending.markAll()
}

// DelayedClearPending returns the number of rows awaiting a clear.
func (t *Texture) DelayedClearPending() int { return t.pending.count() }

// RowPending reports whether row y awaits a delayed clear.
func (t *Texture) RowPending(y int) bool { return t.pending.test(y) }

// PrepareRow performs the delayed clear of row y, leaving columns
// [skipStart, skipEnd) untouched because the caller is about to overwrite
// them. It reports whether the row was pending.
func (t *Texture) PrepareRow(y, skipStart, skipEnd int) bool {
	if !t.pending.unset(y) {
		return false
	}
	skipStart = max(0, min(skipStart, t.width))
	skipEnd = max(skipStart, min(skipEnd, t.width))
	t.fill(y, 0, skipStart, &t.clearPixel)
	t.fill(y, skipEnd, t.width, &t.clearPixel)
	return true
}

// PrepareRows clears every pending row in [y0, y1).
func (t *Texture) PrepareRows(y0, y1 int) {
	for y := max(y0, 0); y < min(y1, t.height); y++ {
		t.PrepareRow(y, 0, 0)
	}
}

// ForceClear physically clears every pending row.
func (t *Texture) ForceClear() {
	if t.pending.count() == 0 {
		return
	}
	t.pending.each(func(y int) {
		t.fill(y, 0, t.width, &t.clearPixel)
	})
	t.pending.clearAll()
}

// CancelDelayedClear drops outstanding clears without writing them.
func (t *Texture) CancelDelayedClear() { t.pending.clearAll() }

// ClearRect fills [x0, x1)×[y0, y1) with pixel p, resolving pending rows
// that the rectangle only partially covers.
func (t *Texture) ClearRect(x0, y0, x1, y1 int, p [16]byte) {
	x0, x1 = max(x0, 0), min(x1, t.width)
	y0, y1 = max(y0, 0), min(y1, t.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for y := y0; y < y1; y++ {
		t.PrepareRow(y, x0, x1)
		t.fill(y, x0, x1, &p)
	}
}

// ClearDepth clears [x0, x1)×[y0, y1) of a depth texture to z in [0, 1].
func (t *Texture) ClearDepth(x0, y0, x1, y1 int, z float32) {
	if t.depth == nil {
		return
	}
	d := depth.FromFloat(z)
	if x0 <= 0 && y0 <= 0 && x1 >= t.width && y1 >= t.height {
		t.depth.Init(d)
		return
	}
	t.depth.Clear(max(x0, 0), max(y0, 0), min(x1, t.width), min(y1, t.height), d)
}
