package texture

import (
	"encoding/binary"

	"github.com/chewxy/math32"

	"github.com/gogpu/swgl/internal/depth"
)

// Rect is a pixel rectangle of a transfer.
type Rect struct {
	X, Y, W, H int
}

func (t *Texture) contains(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 &&
		r.X+r.W <= t.width && r.Y+r.H <= t.height
}

// checkTransfer validates a transfer of r in layout tr through data with
// the given row stride (0 for packed) and returns the effective stride.
func (t *Texture) checkTransfer(r Rect, tr Transfer, data []byte, stride int) (int, error) {
	if !tr.compatible(t.format) {
		return 0, ErrInvalidFormat
	}
	if !t.contains(r) {
		return 0, ErrInvalidDimensions
	}
	rowLen := r.W * tr.BytesPerPixel()
	if stride == 0 {
		stride = rowLen
	}
	if stride < rowLen {
		return 0, ErrInvalidDimensions
	}
	if r.H > 0 && len(data) < stride*(r.H-1)+rowLen {
		return 0, ErrDataTooSmall
	}
	return stride, nil
}

// Upload copies pixels in layout tr into rectangle r.
func (t *Texture) Upload(r Rect, tr Transfer, data []byte, stride int) error {
	stride, err := t.checkTransfer(r, tr, data, stride)
	if err != nil {
		return err
	}
	if t.info.Depth {
		t.uploadDepth(r, data, stride)
		return nil
	}
	bpp := t.info.BytesPerPixel
	swap := tr.swapsChannels(t.format)
	for j := 0; j < r.H; j++ {
		y := r.Y + j
		t.PrepareRow(y, r.X, r.X+r.W)
		dst := t.Row(y)[r.X*bpp : (r.X+r.W)*bpp]
		copy(dst, data[j*stride:])
		if swap {
			swapRB(dst)
		}
	}
	return nil
}

// Read copies rectangle r into data in layout tr.
func (t *Texture) Read(r Rect, tr Transfer, data []byte, stride int) error {
	stride, err := t.checkTransfer(r, tr, data, stride)
	if err != nil {
		return err
	}
	if t.info.Depth {
		t.readDepth(r, data, stride)
		return nil
	}
	bpp := t.info.BytesPerPixel
	swap := tr.swapsChannels(t.format)
	for j := 0; j < r.H; j++ {
		y := r.Y + j
		t.PrepareRow(y, 0, 0)
		dst := data[j*stride : j*stride+r.W*bpp]
		copy(dst, t.Row(y)[r.X*bpp:])
		if swap {
			swapRB(dst)
		}
	}
	return nil
}

// CopyRect copies a w×h block from (sx, sy) of src to (dx, dy) of t. Both
// textures must share the internal format.
func (t *Texture) CopyRect(dx, dy int, src *Texture, sx, sy, w, h int) error {
	if src.format != t.format || t.info.Depth {
		return ErrInvalidFormat
	}
	if !t.contains(Rect{dx, dy, w, h}) || !src.contains(Rect{sx, sy, w, h}) {
		return ErrInvalidDimensions
	}
	bpp := t.info.BytesPerPixel
	for j := 0; j < h; j++ {
		src.PrepareRow(sy+j, 0, 0)
		t.PrepareRow(dy+j, dx, dx+w)
		copy(t.Row(dy + j)[dx*bpp:(dx+w)*bpp], src.Row(sy + j)[sx*bpp:])
	}
	return nil
}

func swapRB(p []byte) {
	for i := 0; i+3 < len(p); i += 4 {
		p[i], p[i+2] = p[i+2], p[i]
	}
}

func (t *Texture) uploadDepth(r Rect, data []byte, stride int) {
	t.depth.FlattenRows(r.Y, r.Y+r.H)
	for j := 0; j < r.H; j++ {
		samples := t.depth.Row(r.Y + j).Samples()
		src := data[j*stride:]
		for i := 0; i < r.W; i++ {
			z := math32.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
			samples[r.X+i] = depth.FromFloat(z)
		}
	}
}

func (t *Texture) readDepth(r Rect, data []byte, stride int) {
	for j := 0; j < r.H; j++ {
		row := t.depth.Row(r.Y + j)
		dst := data[j*stride:]
		for i := 0; i < r.W; i++ {
			z := depth.ToFloat(row.At(r.X + i))
			binary.LittleEndian.PutUint32(dst[i*4:], math32.Float32bits(z))
		}
	}
}
