package swgl

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	ycolor "github.com/gogpu/swgl/internal/color"
	"github.com/gogpu/swgl/internal/texture"
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/wide"
)

// Composite errors.
var (
	// ErrCompositeFormat is returned when the source and destination
	// formats cannot be composited.
	ErrCompositeFormat = errors.New("swgl: unsupported composite formats")

	// ErrCompositeRect is returned for empty source or destination
	// rectangles.
	ErrCompositeRect = errors.New("swgl: empty composite rectangle")
)

// LockedTexture pins a texture so it can be read or composited outside the
// owning context, typically on a compositor goroutine. While locked, the
// texture cannot be reallocated or deleted. Pending delayed clears are
// resolved when it is locked.
type LockedTexture struct {
	tex  *texture.Texture
	once sync.Once
}

// LockTexture locks texture id. It returns nil for unknown or empty
// textures.
func (c *Context) LockTexture(id uint32) *LockedTexture {
	t, ok := c.textures.Find(id)
	if !ok || id == 0 || t.Empty() || t.Depth() != nil {
		c.warn("LockTexture", "no lockable texture", "id", id)
		return nil
	}
	t.Lock()
	return &LockedTexture{tex: t}
}

// LockFramebuffer locks the color attachment of framebuffer id.
func (c *Context) LockFramebuffer(id uint32) *LockedTexture {
	fb, ok := c.framebuffers.Find(id)
	if !ok || fb.color == 0 {
		c.warn("LockFramebuffer", "framebuffer has no color attachment", "id", id)
		return nil
	}
	return c.LockTexture(fb.color)
}

// Unlock releases the lock. Further calls do nothing.
func (l *LockedTexture) Unlock() {
	l.once.Do(l.tex.Unlock)
}

// Size returns the texture dimensions.
func (l *LockedTexture) Size() (width, height int) { return l.tex.Size() }

// Format returns the internal format.
func (l *LockedTexture) Format() gputypes.TextureFormat { return l.tex.Format() }

// Stride returns the row pitch in bytes.
func (l *LockedTexture) Stride() int { return l.tex.Stride() }

// Bytes returns the pixel storage.
func (l *LockedTexture) Bytes() []byte { return l.tex.Bytes() }

// Image returns a view of the pixels. BGRA8 textures read and write
// premultiplied color.RGBA; R8 textures are *image.Gray.
func (l *LockedTexture) Image() (draw.Image, error) {
	return imageOf(l.tex)
}

func imageOf(t *texture.Texture) (draw.Image, error) {
	w, h := t.Size()
	switch t.Format() {
	case gputypes.TextureFormatBGRA8Unorm:
		return &bgraImage{pix: t.Bytes(), stride: t.Stride(), rect: image.Rect(0, 0, w, h)}, nil
	case gputypes.TextureFormatR8Unorm:
		return &image.Gray{Pix: t.Bytes(), Stride: t.Stride(), Rect: image.Rect(0, 0, w, h)}, nil
	}
	return nil, ErrCompositeFormat
}

// CompositeParams describe how a source rectangle lands in the
// destination.
type CompositeParams struct {
	// Src is the source rectangle in source pixels.
	Src image.Rectangle
	// Dst is the destination rectangle the source is scaled into.
	Dst image.Rectangle
	// Clip limits the pixels written. The zero rectangle means no limit.
	Clip image.Rectangle
	// Opaque copies the source; otherwise it is blended over the
	// destination as premultiplied alpha.
	Opaque bool
	// FlipY mirrors the source vertically.
	FlipY bool
	// Filter selects nearest or bilinear scaling.
	Filter gputypes.FilterMode
}

// transform returns the source-to-destination mapping of p.
func (p *CompositeParams) transform() f64.Aff3 {
	sr, dr := p.Src, p.Dst
	sx := float64(dr.Dx()) / float64(sr.Dx())
	sy := float64(dr.Dy()) / float64(sr.Dy())
	m := f64.Aff3{
		sx, 0, float64(dr.Min.X) - float64(sr.Min.X)*sx,
		0, sy, float64(dr.Min.Y) - float64(sr.Min.Y)*sy,
	}
	if p.FlipY {
		m[4] = -sy
		m[5] = float64(dr.Max.Y) + float64(sr.Min.Y)*sy
	}
	return m
}

// Composite draws src into l. Both textures must share the BGRA8 or R8
// format.
func (l *LockedTexture) Composite(src *LockedTexture, p CompositeParams) error {
	if p.Src.Empty() || p.Dst.Empty() {
		return ErrCompositeRect
	}
	if src.Format() != l.Format() {
		return ErrCompositeFormat
	}
	dst, err := imageOf(l.tex)
	if err != nil {
		return err
	}
	s, err := imageOf(src.tex)
	if err != nil {
		return err
	}

	op := draw.Over
	if p.Opaque {
		op = draw.Src
	}
	var interp draw.Interpolator = draw.NearestNeighbor
	if p.Filter == gputypes.FilterModeLinear {
		interp = draw.BiLinear
	}
	var opts *draw.Options
	if !p.Clip.Empty() {
		opts = &draw.Options{DstMask: p.Clip}
	}
	if p.Src.Size() == p.Dst.Size() && !p.FlipY {
		draw.Copy(dst, p.Dst.Min, s, p.Src, op, opts)
		return nil
	}
	interp.Transform(dst, p.transform(), s, p.Src.Intersect(s.Bounds()), op, opts)
	return nil
}

// CompositeYUV converts three planes to RGB and writes them opaquely into
// the BGRA8 texture l, sampling the nearest texel. The U and V planes may
// be subsampled relative to Y. Planes are R8 or R16; 16-bit planes hold
// samples shifted down by shift bits and must all share that depth.
// p.Src is given in Y plane pixels; Opaque and Filter are ignored.
func (l *LockedTexture) CompositeYUV(y, u, v *LockedTexture, space shader.YUVColorSpace, shift uint, p CompositeParams) error {
	if p.Src.Empty() || p.Dst.Empty() {
		return ErrCompositeRect
	}
	if l.Format() != gputypes.TextureFormatBGRA8Unorm {
		return ErrCompositeFormat
	}
	planes := [3]*texture.Texture{y.tex, u.tex, v.tex}
	for _, pl := range planes {
		if f := pl.Format(); f != gputypes.TextureFormatR8Unorm && f != gputypes.TextureFormatR16Unorm {
			return ErrCompositeFormat
		}
	}

	w, h := l.Size()
	dr := p.Dst.Intersect(image.Rect(0, 0, w, h))
	if !p.Clip.Empty() {
		dr = dr.Intersect(p.Clip)
	}
	m := space.Matrix()
	yw, yh := y.Size()
	sx := float32(p.Src.Dx()) / float32(p.Dst.Dx())
	sy := float32(p.Src.Dy()) / float32(p.Dst.Dy())

	var chroma [3][2]float32
	for i, pl := range planes {
		pw, ph := pl.Size()
		chroma[i] = [2]float32{float32(pw) / float32(yw), float32(ph) / float32(yh)}
	}

	for row := dr.Min.Y; row < dr.Max.Y; row++ {
		fy := float32(row) + 0.5 - float32(p.Dst.Min.Y)
		if p.FlipY {
			fy = float32(p.Dst.Dy()) - fy
		}
		srcY := float32(p.Src.Min.Y) + fy*sy
		out := l.tex.Row(row)
		for x := dr.Min.X; x < dr.Max.X; x += 8 {
			n := min(8, dr.Max.X-x)
			var in [3]wide.F32x8
			for k := 0; k < n; k++ {
				srcX := float32(p.Src.Min.X) + (float32(x+k)+0.5-float32(p.Dst.Min.X))*sx
				for i, pl := range planes {
					in[i][k] = planeSample(pl, int(srcX*chroma[i][0]), int(srcY*chroma[i][1]), shift)
				}
			}
			r, g, b := m.Convert8(in[0], in[1], in[2])
			r8, g8, b8 := r.Unorm8(), g.Unorm8(), b.Unorm8()
			for k := 0; k < n; k++ {
				px := out[(x+k)*4:]
				px[0], px[1], px[2], px[3] = b8[k], g8[k], r8[k], 255
			}
		}
	}
	return nil
}

// planeSample reads one normalized sample of a YUV plane.
func planeSample(t *texture.Texture, x, y int, shift uint) float32 {
	if t.Format() == gputypes.TextureFormatR16Unorm {
		return ycolor.Rescale16(t.Texel16(x, y), shift)
	}
	return float32(t.Texel8(x, y)) / 255
}

// bgraImage adapts BGRA8 texture storage to draw.Image with premultiplied
// RGBA colors.
type bgraImage struct {
	pix    []byte
	stride int
	rect   image.Rectangle
}

func (m *bgraImage) ColorModel() color.Model { return color.RGBAModel }

func (m *bgraImage) Bounds() image.Rectangle { return m.rect }

func (m *bgraImage) offset(x, y int) int { return y*m.stride + x*4 }

func (m *bgraImage) At(x, y int) color.Color { return m.RGBAAt(x, y) }

// RGBAAt returns the pixel at (x, y).
func (m *bgraImage) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(m.rect)) {
		return color.RGBA{}
	}
	p := m.pix[m.offset(x, y):]
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
}

// RGBA64At implements image.RGBA64Image.
func (m *bgraImage) RGBA64At(x, y int) color.RGBA64 {
	c := m.RGBAAt(x, y)
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)} // #nosec G115
}

func (m *bgraImage) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(m.rect)) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p := m.pix[m.offset(x, y):]
	p[0], p[1], p[2], p[3] = rgba.B, rgba.G, rgba.R, rgba.A
}

// SetRGBA64 implements draw.RGBA64Image.
func (m *bgraImage) SetRGBA64(x, y int, c color.RGBA64) {
	if !(image.Point{x, y}.In(m.rect)) {
		return
	}
	p := m.pix[m.offset(x, y):]
	p[0], p[1], p[2], p[3] = uint8(c.B>>8), uint8(c.G>>8), uint8(c.R>>8), uint8(c.A>>8)
}
