package blend

import "github.com/gogpu/swgl/wide"

// Params carries the inputs of a formula beyond source and destination.
type Params struct {
	// Color is the constant blend color, BGRA, splatted across the chunk.
	Color wide.U16x16
	// Secondary is the dual-source output of the fragment stage.
	Secondary wide.U16x16
	// Coverage is the antialiasing coverage per pixel in [0, 256].
	Coverage wide.I32x4
	// Mask is the clip mask coverage per pixel in [0, 256].
	Mask wide.I32x4
}

type formula struct {
	fn func(src, dst wide.U16x16, p *Params) wide.U16x16
	// replace formulas do not reduce to dst for a zero source, so coverage
	// interpolates the result instead of scaling the source.
	replace bool
}

var table [numKeys]formula

func init() {
	table = [numKeys]formula{
		KeyReplace:               {fn: replace, replace: true},
		KeySrcOver:               {fn: srcOver},
		KeyPremultipliedOver:     {fn: premultipliedOver},
		KeyInvSrcColor:           {fn: invSrcColor},
		KeyInvSrcColorKeepAlpha:  {fn: invSrcColorKeepAlpha},
		KeyInvSrcAlpha:           {fn: invSrcAlpha},
		KeyModulate:              {fn: modulate, replace: true},
		KeyAdd:                   {fn: add},
		KeyAddPremultipliedAlpha: {fn: addPremultipliedAlpha},
		KeyInvDstAlphaAdd:        {fn: invDstAlphaAdd},
		KeyConstantColor:         {fn: constantColor},
		KeyDualSource:            {fn: dualSource},
		KeyMin:                   {fn: minimum, replace: true},
		KeyMax:                   {fn: maximum, replace: true},
		KeyMultiply:              {fn: multiply},
		KeyScreen:                {fn: screen},
		KeyOverlay:               {fn: overlay},
		KeyDarken:                {fn: darken},
		KeyLighten:               {fn: lighten},
		KeyColorDodge:            {fn: separableFloat(colorDodge)},
		KeyColorBurn:             {fn: separableFloat(colorBurn)},
		KeyHardLight:             {fn: hardLight},
		KeySoftLight:             {fn: separableFloat(softLight)},
		KeyDifference:            {fn: difference},
		KeyExclusion:             {fn: exclusion},
		KeyHue:                   {fn: nonSeparable(hslBlendHue)},
		KeySaturation:            {fn: nonSeparable(hslBlendSaturation)},
		KeyColor:                 {fn: nonSeparable(hslBlendColor)},
		KeyLuminosity:            {fn: nonSeparable(hslBlendLuminosity)},
		KeyDropShadow:            {fn: dropShadow},
		KeySubpixelText:          {fn: subpixelText},
	}
}

// Blend composites src onto dst with the formula and modifiers of k.
func Blend(k Key, src, dst wide.U16x16, p *Params) wide.U16x16 {
	f := &table[k.Base()]
	if !k.HasAA() && !k.HasMask() {
		return f.fn(src, dst, p)
	}
	cov := wide.SplatI32(256)
	if k.HasAA() {
		cov = p.Coverage
	}
	if k.HasMask() {
		cov = cov.Mul(p.Mask).Shr(8)
	}
	if f.replace {
		return f.fn(src, dst, p).Coverage(cov).Add(dst.InvCoverage(cov))
	}
	if k.Base() == KeyDualSource {
		q := *p
		q.Secondary = q.Secondary.Coverage(cov)
		return f.fn(src.Coverage(cov), dst, &q)
	}
	return f.fn(src.Coverage(cov), dst, p)
}

// MaskCoverage converts R8 clip mask samples to [0, 256] coverage.
func MaskCoverage(m [4]uint8) wide.I32x4 {
	var r wide.I32x4
	for i, v := range m {
		r[i] = int32(v) + int32(v>>7)
	}
	return r
}

var (
	full    = wide.SplatU16(255)
	rgbMask = wide.AlphaMask.Xor(wide.SplatU16(0xFFFF))
)

// lerp255 returns dst + (to-dst)*a/255 per lane in signed arithmetic.
func lerp255(dst, to, a wide.U16x16) wide.U16x16 {
	var r wide.U16x16
	for i := range r {
		d := int32(to[i]) - int32(dst[i])
		w := int32(a[i]) + int32(a[i]>>7)
		r[i] = uint16(int32(dst[i]) + (d*w)>>8) // #nosec G115
	}
	return r
}

// subs subtracts with saturation at zero.
func subs(a, b wide.U16x16) wide.U16x16 {
	return a.Sub(a.Min(b))
}

func replace(src, _ wide.U16x16, _ *Params) wide.U16x16 {
	return src
}

// dst + src.a*(src.rgb1 - dst)
func srcOver(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return lerp255(dst, src.Or(wide.AlphaMask.And(full)), src.Alphas())
}

func premultipliedOver(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.Add(dst).Sub(dst.MulDiv255(src.Alphas())).Clamp(255)
}

func invSrcColor(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return dst.Sub(dst.MulDiv255(src))
}

func invSrcColorKeepAlpha(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return dst.Sub(dst.MulDiv255(src).And(rgbMask))
}

func invSrcAlpha(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return dst.Sub(dst.MulDiv255(src.Alphas()))
}

func modulate(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.MulDiv255(dst)
}

func add(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.Add(dst).Clamp(255)
}

func addPremultipliedAlpha(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.Add(dst).Sub(dst.MulDiv255(src).And(wide.AlphaMask)).Clamp(255)
}

// src*(1-dst.a) + dst
func invDstAlphaAdd(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return dst.Add(src.Sub(src.MulDiv255(dst.Alphas())).And(rgbMask)).Clamp(255)
}

// src*k + (1-src)*dst
func constantColor(src, dst wide.U16x16, p *Params) wide.U16x16 {
	return lerp255(dst, p.Color, src)
}

func dualSource(src, dst wide.U16x16, p *Params) wide.U16x16 {
	return src.Add(dst).Sub(dst.MulDiv255(p.Secondary)).Clamp(255)
}

func minimum(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.Min(dst)
}

func maximum(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.Max(dst)
}

// dropShadow tints the source coverage with the constant color and
// composites it over the destination.
func dropShadow(src, dst wide.U16x16, p *Params) wide.U16x16 {
	s := src.Alphas().MulDiv255(p.Color)
	return s.Add(dst).Sub(dst.MulDiv255(s.Alphas())).Clamp(255)
}

// subpixelText treats each source channel as the coverage of that channel.
func subpixelText(src, dst wide.U16x16, p *Params) wide.U16x16 {
	s := src.MulDiv255(p.Color)
	m := src.MulDiv255(p.Color.Alphas())
	return s.Add(dst).Sub(dst.MulDiv255(m)).Clamp(255)
}
