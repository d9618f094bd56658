// This file implements the advanced blend equations.
//
// Separable equations that reduce to products of premultiplied values run in
// 8-bit fixed point. Color dodge, color burn, soft light and the HSL group
// need unpremultiplied colors and run in float per pixel.
//
// All follow the W3C compositing formula
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cd)
//
// with the alpha channel reducing to Sa + Da - Sa*Da.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - KHR_blend_equation_advanced
package blend

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/swgl/wide"
)

// outside returns S*(1-Da) + D*(1-Sa).
func outside(src, dst, sa, da wide.U16x16) wide.U16x16 {
	return src.MulDiv255(da.Inv()).Add(dst.MulDiv255(sa.Inv()))
}

func multiply(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	sa, da := src.Alphas(), dst.Alphas()
	return outside(src, dst, sa, da).Add(src.MulDiv255(dst)).Clamp(255)
}

func screen(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	return src.Add(dst).Sub(src.MulDiv255(dst))
}

// hardMix evaluates 2*S*D where low is set and Sa*Da - 2*(Da-D)*(Sa-S)
// elsewhere.
func hardMix(src, dst, sa, da, low wide.U16x16) wide.U16x16 {
	lo := src.MulDiv255(dst).Shl(1)
	hi := subs(sa.MulDiv255(da), subs(da, dst).MulDiv255(subs(sa, src)).Shl(1))
	return lo.Select(low, hi)
}

func overlay(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	sa, da := src.Alphas(), dst.Alphas()
	low := dst.Shl(1).Greater(da).Xor(wide.SplatU16(0xFFFF))
	return outside(src, dst, sa, da).Add(hardMix(src, dst, sa, da, low)).Clamp(255)
}

func hardLight(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	sa, da := src.Alphas(), dst.Alphas()
	low := src.Shl(1).Greater(sa).Xor(wide.SplatU16(0xFFFF))
	return outside(src, dst, sa, da).Add(hardMix(src, dst, sa, da, low)).Clamp(255)
}

// S + D - max(S*Da, D*Sa)
func darken(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	sa, da := src.Alphas(), dst.Alphas()
	return src.Add(dst).Sub(src.MulDiv255(da).Max(dst.MulDiv255(sa))).Clamp(255)
}

// S + D - min(S*Da, D*Sa)
func lighten(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	sa, da := src.Alphas(), dst.Alphas()
	return src.Add(dst).Sub(src.MulDiv255(da).Min(dst.MulDiv255(sa))).Clamp(255)
}

// alphaOver is the shared alpha result Sa + Da - Sa*Da.
func alphaOver(src, dst wide.U16x16) wide.U16x16 {
	return screen(src, dst, nil)
}

// S + D - 2*min(S*Da, D*Sa)
func difference(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	sa, da := src.Alphas(), dst.Alphas()
	m := src.MulDiv255(da).Min(dst.MulDiv255(sa)).Shl(1)
	rgb := subs(src.Add(dst), m).Clamp(255)
	return alphaOver(src, dst).Select(wide.AlphaMask, rgb)
}

// S + D - 2*S*D
func exclusion(src, dst wide.U16x16, _ *Params) wide.U16x16 {
	rgb := subs(src.Add(dst), src.MulDiv255(dst).Shl(1)).Clamp(255)
	return alphaOver(src, dst).Select(wide.AlphaMask, rgb)
}

func colorDodge(s, d float32) float32 {
	switch {
	case d == 0:
		return 0
	case s >= 1:
		return 1
	}
	return math32.Min(1, d/(1-s))
}

func colorBurn(s, d float32) float32 {
	switch {
	case d >= 1:
		return 1
	case s == 0:
		return 0
	}
	return 1 - math32.Min(1, (1-d)/s)
}

func softLight(s, d float32) float32 {
	if s <= 0.5 {
		return d - (1-2*s)*d*(1-d)
	}
	var dd float32
	if d <= 0.25 {
		dd = ((16*d-12)*d + 4) * d
	} else {
		dd = math32.Sqrt(d)
	}
	return d + (2*s-1)*(dd-d)
}

// separableFloat lifts a per-channel function of unpremultiplied colors into
// a formula.
func separableFloat(b func(s, d float32) float32) func(src, dst wide.U16x16, p *Params) wide.U16x16 {
	return nonSeparable(func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
		return b(sr, dr), b(sg, dg), b(sb, db)
	})
}
