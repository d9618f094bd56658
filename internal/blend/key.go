// Package blend implements the compositor that turns fragment output into
// stored pixels.
//
// A Key names one compositing formula. Keys are derived once from the blend
// state and select an entry of a table of formulas built at init, so the hot
// loop pays a single indirect call per chunk. Antialiasing and clip-mask
// modulation are modifier bits carried in the Key.
//
// All formulas operate on wide.U16x16 chunks in 8-bit fixed point. Colors are
// premultiplied. BGRA8 chunks and R8 chunks (replicated into four lanes) use
// the same formulas.
package blend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Key selects a compositing formula plus its modifiers.
type Key uint8

// Base formulas.
const (
	// ONE, ZERO
	KeyReplace Key = iota
	// SRC_ALPHA, ONE_MINUS_SRC_ALPHA with ONE, ONE_MINUS_SRC_ALPHA alpha
	KeySrcOver
	// ONE, ONE_MINUS_SRC_ALPHA
	KeyPremultipliedOver
	// ZERO, ONE_MINUS_SRC_COLOR
	KeyInvSrcColor
	// ZERO, ONE_MINUS_SRC_COLOR with ZERO, ONE alpha
	KeyInvSrcColorKeepAlpha
	// ZERO, ONE_MINUS_SRC_ALPHA
	KeyInvSrcAlpha
	// ZERO, SRC_COLOR
	KeyModulate
	// ONE, ONE
	KeyAdd
	// ONE, ONE with ONE, ONE_MINUS_SRC_ALPHA alpha
	KeyAddPremultipliedAlpha
	// ONE_MINUS_DST_ALPHA, ONE with ZERO, ONE alpha
	KeyInvDstAlphaAdd
	// CONSTANT_COLOR, ONE_MINUS_SRC_COLOR
	KeyConstantColor
	// ONE, ONE_MINUS_SRC1_COLOR
	KeyDualSource
	KeyMin
	KeyMax
	KeyMultiply
	KeyScreen
	KeyOverlay
	KeyDarken
	KeyLighten
	KeyColorDodge
	KeyColorBurn
	KeyHardLight
	KeySoftLight
	KeyDifference
	KeyExclusion
	KeyHue
	KeySaturation
	KeyColor
	KeyLuminosity
	KeyDropShadow
	KeySubpixelText

	numKeys
)

// Modifier bits.
const (
	KeyAA   Key = 0x40
	KeyMask Key = 0x80

	baseMask Key = 0x3F
)

// Base strips the modifier bits.
func (k Key) Base() Key { return k & baseMask }

// HasAA reports whether antialiasing coverage applies.
func (k Key) HasAA() bool { return k&KeyAA != 0 }

// HasMask reports whether a clip mask applies.
func (k Key) HasMask() bool { return k&KeyMask != 0 }

// WithModifiers returns k with the AA and mask bits set as requested.
func (k Key) WithModifiers(aa, mask bool) Key {
	k = k.Base()
	if aa {
		k |= KeyAA
	}
	if mask {
		k |= KeyMask
	}
	return k
}

var keyNames = [numKeys]string{
	"replace", "src-over", "premultiplied-over", "inv-src-color",
	"inv-src-color-keep-alpha", "inv-src-alpha", "modulate", "add",
	"add-premultiplied-alpha", "inv-dst-alpha-add", "constant-color",
	"dual-source", "min", "max", "multiply", "screen", "overlay", "darken",
	"lighten", "color-dodge", "color-burn", "hard-light", "soft-light",
	"difference", "exclusion", "hue", "saturation", "color", "luminosity",
	"drop-shadow", "subpixel-text",
}

func (k Key) String() string {
	b := k.Base()
	if b >= numKeys {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	s := keyNames[b]
	if k.HasAA() {
		s += "+aa"
	}
	if k.HasMask() {
		s += "+mask"
	}
	return s
}

// Equation is the blend equation. The basic equations map onto
// gputypes.BlendOperation; the rest are advanced equations.
type Equation uint8

// Blend equations.
const (
	EquationAdd Equation = iota
	EquationMin
	EquationMax
	EquationMultiply
	EquationScreen
	EquationOverlay
	EquationDarken
	EquationLighten
	EquationColorDodge
	EquationColorBurn
	EquationHardLight
	EquationSoftLight
	EquationDifference
	EquationExclusion
	EquationHue
	EquationSaturation
	EquationColor
	EquationLuminosity
	EquationSubtract
	EquationReverseSubtract
)

// Advanced reports whether e is an advanced equation that ignores factors.
func (e Equation) Advanced() bool {
	return e >= EquationMultiply && e <= EquationLuminosity
}

// FactorOneMinusSrc1 extends gputypes.BlendFactor with the dual-source
// ONE_MINUS_SRC1_COLOR factor.
const FactorOneMinusSrc1 gputypes.BlendFactor = 0x100

type factors struct {
	srcRGB, dstRGB, srcA, dstA gputypes.BlendFactor
}

func sep(srcRGB, dstRGB, srcA, dstA gputypes.BlendFactor) factors {
	return factors{srcRGB, dstRGB, srcA, dstA}
}

func same(src, dst gputypes.BlendFactor) factors {
	return factors{src, dst, src, dst}
}

const (
	factorZero        = gputypes.BlendFactorZero
	factorOne         = gputypes.BlendFactorOne
	factorSrcColor    = gputypes.BlendFactorSrc
	factorInvSrcColor = gputypes.BlendFactorOneMinusSrc
	factorSrcAlpha    = gputypes.BlendFactorSrcAlpha
	factorInvSrcAlpha = gputypes.BlendFactorOneMinusSrcAlpha
	factorInvDstAlpha = gputypes.BlendFactorOneMinusDstAlpha
	factorConstant    = gputypes.BlendFactorConstant
)

var factorKeys = map[factors]Key{
	same(factorOne, factorZero):                                          KeyReplace,
	sep(factorSrcAlpha, factorInvSrcAlpha, factorOne, factorInvSrcAlpha): KeySrcOver,
	same(factorOne, factorInvSrcAlpha):                                   KeyPremultipliedOver,
	same(factorZero, factorInvSrcColor):                                  KeyInvSrcColor,
	sep(factorZero, factorInvSrcColor, factorZero, factorOne):            KeyInvSrcColorKeepAlpha,
	same(factorZero, factorInvSrcAlpha):                                  KeyInvSrcAlpha,
	same(factorZero, factorSrcColor):                                     KeyModulate,
	same(factorOne, factorOne):                                           KeyAdd,
	sep(factorOne, factorOne, factorOne, factorInvSrcAlpha):              KeyAddPremultipliedAlpha,
	sep(factorInvDstAlpha, factorOne, factorZero, factorOne):             KeyInvDstAlphaAdd,
	same(factorConstant, factorInvSrcColor):                              KeyConstantColor,
	same(factorOne, FactorOneMinusSrc1):                                  KeyDualSource,
}

var advancedKeys = map[Equation]Key{
	EquationMultiply:   KeyMultiply,
	EquationScreen:     KeyScreen,
	EquationOverlay:    KeyOverlay,
	EquationDarken:     KeyDarken,
	EquationLighten:    KeyLighten,
	EquationColorDodge: KeyColorDodge,
	EquationColorBurn:  KeyColorBurn,
	EquationHardLight:  KeyHardLight,
	EquationSoftLight:  KeySoftLight,
	EquationDifference: KeyDifference,
	EquationExclusion:  KeyExclusion,
	EquationHue:        KeyHue,
	EquationSaturation: KeySaturation,
	EquationColor:      KeyColor,
	EquationLuminosity: KeyLuminosity,
}

// ErrUnsupported reports a blend state with no matching formula.
var ErrUnsupported = errors.New("blend: unsupported blend state")

// KeyFor derives the formula for the given state. A disabled blend is
// KeyReplace. Unsupported combinations return KeyReplace and ErrUnsupported
// so the caller can log and fall back.
func KeyFor(enabled bool, st gputypes.BlendState, eq Equation) (Key, error) {
	if !enabled {
		return KeyReplace, nil
	}
	switch {
	case eq == EquationMin:
		return KeyMin, nil
	case eq == EquationMax:
		return KeyMax, nil
	case eq.Advanced():
		return advancedKeys[eq], nil
	case eq != EquationAdd:
		return KeyReplace, fmt.Errorf("%w: equation %d", ErrUnsupported, eq)
	}
	f := factors{st.Color.SrcFactor, st.Color.DstFactor, st.Alpha.SrcFactor, st.Alpha.DstFactor}
	if k, ok := factorKeys[f]; ok {
		return k, nil
	}
	return KeyReplace, fmt.Errorf("%w: factors %v/%v %v/%v", ErrUnsupported,
		f.srcRGB, f.dstRGB, f.srcA, f.dstA)
}

// EquationFor returns the equation matching a gputypes operation.
func EquationFor(op gputypes.BlendOperation) Equation {
	switch op {
	case gputypes.BlendOperationMin:
		return EquationMin
	case gputypes.BlendOperationMax:
		return EquationMax
	case gputypes.BlendOperationSubtract:
		return EquationSubtract
	case gputypes.BlendOperationReverseSubtract:
		return EquationReverseSubtract
	default:
		return EquationAdd
	}
}

// ReadsDestination reports whether the formula depends on the stored color.
// Only a plain replace without modifiers can skip reading it.
func (k Key) ReadsDestination() bool {
	return k != KeyReplace
}
