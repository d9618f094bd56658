package shader

import "github.com/gogpu/swgl/wide"

// Fragment carries one chunk of four pixels through the fragment stage.
type Fragment struct {
	// Varyings are the interpolated varyings, one lane per pixel.
	Varyings [MaxVaryings]wide.F32x4
	// FragCoord is the window position of each pixel center (x, y) with
	// depth in z and 1/w in w.
	FragCoord [4]wide.F32x4
	// Active marks lanes covered by the primitive.
	Active wide.Mask4

	// Color receives the RGBA output, premultiplied.
	Color [4]wide.F32x4
	// Secondary receives the second output for dual-source blending.
	Secondary [4]wide.F32x4
	// Discard receives the lanes that must not be written.
	Discard wide.Mask4

	// Textures holds the samplers bound to each texture unit.
	Textures []Sampler
}

// Varying returns varying i.
func (f *Fragment) Varying(i int) wide.F32x4 { return f.Varyings[i] }

// SetColor splats one RGBA color across the chunk.
func (f *Fragment) SetColor(c [4]float32) {
	for i := range f.Color {
		f.Color[i] = wide.Splat4(c[i])
	}
}

// SetSecondary splats one RGBA color across the secondary output.
func (f *Fragment) SetSecondary(c [4]float32) {
	for i := range f.Secondary {
		f.Secondary[i] = wide.Splat4(c[i])
	}
}

// Texture returns the sampler bound to unit, or nil.
func (f *Fragment) Texture(unit int) Sampler {
	if unit < 0 || unit >= len(f.Textures) {
		return nil
	}
	return f.Textures[unit]
}

// Reset clears the outputs before the next chunk.
func (f *Fragment) Reset() {
	f.Color = [4]wide.F32x4{}
	f.Secondary = [4]wide.F32x4{}
	f.Discard = 0
}
