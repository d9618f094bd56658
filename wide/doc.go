// Package wide provides SIMD-friendly fixed-width lane types for the
// software rasterizer.
//
// The types are plain fixed-size arrays manipulated with simple loops so that
// the Go compiler can keep them in registers and auto-vectorize where the
// target supports it (SSE, AVX, NEON).
//
// # Lane Types
//
// F32x4, I32x4: four float32 / int32 lanes, one per pixel of a chunk. Varyings,
// fragment coordinates, depth and coverage travel in these.
//
// F32x8: eight float32 lanes for wider streaming loops (YUV conversion).
//
// U8x16: a packed chunk of four 32-bit pixels, exactly as stored in memory.
//
// U16x16: the same chunk widened to 16 bits per channel. All 8-bit fixed
// point blend math happens here, with wrapping arithmetic.
//
// # Chunks
//
// A chunk is four horizontally adjacent pixels. LoadChunk / StoreChunk move
// chunks between byte rows and U16x16, with partial variants for the ragged
// end of a span.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
package wide
