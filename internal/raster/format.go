package raster

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/wide"
)

// colorFormat specializes the span loops for one color target layout.
// Both layouts blend in BGRA lane order; r8 replicates its channel into all
// four lanes of a pixel.
type colorFormat interface {
	rgba8 | r8

	bytesPerPixel() int
	format() gputypes.TextureFormat
	load(row []byte, n int) wide.U16x16
	store(row []byte, v wide.U16x16, n int)
	pack(v wide.U16x16) wide.U16x16
}

// rgba8 is a BGRA8 color target.
type rgba8 struct{}

func (rgba8) bytesPerPixel() int                     { return 4 }
func (rgba8) format() gputypes.TextureFormat         { return gputypes.TextureFormatBGRA8Unorm }
func (rgba8) load(row []byte, n int) wide.U16x16     { return wide.LoadBGRA(row, n) }
func (rgba8) store(row []byte, v wide.U16x16, n int) { wide.StoreBGRA(row, v, n) }
func (rgba8) pack(v wide.U16x16) wide.U16x16         { return v }

// r8 is a single channel color target.
type r8 struct{}

func (r8) bytesPerPixel() int                     { return 1 }
func (r8) format() gputypes.TextureFormat         { return gputypes.TextureFormatR8Unorm }
func (r8) load(row []byte, n int) wide.U16x16     { return wide.LoadR8(row, n) }
func (r8) store(row []byte, v wide.U16x16, n int) { wide.StoreR8(row, v, n) }
func (r8) pack(v wide.U16x16) wide.U16x16         { return v.PackR8() }
