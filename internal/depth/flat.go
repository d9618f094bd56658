package depth

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/wide"
)

// TestChunk compares up to n samples of a flat row starting at x against z
// and returns the passing lanes within mask. When write is set the passing
// samples are stored.
func (r *Row) TestChunk(x int, z [4]uint32, n int, fn gputypes.CompareFunction, mask wide.Mask4, write bool) wide.Mask4 {
	var passed wide.Mask4
	for i := 0; i < min(n, wide.ChunkPixels); i++ {
		if !mask.Has(i) || !Compare(fn, z[i], r.depth[x+i]) {
			continue
		}
		passed |= 1 << i
	}
	if write {
		r.WriteChunk(x, z, n, passed)
	}
	return passed
}

// WriteChunk stores the lanes of z selected by mask into a flat row.
func (r *Row) WriteChunk(x int, z [4]uint32, n int, mask wide.Mask4) {
	for i := 0; i < min(n, wide.ChunkPixels); i++ {
		if mask.Has(i) {
			r.depth[x+i] = z[i]
		}
	}
}
