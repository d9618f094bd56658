// Package depth implements the run-length encoded depth buffer.
//
// Each row is either run-encoded or flat. A run-encoded row stores the length
// of every run at the run's starting position together with the run's depth,
// so a freshly cleared row is a single run and clearing costs O(rows).
// A flat row stores one depth per sample. Rows flatten when a draw needs
// per-sample depth (discard, perspective, exotic compare functions) and only
// return to runs on the next full clear.
//
// Depth values are 24-bit unsigned integers: 0 is the near plane and MaxDepth
// the far plane.
package depth

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// MaxDepth is the 24-bit encoding of depth 1.0.
const MaxDepth = 1<<24 - 1

// FromFloat converts a window-space depth in [0, 1] to 24-bit.
func FromFloat(z float32) uint32 {
	switch {
	case !(z > 0):
		return 0
	case z >= 1:
		return MaxDepth
	}
	return uint32(math32.Round(z * MaxDepth))
}

// ToFloat converts a 24-bit depth back to [0, 1].
func ToFloat(d uint32) float32 {
	return float32(d&MaxDepth) / MaxDepth
}

// Compare evaluates fn for an incoming value v against stored depth d.
func Compare(fn gputypes.CompareFunction, v, d uint32) bool {
	switch fn {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return v < d
	case gputypes.CompareFunctionEqual:
		return v == d
	case gputypes.CompareFunctionLessEqual:
		return v <= d
	case gputypes.CompareFunctionGreater:
		return v > d
	case gputypes.CompareFunctionNotEqual:
		return v != d
	case gputypes.CompareFunctionGreaterEqual:
		return v >= d
	default:
		return true
	}
}

// SupportsRuns reports whether fn can be tested against runs directly.
// Other functions require flattened rows.
func SupportsRuns(fn gputypes.CompareFunction) bool {
	return fn == gputypes.CompareFunctionLess || fn == gputypes.CompareFunctionLessEqual
}

// Row is one row of the depth buffer.
type Row struct {
	flat bool
	// runs[x] is the length of the run starting at x. Entries inside a run
	// are stale and never read.
	runs []uint16
	// depth[x] is the run depth at run starts, or the sample depth when flat.
	depth []uint32
}

func newRow(width int) Row {
	return Row{
		runs:  make([]uint16, width),
		depth: make([]uint32, width),
	}
}

// Width returns the number of samples in the row.
func (r *Row) Width() int { return len(r.depth) }

// IsFlat reports whether the row stores one depth per sample.
func (r *Row) IsFlat() bool { return r.flat }

// Init resets the row to a single run of d.
func (r *Row) Init(d uint32) {
	r.flat = false
	if len(r.runs) == 0 {
		return
	}
	r.runs[0] = uint16(len(r.runs)) // #nosec G115 -- width is capped by MaxWidth
	r.depth[0] = d
}

// Flatten expands the runs into per-sample values. A no-op on flat rows.
func (r *Row) Flatten() {
	if r.flat {
		return
	}
	for x := 0; x < len(r.runs); {
		n := int(r.runs[x])
		d := r.depth[x]
		for i := x + 1; i < x+n; i++ {
			r.depth[i] = d
		}
		x += n
	}
	r.flat = true
}

// Samples returns the per-sample depths of a flat row.
func (r *Row) Samples() []uint32 { return r.depth }

// At returns the depth at sample x in either mode.
func (r *Row) At(x int) uint32 {
	if r.flat {
		return r.depth[x]
	}
	s := r.runStart(x)
	return r.depth[s]
}

// runStart returns the start of the run containing x.
func (r *Row) runStart(x int) int {
	s := 0
	for s+int(r.runs[s]) <= x {
		s += int(r.runs[s])
	}
	return s
}

// Runs calls fn for each run as (start, length, depth). Flat rows report
// one run per sample.
func (r *Row) Runs(fn func(x, n int, d uint32)) {
	if r.flat {
		for x, d := range r.depth {
			fn(x, 1, d)
		}
		return
	}
	for x := 0; x < len(r.runs); x += int(r.runs[x]) {
		fn(x, int(r.runs[x]), r.depth[x])
	}
}

// split makes x a run boundary given s, the start of the run containing x.
func (r *Row) split(s, x int) {
	end := s + int(r.runs[s])
	if x <= s || x >= end {
		return
	}
	r.runs[s] = uint16(x - s)   // #nosec G115
	r.runs[x] = uint16(end - x) // #nosec G115
	r.depth[x] = r.depth[s]
}

// Buffer is a depth attachment: a grid of rows.
type Buffer struct {
	width, height int
	rows          []Row
}

// MaxWidth is the widest row a run length can describe.
const MaxWidth = 1<<16 - 1

// New allocates a width×height buffer cleared to MaxDepth.
func New(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize reallocates the rows when the size changes. Contents are cleared.
func (b *Buffer) Resize(width, height int) {
	width = min(max(width, 0), MaxWidth)
	height = max(height, 0)
	if b.width != width || len(b.rows) < height {
		b.rows = make([]Row, height)
		for y := range b.rows {
			b.rows[y] = newRow(width)
		}
	}
	b.width, b.height = width, height
	b.rows = b.rows[:height]
	b.Init(MaxDepth)
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// Row returns row y.
func (b *Buffer) Row(y int) *Row { return &b.rows[y] }

// Init resets every row to a single run of d.
func (b *Buffer) Init(d uint32) {
	for y := range b.rows {
		b.rows[y].Init(d)
	}
}

// Clear fills the rectangle [x0,x1)×[y0,y1) with d. Full-width rows are
// re-initialized to runs; partial rows are filled with a cursor or, when
// flat, directly.
func (b *Buffer) Clear(x0, y0, x1, y1 int, d uint32) {
	x0, x1 = max(x0, 0), min(x1, b.width)
	y0, y1 = max(y0, 0), min(y1, b.height)
	if x0 >= x1 {
		return
	}
	for y := y0; y < y1; y++ {
		r := &b.rows[y]
		switch {
		case x0 == 0 && x1 == b.width:
			r.Init(d)
		case r.flat:
			for x := x0; x < x1; x++ {
				r.depth[x] = d
			}
		default:
			c := NewCursor(r, x0, x1)
			c.Fill(d)
		}
	}
}

// FlattenRows flattens rows [y0, y1).
func (b *Buffer) FlattenRows(y0, y1 int) {
	for y := max(y0, 0); y < min(y1, b.height); y++ {
		b.rows[y].Flatten()
	}
}
