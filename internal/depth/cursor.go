package depth

import "github.com/gogpu/swgl/internal/debug"

// Cursor walks the runs of a run-encoded row over a span [start, end).
//
// The span is consumed front to back by alternating SkipFailed and
// CheckPassed. Each call returns the number of samples it consumed.
type Cursor struct {
	row   *Row
	cur   int // start of the run containing pos
	pos   int
	end   int
	valid bool
}

// NewCursor positions a cursor at start by walking the runs of row.
// The row must not be flat.
func NewCursor(row *Row, start, end int) Cursor {
	debug.Assert(!row.flat, "cursor over flat row")
	end = min(end, len(row.runs))
	c := Cursor{row: row, pos: start, end: end, valid: start < end}
	if c.valid {
		c.cur = row.runStart(start)
	}
	return c
}

// Valid reports whether samples remain in the span.
func (c *Cursor) Valid() bool { return c.valid && c.pos < c.end }

// Pos returns the next unconsumed sample.
func (c *Cursor) Pos() int { return c.pos }

// next advances cur to the following run.
func (c *Cursor) next() {
	c.cur += int(c.row.runs[c.cur])
}

// SkipFailed advances past runs that fail v under less (or less-equal when
// equal is set). It returns the number of samples skipped, or -1 when the end
// of the span was reached without finding a passing run.
func (c *Cursor) SkipFailed(v uint32, equal bool) int {
	if !c.Valid() {
		return -1
	}
	start := c.pos
	for c.pos < c.end {
		if pass(v, c.row.depth[c.cur], equal) {
			return c.pos - start
		}
		c.next()
		c.pos = min(c.cur, c.end)
	}
	return -1
}

// CheckPassed advances over runs that pass v and returns the number of
// samples passed. When write is set the passed samples become one run of v:
// the run containing the first sample is trimmed to end before it, and a run
// straddling the span end is split there.
func (c *Cursor) CheckPassed(v uint32, equal, write bool) int {
	if !c.Valid() {
		return 0
	}
	start, first := c.pos, c.cur
	for c.pos < c.end && pass(v, c.row.depth[c.cur], equal) {
		runEnd := c.cur + int(c.row.runs[c.cur])
		if runEnd > c.end {
			if write {
				c.row.split(c.cur, c.end)
			}
			c.pos = c.end
			break
		}
		c.cur = runEnd
		c.pos = runEnd
	}
	n := c.pos - start
	if write && n > 0 {
		c.row.split(first, start)
		c.row.runs[start] = uint16(n) // #nosec G115
		c.row.depth[start] = v
		c.cur = c.pos
	}
	return n
}

// Fill overwrites the remainder of the span with one run of v.
func (c *Cursor) Fill(v uint32) {
	if !c.Valid() {
		return
	}
	start, first := c.pos, c.cur
	for c.cur+int(c.row.runs[c.cur]) < c.end {
		c.next()
	}
	c.row.split(c.cur, c.end)
	c.row.split(first, start)
	c.row.runs[start] = uint16(c.end - start) // #nosec G115
	c.row.depth[start] = v
	c.cur, c.pos = c.end, c.end
}

func pass(v, d uint32, equal bool) bool {
	if equal {
		return v <= d
	}
	return v < d
}
