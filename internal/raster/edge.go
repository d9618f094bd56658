package raster

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/swgl/shader"
)

// Interpolant layout of a point.
const (
	interpZ       = 0
	interpW       = 1
	interpClip    = 2
	interpVarying = interpClip + shader.MaxClipDistances

	maxInterp = interpVarying + shader.MaxVaryings
)

// maxPoints bounds a polygon after clipping a quad against six planes.
const maxPoints = 16

// point is a window-space polygon vertex. v holds window depth, 1/w, the
// clip distances and the varyings; in perspective polygons the last two
// groups are premultiplied by 1/w.
type point struct {
	x, y float32
	v    [maxInterp]float32
}

// polygon is a convex window-space polygon ready to scan.
type polygon struct {
	pts [maxPoints]point
	n   int
	// aa has bit i set when edge i -> i+1 is antialiased.
	aa          uint16
	perspective bool
	// nv is the number of interpolants in use.
	nv int
}

// area returns twice the signed area in window coordinates (y down).
func (p *polygon) area() float32 {
	// products of window coordinates can exceed float32 range
	var a float64
	for i := 0; i < p.n; i++ {
		c, n := &p.pts[i], &p.pts[(i+1)%p.n]
		a += float64(c.x)*float64(n.y) - float64(n.x)*float64(c.y)
	}
	return float32(a)
}

// top returns the index of the topmost vertex, leftmost on ties.
func (p *polygon) top() int {
	t := 0
	for i := 1; i < p.n; i++ {
		q := &p.pts[i]
		if q.y < p.pts[t].y || (q.y == p.pts[t].y && q.x < p.pts[t].x) {
			t = i
		}
	}
	return t
}

// bounds returns the vertical extent.
func (p *polygon) bounds() (ymin, ymax float32) {
	ymin, ymax = p.pts[0].y, p.pts[0].y
	for i := 1; i < p.n; i++ {
		ymin = min(ymin, p.pts[i].y)
		ymax = max(ymax, p.pts[i].y)
	}
	return ymin, ymax
}

// bandExtent returns the horizontal extent of the polygon within the band
// [y0, y1]. ok is false when the band misses the polygon.
func (p *polygon) bandExtent(y0, y1 float32) (xmin, xmax float32, ok bool) {
	xmin, xmax = math32.Inf(1), math32.Inf(-1)
	add := func(x float32) {
		xmin = min(xmin, x)
		xmax = max(xmax, x)
	}
	for i := 0; i < p.n; i++ {
		a, b := &p.pts[i], &p.pts[(i+1)%p.n]
		if a.y >= y0 && a.y <= y1 {
			add(a.x)
		}
		for _, y := range [2]float32{y0, y1} {
			if (a.y < y && b.y > y) || (a.y > y && b.y < y) {
				add(a.x + (b.x-a.x)*(y-a.y)/(b.y-a.y))
			}
		}
	}
	return xmin, xmax, xmin <= xmax
}

// edgeSpan is the edge between two vertices, evaluated top to bottom.
type edgeSpan struct {
	top, bot *point
	invDY    float32
}

func newEdgeSpan(p0, p1 *point) edgeSpan {
	e := edgeSpan{top: p0, bot: p1}
	if dy := p1.y - p0.y; dy > 0 {
		e.invDY = 1 / dy
	}
	return e
}

// t returns the clamped parameter of y along the edge.
func (e *edgeSpan) t(y float32) float32 {
	return min(max((y-e.top.y)*e.invDY, 0), 1)
}

// XAtY returns the x coordinate of the edge at y.
func (e *edgeSpan) XAtY(y float32) float32 {
	return e.top.x + (e.bot.x-e.top.x)*e.t(y)
}

// at writes the interpolants of the edge at y into out.
func (e *edgeSpan) at(y float32, nv int, out *[maxInterp]float32) float32 {
	t := e.t(y)
	for k := 0; k < nv; k++ {
		out[k] = e.top.v[k] + (e.bot.v[k]-e.top.v[k])*t
	}
	return e.top.x + (e.bot.x-e.top.x)*t
}

// chain is one side of the polygon, walked downward from the top vertex.
type chain struct {
	poly      *polygon
	dir       int
	cur, next int
	steps     int
	e         edgeSpan
}

func (c *chain) wrap(i int) int {
	return (i + c.poly.n) % c.poly.n
}

func (c *chain) init(p *polygon, top, dir int) {
	c.poly, c.dir = p, dir
	c.cur, c.next = top, c.wrap(top+dir)
	c.steps = 0
	c.e = newEdgeSpan(&p.pts[c.cur], &p.pts[c.next])
}

// advance moves to the edge containing y, re-deriving the edge whenever y
// passes its end. It never walks past the bottom vertex.
func (c *chain) advance(y float32) {
	moved := false
	for c.steps < c.poly.n-1 {
		nxt := &c.poly.pts[c.next]
		if nxt.y > y {
			break
		}
		after := c.wrap(c.next + c.dir)
		if c.poly.pts[after].y < nxt.y {
			break
		}
		c.cur, c.next = c.next, after
		c.steps++
		moved = true
	}
	if moved {
		c.e = newEdgeSpan(&c.poly.pts[c.cur], &c.poly.pts[c.next])
	}
}

// edgeLine is the line through one polygon edge as a signed distance in
// pixels, positive inside.
type edgeLine struct {
	a, b, c float32
	aa      bool
}

// dist returns the signed distance of (x, y) from the line.
func (l *edgeLine) dist(x, y float32) float32 {
	return l.a*x + l.b*y + l.c
}

// inclusive reports whether samples exactly on a hard edge are inside:
// left and top edges own their boundary, right and bottom edges do not.
func (l *edgeLine) inclusive() bool {
	return l.a > 0 || (l.a == 0 && l.b > 0)
}

// edgeLines derives the line of every edge. Degenerate edges get a line
// that is everywhere inside.
func (p *polygon) edgeLines(out []edgeLine) []edgeLine {
	out = out[:0]
	var cx, cy float32
	for i := 0; i < p.n; i++ {
		cx += p.pts[i].x
		cy += p.pts[i].y
	}
	cx /= float32(p.n)
	cy /= float32(p.n)
	for i := 0; i < p.n; i++ {
		a, b := &p.pts[i], &p.pts[(i+1)%p.n]
		dx, dy := b.x-a.x, b.y-a.y
		l := math32.Sqrt(dx*dx + dy*dy)
		if l == 0 {
			out = append(out, edgeLine{c: 1, aa: p.aa&(1<<i) != 0})
			continue
		}
		line := edgeLine{a: -dy / l, b: dx / l, aa: p.aa&(1<<i) != 0}
		line.c = -(line.a*a.x + line.b*a.y)
		if line.dist(cx, cy) < 0 {
			line.a, line.b, line.c = -line.a, -line.b, -line.c
		}
		out = append(out, line)
	}
	return out
}
