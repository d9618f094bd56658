package raster

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swgl/internal/blend"
	"github.com/gogpu/swgl/internal/depth"
	"github.com/gogpu/swgl/shader"
	"github.com/gogpu/swgl/wide"
)

// rowInterp describes the interpolants along one row: the value at pixel
// center x is v[k] + step[k]*(x+0.5-lx).
type rowInterp struct {
	lx   float32
	v    [maxInterp]float32
	step [maxInterp]float32
}

func (ri *rowInterp) at(k int, x int) float32 {
	return ri.v[k] + ri.step[k]*(float32(x)+0.5-ri.lx)
}

// drawer holds the per-primitive loops specialized for color format F.
type drawer[F colorFormat] struct {
	*Rasterizer
	f F

	aa       bool
	needFlat bool
	depthRow *depth.Row
	colorRow []byte
	y        int
	ri       rowInterp
}

// maxPixel bounds pixel indices derived from window coordinates so the
// int conversion never overflows.
const maxPixel = 1 << 30

// pixel converts a whole-valued window coordinate to a pixel index.
func pixel(v float32) int {
	return int(min(max(v, -maxPixel), maxPixel))
}

func drawPolygon[F colorFormat](r *Rasterizer) {
	d := drawer[F]{Rasterizer: r}
	d.polygon()
}

func (d *drawer[F]) depthEnabled() bool {
	return d.state.DepthTest && d.target.Depth != nil && d.target.Depth.Depth() != nil
}

func (d *drawer[F]) polygon() {
	poly := &d.poly
	area := poly.area()
	if !(math32.Abs(area) > 1e-6) {
		return
	}
	d.aa = poly.aa != 0
	if d.aa {
		d.lines = poly.edgeLines(d.lines)
	} else {
		d.params.Coverage = wide.SplatI32(256)
	}
	fn := d.state.DepthFunc
	d.needFlat = poly.perspective || d.discard || !depth.SupportsRuns(fn) || (d.aa && d.state.DepthWrite)

	top := poly.top()
	// positive area is clockwise on screen: forward walks the right side
	fwd := 1
	if area < 0 {
		fwd = -1
	}
	var left, right chain
	left.init(poly, top, -fwd)
	right.init(poly, top, fwd)

	ymin, ymax := poly.bounds()
	var y0, y1 int
	if d.aa {
		y0, y1 = pixel(math32.Floor(ymin)), pixel(math32.Ceil(ymax))
	} else {
		y0, y1 = pixel(math32.Ceil(ymin-0.5)), pixel(math32.Ceil(ymax-0.5))
	}
	y0, y1 = max(y0, d.clip.Y0), min(y1, d.clip.Y1)

	var lv, rv [maxInterp]float32
	for y := y0; y < y1; y++ {
		yc := float32(y) + 0.5
		ey := min(max(yc, ymin), ymax)
		left.advance(ey)
		right.advance(ey)
		lx := left.e.at(ey, poly.nv, &lv)
		rx := right.e.at(ey, poly.nv, &rv)
		if lx > rx {
			lx, rx = rx, lx
			lv, rv = rv, lv
		}

		var xs, xe int
		if d.aa {
			minx, maxx, ok := poly.bandExtent(float32(y), float32(y+1))
			if !ok {
				continue
			}
			xs, xe = pixel(math32.Floor(minx)), pixel(math32.Ceil(maxx))
		} else {
			xs, xe = pixel(math32.Ceil(lx-0.5)), pixel(math32.Ceil(rx-0.5))
		}
		xs, xe = max(xs, d.clip.X0), min(xe, d.clip.X1)
		if xs >= xe {
			continue
		}

		ri := &d.ri
		ri.lx = lx
		dx := rx - lx
		for k := 0; k < poly.nv; k++ {
			ri.v[k] = lv[k]
			ri.step[k] = 0
			if dx > 1e-6 {
				ri.step[k] = (rv[k] - lv[k]) / dx
			}
		}
		xs, xe = d.clipDistances(xs, xe)
		if xs >= xe {
			continue
		}
		d.row(y, xs, xe)
	}
}

// clipDistances narrows [xs, xe) to the pixels whose interpolated clip
// distances are all non-negative. Distances are linear along the row, and
// premultiplication by 1/w preserves their sign.
func (d *drawer[F]) clipDistances(xs, xe int) (int, int) {
	ri := &d.ri
	for k := interpClip; k < interpVarying; k++ {
		s := ri.step[k]
		if s == 0 {
			if ri.v[k] < 0 {
				return xs, xs
			}
			continue
		}
		// center of pixel x crosses zero at x+0.5 = root
		root := ri.lx - ri.v[k]/s
		if s > 0 {
			xs = max(xs, pixel(math32.Ceil(root-0.5)))
		} else {
			xe = min(xe, pixel(math32.Floor(root-0.5))+1)
		}
	}
	return xs, xe
}

// canSkipClear reports whether the span overwrites every pixel without
// reading it, so a pending clear need not touch it.
func (d *drawer[F]) canSkipClear() bool {
	return d.key == blend.KeyReplace && !d.discard && !d.depthEnabled()
}

// row draws the span [xs, xe) of row y.
func (d *drawer[F]) row(y, xs, xe int) {
	d.y = y
	d.colorRow = nil
	if c := d.target.Color; c != nil {
		if d.canSkipClear() {
			c.PrepareRow(y, xs, xe)
		} else {
			c.PrepareRow(y, 0, 0)
		}
		d.colorRow = c.Row(y)
	}

	if !d.depthEnabled() {
		d.depthRow = nil
		d.shade(xs, xe, false)
		return
	}
	row := d.target.Depth.Depth().Row(y)
	d.depthRow = row
	if d.needFlat {
		row.Flatten()
	}
	if row.IsFlat() {
		d.shade(xs, xe, true)
		return
	}

	z := depth.FromFloat(d.ri.at(interpZ, xs))
	equal := d.state.DepthFunc == gputypes.CompareFunctionLessEqual
	c := depth.NewCursor(row, xs, xe)
	for c.Valid() {
		if c.SkipFailed(z, equal) < 0 {
			break
		}
		start := c.Pos()
		n := c.CheckPassed(z, equal, d.state.DepthWrite)
		if n <= 0 {
			break
		}
		d.shade(start, start+n, false)
	}
}

// shade runs the program over [x0, x1) of the current row. With flat set,
// each chunk is depth tested against the flat depth row.
func (d *drawer[F]) shade(x0, x1 int, flat bool) {
	if d.spans != nil && !flat && !d.aa && !d.poly.perspective {
		x0 = d.drawSpan(x0, x1)
	}
	for x := x0; x < x1; x += wide.ChunkPixels {
		d.chunk(x, min(wide.ChunkPixels, x1-x), flat)
	}
}

// coverage returns the antialiasing coverage of the chunk at x.
func (d *drawer[F]) coverage(x int) wide.I32x4 {
	cov := wide.SplatI32(256)
	yc := float32(d.y) + 0.5
	px := wide.Ramp4(float32(x)+0.5, 1)
	for i := range d.lines {
		l := &d.lines[i]
		var dist wide.F32x4
		for lane := range dist {
			dist[lane] = l.dist(px[lane], yc)
		}
		if l.aa {
			cov = wide.MinCoverage(cov, wide.CoverageFromDistance(dist))
			continue
		}
		for lane := range dist {
			if dist[lane] < 0 || (dist[lane] == 0 && !l.inclusive()) {
				cov[lane] = 0
			}
		}
	}
	return cov
}

// maskCoverage reads the clip mask under the chunk at x.
func (d *drawer[F]) maskCoverage(x, n int) wide.I32x4 {
	m := d.state.ClipMask
	mx := x + d.offX - d.state.ClipMaskOrigin[0]
	my := d.y + d.offY - d.state.ClipMaskOrigin[1]
	var v [4]uint8
	for i := 0; i < n; i++ {
		v[i] = m.Texel8(mx+i, my)
	}
	return blend.MaskCoverage(v)
}

// chunk shades and commits up to four pixels starting at x.
func (d *drawer[F]) chunk(x, n int, flat bool) {
	active := wide.FirstN(n)
	if d.aa {
		d.params.Coverage = d.coverage(x)
		for lane := 0; lane < n; lane++ {
			if d.params.Coverage[lane] <= 0 {
				active &^= 1 << lane
			}
		}
		if active == 0 {
			return
		}
	}

	ri := &d.ri
	var z [4]uint32
	for lane := 0; lane < n; lane++ {
		z[lane] = depth.FromFloat(ri.at(interpZ, x+lane))
	}
	if flat {
		active = d.depthRow.TestChunk(x, z, n, d.state.DepthFunc, active, false)
		if active == 0 {
			return
		}
	}

	f := &d.frag
	f.Reset()
	f.Active = active
	var invW wide.F32x4
	for lane := 0; lane < 4; lane++ {
		invW[lane] = ri.at(interpW, x+lane)
	}
	f.FragCoord[0] = wide.Ramp4(float32(x+d.offX)+0.5, 1)
	f.FragCoord[1] = wide.Splat4(float32(d.y+d.offY) + 0.5)
	for lane := 0; lane < 4; lane++ {
		f.FragCoord[2][lane] = ri.at(interpZ, x+lane)
	}
	f.FragCoord[3] = invW
	for k := 0; k < d.varyings; k++ {
		var v wide.F32x4
		for lane := 0; lane < 4; lane++ {
			v[lane] = ri.at(interpVarying+k, x+lane)
		}
		if d.poly.perspective {
			v = v.Div(invW)
		}
		f.Varyings[k] = v
	}

	d.prog.Fragment(f)
	active &^= f.Discard
	if active == 0 {
		return
	}
	if flat && d.state.DepthWrite {
		d.depthRow.WriteChunk(x, z, n, active)
	}

	src := d.f.pack(wide.FromFloat(f.Color[0], f.Color[1], f.Color[2], f.Color[3]))
	if d.key.Base() == blend.KeyDualSource {
		s := f.Secondary
		d.params.Secondary = d.f.pack(wide.FromFloat(s[0], s[1], s[2], s[3]))
	}
	d.commit(x, src, n, active)
}

// commit blends src into the color row at x for the active lanes.
func (d *drawer[F]) commit(x int, src wide.U16x16, n int, active wide.Mask4) {
	d.samples += uint64(active.Count())
	if d.colorRow == nil {
		return
	}
	if d.key.HasMask() {
		d.params.Mask = d.maskCoverage(x, n)
	}
	px := d.colorRow[x*d.f.bytesPerPixel():]
	dst := d.f.load(px, n)
	out := blend.Blend(d.key, src, dst, &d.params)
	d.f.store(px, out.Select(active.Pixels(), dst), n)
}

// drawSpan hands [x0, x1) to the program's span drawer and returns the
// first pixel it left for the chunk loop.
func (d *drawer[F]) drawSpan(x0, x1 int) int {
	s := spanState[F]{d: d, x: x0, end: x1}
	d.spans.DrawSpan(&s)
	return s.x
}

// spanState implements shader.Span over one depth-passing run.
type spanState[F colorFormat] struct {
	d      *drawer[F]
	x, end int
}

func (s *spanState[F]) Len() int                       { return s.end - s.x }
func (s *spanState[F]) X() int                         { return s.x }
func (s *spanState[F]) Y() int                         { return s.d.y }
func (s *spanState[F]) Format() gputypes.TextureFormat { return s.d.f.format() }

func (s *spanState[F]) Varying(i int) (start, step float32) {
	k := interpVarying + i
	return s.d.ri.at(k, s.x), s.d.ri.step[k]
}

func (s *spanState[F]) Commit(px wide.U16x16, n int) {
	n = min(n, wide.ChunkPixels, s.Len())
	if n <= 0 {
		return
	}
	s.d.commit(s.x, s.d.f.pack(px), n, wide.FirstN(n))
	s.x += n
}

func (s *spanState[F]) Texture(unit int) shader.Sampler {
	if unit < 0 || unit >= len(s.d.textures) {
		return nil
	}
	return s.d.textures[unit]
}
