package raster

// MaxClipAttrs is the number of attributes carried through clipping: the
// clip distances followed by the varyings.
const MaxClipAttrs = maxInterp - interpClip

// ClipVertex is a clip-space vertex with the attributes that interpolate
// linearly in clip space.
type ClipVertex struct {
	Pos   [4]float32
	Attrs [MaxClipAttrs]float32
}

// plane is a clip-space half-space: a vertex is inside when
// dot(Pos, plane) >= 0.
type plane [4]float32

var (
	planeNear   = plane{0, 0, 1, 1}
	planeFar    = plane{0, 0, -1, 1}
	planeLeft   = plane{1, 0, 0, 1}
	planeRight  = plane{-1, 0, 0, 1}
	planeBottom = plane{0, 1, 0, 1}
	planeTop    = plane{0, -1, 0, 1}
)

func (p plane) dist(v *ClipVertex) float32 {
	return p[0]*v.Pos[0] + p[1]*v.Pos[1] + p[2]*v.Pos[2] + p[3]*v.Pos[3]
}

// clipPlane cuts a convex polygon against one plane. Each output vertex
// carries the AA flag of its outgoing edge; edges lying on the cut plane are
// never antialiased. nattrs limits the attributes interpolated.
func clipPlane(in []ClipVertex, aa uint16, p plane, nattrs int, out []ClipVertex) ([]ClipVertex, uint16) {
	out = out[:0]
	var outAA uint16
	emit := func(v ClipVertex, edgeAA bool) {
		if len(out) == maxPoints {
			return
		}
		if edgeAA {
			outAA |= 1 << len(out)
		}
		out = append(out, v)
	}
	n := len(in)
	for i := 0; i < n; i++ {
		cur, nxt := &in[i], &in[(i+1)%n]
		dc, dn := p.dist(cur), p.dist(nxt)
		edgeAA := aa&(1<<i) != 0
		if dc >= 0 {
			emit(*cur, edgeAA)
		}
		if (dc >= 0) == (dn >= 0) {
			continue
		}
		t := dc / (dc - dn)
		var v ClipVertex
		for k := range v.Pos {
			v.Pos[k] = cur.Pos[k] + (nxt.Pos[k]-cur.Pos[k])*t
		}
		for k := 0; k < nattrs; k++ {
			v.Attrs[k] = cur.Attrs[k] + (nxt.Attrs[k]-cur.Attrs[k])*t
		}
		// leaving: the next edge runs along the plane
		emit(v, dn >= 0 && edgeAA)
	}
	if len(out) < 3 {
		return out[:0], 0
	}
	return out, outAA
}

// ClipPolygon clips a convex polygon against the near and far planes and,
// when a vertex still has w <= 0, against the x and y planes as well. aa has
// bit i set when edge i -> i+1 is antialiased; the returned mask describes
// the output edges. Fewer than three output vertices means the polygon is
// invisible.
func ClipPolygon(in []ClipVertex, aa uint16, nattrs int) ([]ClipVertex, uint16) {
	var bufA, bufB [maxPoints]ClipVertex
	cur := append(bufA[:0], in...)
	next := bufB[:0]
	for _, p := range [...]plane{planeNear, planeFar} {
		next, aa = clipPlane(cur, aa, p, nattrs, next)
		cur, next = next, cur
		if len(cur) == 0 {
			return nil, 0
		}
	}
	if behindEye(cur) {
		for _, p := range [...]plane{planeLeft, planeRight, planeBottom, planeTop} {
			next, aa = clipPlane(cur, aa, p, nattrs, next)
			cur, next = next, cur
			if len(cur) == 0 {
				return nil, 0
			}
		}
	}
	out := make([]ClipVertex, len(cur))
	copy(out, cur)
	return out, aa
}

func behindEye(vs []ClipVertex) bool {
	for i := range vs {
		if vs[i].Pos[3] <= 0 {
			return true
		}
	}
	return false
}
