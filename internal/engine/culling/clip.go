package culling

import "github.com/Faultbox/scenecore/pkg/math"

// maxPolyVerts bounds a clipped face: four corners plus at most one new
// vertex per half-space, with slack for vertices duplicated at a tangent.
const maxPolyVerts = 16

// halfSpace is one inequality of the canonical clip volume.
type halfSpace uint8

const (
	xMin halfSpace = iota // -w <= x
	xMax                  // x <= w
	yMin                  // -w <= y
	yMax                  // y <= w
	zMin                  // 0 <= z
	zMax                  // z <= w
	numHalfSpaces
)

// terms returns l and r such that v satisfies h iff l <= r. Both sides are
// linear in v, so along a segment they interpolate linearly too.
func terms(v math.Vec4, h halfSpace) (l, r float32) {
	switch h {
	case xMin:
		return -v[3], v[0]
	case xMax:
		return v[0], v[3]
	case yMin:
		return -v[3], v[1]
	case yMax:
		return v[1], v[3]
	case zMin:
		return 0, v[2]
	default:
		return v[2], v[3]
	}
}

func outside(v math.Vec4, h halfSpace) bool {
	l, r := terms(v, h)
	return l > r
}

func insideVolume(v math.Vec4) bool {
	for h := halfSpace(0); h < numHalfSpaces; h++ {
		if outside(v, h) {
			return false
		}
	}
	return true
}

// admissible solves l + t*dl <= r + t*dr for t in [0, 1]. The three
// branches keep the division away from non-positive denominators.
func admissible(l, dl, r, dr float32) (t0, t1 float32, ok bool) {
	t0, t1 = 0, 1
	switch {
	case dr == dl:
		if l-r > 0 {
			return 0, 0, false
		}
	case dr > dl:
		if t := (l - r) / (dr - dl); t > t0 {
			t0 = t
		}
	default:
		if t := (r - l) / (dl - dr); t < t1 {
			t1 = t
		}
	}
	if t0 > t1 {
		return 0, 0, false
	}
	return t0, t1, true
}

// clipPolygon clips the closed polygon in against h into out. Each edge
// emits the start of its admissible interval and, when the interval ends
// before the edge does, the exit point; an end at t=1 is the next edge's
// start. overflow reports that out was too small.
func clipPolygon(in []math.Vec4, h halfSpace, out *[maxPolyVerts]math.Vec4) (n int, overflow bool) {
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		la, ra := terms(a, h)
		lb, rb := terms(b, h)

		t0, t1, ok := admissible(la, lb-la, ra, rb-ra)
		if !ok {
			continue
		}
		if n+2 > maxPolyVerts {
			return n, true
		}
		out[n] = a.Lerp(b, t0)
		n++
		if t1 < 1 && t1 > t0 {
			out[n] = a.Lerp(b, t1)
			n++
		}
	}
	return n, false
}

// faceSurvives clips one box face against every half-space in turn and
// reports whether a polygon of at least three vertices is left.
func faceSurvives(face [4]math.Vec4) bool {
	var bufs [2][maxPolyVerts]math.Vec4
	copy(bufs[0][:], face[:])
	n := len(face)

	for h := halfSpace(0); h < numHalfSpaces; h++ {
		src, dst := &bufs[h%2], &bufs[(h+1)%2]
		var overflow bool
		n, overflow = clipPolygon(src[:n], h, dst)
		if overflow {
			return true
		}
		if n <= 2 {
			return false
		}
	}
	return true
}
