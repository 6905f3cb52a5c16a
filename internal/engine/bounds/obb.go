// Package bounds builds oriented bounding boxes for meshes.
package bounds

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// Construction errors.
var (
	ErrNoVertices     = errors.New("mesh has no vertices")
	ErrDegenerateAxes = errors.New("bounding box axis hints are zero or parallel")
)

// Accessor yields mesh vertex positions by index. Indices outside
// [0, Len()) are a precondition violation and must panic.
type Accessor interface {
	Len() int
	Position(i int) math.Vec3
}

// OBB is an oriented bounding box: Axes is an orthonormal right-handed
// basis, Center is in mesh space and Extent holds the half-size along each
// axis.
type OBB struct {
	Center math.Vec3
	Extent math.Vec3
	Axes   [3]math.Vec3
}

// BuildDefault builds a box aligned with the mesh's X and Y axes.
func BuildDefault(src Accessor) (OBB, error) {
	return Build(src, math.Vec3{X: 1}, math.Vec3{Y: 1})
}

// Build computes a box whose first axis is axisX and whose third axis is
// axisX × axisY, in a single pass over src.
func Build(src Accessor, axisX, axisY math.Vec3) (OBB, error) {
	x := axisX.Normalize()
	z := x.Cross(axisY)
	if x == (math.Vec3{}) || z.Length() < 1e-6 {
		return OBB{}, fmt.Errorf("%w: x=%v y=%v", ErrDegenerateAxes, axisX, axisY)
	}
	z = z.Normalize()
	y := z.Cross(x)

	n := src.Len()
	if n == 0 {
		return OBB{}, ErrNoVertices
	}

	lo := math.Vec3{X: math32.Inf(1), Y: math32.Inf(1), Z: math32.Inf(1)}
	hi := math.Vec3{X: math32.Inf(-1), Y: math32.Inf(-1), Z: math32.Inf(-1)}
	for i := 0; i < n; i++ {
		p := src.Position(i)
		px, py, pz := p.Dot(x), p.Dot(y), p.Dot(z)
		lo.X, hi.X = math32.Min(lo.X, px), math32.Max(hi.X, px)
		lo.Y, hi.Y = math32.Min(lo.Y, py), math32.Max(hi.Y, py)
		lo.Z, hi.Z = math32.Min(lo.Z, pz), math32.Max(hi.Z, pz)
	}

	mid := lo.Add(hi).Scale(0.5)
	return OBB{
		Center: x.Scale(mid.X).Add(y.Scale(mid.Y)).Add(z.Scale(mid.Z)),
		Extent: hi.Sub(lo).Scale(0.5),
		Axes:   [3]math.Vec3{x, y, z},
	}, nil
}

// Matrix maps the unit cube [-1, 1]^3 onto the box in mesh space.
func (b OBB) Matrix() math.Mat4 {
	return math.FromBasis(
		b.Axes[0].Scale(b.Extent.X),
		b.Axes[1].Scale(b.Extent.Y),
		b.Axes[2].Scale(b.Extent.Z),
		b.Center,
	)
}

// Corners returns the eight corners in mesh space. Corner i has sign bit 0
// for X, bit 1 for Y and bit 2 for Z set when that coordinate is positive.
func (b OBB) Corners() [8]math.Vec3 {
	var out [8]math.Vec3
	m := b.Matrix()
	for i, c := range UnitCorners {
		out[i] = m.TransformPoint(c)
	}
	return out
}

// UnitCorners are the corners of the cube [-1, 1]^3 in the order used by
// Corners.
var UnitCorners = [8]math.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
}
