package math

import "github.com/chewxy/math32"

// slerpEpsilon is the smallest sin(theta) Slerp divides by. float32 acos
// cannot resolve angles much below 4e-4 next to +-1, so anything under this
// is treated as parallel or antiparallel.
const slerpEpsilon = 1e-3

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// QuatFromSlice reads a quaternion stored as x, y, z, w.
func QuatFromSlice(v []float32) Quat {
	return Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Slerp interpolates along the great arc from q to other, u in [0, 1].
//
// The arc is taken as given: no sign flip toward the shorter path, so
// keyframes authored with a sign change rotate the long way round exactly as
// stored. When sin(theta) is too small to divide by (q and other parallel or
// antiparallel) the nearest endpoint is returned.
func (q Quat) Slerp(other Quat, u float32) Quat {
	dot := q.Dot(other)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	theta := math32.Acos(dot)
	sinTheta := math32.Sin(theta)
	if sinTheta < slerpEpsilon {
		if u < 0.5 {
			return q
		}
		return other
	}

	s0 := math32.Sin((1-u)*theta) / sinTheta
	s1 := math32.Sin(u*theta) / sinTheta

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	// Normalize first
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
