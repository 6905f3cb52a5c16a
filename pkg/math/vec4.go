package math

// Vec4 is a 4-component vector, used for homogeneous coordinates.
type Vec4 [4]float32

// Lerp returns the point at parameter t on the segment from v to other.
func (v Vec4) Lerp(other Vec4, t float32) Vec4 {
	return Vec4{
		v[0] + t*(other[0]-v[0]),
		v[1] + t*(other[1]-v[1]),
		v[2] + t*(other[2]-v[2]),
		v[3] + t*(other[3]-v[3]),
	}
}

// Vec3 drops w without dividing.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
