// Package camera provides a free orbit camera for viewing a scene that has
// no camera of its own.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the XZ plane
	Yaw      float32 // radians about Y, 0 looks down -Z

	// Perspective
	FOV       float32 // vertical, radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:    15,
		Pitch:       0.35,
		FOV:         math32.Pi / 3,
		Near:        0.1,
		Far:         1000,
		MinDistance: 0.5,
		MaxDistance: 5000,
		MinPitch:    -1.5,
		MaxPitch:    1.5,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// Projection returns a zero-to-one depth perspective for the given aspect.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	return math.PerspectiveZO(c.FOV, aspect, c.Near, c.Far)
}

// Orbit rotates the camera about its center. Pitch is clamped.
func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.Yaw = math32.Mod(c.Yaw+deltaYaw, 2*math32.Pi)
	c.Pitch = clamp(c.Pitch+deltaPitch, c.MinPitch, c.MaxPitch)
}

// Zoom scales the distance by 1-delta, clamped.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToPoints centers the camera on the points' bounding sphere and backs off
// until the sphere fills the vertical field of view. Near and Far are
// adjusted to keep the sphere between them.
func (c *OrbitCamera) FitToPoints(points []math.Vec3) {
	if len(points) == 0 {
		return
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = math.Vec3{X: math32.Min(lo.X, p.X), Y: math32.Min(lo.Y, p.Y), Z: math32.Min(lo.Z, p.Z)}
		hi = math.Vec3{X: math32.Max(hi.X, p.X), Y: math32.Max(hi.Y, p.Y), Z: math32.Max(hi.Z, p.Z)}
	}

	c.Center = lo.Add(hi).Scale(0.5)
	radius := math32.Max(lo.Distance(hi)/2, 1e-3)

	c.Distance = clamp(radius/math32.Sin(c.FOV/2), c.MinDistance, c.MaxDistance)
	c.Near = math32.Max(c.Distance-radius, c.Distance*1e-3)
	c.Far = c.Distance + radius
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
