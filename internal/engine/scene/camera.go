package scene

import (
	"fmt"

	"github.com/Faultbox/scenecore/pkg/math"
)

// CameraKind selects the projection a Camera builds.
type CameraKind uint8

const (
	Perspective CameraKind = iota
	Orthographic
)

// String returns the kind name used in scene files and logs.
func (k CameraKind) String() string {
	switch k {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("CameraKind(%d)", uint8(k))
	}
}

// Camera is a projection attached to a node. Only the fields of its Kind are
// read.
type Camera struct {
	Name string
	Kind CameraKind

	// Perspective: vertical field of view in radians and an optional fixed
	// aspect ratio. A zero AspectRatio follows the viewport.
	YFov        float32
	AspectRatio float32

	// Orthographic: half width and half height of the view volume.
	XMag, YMag float32

	ZNear, ZFar float32
}

// Projection returns the camera's projection for a viewport with the given
// width/height ratio. Depth maps to 0 <= z <= w. An unknown Kind yields the
// identity.
func (c Camera) Projection(aspect float32) math.Mat4 {
	switch c.Kind {
	case Perspective:
		if c.AspectRatio > 0 {
			aspect = c.AspectRatio
		}
		return math.PerspectiveZO(c.YFov, aspect, c.ZNear, c.ZFar)
	case Orthographic:
		return math.OrthoZO(-c.XMag, c.XMag, -c.YMag, c.YMag, c.ZNear, c.ZFar)
	default:
		return math.Identity()
	}
}
