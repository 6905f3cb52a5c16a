package culling

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/scenecore/internal/engine/bounds"
	"github.com/Faultbox/scenecore/pkg/math"
)

var (
	fov90 = float32(stdmath.Pi / 2)
	eye   = math.Vec3{Z: 5}
)

func camera() (projection, view math.Mat4) {
	return math.PerspectiveZO(fov90, 1, 0.1, 100),
		math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
}

func axisBox(center, extent math.Vec3) bounds.OBB {
	return bounds.OBB{
		Center: center,
		Extent: extent,
		Axes:   [3]math.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
	}
}

func unitBox() bounds.OBB {
	return axisBox(math.Vec3{}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
}

func TestInsideFrustumSanity(t *testing.T) {
	proj, view := camera()

	assert.True(t, InsideFrustum(unitBox(), proj, view, math.Identity()))
	assert.False(t, InsideFrustum(unitBox(), proj, view, math.Translate(1e6, 0, 0)))
}

func TestClassifyStages(t *testing.T) {
	proj, view := camera()
	s := float32(stdmath.Sqrt2 / 2)

	tests := []struct {
		name  string
		box   bounds.OBB
		model math.Mat4
		want  Result
	}{
		{
			name:  "corner in view",
			box:   unitBox(),
			model: math.Identity(),
			want:  Result{Visible: true, Stage: CornerInside},
		},
		{
			name:  "far to the right",
			box:   unitBox(),
			model: math.Translate(1e6, 0, 0),
			want:  Result{Visible: false, Stage: PlaneReject},
		},
		{
			name:  "behind the camera",
			box:   unitBox(),
			model: math.Translate(0, 0, 20),
			want:  Result{Visible: false, Stage: PlaneReject},
		},
		{
			name:  "past the far plane",
			box:   unitBox(),
			model: math.Translate(0, 0, -200),
			want:  Result{Visible: false, Stage: PlaneReject},
		},
		{
			// A wall across the view: every corner is off to the sides
			// but the face spans the whole frustum cross-section.
			name:  "wall wider than the frustum",
			box:   axisBox(math.Vec3{Z: -45}, math.Vec3{X: 1000, Y: 1000, Z: 10}),
			model: math.Identity(),
			want:  Result{Visible: true, Stage: FaceClip},
		},
		{
			// Encloses eye, near and far planes; no corner and no face is
			// inside the volume.
			name:  "box around the camera",
			box:   axisBox(math.Vec3{}, math.Vec3{X: 1000, Y: 1000, Z: 1000}),
			model: math.Identity(),
			want:  Result{Visible: true, Stage: Contains},
		},
		{
			// A diamond beyond the top-right frustum edge: each corner
			// fails a different plane, yet the shapes do not touch.
			name: "diamond off the frustum corner",
			box: bounds.OBB{
				Center: math.Vec3{X: 14, Y: 14, Z: -5},
				Extent: math.Vec3{X: 6 * s, Y: 6 * s, Z: 0.1},
				Axes:   [3]math.Vec3{{X: s, Y: s}, {X: -s, Y: s}, {Z: 1}},
			},
			model: math.Identity(),
			want:  Result{Visible: false, Stage: Outside},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.box, proj, view, tt.model)
			assert.Equal(t, tt.want, got, "stage %s", got.Stage)
		})
	}
}

func TestInsideFrustumModelRotation(t *testing.T) {
	proj, view := camera()
	// A long thin box pointing along +X, placed to the right of the view.
	box := axisBox(math.Vec3{X: 45}, math.Vec3{X: 30, Y: 0.5, Z: 0.5})

	assert.False(t, InsideFrustum(box, proj, view, math.Translate(0, 0, -5)))
	// Swung round to point down -Z it runs straight through the view.
	swing := math.Translate(0, 0, -5).Mul(math.RotateY(fov90))
	assert.True(t, InsideFrustum(box, proj, view, swing))
}

func TestInsideFrustumOrthographic(t *testing.T) {
	proj := math.OrthoZO(-2, 2, -2, 2, 0.1, 10)
	_, view := camera()

	assert.True(t, InsideFrustum(unitBox(), proj, view, math.Identity()))
	assert.False(t, InsideFrustum(unitBox(), proj, view, math.Translate(3, 0, 0)))
	assert.False(t, InsideFrustum(unitBox(), proj, view, math.Translate(0, 0, -20)))
	// Straddles the right edge.
	assert.True(t, InsideFrustum(unitBox(), proj, view, math.Translate(2.25, 0, 0)))
}

func TestFlatBoxNeverEnclosesVolume(t *testing.T) {
	proj, view := camera()
	flat := axisBox(math.Vec3{}, math.Vec3{X: 1000, Y: 0, Z: 1000})

	// A ground plane under the camera is seen from above.
	assert.True(t, InsideFrustum(flat, proj, view, math.Translate(0, -1, 0)))
	// Far above the view it is outside, even though the box matrix is singular.
	assert.False(t, InsideFrustum(flat, proj, view, math.Translate(0, 500, 0)))
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "corner", CornerInside.String())
	assert.Equal(t, "contains", Contains.String())
	assert.Equal(t, "Stage(9)", Stage(9).String())
}
