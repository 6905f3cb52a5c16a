// Package culling decides whether an oriented bounding box is visible from a
// camera. The test never reports a visible box as hidden; it may report a
// hidden box as visible in degenerate cases.
package culling

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/internal/engine/bounds"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Stage names the test that decided a Classify call.
type Stage uint8

const (
	// Outside: every face was clipped away and the volume is not enclosed.
	Outside Stage = iota
	// CornerInside: some corner lies in the clip volume.
	CornerInside
	// PlaneReject: all corners are outside a single half-space.
	PlaneReject
	// FaceClip: a face keeps area after clipping against every half-space.
	FaceClip
	// Contains: the box encloses the whole clip volume.
	Contains

	NumStages = 5
)

// String returns a short stage name for logs.
func (s Stage) String() string {
	switch s {
	case Outside:
		return "outside"
	case CornerInside:
		return "corner"
	case PlaneReject:
		return "plane"
	case FaceClip:
		return "clip"
	case Contains:
		return "contains"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Result is the outcome of Classify.
type Result struct {
	Visible bool
	Stage   Stage
}

// faces lists each box face as a cycle of corner indices into
// bounds.UnitCorners.
var faces = [6][4]int{
	{0, 2, 6, 4}, // -X
	{1, 3, 7, 5}, // +X
	{0, 1, 5, 4}, // -Y
	{2, 3, 7, 6}, // +Y
	{0, 1, 3, 2}, // -Z
	{4, 5, 7, 6}, // +Z
}

// volumeCenter is a point strictly inside the clip volume.
var volumeCenter = math.Vec4{0, 0, 0.5, 1}

// InsideFrustum reports whether box, placed by model, intersects the clip
// volume -w<=x<=w, -w<=y<=w, 0<=z<=w of projection*view.
func InsideFrustum(box bounds.OBB, projection, view, model math.Mat4) bool {
	return Classify(box, projection, view, model).Visible
}

// Classify is InsideFrustum that also reports which stage decided.
func Classify(box bounds.OBB, projection, view, model math.Mat4) Result {
	clip := projection.Mul(view).Mul(model).Mul(box.Matrix())

	var corners [8]math.Vec4
	for i, c := range bounds.UnitCorners {
		corners[i] = clip.MulVec4(c.Vec4(1))
		if insideVolume(corners[i]) {
			return Result{Visible: true, Stage: CornerInside}
		}
	}

	for h := halfSpace(0); h < numHalfSpaces; h++ {
		all := true
		for _, c := range corners {
			if !outside(c, h) {
				all = false
				break
			}
		}
		if all {
			return Result{Visible: false, Stage: PlaneReject}
		}
	}

	for _, f := range faces {
		quad := [4]math.Vec4{corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]}
		if faceSurvives(quad) {
			return Result{Visible: true, Stage: FaceClip}
		}
	}

	// No face reaches into the volume, so the volume is either wholly
	// inside the box or wholly outside it. One interior point decides.
	if enclosesVolume(clip) {
		return Result{Visible: true, Stage: Contains}
	}
	return Result{Visible: false, Stage: Outside}
}

// enclosesVolume maps volumeCenter back into unit-cube space. A singular
// mapping means a flat box, which cannot enclose anything; a projectively
// flipped one answers true.
func enclosesVolume(clip math.Mat4) bool {
	inv, ok := clip.InverseOK()
	if !ok {
		return false
	}
	p := inv.MulVec4(volumeCenter)
	if !(p[3] > 1e-12) {
		return true
	}
	q := p.Vec3().Scale(1 / p[3])
	return math32.Abs(q.X) <= 1 && math32.Abs(q.Y) <= 1 && math32.Abs(q.Z) <= 1
}
