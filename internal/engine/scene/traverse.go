package scene

import (
	"github.com/Faultbox/scenecore/internal/engine/anim"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Visitor is called once per reachable node with its world transform.
// Returning false stops the whole traversal.
type Visitor func(node *Node, world math.Mat4) bool

// Traverse brings every driver to time, then walks the hierarchy from the
// roots in pre-order, roots and children in declared order. root is applied
// above every top-level node. Traverse returns false iff visit stopped it.
func (s *Scene) Traverse(time float32, root math.Mat4, visit Visitor) bool {
	s.timeline.Seek(time)
	for _, id := range s.roots {
		if !s.walk(id, time, root, visit) {
			return false
		}
	}
	return true
}

func (s *Scene) walk(id NodeID, time float32, parent math.Mat4, visit Visitor) bool {
	n := &s.nodes[id]
	world := parent.Mul(s.local(n, time))
	if !visit(n, world) {
		return false
	}
	for _, c := range n.Children {
		if !s.walk(c, time, world, visit) {
			return false
		}
	}
	return true
}

// local returns Translate(t)·Rotate(r)·Scale(s) with driven channels
// replacing the static fields.
func (s *Scene) local(n *Node, time float32) math.Mat4 {
	t, r, sc := n.Translation, n.Rotation, n.Scale
	if id := n.Drivers[anim.Translation]; id != anim.NoDriver {
		t = s.timeline.Driver(id).EvaluateVec3(time)
	}
	if id := n.Drivers[anim.Rotation]; id != anim.NoDriver {
		r = s.timeline.Driver(id).EvaluateQuat(time)
	}
	if id := n.Drivers[anim.Scale]; id != anim.NoDriver {
		sc = s.timeline.Driver(id).EvaluateVec3(time)
	}
	return math.Compose(t, r, sc)
}

// CameraView is a camera node located by FindCamera.
type CameraView struct {
	Node   NodeID
	Camera Camera
	World  math.Mat4
	// View is the inverse of World.
	View math.Mat4
}

// FindCamera traverses the scene at time and returns the first node, in
// traversal order, carrying a camera called name. The walk stops at that
// node.
func (s *Scene) FindCamera(time float32, root math.Mat4, name string) (CameraView, bool) {
	var found CameraView
	ok := false
	s.Traverse(time, root, func(n *Node, world math.Mat4) bool {
		if n.Camera == NoCamera || s.cameras[n.Camera].Name != name {
			return true
		}
		found = CameraView{
			Node:   n.ID,
			Camera: s.cameras[n.Camera],
			World:  world,
			View:   world.Inverse(),
		}
		ok = true
		return false
	})
	return found, ok
}
