package scene

import (
	"github.com/Faultbox/scenecore/internal/engine/anim"
	"github.com/Faultbox/scenecore/internal/engine/bounds"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Desc is everything a loader hands over to build a Scene. Cross references
// are indices into the Desc's own slices.
type Desc struct {
	Nodes   []NodeDesc
	Meshes  []MeshDesc
	Cameras []Camera
	Drivers []DriverDesc
	// Roots lists the top-level nodes in traversal order.
	Roots []NodeID
}

// MeshRef is an optional mesh reference in a NodeDesc: Desc.Meshes[i] is
// MeshRef(i+1) and the zero value attaches nothing.
type MeshRef int32

// Ref returns the NodeDesc reference to mesh id.
func (id MeshID) Ref() MeshRef { return MeshRef(id + 1) }

// ID returns the mesh handle, NoMesh for the zero reference.
func (r MeshRef) ID() MeshID { return MeshID(r) - 1 }

// CameraRef is an optional camera reference in a NodeDesc: Desc.Cameras[i]
// is CameraRef(i+1) and the zero value attaches nothing.
type CameraRef int32

// Ref returns the NodeDesc reference to camera id.
func (id CameraID) Ref() CameraRef { return CameraRef(id + 1) }

// ID returns the camera handle, NoCamera for the zero reference.
func (r CameraRef) ID() CameraID { return CameraID(r) - 1 }

// NodeDesc describes one node. Every zero field reads as absent: no mesh,
// no camera, identity rotation and a (1,1,1) scale, matching a loader that
// leaves absent fields unset.
type NodeDesc struct {
	Name        string
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
	Children    []NodeID
	Mesh        MeshRef
	Camera      CameraRef
}

// NewNodeDesc returns an empty node with identity transform.
func NewNodeDesc(name string, children ...NodeID) NodeDesc {
	return NodeDesc{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One(),
		Children: children,
	}
}

// MeshDesc supplies the vertex positions a mesh's bounding box is built
// from. Zero axis hints select the mesh's local X and Y axes.
type MeshDesc struct {
	Name         string
	Positions    bounds.Accessor
	AxisX, AxisY math.Vec3
}

// DriverDesc animates one channel of one node.
type DriverDesc struct {
	Node    NodeID
	Channel anim.Channel
	Mode    anim.Interpolation
	Times   []float32
	Values  []float32
}
