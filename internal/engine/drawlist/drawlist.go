// Package drawlist turns a scene traversal into the ordered list of mesh
// instances a renderer would submit for one frame.
package drawlist

import (
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/scenecore/internal/engine/culling"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Instance is one mesh node to draw.
type Instance struct {
	Node  scene.NodeID
	Mesh  scene.MeshID
	World math.Mat4
}

// List holds a frame's instances in traversal order. The backing array is
// kept between frames.
type List struct {
	Instances []Instance
}

// Reset empties the list without releasing its storage.
func (l *List) Reset() {
	l.Instances = l.Instances[:0]
}

// Len returns the number of instances.
func (l *List) Len() int {
	return len(l.Instances)
}

// Options controls collection.
type Options struct {
	// Cull runs the frustum test on every mesh node. Without it every mesh
	// node is listed.
	Cull bool
	// MaxInstances stops the traversal once the list holds this many
	// instances. Zero means no limit.
	MaxInstances int
}

// Stats summarizes one Collect call.
type Stats struct {
	Nodes   int
	Meshes  int
	Visible int
	// Stages counts culling decisions by the stage that made them.
	Stages    [culling.NumStages]int
	Truncated bool
}

// Culled returns the number of mesh nodes the frustum test rejected.
func (s Stats) Culled() int {
	return s.Stages[culling.PlaneReject] + s.Stages[culling.Outside]
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("nodes", s.Nodes)
	enc.AddInt("meshes", s.Meshes)
	enc.AddInt("visible", s.Visible)
	for st := culling.Stage(0); st < culling.NumStages; st++ {
		if n := s.Stages[st]; n > 0 {
			enc.AddInt(st.String(), n)
		}
	}
	if s.Truncated {
		enc.AddBool("truncated", true)
	}
	return nil
}

// Collect traverses s at time and returns the visible mesh instances.
func Collect(s *scene.Scene, time float32, root, projection, view math.Mat4, opts Options) (List, Stats) {
	var l List
	stats := l.Collect(s, time, root, projection, view, opts)
	return l, stats
}

// Collect refills l from a traversal of s at time.
func (l *List) Collect(s *scene.Scene, time float32, root, projection, view math.Mat4, opts Options) Stats {
	l.Reset()
	var stats Stats

	s.Traverse(time, root, func(n *scene.Node, world math.Mat4) bool {
		stats.Nodes++
		if n.Mesh == scene.NoMesh {
			return true
		}
		stats.Meshes++

		if opts.Cull {
			r := culling.Classify(s.Mesh(n.Mesh).Bounds, projection, view, world)
			stats.Stages[r.Stage]++
			if !r.Visible {
				return true
			}
		}

		l.Instances = append(l.Instances, Instance{Node: n.ID, Mesh: n.Mesh, World: world})
		stats.Visible++
		if opts.MaxInstances > 0 && len(l.Instances) >= opts.MaxInstances {
			stats.Truncated = true
			return false
		}
		return true
	})

	return stats
}
