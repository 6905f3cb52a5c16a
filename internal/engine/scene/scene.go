// Package scene holds a loaded scene graph: nodes, meshes, cameras and the
// animation drivers that move them, all owned by one Scene and referenced by
// integer handles.
package scene

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/scenecore/internal/engine/anim"
	"github.com/Faultbox/scenecore/internal/engine/bounds"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Scene construction errors.
var (
	ErrBadReference    = errors.New("reference out of range")
	ErrDuplicateDriver = errors.New("channel already has a driver")
	ErrCycle           = errors.New("node hierarchy contains a cycle")
)

// Handles into a Scene's arenas.
type (
	NodeID   int32
	MeshID   int32
	CameraID int32
)

const (
	NoMesh   MeshID   = -1
	NoCamera CameraID = -1
)

// Node is one element of the hierarchy. The static TRS fields are used for
// every channel without a driver.
type Node struct {
	ID          NodeID
	Name        string
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
	Children    []NodeID
	Mesh        MeshID
	Camera      CameraID
	Drivers     [anim.NumChannels]anim.DriverID
}

// Mesh is the part of a mesh visibility needs: its box in mesh space.
type Mesh struct {
	Name   string
	Bounds bounds.OBB
}

// Scene owns every entity of a loaded scene. Structure is immutable after
// New; only the timeline's cursors change. Not safe for concurrent use.
type Scene struct {
	// ID correlates log lines of one loaded scene.
	ID uuid.UUID

	nodes    []Node
	meshes   []Mesh
	cameras  []Camera
	roots    []NodeID
	timeline *anim.Timeline

	log *zap.Logger
}

// New validates desc and builds a Scene. All reference and driver errors are
// reported together; any error means no scene.
func New(desc Desc) (*Scene, error) {
	if err := validate(desc); err != nil {
		return nil, err
	}

	s := &Scene{
		ID:      uuid.New(),
		nodes:   make([]Node, len(desc.Nodes)),
		cameras: append([]Camera(nil), desc.Cameras...),
		roots:   append([]NodeID(nil), desc.Roots...),
	}
	s.log = logger.Named("scene").With(zap.Stringer("scene", s.ID))

	for i, nd := range desc.Nodes {
		n := Node{
			ID:          NodeID(i),
			Name:        nd.Name,
			Translation: nd.Translation,
			Rotation:    nd.Rotation,
			Scale:       nd.Scale,
			Children:    append([]NodeID(nil), nd.Children...),
			Mesh:        nd.Mesh.ID(),
			Camera:      nd.Camera.ID(),
		}
		if n.Rotation == (math.Quat{}) {
			n.Rotation = math.QuatIdentity()
		}
		if n.Scale == (math.Vec3{}) {
			n.Scale = math.Vec3One()
		}
		for c := range n.Drivers {
			n.Drivers[c] = anim.NoDriver
		}
		s.nodes[i] = n
	}

	drivers, err := s.buildDrivers(desc.Drivers)
	if err != nil {
		return nil, err
	}
	s.timeline = anim.NewTimeline(drivers)

	if s.meshes, err = buildMeshes(desc.Meshes); err != nil {
		return nil, err
	}

	minTime, maxTime := s.timeline.Bounds()
	s.log.Info("scene loaded",
		zap.Int("nodes", len(s.nodes)),
		zap.Int("meshes", len(s.meshes)),
		zap.Int("cameras", len(s.cameras)),
		zap.Int("drivers", len(drivers)),
		zap.Int("roots", len(s.roots)),
		zap.Float32("min_time", minTime),
		zap.Float32("max_time", maxTime))

	return s, nil
}

// validate checks every handle in desc and that the hierarchy has no cycle.
func validate(desc Desc) error {
	var errs error
	numNodes := len(desc.Nodes)

	for i, r := range desc.Roots {
		if r < 0 || int(r) >= numNodes {
			errs = multierr.Append(errs, fmt.Errorf("%w: root %d is node %d of %d", ErrBadReference, i, r, numNodes))
		}
	}
	for i, nd := range desc.Nodes {
		for _, c := range nd.Children {
			if c < 0 || int(c) >= numNodes {
				errs = multierr.Append(errs, fmt.Errorf("%w: node %d (%s) child %d of %d", ErrBadReference, i, nd.Name, c, numNodes))
			}
		}
		if m := nd.Mesh.ID(); m != NoMesh && (m < 0 || int(m) >= len(desc.Meshes)) {
			errs = multierr.Append(errs, fmt.Errorf("%w: node %d (%s) mesh %d of %d", ErrBadReference, i, nd.Name, m, len(desc.Meshes)))
		}
		if c := nd.Camera.ID(); c != NoCamera && (c < 0 || int(c) >= len(desc.Cameras)) {
			errs = multierr.Append(errs, fmt.Errorf("%w: node %d (%s) camera %d of %d", ErrBadReference, i, nd.Name, c, len(desc.Cameras)))
		}
	}
	for i, md := range desc.Meshes {
		if md.Positions == nil {
			errs = multierr.Append(errs, fmt.Errorf("mesh %d (%s): %w", i, md.Name, bounds.ErrNoVertices))
		}
	}
	for i, dd := range desc.Drivers {
		if dd.Node < 0 || int(dd.Node) >= numNodes {
			errs = multierr.Append(errs, fmt.Errorf("%w: driver %d targets node %d of %d", ErrBadReference, i, dd.Node, numNodes))
		}
	}
	if errs != nil {
		return errs
	}

	return findCycle(desc.Nodes)
}

// findCycle runs a colouring DFS over every node, roots or not.
func findCycle(nodes []NodeDesc) error {
	const (
		white = iota
		grey
		black
	)
	state := make([]uint8, len(nodes))

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		state[id] = grey
		for _, c := range nodes[id].Children {
			switch state[c] {
			case grey:
				return fmt.Errorf("%w: node %d (%s) -> %d (%s)", ErrCycle, id, nodes[id].Name, c, nodes[c].Name)
			case white:
				if err := visit(c); err != nil {
					return err
				}
			}
		}
		state[id] = black
		return nil
	}

	for i := range nodes {
		if state[i] == white {
			if err := visit(NodeID(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildDrivers creates the drivers and binds each to its node's channel.
func (s *Scene) buildDrivers(descs []DriverDesc) ([]*anim.Driver, error) {
	var errs error
	drivers := make([]*anim.Driver, 0, len(descs))

	for i, dd := range descs {
		d, err := anim.NewDriver(dd.Channel, dd.Mode, dd.Times, dd.Values)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("driver %d (node %d): %w", i, dd.Node, err))
			continue
		}
		n := &s.nodes[dd.Node]
		if n.Drivers[dd.Channel] != anim.NoDriver {
			errs = multierr.Append(errs, fmt.Errorf("%w: driver %d, node %d (%s) %s",
				ErrDuplicateDriver, i, dd.Node, n.Name, dd.Channel))
			continue
		}
		n.Drivers[dd.Channel] = anim.DriverID(len(drivers))
		drivers = append(drivers, d)
	}

	if errs != nil {
		return nil, errs
	}
	return drivers, nil
}

// buildMeshes computes every mesh's box in parallel.
func buildMeshes(descs []MeshDesc) ([]Mesh, error) {
	meshes := make([]Mesh, len(descs))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, md := range descs {
		i, md := i, md
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var (
				box bounds.OBB
				err error
			)
			if md.AxisX == (math.Vec3{}) && md.AxisY == (math.Vec3{}) {
				box, err = bounds.BuildDefault(md.Positions)
			} else {
				box, err = bounds.Build(md.Positions, md.AxisX, md.AxisY)
			}
			if err != nil {
				return fmt.Errorf("mesh %d (%s): %w", i, md.Name, err)
			}
			meshes[i] = Mesh{Name: md.Name, Bounds: box}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// NumNodes returns the number of nodes.
func (s *Scene) NumNodes() int { return len(s.nodes) }

// NumMeshes returns the number of meshes.
func (s *Scene) NumMeshes() int { return len(s.meshes) }

// NumCameras returns the number of cameras.
func (s *Scene) NumCameras() int { return len(s.cameras) }

// Node returns the node with the given handle.
func (s *Scene) Node(id NodeID) *Node { return &s.nodes[id] }

// Mesh returns the mesh with the given handle.
func (s *Scene) Mesh(id MeshID) *Mesh { return &s.meshes[id] }

// Camera returns the camera with the given handle.
func (s *Scene) Camera(id CameraID) Camera { return s.cameras[id] }

// Roots returns the top-level nodes in traversal order.
func (s *Scene) Roots() []NodeID { return s.roots }

// Timeline returns the scene's drivers.
func (s *Scene) Timeline() *anim.Timeline { return s.timeline }

// Bounds returns the scene time range, 0/0 without drivers.
func (s *Scene) Bounds() (minTime, maxTime float32) {
	return s.timeline.Bounds()
}

// NodeByName returns the first node with the given name.
func (s *Scene) NodeByName(name string) (NodeID, bool) {
	for i := range s.nodes {
		if s.nodes[i].Name == name {
			return NodeID(i), true
		}
	}
	return 0, false
}

// CameraByName returns the first camera with the given name.
func (s *Scene) CameraByName(name string) (CameraID, bool) {
	for i := range s.cameras {
		if s.cameras[i].Name == name {
			return CameraID(i), true
		}
	}
	return NoCamera, false
}

// Reset rewinds playback: every driver cursor goes to its first keyframe.
func (s *Scene) Reset() {
	s.timeline.Reset()
	s.log.Debug("playback reset")
}
