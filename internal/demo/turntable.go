// Package demo generates procedural scenes for the bench tool and for
// end-to-end tests.
package demo

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/internal/engine/anim"
	"github.com/Faultbox/scenecore/internal/engine/bounds"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Camera names in a turntable scene.
const (
	MainCamera = "main"
	TopCamera  = "top"
)

// Options shapes the turntable.
type Options struct {
	// Instances is the number of cubes on the ring.
	Instances int
	// Radius of the ring.
	Radius float32
	// Period is the time of one full revolution.
	Period float32
	// CubeSize is the edge length of every cube.
	CubeSize float32
}

// DefaultOptions returns a small ring that fits the main camera.
func DefaultOptions() Options {
	return Options{
		Instances: 12,
		Radius:    4,
		Period:    8,
		CubeSize:  0.5,
	}
}

// Turntable returns a plate spinning about Y with cubes bobbing on its rim,
// a perspective camera looking at it from the side and an orthographic one
// from above.
//
// Node layout: world(turntable(plate, cube_0..cube_n-1), main_rig, top_rig).
func Turntable(opts Options) scene.Desc {
	var d scene.Desc

	addNode := func(n scene.NodeDesc) scene.NodeID {
		d.Nodes = append(d.Nodes, n)
		return scene.NodeID(len(d.Nodes) - 1)
	}

	d.Meshes = []scene.MeshDesc{
		{Name: "cube", Positions: cube(opts.CubeSize)},
		{Name: "plate", Positions: disc(opts.Radius+opts.CubeSize, 16)},
	}
	const cubeMesh, plateMesh scene.MeshID = 0, 1

	world := addNode(scene.NewNodeDesc("world"))
	d.Roots = []scene.NodeID{world}

	table := addNode(scene.NewNodeDesc("turntable"))
	d.Nodes[world].Children = append(d.Nodes[world].Children, table)
	d.Drivers = append(d.Drivers, spin(table, opts.Period))

	plate := scene.NewNodeDesc("plate")
	plate.Mesh = plateMesh.Ref()
	plateID := addNode(plate)
	d.Nodes[table].Children = append(d.Nodes[table].Children, plateID)

	for i := 0; i < opts.Instances; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(opts.Instances)
		s, c := math32.Sincos(angle)
		pos := math.Vec3{X: opts.Radius * c, Y: opts.CubeSize / 2, Z: opts.Radius * s}

		n := scene.NewNodeDesc(fmt.Sprintf("cube_%d", i))
		n.Mesh = cubeMesh.Ref()
		n.Translation = pos
		id := addNode(n)
		d.Nodes[table].Children = append(d.Nodes[table].Children, id)

		// Every other cube bobs, half a period out of phase with its
		// neighbour.
		if i%2 == 0 {
			d.Drivers = append(d.Drivers, bob(id, pos, opts.CubeSize, opts.Period, i%4 == 0))
		}
	}

	d.Cameras = []scene.Camera{
		{Name: MainCamera, Kind: scene.Perspective, YFov: math32.Pi / 3, ZNear: 0.1, ZFar: 100},
		{Name: TopCamera, Kind: scene.Orthographic, XMag: opts.Radius + opts.CubeSize, YMag: opts.Radius + opts.CubeSize, ZNear: 0.1, ZFar: 50},
	}

	// The main camera sits back and above, pitched down at the center.
	height, dist := opts.Radius*0.75, opts.Radius*3
	mainRig := scene.NewNodeDesc("main_rig")
	mainRig.Camera = scene.CameraID(0).Ref()
	mainRig.Translation = math.Vec3{Y: height, Z: dist}
	mainRig.Rotation = math.QuatFromAxisAngle(math.Vec3{X: 1}, -math32.Atan2(height, dist))
	mainID := addNode(mainRig)

	topRig := scene.NewNodeDesc("top_rig")
	topRig.Camera = scene.CameraID(1).Ref()
	topRig.Translation = math.Vec3{Y: 20}
	topRig.Rotation = math.QuatFromAxisAngle(math.Vec3{X: 1}, -math32.Pi/2)
	topID := addNode(topRig)

	d.Nodes[world].Children = append(d.Nodes[world].Children, mainID, topID)

	return d
}

// spin turns node once about Y per period in quarter turns, so every
// keyframe pair is 90 degrees apart.
func spin(node scene.NodeID, period float32) scene.DriverDesc {
	const steps = 4
	times := make([]float32, 0, steps+1)
	values := make([]float32, 0, 4*(steps+1))
	for i := 0; i <= steps; i++ {
		q := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 2*math32.Pi*float32(i)/steps)
		times = append(times, period*float32(i)/steps)
		values = append(values, q.X, q.Y, q.Z, q.W)
	}
	return scene.DriverDesc{
		Node:    node,
		Channel: anim.Rotation,
		Mode:    anim.Slerp,
		Times:   times,
		Values:  values,
	}
}

// bob lifts node by size and back over one period.
func bob(node scene.NodeID, pos math.Vec3, size, period float32, upFirst bool) scene.DriverDesc {
	low, high := pos, pos.Add(math.Vec3{Y: size})
	if !upFirst {
		low, high = high, low
	}
	return scene.DriverDesc{
		Node:    node,
		Channel: anim.Translation,
		Mode:    anim.Linear,
		Times:   []float32{0, period / 2, period},
		Values: []float32{
			low.X, low.Y, low.Z,
			high.X, high.Y, high.Z,
			low.X, low.Y, low.Z,
		},
	}
}

func cube(size float32) bounds.SliceAccessor {
	h := size / 2
	points := make(bounds.SliceAccessor, len(bounds.UnitCorners))
	for i, c := range bounds.UnitCorners {
		points[i] = c.Scale(h)
	}
	return points
}

// disc returns n points on a circle in the XZ plane. Its box is flat.
func disc(radius float32, n int) bounds.SliceAccessor {
	points := make(bounds.SliceAccessor, n)
	for i := range points {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(n))
		points[i] = math.Vec3{X: radius * c, Z: radius * s}
	}
	return points
}
