// Package bench implements the headless playback loop: advance the playhead,
// traverse, cull and tally what a renderer would have drawn.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/demo"
	"github.com/Faultbox/scenecore/internal/engine/bounds"
	"github.com/Faultbox/scenecore/internal/engine/camera"
	"github.com/Faultbox/scenecore/internal/engine/culling"
	"github.com/Faultbox/scenecore/internal/engine/drawlist"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/pkg/math"
)

// orbitRate is the orbit camera's yaw speed in radians per scene second.
const orbitRate = 0.25

// Report totals a run.
type Report struct {
	Frames    int
	Instances int
	Culled    int
	Stages    [culling.NumStages]int
	Loops     int
	Elapsed   time.Duration
}

// Bench plays one scene.
type Bench struct {
	cfg   *config.Config
	scene *scene.Scene
	log   *zap.Logger

	// Playhead
	time, step float32
	minTime    float32
	maxTime    float32

	orbit    *camera.OrbitCamera
	useOrbit bool
	list     drawlist.List
}

// New builds the demo scene described by cfg.
func New(cfg *config.Config) (*Bench, error) {
	s, err := scene.New(demo.Turntable(demo.Options{
		Instances: cfg.Demo.Instances,
		Radius:    cfg.Demo.Radius,
		Period:    cfg.Demo.Period,
		CubeSize:  cfg.Demo.CubeSize,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to build demo scene: %w", err)
	}
	return NewWithScene(cfg, s), nil
}

// NewWithScene plays an already built scene.
func NewWithScene(cfg *config.Config, s *scene.Scene) *Bench {
	b := &Bench{
		cfg:   cfg,
		scene: s,
		log:   logger.Named("bench").With(zap.Stringer("scene", s.ID)),
		step:  cfg.Playback.Speed / cfg.Playback.FrameRate,
	}
	b.minTime, b.maxTime = s.Bounds()
	b.time = b.minTime
	if b.step < 0 {
		b.time = b.maxTime
	}

	b.orbit = camera.NewOrbitCamera()
	b.orbit.FOV = cfg.Camera.FOV * math32.Pi / 180
	b.orbit.Yaw = cfg.Camera.Yaw * math32.Pi / 180
	b.orbit.Pitch = cfg.Camera.Pitch * math32.Pi / 180
	b.orbit.Distance = cfg.Camera.Distance
	b.orbit.MinDistance = cfg.Camera.Distance

	b.useOrbit = cfg.Camera.Name == ""
	if !b.useOrbit {
		if _, ok := s.CameraByName(cfg.Camera.Name); !ok {
			b.log.Warn("camera not found, using orbit camera", zap.String("camera", cfg.Camera.Name))
			b.useOrbit = true
		}
	}
	if b.useOrbit {
		b.orbit.FitToPoints(b.meshCorners())
	}

	return b
}

// Run plays cfg.Playback.Frames frames or until ctx is done.
func (b *Bench) Run(ctx context.Context) (Report, error) {
	var rep Report
	start := time.Now()

	b.log.Info("starting playback",
		zap.Int("frames", b.cfg.Playback.Frames),
		zap.Float32("step", b.step),
		zap.Float32("min_time", b.minTime),
		zap.Float32("max_time", b.maxTime),
		zap.Bool("orbit", b.useOrbit),
		zap.Bool("cull", b.cfg.Culling.Enabled))

	for frame := 0; frame < b.cfg.Playback.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			rep.Elapsed = time.Since(start)
			return rep, err
		}

		stats, err := b.render()
		if err != nil {
			return rep, fmt.Errorf("frame %d: %w", frame, err)
		}

		rep.Frames++
		rep.Instances += stats.Visible
		rep.Culled += stats.Culled()
		for i, n := range stats.Stages {
			rep.Stages[i] += n
		}
		b.log.Debug("frame",
			zap.Int("frame", frame),
			zap.Float32("time", b.time),
			zap.Object("stats", stats))

		if b.update() {
			rep.Loops++
		}
	}

	rep.Elapsed = time.Since(start)
	b.log.Info("playback finished",
		zap.Int("frames", rep.Frames),
		zap.Int("instances", rep.Instances),
		zap.Int("culled", rep.Culled),
		zap.Int("loops", rep.Loops),
		zap.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

// Time returns the current playhead time.
func (b *Bench) Time() float32 {
	return b.time
}

// update advances the playhead one frame and reports whether it wrapped.
func (b *Bench) update() bool {
	b.time += b.step
	if b.useOrbit {
		b.orbit.Orbit(orbitRate*math32.Abs(b.step), 0)
	}

	switch {
	case b.time > b.maxTime:
		return b.pastEnd(b.maxTime, b.minTime)
	case b.time < b.minTime:
		return b.pastEnd(b.minTime, b.maxTime)
	}
	return false
}

// pastEnd handles the playhead leaving the range through end. start is the
// opposite end.
func (b *Bench) pastEnd(end, start float32) bool {
	wrapped := false
	switch {
	case b.cfg.Playback.PingPong:
		b.time = 2*end - b.time
		b.step = -b.step
	case b.cfg.Playback.Loop:
		b.time = start + (b.time - end)
		b.scene.Reset()
		wrapped = true
	default:
		b.time = end
	}
	// A range shorter than one step can still overshoot.
	b.time = math32.Max(b.minTime, math32.Min(b.maxTime, b.time))
	return wrapped
}

// render collects the frame's draw list.
func (b *Bench) render() (drawlist.Stats, error) {
	projection, view, err := b.view()
	if err != nil {
		return drawlist.Stats{}, err
	}
	return b.list.Collect(b.scene, b.time, math.Identity(), projection, view, drawlist.Options{
		Cull:         b.cfg.Culling.Enabled,
		MaxInstances: b.cfg.Culling.MaxInstances,
	}), nil
}

func (b *Bench) view() (projection, view math.Mat4, err error) {
	aspect := b.cfg.Camera.Aspect
	if b.useOrbit {
		return b.orbit.Projection(aspect), b.orbit.ViewMatrix(), nil
	}

	cv, ok := b.scene.FindCamera(b.time, math.Identity(), b.cfg.Camera.Name)
	if !ok {
		// The camera exists but its node is not reachable from a root.
		return math.Mat4{}, math.Mat4{}, fmt.Errorf("camera %q is not attached to the scene", b.cfg.Camera.Name)
	}
	return cv.Camera.Projection(aspect), cv.View, nil
}

// meshCorners returns the world-space box corners of every mesh node at the
// current time.
func (b *Bench) meshCorners() []math.Vec3 {
	var corners []math.Vec3
	b.scene.Traverse(b.time, math.Identity(), func(n *scene.Node, world math.Mat4) bool {
		if n.Mesh == scene.NoMesh {
			return true
		}
		box := b.scene.Mesh(n.Mesh).Bounds
		m := world.Mul(box.Matrix())
		for _, c := range bounds.UnitCorners {
			corners = append(corners, m.TransformPoint(c))
		}
		return true
	})
	return corners
}
