// Package config handles scenebench configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all bench settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Culling  CullingConfig  `yaml:"culling" toml:"culling"`
	Demo     DemoConfig     `yaml:"demo" toml:"demo"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	Format  string `yaml:"format" toml:"format"` // console or json
	Console bool   `yaml:"console" toml:"console"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// PlaybackConfig controls how the playhead moves.
type PlaybackConfig struct {
	Frames    int     `yaml:"frames" toml:"frames"`
	FrameRate float32 `yaml:"frame_rate" toml:"frame_rate"` // frames per second of scene time
	Speed     float32 `yaml:"speed" toml:"speed"`           // scene seconds per real second
	Loop      bool    `yaml:"loop" toml:"loop"`             // wrap to the start after max time
	PingPong  bool    `yaml:"ping_pong" toml:"ping_pong"`   // play back down after reaching the end
}

// CameraConfig selects the view.
type CameraConfig struct {
	Name   string  `yaml:"name" toml:"name"` // scene camera; empty uses the orbit camera
	Aspect float32 `yaml:"aspect" toml:"aspect"`

	// Orbit camera used when Name is empty or not found. It backs off to
	// frame the scene but never comes closer than Distance.
	Distance float32 `yaml:"distance" toml:"distance"`
	Yaw      float32 `yaml:"yaw" toml:"yaw"`     // degrees
	Pitch    float32 `yaml:"pitch" toml:"pitch"` // degrees
	FOV      float32 `yaml:"fov" toml:"fov"`     // degrees
}

// CullingConfig controls the frustum test.
type CullingConfig struct {
	Enabled      bool `yaml:"enabled" toml:"enabled"`
	MaxInstances int  `yaml:"max_instances" toml:"max_instances"` // 0 = unlimited
}

// DemoConfig shapes the generated turntable scene.
type DemoConfig struct {
	Instances int     `yaml:"instances" toml:"instances"`
	Radius    float32 `yaml:"radius" toml:"radius"`
	Period    float32 `yaml:"period" toml:"period"`
	CubeSize  float32 `yaml:"cube_size" toml:"cube_size"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			Console: true,
			LogFile: "",
		},
		Playback: PlaybackConfig{
			Frames:    240,
			FrameRate: 30,
			Speed:     1,
			Loop:      false,
			PingPong:  true,
		},
		Camera: CameraConfig{
			Name:     "main",
			Aspect:   16.0 / 9.0,
			Distance: 15,
			Yaw:      0,
			Pitch:    20,
			FOV:      60,
		},
		Culling: CullingConfig{
			Enabled:      true,
			MaxInstances: 0,
		},
		Demo: DemoConfig{
			Instances: 12,
			Radius:    4,
			Period:    8,
			CubeSize:  0.5,
		},
	}
}

// ErrInvalid marks a setting out of its allowed range.
var ErrInvalid = errors.New("invalid setting")

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		check(false, "logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		check(false, "logging.format %q", c.Logging.Format)
	}
	check(c.Playback.Frames >= 0, "playback.frames %d", c.Playback.Frames)
	check(c.Playback.FrameRate > 0, "playback.frame_rate %v", c.Playback.FrameRate)
	check(c.Playback.Speed != 0, "playback.speed must not be zero")
	check(c.Camera.Aspect > 0, "camera.aspect %v", c.Camera.Aspect)
	check(c.Camera.Distance > 0, "camera.distance %v", c.Camera.Distance)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %v", c.Camera.FOV)
	check(c.Culling.MaxInstances >= 0, "culling.max_instances %d", c.Culling.MaxInstances)
	check(c.Demo.Instances >= 0, "demo.instances %d", c.Demo.Instances)
	check(c.Demo.Radius > 0, "demo.radius %v", c.Demo.Radius)
	check(c.Demo.Period > 0, "demo.period %v", c.Demo.Period)
	check(c.Demo.CubeSize > 0, "demo.cube_size %v", c.Demo.CubeSize)

	return errs
}
