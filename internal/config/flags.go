package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagFrames    = flag.Int("frames", -1, "Number of frames to play")
	flagSpeed     = flag.Float64("speed", 0, "Playback speed multiplier, negative plays backward")
	flagCamera    = flag.String("camera", "", "Scene camera name, or \"orbit\"")
	flagNoCull    = flag.Bool("no-cull", false, "Disable frustum culling")
	flagInstances = flag.Int("instances", -1, "Number of cubes in the demo scene")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFrames >= 0 {
		cfg.Playback.Frames = *flagFrames
	}
	if *flagSpeed != 0 {
		cfg.Playback.Speed = float32(*flagSpeed)
	}
	switch *flagCamera {
	case "":
	case "orbit":
		cfg.Camera.Name = ""
	default:
		cfg.Camera.Name = *flagCamera
	}
	if *flagNoCull {
		cfg.Culling.Enabled = false
	}
	if *flagInstances >= 0 {
		cfg.Demo.Instances = *flagInstances
	}
}
