package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if cfg.Playback.Frames != 240 {
		t.Errorf("expected 240 frames, got %d", cfg.Playback.Frames)
	}
	if cfg.Playback.FrameRate != 30 {
		t.Errorf("expected frame rate 30, got %v", cfg.Playback.FrameRate)
	}
	if !cfg.Playback.PingPong {
		t.Error("expected ping_pong to be true by default")
	}
	if cfg.Camera.Name != "main" {
		t.Errorf("expected camera 'main', got %s", cfg.Camera.Name)
	}
	if !cfg.Culling.Enabled {
		t.Error("expected culling to be enabled by default")
	}
	if cfg.Demo.Instances != 12 {
		t.Errorf("expected 12 demo instances, got %d", cfg.Demo.Instances)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  format: "json"
  log_file: "bench.log"

playback:
  frames: 600
  frame_rate: 60
  speed: -2
  loop: true

camera:
  name: "top"
  aspect: 1.5

culling:
  enabled: false
  max_instances: 100

demo:
  instances: 64
  radius: 10
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Logging.LogFile != "bench.log" {
		t.Errorf("expected log file 'bench.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Playback.Frames != 600 {
		t.Errorf("expected 600 frames, got %d", cfg.Playback.Frames)
	}
	if cfg.Playback.Speed != -2 {
		t.Errorf("expected speed -2, got %v", cfg.Playback.Speed)
	}
	if !cfg.Playback.Loop {
		t.Error("expected loop to be true")
	}
	if cfg.Camera.Name != "top" {
		t.Errorf("expected camera 'top', got %s", cfg.Camera.Name)
	}
	if cfg.Camera.Aspect != 1.5 {
		t.Errorf("expected aspect 1.5, got %v", cfg.Camera.Aspect)
	}
	if cfg.Culling.Enabled {
		t.Error("expected culling to be disabled")
	}
	if cfg.Demo.Instances != 64 {
		t.Errorf("expected 64 instances, got %d", cfg.Demo.Instances)
	}

	// Untouched keys keep their defaults
	if cfg.Demo.Period != 8 {
		t.Errorf("expected default period 8, got %v", cfg.Demo.Period)
	}
	if !cfg.Playback.PingPong {
		t.Error("expected ping_pong to keep its default")
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
[logging]
level = "warn"

[playback]
frames = 12
frame_rate = 24.0

[demo]
instances = 3
cube_size = 0.25
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Playback.Frames != 12 {
		t.Errorf("expected 12 frames, got %d", cfg.Playback.Frames)
	}
	if cfg.Playback.FrameRate != 24 {
		t.Errorf("expected frame rate 24, got %v", cfg.Playback.FrameRate)
	}
	if cfg.Demo.Instances != 3 {
		t.Errorf("expected 3 instances, got %d", cfg.Demo.Instances)
	}
	if cfg.Demo.CubeSize != 0.25 {
		t.Errorf("expected cube size 0.25, got %v", cfg.Demo.CubeSize)
	}
	if cfg.Camera.Name != "main" {
		t.Errorf("expected default camera 'main', got %s", cfg.Camera.Name)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]string{
		"invalid.yaml": "playback:\n  frames: not a number\n  invalid syntax here\n",
		"invalid.toml": "[playback\nframes = 1\n",
	}

	for name, content := range files {
		configPath := filepath.Join(tmpDir, name)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg := Default()
		if err := loadFromFile(cfg, configPath); err == nil {
			t.Errorf("expected error loading %s, got nil", name)
		}
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Playback.FrameRate = 0
	cfg.Camera.FOV = 180
	cfg.Demo.Instances = -1

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("expected 4 errors, got %d: %v", n, err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"out.yaml", "nested/out.toml"} {
		path := filepath.Join(tmpDir, name)

		want := Default()
		want.Playback.Frames = 99
		want.Camera.Name = "top"
		if err := want.SaveTo(path); err != nil {
			t.Fatalf("SaveTo(%s): %v", name, err)
		}

		got := Default()
		if err := loadFromFile(got, path); err != nil {
			t.Fatalf("loading %s: %v", name, err)
		}
		if *got != *want {
			t.Errorf("%s: round trip mismatch\n got %+v\nwant %+v", name, *got, *want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.toml", []byte("[playback]\nframes = 1\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.toml" {
		t.Errorf("expected ./config.toml, got %q", path)
	}

	// YAML wins when both exist
	if err := os.WriteFile("config.yaml", []byte("playback:\n  frames: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.yaml" {
		t.Errorf("expected ./config.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "frames and speed flags",
			setup: func() { *flagFrames = 0; *flagSpeed = -0.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Playback.Frames != 0 {
					t.Errorf("expected 0 frames, got %d", cfg.Playback.Frames)
				}
				if cfg.Playback.Speed != -0.5 {
					t.Errorf("expected speed -0.5, got %v", cfg.Playback.Speed)
				}
			},
			teardown: func() { *flagFrames = -1; *flagSpeed = 0 },
		},
		{
			name:  "camera flag",
			setup: func() { *flagCamera = "top" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Name != "top" {
					t.Errorf("expected camera 'top', got %s", cfg.Camera.Name)
				}
			},
			teardown: func() { *flagCamera = "" },
		},
		{
			name:  "orbit camera flag",
			setup: func() { *flagCamera = "orbit" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Name != "" {
					t.Errorf("expected orbit camera, got %s", cfg.Camera.Name)
				}
			},
			teardown: func() { *flagCamera = "" },
		},
		{
			name:  "no-cull flag",
			setup: func() { *flagNoCull = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Culling.Enabled {
					t.Error("expected culling to be disabled")
				}
			},
			teardown: func() { *flagNoCull = false },
		},
		{
			name:  "instances flag",
			setup: func() { *flagInstances = 500 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Demo.Instances != 500 {
					t.Errorf("expected 500 instances, got %d", cfg.Demo.Instances)
				}
			},
			teardown: func() { *flagInstances = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
playback:
  frames: 50
  frame_rate: 25
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagFrames = 10
	defer func() {
		*flagConfig = ""
		*flagFrames = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Frames from flag, not file
	if cfg.Playback.Frames != 10 {
		t.Errorf("expected 10 frames from flag, got %d", cfg.Playback.Frames)
	}
	// Frame rate from file since no flag override
	if cfg.Playback.FrameRate != 25 {
		t.Errorf("expected frame rate 25 from file, got %v", cfg.Playback.FrameRate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("demo:\n  radius: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
