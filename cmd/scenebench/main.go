// Package main is the entry point for scenebench, a headless playback and
// culling benchmark over a generated scene.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/bench"
	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: cfg.Logging.Console,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== scenebench ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	b, err := bench.New(cfg)
	if err != nil {
		logger.Fatal("failed to create bench", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := b.Run(ctx)
	if err != nil {
		logger.Error("playback stopped", zap.Error(err), zap.Int("frames", rep.Frames))
		os.Exit(1)
	}

	fmt.Printf("frames=%d instances=%d culled=%d loops=%d elapsed=%s\n",
		rep.Frames, rep.Instances, rep.Culled, rep.Loops, rep.Elapsed)
}
