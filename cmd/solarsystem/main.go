package main

import (
	"SolarSystem/internal/assets"
	"SolarSystem/internal/config"
	"SolarSystem/internal/engine"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/scene"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() {
	// glfw and GL calls must stay on the main thread
	runtime.LockOSThread()
}

// stageError tags an error with the startup stage that produced it.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func main() {
	configPath := flag.String("config", "", "config file (default: solarsystem.{toml,yaml,json} in the working directory)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	for _, hook := range shutdownHooks(cancel, done, logger.Sync) {
		closer.Bind(hook)
	}

	err = run(ctx, cfg)
	close(done)
	if err != nil {
		stage := "run"
		var se *stageError
		if errors.As(err, &se) {
			stage, err = se.stage, se.err
		}
		logger.Log.Error("Fatal error", zap.String("stage", stage), zap.Error(err))
		closer.Exit(1)
	}
	closer.Close()
}

// shutdownHooks are bound to closer, which runs them in order on its own
// goroutine. GL teardown stays in run's defers on the main thread, so the
// hooks cancel the loop, wait for run to return and only then flush.
func shutdownHooks(cancel context.CancelFunc, done <-chan struct{}, flush func()) []func() {
	return []func(){
		func() {
			cancel()
			<-done
		},
		flush,
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Log.Info("Solar System starting",
		zap.String("camera", cfg.CameraMode),
		zap.String("assets", cfg.Assets.Dir))

	window, err := engine.NewWindow(cfg.Window)
	if err != nil {
		return &stageError{"window", err}
	}
	defer window.Destroy()

	lit, err := renderer.NewShader("lighting", renderer.LightingVertexSource, renderer.LightingFragmentSource)
	if err != nil {
		return &stageError{"shader", err}
	}
	defer lit.Delete()
	lamp, err := renderer.NewShader("lamp", renderer.LampVertexSource, renderer.LampFragmentSource)
	if err != nil {
		return &stageError{"shader", err}
	}
	defer lamp.Delete()

	store := assets.NewStore(cfg.Assets.Dir, renderer.NewTextureManager())
	defer store.Close()

	meshes, err := store.LoadMeshes([scene.BodyCount]string{
		scene.Sun:   cfg.Assets.Sun,
		scene.Earth: cfg.Assets.Earth,
		scene.Moon:  cfg.Assets.Moon,
	})
	if err != nil {
		return &stageError{"assets", err}
	}

	pipeline := renderer.NewSolarPipeline(lit, lamp, meshes)
	loop := engine.NewFrameLoop(window, newRig(cfg), scene.NewAnimator(), pipeline, cfg.Window.FPSLimit)

	err = loop.Run(ctx)
	logger.Log.Info("Solar System stopped", zap.Uint64("frames", loop.Frames()))
	if errors.Is(err, context.Canceled) {
		logger.Log.Info("Interrupted")
		return nil
	}
	return err
}

func newRig(cfg *config.Config) renderer.CameraRig {
	if cfg.CameraMode == config.CameraFreeFly {
		return renderer.NewFreeFlyCamera(cfg.Window.Width, cfg.Window.Height)
	}
	return renderer.NewOrbitCamera(cfg.Window.Width, cfg.Window.Height)
}
