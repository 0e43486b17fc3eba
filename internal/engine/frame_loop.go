package engine

import (
	"SolarSystem/internal/behaviour"
	"SolarSystem/internal/input"
	"SolarSystem/internal/logger"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/scene"
	"context"

	"go.uber.org/zap"
)

// Surface is the part of the window the frame loop drives.
type Surface interface {
	Poll() input.Snapshot
	ShouldClose() bool
	SetShouldClose(bool)
	Present()
	Now() float64
}

// Pipeline draws one frame.
type Pipeline interface {
	Draw(state renderer.FrameState)
}

// FrameLoop runs poll, update, draw, present until the surface closes.
type FrameLoop struct {
	surface    Surface
	rig        renderer.CameraRig
	animator   *scene.Animator
	behaviours *behaviour.Manager
	pipeline   Pipeline
	limiter    *FPSLimiter

	started   bool
	lastTime  float64
	fpsStart  float64
	fpsFrames int
	frames    uint64
}

// NewFrameLoop wires the rig and the animator into the update order: the
// camera moves first, then the clock advances.
func NewFrameLoop(surface Surface, rig renderer.CameraRig, animator *scene.Animator, pipeline Pipeline, fpsLimit int) *FrameLoop {
	behaviours := behaviour.NewManager()
	behaviours.Add(rig)
	behaviours.Add(animator)

	return &FrameLoop{
		surface:    surface,
		rig:        rig,
		animator:   animator,
		behaviours: behaviours,
		pipeline:   pipeline,
		limiter:    NewFPSLimiter(fpsLimit),
	}
}

// Run steps until the surface asks to close or ctx is cancelled.
func (l *FrameLoop) Run(ctx context.Context) error {
	logger.Log.Info("Frame loop started",
		zap.Int("fpsLimit", l.limiter.Limit()),
		zap.Int("behaviours", l.behaviours.Len()))
	for !l.surface.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Step()
	}
	logger.Log.Info("Frame loop stopped",
		zap.Uint64("frames", l.frames),
		zap.Float64("clock", l.animator.Clock.T))
	return nil
}

// Step runs exactly one frame.
func (l *FrameLoop) Step() {
	now := l.surface.Now()
	if !l.started {
		l.lastTime, l.fpsStart = now, now
		l.started = true
	}
	deltaTime := now - l.lastTime
	l.lastTime = now

	snap := l.surface.Poll()
	if snap.Held(input.KeyQuit) {
		l.surface.SetShouldClose(true)
	}

	l.behaviours.UpdateAll(snap, deltaTime)

	l.pipeline.Draw(renderer.FrameState{
		View:       l.rig.View(),
		Projection: l.rig.Projection(),
		Eye:        l.rig.Eye(),
		Scene:      l.animator.Frame(),
	})

	l.surface.Present()
	l.limiter.Wait()
	l.frames++
	l.trackFPS(now)
}

func (l *FrameLoop) trackFPS(now float64) {
	l.fpsFrames++
	if elapsed := now - l.fpsStart; elapsed >= 1.0 {
		logger.Log.Debug("FPS",
			zap.Float64("fps", float64(l.fpsFrames)/elapsed),
			zap.Bool("paused", l.animator.Clock.Paused))
		l.fpsFrames = 0
		l.fpsStart = now
	}
}

func (l *FrameLoop) Frames() uint64 {
	return l.frames
}
