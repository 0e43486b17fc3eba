package engine

import (
	"SolarSystem/internal/config"
	"SolarSystem/internal/input"
	"SolarSystem/internal/logger"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Window is the glfw window with its GL 4.1 core context. It must be created
// and used from the main OS thread.
type Window struct {
	window *glfw.Window
	poller *Poller
	Width  int32
	Height int32
}

func NewWindow(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %w", ErrSurfaceCreation, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrGraphicsInit, err)
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Enable(gl.DEPTH_TEST)

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	logger.Log.Info("Window created",
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	return &Window{
		window: window,
		poller: NewPoller(window),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Poll samples the keys and drains the mouse and scroll deltas collected
// since the previous frame.
func (w *Window) Poll() input.Snapshot {
	return w.poller.Poll()
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.window.SetShouldClose(value)
}

// Present swaps buffers, then processes pending window events.
func (w *Window) Present() {
	w.window.SwapBuffers()
	glfw.PollEvents()
}

// Now is seconds since glfw was initialised.
func (w *Window) Now() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
	logger.Log.Info("Window destroyed")
}
