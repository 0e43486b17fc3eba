package engine

import (
	"SolarSystem/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Poller samples key state from a glfw window once per frame and accumulates
// cursor and scroll events delivered through callbacks between frames.
type Poller struct {
	window   *glfw.Window
	bindings map[glfw.Key]input.Key

	firstMouse   bool
	lastX, lastY float64
	dx, dy       float64
	scrollY      float64
}

// NewPoller installs cursor and scroll callbacks on window.
func NewPoller(window *glfw.Window) *Poller {
	p := &Poller{
		window:     window,
		bindings:   DefaultBindings(),
		firstMouse: true,
	}
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		p.HandleCursor(xpos, ypos)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		p.HandleScroll(yoff)
	})
	return p
}

// DefaultBindings maps WASD, P, U and Escape onto logical keys.
func DefaultBindings() map[glfw.Key]input.Key {
	return map[glfw.Key]input.Key{
		glfw.KeyW:      input.KeyForward,
		glfw.KeyA:      input.KeyLeft,
		glfw.KeyS:      input.KeyBackward,
		glfw.KeyD:      input.KeyRight,
		glfw.KeyP:      input.KeyPause,
		glfw.KeyU:      input.KeyResume,
		glfw.KeyEscape: input.KeyQuit,
	}
}

// HandleCursor records a cursor position. The first event only primes the
// last position so the camera does not jump.
func (p *Poller) HandleCursor(xpos, ypos float64) {
	if p.firstMouse {
		p.lastX, p.lastY = xpos, ypos
		p.firstMouse = false
	}
	p.dx += xpos - p.lastX
	p.dy += p.lastY - ypos // reversed since y-coordinates go from bottom to top
	p.lastX, p.lastY = xpos, ypos
}

func (p *Poller) HandleScroll(yoff float64) {
	p.scrollY += yoff
}

// Poll returns the current frame's snapshot and resets the accumulated deltas.
func (p *Poller) Poll() input.Snapshot {
	var snap input.Snapshot
	if p.window != nil {
		for glfwKey, key := range p.bindings {
			if p.window.GetKey(glfwKey) == glfw.Press {
				snap = snap.WithKeys(key)
			}
		}
	}
	snap.MouseDX, snap.MouseDY, snap.ScrollY = p.dx, p.dy, p.scrollY
	p.dx, p.dy, p.scrollY = 0, 0, 0
	return snap
}
