package scene

import (
	"SolarSystem/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// ClockStep is how far the orbit clock moves per unpaused frame. It is not
// scaled by elapsed time, so the animation speed follows the frame rate.
const ClockStep = 0.01

// OrbitClock drives every orbit and spin angle.
type OrbitClock struct {
	T      float64
	Paused bool
}

// ApplyPauseKeys sets the pause flag from the held keys. The keys are level
// triggered: holding P re-asserts the pause every frame.
func (c *OrbitClock) ApplyPauseKeys(in input.Snapshot) {
	c.Paused = applyPause(c.Paused, in.Held(input.KeyPause), in.Held(input.KeyResume))
}

// applyPause resolves the level-triggered P/U keys. P wins a tie.
func applyPause(paused, pause, resume bool) bool {
	if pause {
		return true
	}
	if resume {
		return false
	}
	return paused
}

// Advance moves the clock one step unless paused.
func (c *OrbitClock) Advance() {
	if !c.Paused {
		c.T += ClockStep
	}
}

// Frame holds the model matrices for one rendered frame.
type Frame struct {
	T       float64
	SunCore mgl32.Mat4
	SunHalo mgl32.Mat4
	Earth   mgl32.Mat4
	Moon    mgl32.Mat4
}

// Compose builds every body matrix for clock value t. It has no state, so the
// same t always yields the same matrices.
func Compose(t float64) Frame {
	tf := float32(t)

	sun := SunChain().Apply(mgl32.Ident4())
	halo := HaloChain().Apply(sun)
	earth := EarthChain(tf).Apply(halo)
	moon := MoonChain(tf).Apply(earth)

	return Frame{
		T:       t,
		SunCore: sun,
		SunHalo: halo,
		Earth:   earth,
		Moon:    moon,
	}
}

// Animator owns the orbit clock and produces a Frame every tick.
type Animator struct {
	Clock OrbitClock
}

func NewAnimator() *Animator {
	return &Animator{}
}

// Update applies the pause keys and advances the clock. Elapsed time is
// ignored.
func (a *Animator) Update(in input.Snapshot, _ float64) {
	a.Clock.ApplyPauseKeys(in)
	a.Clock.Advance()
}

func (a *Animator) Frame() Frame {
	return Compose(a.Clock.T)
}
