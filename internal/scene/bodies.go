package scene

import "github.com/go-gl/mathgl/mgl32"

type BodyID int

const (
	Sun BodyID = iota
	Earth
	Moon

	BodyCount = 3
)

func (id BodyID) String() string {
	switch id {
	case Sun:
		return "sun"
	case Earth:
		return "earth"
	case Moon:
		return "moon"
	}
	return "unknown"
}

// Body describes one of the three fixed celestial bodies.
type Body struct {
	ID BodyID

	// OrbitRadius is measured in the parent's local frame.
	OrbitRadius float32
	// OrbitSpeed multiplies the orbit clock to get the orbit angle.
	OrbitSpeed float32
	// SpinSpeed multiplies the orbit clock to get the self-rotation angle.
	SpinSpeed float32
	// Scale is applied uniformly at the end of the body's chain.
	Scale float32
}

// Sun placement and its glow shell.
var (
	SunCenter     = mgl32.Vec3{0, 0, -50}
	SunHaloFactor = float32(1.5)
)

// Bodies is indexed by BodyID, root first.
var Bodies = [BodyCount]Body{
	Sun:   {ID: Sun, Scale: 0.7},
	Earth: {ID: Earth, OrbitRadius: 30, OrbitSpeed: 1, SpinSpeed: 3, Scale: 0.2},
	// Moon has no scale of its own; it inherits the earth's.
	Moon: {ID: Moon, OrbitRadius: 20, OrbitSpeed: 4, Scale: 1},
}

// SunChain places the textured sun.
func SunChain() Chain {
	return Chain{
		Translate(SunCenter[0], SunCenter[1], SunCenter[2]),
		ScaleUniform(Bodies[Sun].Scale),
	}
}

// HaloChain grows the sun frame into the glow duplicate.
func HaloChain() Chain {
	return Chain{ScaleUniform(SunHaloFactor)}
}

// EarthChain orbits the earth around its parent at angle t and spins it at
// SpinSpeed times that rate. The leading translate pair cancels out but is
// kept in sequence.
func EarthChain(t float32) Chain {
	earth := Bodies[Earth]
	r := earth.OrbitRadius
	return Chain{
		Translate(r, 0, 0),
		Translate(-r, 0, 0),
		RotateY(earth.OrbitSpeed * t),
		Translate(r, 0, 0),
		RotateY(earth.SpinSpeed * t),
		ScaleUniform(earth.Scale),
	}
}

// MoonChain orbits the moon in the earth's scaled frame.
func MoonChain(t float32) Chain {
	moon := Bodies[Moon]
	r := moon.OrbitRadius
	return Chain{
		Translate(r, 0, 0),
		Translate(-r, 0, 0),
		RotateY(moon.OrbitSpeed * t),
		Translate(r, 0, 0),
	}
}
