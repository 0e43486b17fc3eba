package renderer

import (
	"math"

	"SolarSystem/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraRig turns per-frame input into view and projection matrices.
type CameraRig interface {
	Update(in input.Snapshot, dt float64)
	View() mgl32.Mat4
	Projection() mgl32.Mat4
	Eye() mgl32.Vec3
}

const (
	DefaultZoom = 45.0
	MinZoom     = 1.0
	MaxZoom     = 45.0
	NearPlane   = 0.1
	FarPlane    = 100.0
)

// lens is the projection state shared by both rigs.
type lens struct {
	Zoom        float32 // vertical field of view in degrees
	AspectRatio float32
}

func newLens(width, height int32) lens {
	return lens{Zoom: DefaultZoom, AspectRatio: float32(width) / float32(height)}
}

// scroll narrows or widens the field of view, clamped to [MinZoom, MaxZoom].
func (l *lens) scroll(yoffset float64) {
	if yoffset == 0 {
		return
	}
	l.Zoom = mgl32.Clamp(l.Zoom-float32(yoffset), MinZoom, MaxZoom)
}

func (l *lens) projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.Zoom), l.AspectRatio, NearPlane, FarPlane)
}

// =============================================================
//
//	Orbit camera
//
// =============================================================

const (
	OrbitRadius = 70.0
	OrbitStep   = 0.01
)

var (
	OrbitTarget = mgl32.Vec3{0, 0, -50}
	WorldUp     = mgl32.Vec3{0, 1, 0}
)

// OrbitCamera circles the sun on a sphere of fixed radius. The angles are
// never clamped or wrapped; past the poles the view flips.
type OrbitCamera struct {
	Azimuth float64 // a, around Y
	Polar   float64 // b, from +Y
	lens
}

func NewOrbitCamera(width, height int32) *OrbitCamera {
	return &OrbitCamera{
		Azimuth: 0,
		Polar:   math.Pi / 2,
		lens:    newLens(width, height),
	}
}

func (c *OrbitCamera) Update(in input.Snapshot, _ float64) {
	if in.Held(input.KeyLeft) {
		c.Azimuth -= OrbitStep
	}
	if in.Held(input.KeyRight) {
		c.Azimuth += OrbitStep
	}
	if in.Held(input.KeyForward) {
		c.Polar -= OrbitStep
	}
	if in.Held(input.KeyBackward) {
		c.Polar += OrbitStep
	}
	c.scroll(in.ScrollY)
}

// Eye returns the camera position derived from the two angles.
func (c *OrbitCamera) Eye() mgl32.Vec3 {
	sa, ca := math.Sincos(c.Azimuth)
	sb, cb := math.Sincos(c.Polar)
	return mgl32.Vec3{
		float32(sa * sb * OrbitRadius),
		float32(cb * OrbitRadius),
		float32(float64(OrbitTarget.Z()) + ca*sb*OrbitRadius),
	}
}

func (c *OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), OrbitTarget, WorldUp)
}

func (c *OrbitCamera) Projection() mgl32.Mat4 {
	return c.projection()
}

// =============================================================
//
//	Free-fly camera
//
// =============================================================

const (
	FreeFlySpeed       = 2.5
	FreeFlySensitivity = 0.1
	// FreeFlySpeedMultiplier scales elapsed time before it becomes velocity.
	FreeFlySpeedMultiplier = 6.0
)

// FreeFlyCamera looks around with the mouse and translates with WASD.
type FreeFlyCamera struct {
	Position    mgl32.Vec3
	Front       mgl32.Vec3
	Up          mgl32.Vec3
	Right       mgl32.Vec3
	WorldUp     mgl32.Vec3
	Yaw         float32 // degrees
	Pitch       float32 // degrees
	Speed       float32
	Sensitivity float32
	lens
}

func NewFreeFlyCamera(width, height int32) *FreeFlyCamera {
	c := &FreeFlyCamera{
		Position:    mgl32.Vec3{0, 0, 0},
		WorldUp:     WorldUp,
		Yaw:         -90,
		Pitch:       0,
		Speed:       FreeFlySpeed,
		Sensitivity: FreeFlySensitivity,
		lens:        newLens(width, height),
	}
	c.updateCameraVectors()
	return c
}

func (c *FreeFlyCamera) Update(in input.Snapshot, dt float64) {
	c.ProcessKeyboard(in, float32(dt)*FreeFlySpeedMultiplier)
	if in.MouseDX != 0 || in.MouseDY != 0 {
		c.ProcessMouseMovement(float32(in.MouseDX), float32(in.MouseDY), true)
	}
	c.scroll(in.ScrollY)
}

// ProcessKeyboard moves the camera by Speed*deltaTime along its own axes.
func (c *FreeFlyCamera) ProcessKeyboard(in input.Snapshot, deltaTime float32) {
	velocity := c.Speed * deltaTime
	if in.Held(input.KeyForward) {
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	}
	if in.Held(input.KeyBackward) {
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	}
	if in.Held(input.KeyLeft) {
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	}
	if in.Held(input.KeyRight) {
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

func (c *FreeFlyCamera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.Yaw += xoffset * c.Sensitivity
	c.Pitch += yoffset * c.Sensitivity
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0)
	}
	c.updateCameraVectors()
}

func (c *FreeFlyCamera) updateCameraVectors() {
	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func (c *FreeFlyCamera) Eye() mgl32.Vec3 {
	return c.Position
}

func (c *FreeFlyCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *FreeFlyCamera) Projection() mgl32.Mat4 {
	return c.projection()
}
