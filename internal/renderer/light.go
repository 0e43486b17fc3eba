package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// The single point light sits slightly above the sun.
var LightPosition = mgl32.Vec3{0, 16, -50}

// Distance attenuation, 1 / (c + l·d + q·d²).
const (
	LightConstant  = 1.0
	LightLinear    = 0.09
	LightQuadratic = 0.032
)

// MaterialShininess is the specular exponent for every lit draw.
const MaterialShininess = 32.0

// Texture units the lit program samples from.
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// LightSettings are the per-pass light intensities, applied uniformly to
// the three colour channels.
type LightSettings struct {
	Ambient  float32
	Diffuse  float32
	Specular float32
}

var (
	// SunLight overdrives the sun so it reads as self-lit.
	SunLight = LightSettings{Ambient: 10, Diffuse: 10, Specular: 1}
	// PlanetLight is used for the earth and the moon.
	PlanetLight = LightSettings{Ambient: 1, Diffuse: 100, Specular: 1}
)

// Apply writes the light block and the material scalars. The shader must
// be in use.
func (l LightSettings) Apply(shader *Shader) {
	shader.SetVec3("light.position", LightPosition)
	shader.SetVec3f("light.ambient", l.Ambient, l.Ambient, l.Ambient)
	shader.SetVec3f("light.diffuse", l.Diffuse, l.Diffuse, l.Diffuse)
	shader.SetVec3f("light.specular", l.Specular, l.Specular, l.Specular)
	shader.SetFloat("light.constant", LightConstant)
	shader.SetFloat("light.linear", LightLinear)
	shader.SetFloat("light.quadratic", LightQuadratic)
	shader.SetFloat("material.shininess", MaterialShininess)
}
