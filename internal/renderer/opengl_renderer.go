package renderer

import (
	"SolarSystem/internal/logger"
	"SolarSystem/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var ClearColor = mgl32.Vec3{0.05, 0.05, 0.05}

// Program selects which of the two shader programs a pass uses.
type Program int

const (
	LitProgram Program = iota
	LampProgram
)

func (p Program) String() string {
	if p == LampProgram {
		return "lamp"
	}
	return "lit"
}

// FrameState is everything the pipeline needs to draw one frame.
type FrameState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	Scene      scene.Frame
}

// Pass is a single draw: one mesh, one program, one model matrix.
type Pass struct {
	Program Program
	Body    scene.BodyID
	Model   mgl32.Mat4
	Light   LightSettings // ignored by the lamp program
}

// PlanPasses lists the draws for a frame in submission order: the lit sun
// core, its unlit halo, then the earth and the moon. The opaque white halo
// is 1.5x the core and encloses it, so no pixel lit with SunLight survives
// the depth test; the visible sun is the flat white shell.
func PlanPasses(frame scene.Frame) [4]Pass {
	return [4]Pass{
		{Program: LitProgram, Body: scene.Sun, Model: frame.SunCore, Light: SunLight},
		{Program: LampProgram, Body: scene.Sun, Model: frame.SunHalo},
		{Program: LitProgram, Body: scene.Earth, Model: frame.Earth, Light: PlanetLight},
		{Program: LitProgram, Body: scene.Moon, Model: frame.Moon, Light: PlanetLight},
	}
}

// Meshes holds the uploaded model for each body.
type Meshes [scene.BodyCount]*Model

// SolarPipeline owns the two programs and draws the bodies every frame.
type SolarPipeline struct {
	lit    *Shader
	lamp   *Shader
	meshes Meshes
}

// NewSolarPipeline binds the lit program's samplers to their texture units.
func NewSolarPipeline(lit, lamp *Shader, meshes Meshes) *SolarPipeline {
	lit.Use()
	lit.SetInt("material.diffuse", DiffuseUnit)
	lit.SetInt("material.specular", SpecularUnit)

	logger.Log.Info("Solar pipeline ready",
		zap.Uint32("lit", lit.Program()),
		zap.Uint32("lamp", lamp.Program()))
	return &SolarPipeline{lit: lit, lamp: lamp, meshes: meshes}
}

func (p *SolarPipeline) Draw(state FrameState) {
	gl.ClearColor(ClearColor.X(), ClearColor.Y(), ClearColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, pass := range PlanPasses(state.Scene) {
		mesh := p.meshes[pass.Body]
		if mesh == nil {
			continue
		}
		shader := p.shaderFor(pass.Program)
		shader.Use()
		shader.SetMat4("projection", state.Projection)
		shader.SetMat4("view", state.View)
		shader.SetMat4("model", pass.Model)
		if pass.Program == LitProgram {
			shader.SetVec3("viewPos", state.Eye)
			pass.Light.Apply(shader)
		}
		mesh.Draw(shader)
	}
}

func (p *SolarPipeline) shaderFor(program Program) *Shader {
	if program == LampProgram {
		return p.lamp
	}
	return p.lit
}
