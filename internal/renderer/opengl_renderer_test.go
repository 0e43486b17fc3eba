package renderer

import (
	"testing"

	"SolarSystem/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPlanPassesOrder(t *testing.T) {
	frame := scene.Compose(1.25)
	passes := PlanPasses(frame)

	want := []struct {
		program Program
		body    scene.BodyID
	}{
		{LitProgram, scene.Sun},
		{LampProgram, scene.Sun},
		{LitProgram, scene.Earth},
		{LitProgram, scene.Moon},
	}
	for i, w := range want {
		if passes[i].Program != w.program || passes[i].Body != w.body {
			t.Errorf("pass %d = %s/%s, want %s/%s", i, passes[i].Program, passes[i].Body, w.program, w.body)
		}
	}
}

func TestPlanPassesMatrices(t *testing.T) {
	frame := scene.Compose(0.5)
	passes := PlanPasses(frame)

	if passes[0].Model != frame.SunCore {
		t.Error("lit sun should use the core matrix")
	}
	if passes[1].Model != frame.SunHalo {
		t.Error("lamp should use the halo matrix")
	}
	if passes[2].Model != frame.Earth || passes[3].Model != frame.Moon {
		t.Error("earth and moon passes should use their own matrices")
	}
}

func TestPlanPassesLighting(t *testing.T) {
	passes := PlanPasses(scene.Compose(0))

	if passes[0].Light != SunLight {
		t.Errorf("sun pass light = %+v, want %+v", passes[0].Light, SunLight)
	}
	for _, i := range []int{2, 3} {
		if passes[i].Light != PlanetLight {
			t.Errorf("pass %d light = %+v, want %+v", i, passes[i].Light, PlanetLight)
		}
	}
	if SunLight.Ambient != 10 || PlanetLight.Diffuse != 100 {
		t.Error("light intensities changed")
	}
}

func TestHaloEnclosesLitCore(t *testing.T) {
	passes := PlanPasses(scene.Compose(0))
	core, halo := passes[0].Model, passes[1].Model

	if core.Col(3) != halo.Col(3) {
		t.Errorf("core and halo should share a centre: %v vs %v", core.Col(3), halo.Col(3))
	}
	coreScale, haloScale := core.At(0, 0), halo.At(0, 0)
	if mgl32.Abs(coreScale-0.7) > 1e-6 || mgl32.Abs(haloScale-1.05) > 1e-6 {
		t.Errorf("scales = %f/%f, want 0.7/1.05", coreScale, haloScale)
	}
	if passes[0].Program != LitProgram || passes[1].Program != LampProgram {
		t.Error("the lit pass should draw the inner sphere and the lamp the outer one")
	}
}
