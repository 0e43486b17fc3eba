package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"SolarSystem/internal/input"
	"SolarSystem/internal/renderer"
	"SolarSystem/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeSurface replays a scripted list of snapshots, one per frame.
type fakeSurface struct {
	script   []input.Snapshot
	polled   int
	presents int
	close    bool
	clock    float64
	tick     float64
	events   *[]string
}

func (s *fakeSurface) Poll() input.Snapshot {
	*s.events = append(*s.events, "poll")
	var snap input.Snapshot
	if s.polled < len(s.script) {
		snap = s.script[s.polled]
	}
	s.polled++
	return snap
}

func (s *fakeSurface) ShouldClose() bool {
	return s.close || s.polled >= len(s.script)
}

func (s *fakeSurface) SetShouldClose(v bool) { s.close = v }

func (s *fakeSurface) Present() {
	*s.events = append(*s.events, "present")
	s.presents++
}

func (s *fakeSurface) Now() float64 {
	s.clock += s.tick
	return s.clock
}

type fakePipeline struct {
	states []renderer.FrameState
	events *[]string
}

func (p *fakePipeline) Draw(state renderer.FrameState) {
	*p.events = append(*p.events, "draw")
	p.states = append(p.states, state)
}

func newTestLoop(script []input.Snapshot) (*FrameLoop, *fakeSurface, *fakePipeline, *renderer.OrbitCamera, *scene.Animator) {
	events := &[]string{}
	surface := &fakeSurface{script: script, tick: 1.0 / 60, events: events}
	pipeline := &fakePipeline{events: events}
	rig := renderer.NewOrbitCamera(1920, 1080)
	animator := scene.NewAnimator()
	return NewFrameLoop(surface, rig, animator, pipeline, 0), surface, pipeline, rig, animator
}

func TestRunStepsUntilClose(t *testing.T) {
	script := make([]input.Snapshot, 5)
	loop, surface, pipeline, _, animator := newTestLoop(script)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if loop.Frames() != 5 || surface.presents != 5 || len(pipeline.states) != 5 {
		t.Errorf("frames=%d presents=%d draws=%d, want 5", loop.Frames(), surface.presents, len(pipeline.states))
	}
	if math.Abs(animator.Clock.T-0.05) > 1e-12 {
		t.Errorf("clock = %f, want 0.05", animator.Clock.T)
	}
}

func TestStepOrder(t *testing.T) {
	loop, surface, _, _, _ := newTestLoop([]input.Snapshot{{}})
	loop.Step()

	want := []string{"poll", "draw", "present"}
	got := *surface.events
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestEscapeClosesAfterFrame(t *testing.T) {
	script := []input.Snapshot{{}, input.Press(input.KeyQuit), {}, {}}
	loop, surface, pipeline, _, _ := newTestLoop(script)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !surface.close {
		t.Error("escape should request close")
	}
	// the escape frame is still drawn and presented
	if len(pipeline.states) != 2 || surface.presents != 2 {
		t.Errorf("draws=%d presents=%d, want 2", len(pipeline.states), surface.presents)
	}
}

func TestRunHonoursContext(t *testing.T) {
	loop, _, pipeline, _, _ := newTestLoop(make([]input.Snapshot, 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(pipeline.states) != 0 {
		t.Error("no frame should run after cancellation")
	}
}

func TestCameraUpdatesBeforeDraw(t *testing.T) {
	script := []input.Snapshot{input.Press(input.KeyRight), input.Press(input.KeyRight)}
	loop, _, pipeline, rig, _ := newTestLoop(script)
	loop.Run(context.Background())

	if math.Abs(rig.Azimuth-0.02) > 1e-12 {
		t.Errorf("azimuth = %f, want 0.02", rig.Azimuth)
	}
	last := pipeline.states[len(pipeline.states)-1]
	if last.View != rig.View() || last.Eye != rig.Eye() {
		t.Error("drawn view should reflect this frame's camera update")
	}
	if last.Projection != rig.Projection() {
		t.Error("drawn projection should come from the rig")
	}
}

func TestPauseFreezesDrawnScene(t *testing.T) {
	script := []input.Snapshot{
		{},
		input.Press(input.KeyPause),
		{},
		input.Press(input.KeyPause, input.KeyResume),
		input.Press(input.KeyResume),
		{},
	}
	loop, _, pipeline, _, animator := newTestLoop(script)
	loop.Run(context.Background())

	wantT := []float64{0.01, 0.01, 0.01, 0.01, 0.02, 0.03}
	for i, state := range pipeline.states {
		if math.Abs(state.Scene.T-wantT[i]) > 1e-12 {
			t.Errorf("frame %d: t = %f, want %f", i, state.Scene.T, wantT[i])
		}
	}
	if animator.Clock.Paused {
		t.Error("clock should be running after U")
	}
	if pipeline.states[1].Scene.Earth != pipeline.states[3].Scene.Earth {
		t.Error("paused frames should draw identical matrices")
	}
}

func TestDrawnSceneMatchesCompose(t *testing.T) {
	loop, _, pipeline, _, _ := newTestLoop(make([]input.Snapshot, 3))
	loop.Run(context.Background())

	last := pipeline.states[2].Scene
	want := scene.Compose(last.T)
	if last != want {
		t.Error("drawn frame should be Compose of the clock")
	}
	origin := mgl32.Vec3{last.SunCore.At(0, 3), last.SunCore.At(1, 3), last.SunCore.At(2, 3)}
	if origin != scene.SunCenter {
		t.Errorf("sun origin = %v", origin)
	}
}

type countingBehaviour struct{ dts []float64 }

func (c *countingBehaviour) Update(_ input.Snapshot, dt float64) { c.dts = append(c.dts, dt) }

func TestDeltaTimeFromSurfaceClock(t *testing.T) {
	loop, _, _, _, _ := newTestLoop(make([]input.Snapshot, 3))
	recorder := &countingBehaviour{}
	loop.behaviours.Add(recorder)
	loop.Run(context.Background())

	if len(recorder.dts) != 3 || recorder.dts[0] != 0 {
		t.Fatalf("dts = %v", recorder.dts)
	}
	for _, dt := range recorder.dts[1:] {
		if math.Abs(dt-1.0/60) > 1e-9 {
			t.Errorf("dt = %f, want 1/60", dt)
		}
	}
}
