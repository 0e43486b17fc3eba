package behaviour

import (
	"testing"

	"SolarSystem/internal/input"
)

type recorder struct {
	name string
	log  *[]string
	dts  []float64
}

func (r *recorder) Update(in input.Snapshot, dt float64) {
	*r.log = append(*r.log, r.name)
	r.dts = append(r.dts, dt)
}

func TestUpdateAllKeepsOrder(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	m := NewManager()
	m.Add(a)
	m.Add(b)
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	m.UpdateAll(input.Snapshot{}, 0.016)
	m.UpdateAll(input.Snapshot{}, 0.032)

	want := []string{"a", "b", "a", "b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestUpdateAllPassesDeltaTime(t *testing.T) {
	var log []string
	r := &recorder{name: "r", log: &log}
	m := NewManager()
	m.Add(r)

	m.UpdateAll(input.Snapshot{}, 0.5)
	m.UpdateAll(input.Snapshot{}, 0.25)
	if len(r.dts) != 2 || r.dts[0] != 0.5 || r.dts[1] != 0.25 {
		t.Errorf("dts = %v, want [0.5 0.25]", r.dts)
	}
}

func TestEmptyManager(t *testing.T) {
	m := NewManager()
	m.UpdateAll(input.Snapshot{}, 0)
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}
