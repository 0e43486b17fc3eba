package behaviour

import "SolarSystem/internal/input"

// Behaviour is anything that mutates its own state once per frame from the
// frame's input.
type Behaviour interface {
	Update(in input.Snapshot, dt float64)
}

// Manager updates behaviours in the order they were added.
type Manager struct {
	behaviours []Behaviour
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(b Behaviour) {
	m.behaviours = append(m.behaviours, b)
}

func (m *Manager) Len() int {
	return len(m.behaviours)
}

// UpdateAll runs one frame for every behaviour.
func (m *Manager) UpdateAll(in input.Snapshot, dt float64) {
	for _, b := range m.behaviours {
		b.Update(in, dt)
	}
}
