package input

// Key is a logical key the demo reacts to, not a physical glfw key.
type Key uint8

const (
	KeyForward Key = iota // W
	KeyLeft               // A
	KeyBackward           // S
	KeyRight              // D
	KeyPause              // P
	KeyResume             // U
	KeyQuit               // Escape
	KeyCount
)

var keyNames = [KeyCount]string{"W", "A", "S", "D", "P", "U", "Escape"}

func (k Key) String() string {
	if k >= KeyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Snapshot is the input state for a single frame. It is produced once per
// frame by the surface and consumed by the camera rig and the animator.
type Snapshot struct {
	keys uint16

	// Cursor movement since the previous frame. MouseDY is positive when the
	// cursor moves up.
	MouseDX float64
	MouseDY float64

	// Vertical scroll accumulated since the previous frame.
	ScrollY float64
}

// Held reports whether k was down when the snapshot was taken.
func (s Snapshot) Held(k Key) bool {
	if k >= KeyCount {
		return false
	}
	return s.keys&(1<<k) != 0
}

// WithKeys returns a copy of s with the given keys marked as held.
func (s Snapshot) WithKeys(keys ...Key) Snapshot {
	for _, k := range keys {
		if k < KeyCount {
			s.keys |= 1 << k
		}
	}
	return s
}

// Press builds a snapshot with only the given keys held.
func Press(keys ...Key) Snapshot {
	return Snapshot{}.WithKeys(keys...)
}
