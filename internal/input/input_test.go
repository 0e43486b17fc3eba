package input

import "testing"

func TestSnapshotHeld(t *testing.T) {
	snap := Press(KeyForward, KeyPause)

	if !snap.Held(KeyForward) || !snap.Held(KeyPause) {
		t.Error("pressed keys should be held")
	}
	if snap.Held(KeyBackward) || snap.Held(KeyQuit) {
		t.Error("other keys should not be held")
	}
	if snap.Held(KeyCount) {
		t.Error("out of range key should never be held")
	}
}

func TestWithKeysDoesNotMutate(t *testing.T) {
	base := Press(KeyLeft)
	more := base.WithKeys(KeyRight)

	if base.Held(KeyRight) {
		t.Error("WithKeys should return a copy")
	}
	if !more.Held(KeyLeft) || !more.Held(KeyRight) {
		t.Error("copy should carry both keys")
	}
}

func TestKeyString(t *testing.T) {
	if KeyQuit.String() != "Escape" {
		t.Errorf("unexpected name %q", KeyQuit.String())
	}
	if Key(99).String() != "unknown" {
		t.Error("unknown keys should print as unknown")
	}
}
