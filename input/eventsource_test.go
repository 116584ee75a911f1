package input

import "testing"

func TestStateIsPressed(t *testing.T) {
	var s State
	if s.IsPressed(KeyW) {
		t.Fatal("expected KeyW to start unpressed")
	}
	s.Pressed[KeyW] = true
	if !s.IsPressed(KeyW) {
		t.Fatal("expected KeyW to report pressed")
	}
}

func TestStateJustPressedAndReleasedAreIndependentOfPressed(t *testing.T) {
	var s State
	s.Pressed[KeySpace] = true
	s.JustPressed[KeySpace] = true

	if !s.IsPressed(KeySpace) || !s.IsJustPressed(KeySpace) {
		t.Fatal("expected both Pressed and JustPressed to read true")
	}
	if s.IsJustReleased(KeySpace) {
		t.Fatal("expected JustReleased to remain false")
	}

	s.Pressed[KeySpace] = false
	s.JustPressed[KeySpace] = false
	s.JustReleased[KeySpace] = true

	if s.IsPressed(KeySpace) || s.IsJustPressed(KeySpace) {
		t.Fatal("expected Pressed/JustPressed to clear on release")
	}
	if !s.IsJustReleased(KeySpace) {
		t.Fatal("expected JustReleased to report true on the release frame")
	}
}

func TestMouseButtonsShareTheKeyArrays(t *testing.T) {
	var s State
	s.Pressed[MouseButtonLeft] = true
	if !s.IsPressed(MouseButtonLeft) {
		t.Fatal("expected mouse buttons to be addressable through the Key arrays")
	}
	if s.IsPressed(MouseButtonRight) {
		t.Fatal("expected distinct buttons to stay independent")
	}
}
