// Package input abstracts keyboard/mouse/window state behind an EventSource
// interface, per the engine core's abstract Event Source collaborator; the
// concrete GLFW implementation lives alongside it as the one reference
// backend, the way gfxwgpu is the one reference Graphics Context.
package input

// EventSource is whatever the enclosing application polls once per frame
// to produce the current State. The core depends only on this interface,
// never on a concrete windowing library.
type EventSource interface {
	// Poll pumps the backend's event queue and refreshes State.
	Poll()
	State() *State
}

// State is one frame's worth of input: per-key pressed/edge-transition
// bits, cursor position and delta, capture mode, window size, and the
// frame's text input buffer.
type State struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	WindowWidth, WindowHeight int
	CharBuffer                []rune
}

// IsPressed, IsJustPressed, and IsJustReleased report k's current and
// edge-transition state for the frame State was last populated from.
func (s *State) IsPressed(k Key) bool      { return s.Pressed[k] }
func (s *State) IsJustPressed(k Key) bool  { return s.JustPressed[k] }
func (s *State) IsJustReleased(k Key) bool { return s.JustReleased[k] }
