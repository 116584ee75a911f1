package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFWEventSource is the reference EventSource, grounded on the teacher's
// per-frame input system but restructured as a pull-based Poll() the
// caller drives directly instead of an ECS stage.
type GLFWEventSource struct {
	window *glfw.Window
	state  State
}

// NewGLFWEventSource wraps an already-created GLFW window. It registers
// the window's char callback once, appending to State.CharBuffer until
// the next Poll clears it.
func NewGLFWEventSource(window *glfw.Window) *GLFWEventSource {
	src := &GLFWEventSource{window: window}
	window.SetCharCallback(func(_ *glfw.Window, char rune) {
		src.state.CharBuffer = append(src.state.CharBuffer, char)
	})
	return src
}

// SetMouseCaptured toggles cursor capture; GLFWEventSource applies the
// resulting cursor mode on the next Poll.
func (s *GLFWEventSource) SetMouseCaptured(captured bool) { s.state.MouseCaptured = captured }

func (s *GLFWEventSource) State() *State { return &s.state }

// Poll pumps GLFW's event queue and refreshes every field of State:
// key/button edges, cursor position and delta, window size, and the
// captured-cursor mode.
func (s *GLFWEventSource) Poll() {
	s.state.CharBuffer = nil

	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		action := s.window.GetKey(glfwKey)

		s.state.JustPressed[key] = false
		s.state.JustReleased[key] = false

		switch action {
		case glfw.Press:
			if !s.state.Pressed[key] {
				s.state.JustPressed[key] = true
			}
			s.state.Pressed[key] = true
		case glfw.Release:
			if s.state.Pressed[key] {
				s.state.JustReleased[key] = true
			}
			s.state.Pressed[key] = false
		}
	}

	mx, my := s.window.GetCursorPos()
	if s.state.MouseCaptured {
		s.state.MouseDeltaX = mx - s.state.MouseX
		s.state.MouseDeltaY = my - s.state.MouseY
	} else {
		s.state.MouseDeltaX = 0
		s.state.MouseDeltaY = 0
	}
	s.state.MouseX = mx
	s.state.MouseY = my

	s.state.WindowWidth, s.state.WindowHeight = s.window.GetSize()

	for btn, glfwBtn := range mouseToGlfw {
		action := s.window.GetMouseButton(glfwBtn)

		s.state.JustPressed[btn] = false
		s.state.JustReleased[btn] = false

		switch action {
		case glfw.Press:
			if !s.state.Pressed[btn] {
				s.state.JustPressed[btn] = true
			}
			s.state.Pressed[btn] = true
		case glfw.Release:
			if s.state.Pressed[btn] {
				s.state.JustReleased[btn] = true
			}
			s.state.Pressed[btn] = false
		}
	}

	if s.state.MouseCaptured {
		s.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

var keyToGlfw = map[Key]glfw.Key{
	KeyA:         glfw.KeyA,
	KeyB:         glfw.KeyB,
	KeyC:         glfw.KeyC,
	KeyD:         glfw.KeyD,
	KeyE:         glfw.KeyE,
	KeyF:         glfw.KeyF,
	KeyG:         glfw.KeyG,
	KeyH:         glfw.KeyH,
	KeyI:         glfw.KeyI,
	KeyJ:         glfw.KeyJ,
	KeyK:         glfw.KeyK,
	KeyL:         glfw.KeyL,
	KeyM:         glfw.KeyM,
	KeyN:         glfw.KeyN,
	KeyO:         glfw.KeyO,
	KeyP:         glfw.KeyP,
	KeyQ:         glfw.KeyQ,
	KeyR:         glfw.KeyR,
	KeyS:         glfw.KeyS,
	KeyT:         glfw.KeyT,
	KeyU:         glfw.KeyU,
	KeyV:         glfw.KeyV,
	KeyW:         glfw.KeyW,
	KeyX:         glfw.KeyX,
	KeyY:         glfw.KeyY,
	KeyZ:         glfw.KeyZ,
	Key0:         glfw.Key0,
	Key1:         glfw.Key1,
	Key2:         glfw.Key2,
	Key3:         glfw.Key3,
	Key4:         glfw.Key4,
	Key5:         glfw.Key5,
	Key6:         glfw.Key6,
	Key7:         glfw.Key7,
	Key8:         glfw.Key8,
	Key9:         glfw.Key9,
	KeySpace:     glfw.KeySpace,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyTab:       glfw.KeyTab,
	KeyBackspace: glfw.KeyBackspace,
	KeyInsert:    glfw.KeyInsert,
	KeyDelete:    glfw.KeyDelete,
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyF1:        glfw.KeyF1,
	KeyF2:        glfw.KeyF2,
	KeyF3:        glfw.KeyF3,
	KeyF4:        glfw.KeyF4,
	KeyF5:        glfw.KeyF5,
	KeyF6:        glfw.KeyF6,
	KeyF7:        glfw.KeyF7,
	KeyF8:        glfw.KeyF8,
	KeyF9:        glfw.KeyF9,
	KeyF10:       glfw.KeyF10,
	KeyF11:       glfw.KeyF11,
	KeyF12:       glfw.KeyF12,
	KeyMinus:     glfw.KeyMinus,
	KeyEqual:     glfw.KeyEqual,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeyShift:     glfw.KeyLeftShift,
	KeyControl:   glfw.KeyLeftControl,
	KeyLeftAlt:   glfw.KeyLeftAlt,
}

var mouseToGlfw = map[Key]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
