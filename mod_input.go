package galaxy

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyUp int = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyShift
	KeyControl
	KeyH
	KeyS
	KeyQ
	MouseButtonLeft
	MouseButtonRight
	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollY                  float64

	CharBuffer []rune

	callbacks   bool
	pendingChar []rune
	pendingWhl  float64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	cmd.UseSystem(System(inputSystem).InStage(PreUpdate).RunAlways())
}

// SetKey records the state of key for this frame and derives the edge flags.
func (input *Input) SetKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// MoveMouse records an absolute cursor position and the delta since the last one.
func (input *Input) MoveMouse(x, y float64) {
	input.MouseDeltaX = x - input.MouseX
	input.MouseDeltaY = y - input.MouseY
	input.MouseX, input.MouseY = x, y
}

func inputSystem(s *WindowState, input *Input) {
	win := s.windowGlfw
	if !input.callbacks {
		win.SetCharCallback(func(w *glfw.Window, char rune) {
			input.pendingChar = append(input.pendingChar, char)
		})
		win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
			input.pendingWhl += yoff
		})
		mx, my := win.GetCursorPos()
		input.MouseX, input.MouseY = mx, my
		input.callbacks = true
	}

	// callbacks fired during the window poll earlier this frame
	input.CharBuffer = append(input.CharBuffer[:0], input.pendingChar...)
	input.pendingChar = input.pendingChar[:0]
	input.ScrollY = input.pendingWhl
	input.pendingWhl = 0

	for key, glfwKey := range keyToGlfw {
		input.SetKey(key, win.GetKey(glfwKey) == glfw.Press)
	}
	input.SetKey(MouseButtonLeft, win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)
	input.SetKey(MouseButtonRight, win.GetMouseButton(glfw.MouseButtonRight) == glfw.Press)

	input.MoveMouse(win.GetCursorPos())
}

var keyToGlfw = map[int]glfw.Key{
	KeyUp:        glfw.KeyUp,
	KeyDown:      glfw.KeyDown,
	KeyLeft:      glfw.KeyLeft,
	KeyRight:     glfw.KeyRight,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyBackspace: glfw.KeyBackspace,
	KeyShift:     glfw.KeyLeftShift,
	KeyControl:   glfw.KeyLeftControl,
	KeyH:         glfw.KeyH,
	KeyS:         glfw.KeyS,
	KeyQ:         glfw.KeyQ,
}
