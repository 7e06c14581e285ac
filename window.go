package galaxy

import (
	"fmt"
	"runtime"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	// Viewport is the logical size plus the capped pixel ratio.
	Viewport core.Viewport
	// Resized is set for one frame after the framebuffer changed size.
	Resized bool
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	ws.refreshViewport()
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.refreshViewport()
		ws.Resized = true
	})
	win.SetContentScaleCallback(func(w *glfw.Window, x, y float32) {
		ws.refreshViewport()
		ws.Resized = true
	})
	return ws, nil
}

func (ws *WindowState) refreshViewport() {
	w, h := ws.windowGlfw.GetSize()
	sx, _ := ws.windowGlfw.GetContentScale()
	ws.WindowWidth, ws.WindowHeight = w, h
	ws.Viewport = core.ResolveViewport(w, h, float64(sx))
}

// Framebuffer returns the surface size in pixels for the capped pixel ratio.
func (ws *WindowState) Framebuffer() (int, int) {
	fw, fh := ws.windowGlfw.GetFramebufferSize()
	vw, vh := ws.Viewport.Framebuffer()
	// the OS may hand out more pixels than the cap allows
	return min(fw, max(vw, 1)), min(fh, max(vh, 1))
}

func (ws *WindowState) Glfw() *glfw.Window { return ws.windowGlfw }

func (ws *WindowState) ShouldClose() bool {
	return ws.windowGlfw.ShouldClose()
}

func (ws *WindowState) Destroy() {
	ws.windowGlfw.Destroy()
	glfw.Terminate()
}

func pollEvents() {
	glfw.PollEvents()
}
