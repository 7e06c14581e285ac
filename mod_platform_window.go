package galaxy

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Galaxy"
	}
	return &PlatformWindowModule{Width: width, Height: height, Title: title}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}
	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		cmd.Logger().Errorf("window: %v", err)
		panic(err)
	}
	cmd.AddResources(ws)
	cmd.UseSystem(System(windowSystem).InStage(Prelude))
	cmd.Logger().Infof("created window (%dx%d) '%s', pixel ratio %.2f", m.Width, m.Height, m.Title, ws.Viewport.PixelRatio)
}

func windowSystem(ws *WindowState, cmd *Commands) {
	ws.Resized = false
	pollEvents()
	if ws.ShouldClose() {
		cmd.Exit()
	}
}
