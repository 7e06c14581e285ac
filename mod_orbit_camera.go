package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/core"
)

// OrbitCameraModule provides the damped orbit camera. With Mouse set the
// camera follows left-button drags and the scroll wheel of the window.
type OrbitCameraModule struct {
	Mouse bool
}

func (mod OrbitCameraModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(core.NewOrbitCamera())
	if mod.Mouse {
		cmd.UseSystem(System(mouseOrbitSystem).InStage(Update))
	}
	cmd.UseSystem(System(orbitCameraSystem).InStage(PreRender))
}

func mouseOrbitSystem(input *Input, cam *core.OrbitCamera, ws *WindowState) {
	if input.Pressed[MouseButtonLeft] && !input.JustPressed[MouseButtonLeft] {
		cam.Drag(input.MouseDeltaX, input.MouseDeltaY, ws.WindowHeight)
	}
	cam.Scroll(input.ScrollY)
}

func orbitCameraSystem(cam *core.OrbitCamera) {
	cam.Update()
}
