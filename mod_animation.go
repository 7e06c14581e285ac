package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/core"
)

// AnimationModule spins every galaxy entity as a function of elapsed time.
type AnimationModule struct{}

func (mod AnimationModule) Install(app *App, cmd *Commands) {
	cmd.UseSystem(System(animationSystem).InStage(PreRender))
}

func animationSystem(t *Time, cmd *Commands) {
	rot := core.GalaxyRotation(t.ElapsedSeconds())
	MakeQuery2[GalaxyPoints, TransformComponent](cmd).Map(func(eid EntityId, g *GalaxyPoints, tr *TransformComponent) bool {
		tr.Rotation = rot
		return true
	})
}
