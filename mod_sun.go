package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/core"
)

type SunModule struct{}

type SunState struct {
	slot        *Slot
	Current     *SunMesh
	Generations int
}

func (mod SunModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&SunState{slot: cmd.NewSlot("sun")})
	cmd.UseSystem(System(sunSystem).InStage(PostUpdate))
}

func sunSystem(params *Parameters, state *SunState, cmd *Commands) {
	if !params.ConsumeDirty(core.TargetSun) {
		return
	}
	desc, err := core.GenerateSun(params.Snapshot())
	if err != nil {
		params.Fail(err)
		cmd.Logger().Warnf("sun generation failed, keeping previous mesh: %v", err)
		return
	}
	mesh := NewSunMesh(desc)
	state.slot.Replace(mesh, IdentityTransform())
	state.Current = mesh
	state.Generations++
	cmd.Logger().Debugf("sun: radius %.3f", desc.Radius)
}
