package galaxy

import (
	"github.com/cogentcore/webgpu/wgpu"
	gpuapp "github.com/gekko3d/galaxy/galaxyrt/app"
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/gpu"
)

// RendererModule draws the scene into the platform window with WebGPU.
// It needs PlatformWindowModule and OrbitCameraModule.
type RendererModule struct {
	Clear wgpu.Color
}

type RendererState struct {
	App   *gpuapp.App
	Clear wgpu.Color
}

func (mod RendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererWebGPU)
	ws, ok := Resource[WindowState](app)
	if !ok {
		panic("RendererModule requires PlatformWindowModule")
	}

	gfx := gpuapp.NewApp(ws.Glfw())
	if err := gfx.Init(); err != nil {
		cmd.Logger().Errorf("renderer init: %v", err)
		panic(err)
	}
	if err := gfx.Resize(ws.Framebuffer()); err != nil {
		cmd.Logger().Errorf("renderer resize: %v", err)
		panic(err)
	}

	clear := mod.Clear
	if clear == (wgpu.Color{}) {
		clear = wgpu.Color{A: 1}
	}
	cmd.AddResources(&RendererState{App: gfx, Clear: clear})
	cmd.UseSystem(System(renderSystem).InStage(Render))
}

// sceneDraws gathers the drawable entities in id order.
func sceneDraws(cmd *Commands) ([]gpu.PointsDraw, []gpu.SunDraw) {
	var points []gpu.PointsDraw
	var suns []gpu.SunDraw
	MakeQuery2[GalaxyPoints, TransformComponent](cmd).Map(func(eid EntityId, g *GalaxyPoints, tr *TransformComponent) bool {
		if g.Buffer.Len() == 0 {
			return true
		}
		points = append(points, gpu.PointsDraw{
			Key:         string(g.Asset),
			Buffer:      g.Buffer,
			Model:       tr.Model(),
			Size:        g.Material.Size,
			Attenuation: g.Material.SizeAttenuation,
		})
		return true
	})
	MakeQuery2[SunMesh, TransformComponent](cmd).Map(func(eid EntityId, s *SunMesh, tr *TransformComponent) bool {
		if s.Released() {
			return true
		}
		suns = append(suns, gpu.SunDraw{
			Key:      string(s.Asset),
			Mesh:     &s.Mesh,
			Material: s.Descriptor.Material,
			Model:    tr.Model(),
		})
		return true
	})
	return points, suns
}

func renderSystem(ws *WindowState, cam *core.OrbitCamera, rs *RendererState, cmd *Commands) {
	log := cmd.Logger()
	if ws.Resized {
		if err := rs.App.Resize(ws.Framebuffer()); err != nil {
			log.Errorf("resize: %v", err)
			return
		}
	}

	points, suns := sceneDraws(cmd)
	frame := gpuapp.Frame{
		View:       cam.View(),
		Projection: cam.Projection(ws.Viewport.Aspect()),
		Eye:        cam.Position(),
		Points:     points,
		Suns:       suns,
		Clear:      rs.Clear,
	}
	if ps, ok := Resource[PanelState](cmd.app); ok {
		frame.Text = ps.TextItems(rs.App.LineHeight())
	}
	if err := rs.App.Render(frame); err != nil {
		log.Errorf("render: %v", err)
	}
}
