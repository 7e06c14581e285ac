package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/raster"
	"github.com/go-gl/mathgl/mgl32"
)

// RasterModule renders the scene on the CPU each frame. It needs
// OrbitCameraModule. The terminal viewer and the snapshot tool read the
// finished image from RasterState.
type RasterModule struct {
	Width      int
	Height     int
	Background mgl32.Vec3
}

type RasterState struct {
	Renderer   *raster.Renderer
	Background mgl32.Vec3
	Frames     int
}

func (mod RasterModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererSoftware)
	w, h := mod.Width, mod.Height
	if w <= 0 || h <= 0 {
		w, h = 320, 180
	}
	cmd.AddResources(&RasterState{Renderer: raster.New(w, h), Background: mod.Background})
	cmd.UseSystem(System(rasterSystem).InStage(Render))
}

// Aspect is the width over height of the raster target.
func (rs *RasterState) Aspect() float32 {
	w, h := rs.Renderer.Size()
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}

func rasterFrame(cmd *Commands, cam *core.OrbitCamera, aspect float32, bg mgl32.Vec3) raster.Frame {
	f := raster.Frame{
		View:       cam.View(),
		Projection: cam.Projection(aspect),
		Background: bg,
	}
	MakeQuery2[GalaxyPoints, TransformComponent](cmd).Map(func(eid EntityId, g *GalaxyPoints, tr *TransformComponent) bool {
		if g.Buffer.Len() == 0 {
			return true
		}
		f.Points = append(f.Points, raster.Points{
			Positions:   g.Buffer.Positions,
			Colors:      g.Buffer.Colors,
			Model:       tr.Model(),
			Size:        g.Material.Size,
			Attenuation: g.Material.SizeAttenuation,
		})
		return true
	})
	MakeQuery1[SunMesh](cmd).Map(func(eid EntityId, s *SunMesh) bool {
		if s.Released() {
			return true
		}
		f.Spheres = append(f.Spheres, raster.Sphere{
			Radius:   float32(s.Descriptor.Radius),
			Material: s.Descriptor.Material,
		})
		return true
	})
	return f
}

func rasterSystem(cam *core.OrbitCamera, rs *RasterState, cmd *Commands) {
	rs.Renderer.Render(rasterFrame(cmd, cam, rs.Aspect(), rs.Background))
	rs.Frames++
}
