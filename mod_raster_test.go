package galaxy

import (
	"testing"
	"time"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterModule_RendersGalaxy(t *testing.T) {
	p := smallParameters()
	p.Count = 2000
	p.Size = 0.2
	app := NewApp().UseModules(
		TimeModule{Step: time.Second / 60},
		ParametersModule{Initial: &p},
		GalaxyModule{Source: core.NewSeededSource(11)},
		SunModule{},
		AnimationModule{},
		OrbitCameraModule{},
		RasterModule{Width: 64, Height: 48},
	)
	app.RunFrames(1)

	rs, ok := Resource[RasterState](app)
	require.True(t, ok)
	assert.Equal(t, 1, rs.Frames)
	assert.InDelta(t, 64.0/48.0, rs.Aspect(), 1e-6)

	img := rs.Renderer.Image()
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 || img.Pix[i+1] > 0 || img.Pix[i+2] > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

func TestRasterModule_DefaultSize(t *testing.T) {
	app := NewApp().UseModules(RasterModule{})
	rs, _ := Resource[RasterState](app)
	w, h := rs.Renderer.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 180, h)
}

func TestRasterFrame_CollectsEntities(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	buf := &core.ParticleBuffer{Positions: make([]mgl32.Vec3, 3), Colors: make([]mgl32.Vec3, 3)}
	tr := IdentityTransform()
	tr.Rotation = mgl32.Vec3{0, 1, 0}
	cmd.AddEntity(NewGalaxyPoints(buf, 0.02), tr)
	cmd.AddEntity(NewGalaxyPoints(&core.ParticleBuffer{}, 0.02), IdentityTransform())

	desc, err := core.GenerateSun(core.DefaultParameters())
	require.NoError(t, err)
	cmd.AddEntity(NewSunMesh(desc), IdentityTransform())
	released := NewSunMesh(desc)
	released.Release()
	cmd.AddEntity(released, IdentityTransform())
	app.FlushCommands()

	f := rasterFrame(cmd, core.NewOrbitCamera(), 1.5, mgl32.Vec3{0.1, 0.1, 0.1})
	require.Len(t, f.Points, 1)
	assert.Equal(t, tr.Model(), f.Points[0].Model)
	assert.InDelta(t, 0.02, f.Points[0].Size, 1e-7)
	assert.True(t, f.Points[0].Attenuation)
	require.Len(t, f.Spheres, 1)
	assert.InDelta(t, desc.Radius, f.Spheres[0].Radius, 1e-6)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, f.Background)
}
