package galaxy

import (
	"testing"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneDraws(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	buf := &core.ParticleBuffer{Positions: make([]mgl32.Vec3, 2), Colors: make([]mgl32.Vec3, 2)}
	points := NewGalaxyPoints(buf, 0.01)
	tr := IdentityTransform()
	tr.Rotation = mgl32.Vec3{0, 0.5, 0}
	cmd.AddEntity(points, tr)
	desc, err := core.GenerateSun(core.DefaultParameters())
	require.NoError(t, err)
	sun := NewSunMesh(desc)
	cmd.AddEntity(sun, IdentityTransform())
	app.FlushCommands()

	draws, suns := sceneDraws(cmd)
	require.Len(t, draws, 1)
	assert.Equal(t, string(points.Asset), draws[0].Key)
	assert.Same(t, buf, draws[0].Buffer)
	assert.Equal(t, tr.Model(), draws[0].Model)
	assert.InDelta(t, 0.01, draws[0].Size, 1e-7)
	assert.True(t, draws[0].Attenuation)

	require.Len(t, suns, 1)
	assert.Equal(t, string(sun.Asset), suns[0].Key)
	assert.Equal(t, sun.Mesh, *suns[0].Mesh)
	assert.Equal(t, mgl32.Ident4(), suns[0].Model)
	assert.Equal(t, desc.Material, suns[0].Material)
}

func TestSceneDraws_SkipsEmptyAndReleased(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	cmd.AddEntity(NewGalaxyPoints(&core.ParticleBuffer{}, 0.01), IdentityTransform())
	desc, err := core.GenerateSun(core.DefaultParameters())
	require.NoError(t, err)
	sun := NewSunMesh(desc)
	sun.Release()
	cmd.AddEntity(sun, IdentityTransform())
	app.FlushCommands()

	points, suns := sceneDraws(cmd)
	assert.Empty(t, points)
	assert.Empty(t, suns)
}

func TestSceneDraws_FreshAssetPerGeneration(t *testing.T) {
	a := NewGalaxyPoints(&core.ParticleBuffer{}, 0.01)
	b := NewGalaxyPoints(&core.ParticleBuffer{}, 0.01)
	assert.NotEqual(t, a.Asset, b.Asset)
	assert.NotEmpty(t, a.Asset)
}
