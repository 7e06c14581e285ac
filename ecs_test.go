package galaxy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releaseRecorder struct {
	name string
	log  *[]string
}

func (r *releaseRecorder) Release() {
	*r.log = append(*r.log, "release "+r.name)
}

type tagComponent struct{ n int }

type flushLogger struct {
	nopLogger
	log *[]string
}

func (l *flushLogger) Debugf(format string, args ...any) {
	*l.log = append(*l.log, format)
}

func collect[T any](app *App) []T {
	var out []T
	MakeQuery1[T](app.Commands()).Map(func(eid EntityId, c *T) bool {
		out = append(out, *c)
		return true
	})
	return out
}

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()
	assert.Empty(t, ecs.archetypes)
	assert.Empty(t, ecs.entityIndex)
	assert.Equal(t, EntityId(0), ecs.entityIdCounter)
	assert.Equal(t, componentId(0), ecs.componentIdCounter)
}

func TestEcs_AddEntity(t *testing.T) {
	ecs := MakeEcs()
	bare := ecs.addEntity()
	tagged := ecs.addEntity(tagComponent{n: 1})

	assert.True(t, ecs.hasEntity(bare))
	assert.True(t, ecs.hasEntity(tagged))
	assert.NotEqual(t, ecs.entityIndex[bare], ecs.entityIndex[tagged])
	assert.Equal(t, 2, ecs.len())
}

func TestEcs_PointerAndValueShareArchetype(t *testing.T) {
	ecs := MakeEcs()
	a := ecs.addEntity(tagComponent{n: 1})
	b := ecs.addEntity(&tagComponent{n: 2})
	assert.Equal(t, ecs.entityIndex[a], ecs.entityIndex[b])
}

func TestEcs_AddInvalidComponentPanics(t *testing.T) {
	ecs := MakeEcs()
	assert.Panics(t, func() { ecs.addEntity(42) })
}

func TestEcs_RemoveEntityReleasesAndRecycles(t *testing.T) {
	var log []string
	ecs := MakeEcs()
	first := ecs.addEntity(&releaseRecorder{name: "first", log: &log})

	require.True(t, ecs.removeEntity(first))
	assert.Equal(t, []string{"release first"}, log)
	assert.False(t, ecs.hasEntity(first))
	assert.False(t, ecs.removeEntity(first))

	arch := ecs.archetypes[getArchetypeId(ecs.getArchetypeKey(releaseRecorder{}))]
	require.Len(t, arch.recycled, 1)

	second := ecs.addEntity(&releaseRecorder{name: "second", log: &log})
	assert.Empty(t, arch.recycled)
	assert.Equal(t, row(0), arch.entities[second])
}

func TestQuery_MapInIdOrder(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	for i := 0; i < 5; i++ {
		if i%2 == 0 {
			cmd.AddEntity(&tagComponent{n: i})
		} else {
			cmd.AddEntity(&tagComponent{n: i}, IdentityTransform())
		}
	}
	app.FlushCommands()

	var seen []int
	MakeQuery1[tagComponent](cmd).Map(func(eid EntityId, tag *tagComponent) bool {
		seen = append(seen, tag.n)
		return true
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)

	var first []int
	MakeQuery1[tagComponent](cmd).Map(func(eid EntityId, tag *tagComponent) bool {
		first = append(first, tag.n)
		return false
	})
	assert.Equal(t, []int{0}, first)
}

func TestQuery2_RequiresBothUnlessOptional(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	cmd.AddEntity(&tagComponent{n: 1})
	cmd.AddEntity(&tagComponent{n: 2}, IdentityTransform())
	app.FlushCommands()

	var both []int
	MakeQuery2[tagComponent, TransformComponent](cmd).Map(func(eid EntityId, tag *tagComponent, tr *TransformComponent) bool {
		both = append(both, tag.n)
		return true
	})
	assert.Equal(t, []int{2}, both)

	var withNil []bool
	MakeQuery2[tagComponent, TransformComponent](cmd).Map(func(eid EntityId, tag *tagComponent, tr *TransformComponent) bool {
		withNil = append(withNil, tr == nil)
		return true
	}, TransformComponent{})
	assert.Equal(t, []bool{true, false}, withNil)
}

func TestQuery_WritesReachStorage(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	cmd.AddEntity(&tagComponent{n: 1})
	app.FlushCommands()

	MakeQuery1[tagComponent](cmd).Map(func(eid EntityId, tag *tagComponent) bool {
		tag.n = 9
		return true
	})
	assert.Equal(t, []tagComponent{{n: 9}}, collect[tagComponent](app))
}

func TestCommands_AddIsInvisibleUntilFlush(t *testing.T) {
	app := NewApp()
	app.Commands().AddEntity(&tagComponent{n: 1})
	assert.Empty(t, collect[tagComponent](app))
	assert.Equal(t, 0, app.EntityCount())

	app.FlushCommands()
	assert.Equal(t, 1, app.EntityCount())
	assert.Len(t, collect[tagComponent](app), 1)
}

func TestFlushCommands_RemovesBeforeAdding(t *testing.T) {
	var log []string
	app := NewApp()
	cmd := app.Commands()
	old := cmd.AddEntity(&releaseRecorder{name: "old", log: &log})
	app.FlushCommands()

	var flushLog []string
	app.addResources(&flushLogger{log: &flushLog})
	cmd.AddEntity(&releaseRecorder{name: "new", log: &log})
	cmd.RemoveEntity(old)
	app.FlushCommands()

	assert.Equal(t, []string{"release old"}, log)
	assert.Equal(t, []string{"flush: removed entity %d", "flush: added entity %d"}, flushLog)
	assert.Equal(t, 1, app.EntityCount())
}

func TestSlot_ReplaceReleasesPrevious(t *testing.T) {
	var log []string
	app := NewApp()
	slot := app.Commands().NewSlot("galaxy")

	first := slot.Replace(&releaseRecorder{name: "first", log: &log})
	app.FlushCommands()
	second := slot.Replace(&releaseRecorder{name: "second", log: &log})
	app.FlushCommands()

	assert.Equal(t, []string{"release first"}, log)
	assert.False(t, app.ecs.hasEntity(first))
	assert.True(t, app.ecs.hasEntity(second))
	cur, ok := slot.Current()
	assert.True(t, ok)
	assert.Equal(t, second, cur)
	assert.Equal(t, 1, app.EntityCount())
}

func TestSlot_ReplaceTwiceInOneBatch(t *testing.T) {
	var log []string
	app := NewApp()
	slot := app.Commands().NewSlot("galaxy")

	slot.Replace(&releaseRecorder{name: "a", log: &log})
	b := slot.Replace(&releaseRecorder{name: "b", log: &log})
	app.FlushCommands()

	assert.Equal(t, []string{"release a"}, log)
	assert.Equal(t, 1, app.EntityCount())
	assert.True(t, app.ecs.hasEntity(b))
}

func TestSlot_Clear(t *testing.T) {
	var log []string
	app := NewApp()
	slot := app.Commands().NewSlot("sun")
	slot.Replace(&releaseRecorder{name: "sun", log: &log})
	app.FlushCommands()

	slot.Clear()
	app.FlushCommands()
	assert.Equal(t, []string{"release sun"}, log)
	assert.Equal(t, 0, app.EntityCount())
	_, ok := slot.Current()
	assert.False(t, ok)

	// clearing an empty slot queues nothing
	slot.Clear()
	assert.Empty(t, app.pendingRemovals)
}

func TestTransformComponent_Model(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), IdentityTransform().Model())

	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	m := tr.Model()
	assert.Equal(t, float32(1), m.At(0, 3))
	assert.Equal(t, float32(2), m.At(1, 3))
	assert.Equal(t, float32(3), m.At(2, 3))
}
