package galaxy

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPanel(t *testing.T) (*Parameters, *PanelState) {
	t.Helper()
	params, err := NewParameters(core.DefaultParameters())
	require.NoError(t, err)
	return params, NewPanelState(params, "")
}

func frameAt(ps *PanelState, params *Parameters, input *Input, now time.Time) []panel.Input {
	ins := ps.translate(input, now)
	ps.apply(ins, now, params)
	return ins
}

func TestPanelState_HoldRepeatsAndCommitsOnRelease(t *testing.T) {
	params, ps := newTestPanel(t)
	input := &Input{}
	t0 := time.Unix(100, 0)

	require.Equal(t, core.ParamSunScale, ps.Panel.Selected().Param)

	input.SetKey(KeyRight, true)
	assert.Len(t, frameAt(ps, params, input, t0), 1)
	assert.InDelta(t, 0.18, ps.Panel.Value(core.ParamSunScale), 1e-9)

	// held, but the repeat delay has not passed
	input.SetKey(KeyRight, true)
	assert.Empty(t, frameAt(ps, params, input, t0.Add(100*time.Millisecond)))

	input.SetKey(KeyRight, true)
	assert.Len(t, frameAt(ps, params, input, t0.Add(350*time.Millisecond)), 1)
	input.SetKey(KeyRight, true)
	assert.Empty(t, frameAt(ps, params, input, t0.Add(360*time.Millisecond)))
	assert.InDelta(t, 0.19, ps.Panel.Value(core.ParamSunScale), 1e-9)

	// nothing reaches the store while the key is held
	assert.Empty(t, params.pending)

	input.SetKey(KeyRight, false)
	frameAt(ps, params, input, t0.Add(400*time.Millisecond))
	require.Len(t, params.pending, 1)
	assert.Equal(t, core.ParamSunScale, params.pending[0].Name)
	assert.InDelta(t, 0.19, params.pending[0].Value, 1e-9)
}

func TestPanelState_ShiftIsCoarse(t *testing.T) {
	params, ps := newTestPanel(t)
	input := &Input{}

	input.SetKey(KeyShift, true)
	input.SetKey(KeyRight, true)
	ins := frameAt(ps, params, input, time.Unix(0, 0))
	require.Len(t, ins, 1)
	assert.True(t, ins[0].Coarse)
	assert.InDelta(t, 0.27, ps.Panel.Value(core.ParamSunScale), 1e-9)
}

func TestPanelState_ColorEditing(t *testing.T) {
	params, ps := newTestPanel(t)
	input := &Input{}
	now := time.Unix(0, 0)

	// inside color is second to last
	ps.Panel.Select(-2)
	require.Equal(t, core.ParamInsideColor, ps.Panel.Selected().Param)

	input.SetKey(KeyEnter, true)
	frameAt(ps, params, input, now)
	require.True(t, ps.Panel.Editing())
	input.SetKey(KeyEnter, false)

	for i := 0; i < 7; i++ {
		input.SetKey(KeyBackspace, true)
		frameAt(ps, params, input, now)
		input.SetKey(KeyBackspace, false)
	}
	input.CharBuffer = []rune("#00ff00")
	frameAt(ps, params, input, now)
	input.CharBuffer = nil

	input.SetKey(KeyEnter, true)
	frameAt(ps, params, input, now)
	assert.False(t, ps.Panel.Editing())
	require.Len(t, params.pending, 1)
	assert.Equal(t, core.ColorEdit(core.ParamInsideColor, "#00ff00"), params.pending[0])
}

func TestPanelState_KeysIgnoredWhileEditing(t *testing.T) {
	params, ps := newTestPanel(t)
	input := &Input{}
	ps.Panel.Select(-1)
	require.True(t, ps.Panel.BeginEdit())

	input.SetKey(KeyUp, true)
	input.SetKey(KeyH, true)
	assert.Empty(t, frameAt(ps, params, input, time.Unix(0, 0)))
	assert.False(t, ps.Panel.Hidden)
}

func TestPanelState_SyncShowsStoreErrors(t *testing.T) {
	params, ps := newTestPanel(t)

	_, err := params.Apply(core.NumberEdit(core.ParamRadius, -3))
	require.Error(t, err)
	ps.sync(params)
	assert.ErrorIs(t, ps.Panel.Err, core.ErrInvalidParameter)

	_, err = params.Apply(core.NumberEdit(core.ParamRadius, 7))
	require.NoError(t, err)
	ps.sync(params)
	assert.NoError(t, ps.Panel.Err)
	assert.Equal(t, 7.0, ps.Panel.Value(core.ParamRadius))
}

func TestPanelState_TextItems(t *testing.T) {
	_, ps := newTestPanel(t)

	items := ps.TextItems(20)
	require.Len(t, items, len(panel.DefaultControls()))
	assert.Equal(t, float32(10), items[0].Position[1])
	assert.Equal(t, float32(30), items[1].Position[1])
	assert.Contains(t, items[0].Text, "> Sun Scale")

	ps.Panel.Err = errors.New("bad color")
	items = ps.TextItems(20)
	assert.Equal(t, "! bad color", items[len(items)-1].Text)

	ps.Panel.Hidden = true
	assert.Nil(t, ps.TextItems(20))
}

func TestPanelModule_RequiresParameters(t *testing.T) {
	assert.Panics(t, func() {
		NewApp().UseModules(PanelModule{})
	})
}

func TestPanelSystem_SaveAndQuit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "preset.json")
	app := NewApp().UseModules(TimeModule{}, ParametersModule{}, PanelModule{PresetPath: file})
	input := &Input{}
	app.addResources(input)

	input.SetKey(KeyControl, true)
	input.SetKey(KeyS, true)
	require.True(t, app.RunFrames(1))

	loaded, err := LoadPreset(file)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultParameters(), loaded)

	input.SetKey(KeyControl, false)
	input.SetKey(KeyS, false)
	input.SetKey(KeyQ, true)
	assert.False(t, app.RunFrames(1))
}

func TestPanelSystem_CommittedEditReachesStore(t *testing.T) {
	app := NewApp().UseModules(TimeModule{}, ParametersModule{}, PanelModule{})
	input := &Input{}
	app.addResources(input)
	params, _ := Resource[Parameters](app)

	input.SetKey(KeyDown, true) // Stars Number
	app.RunFrames(1)
	input.SetKey(KeyDown, false)
	input.SetKey(KeyLeft, true)
	app.RunFrames(1)
	input.SetKey(KeyLeft, false)
	app.RunFrames(1)

	assert.Equal(t, 49990, params.Snapshot().Count)
}
