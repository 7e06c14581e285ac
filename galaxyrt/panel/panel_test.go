package panel

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectParam(t *testing.T, p *Panel, param string) {
	t.Helper()
	for i := 0; i < len(p.Controls()); i++ {
		if p.Selected().Param == param {
			return
		}
		p.Select(1)
	}
	t.Fatalf("control %s not found", param)
}

func TestPanel_InitialValues(t *testing.T) {
	p := New(DefaultControls(), core.DefaultParameters())
	assert.Equal(t, core.ParamSunScale, p.Selected().Param)
	assert.Equal(t, 0.17, p.Value(core.ParamSunScale))
	assert.Equal(t, 50000.0, p.Value(core.ParamCount))

	lines := p.Lines()
	require.Len(t, lines, 10)
	assert.Equal(t, "Sun Scale", lines[0].Label)
	assert.Equal(t, "0.17", lines[0].Value)
	assert.Equal(t, "50000", lines[1].Value)
	assert.Equal(t, "#ff6030", lines[8].Value)
}

func TestPanel_NudgeCommitsOnlyOnRelease(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	selectParam(t, p, core.ParamCount)
	now := time.Now()

	for i := 0; i < 5; i++ {
		edits := p.Handle(Input{Action: ActionRight}, now, params)
		assert.Empty(t, edits, "intermediate values must not commit")
	}
	assert.True(t, p.Pending())
	assert.Equal(t, 50050.0, p.Value(core.ParamCount))

	edits := p.Handle(Input{Action: ActionRelease}, now, params)
	require.Len(t, edits, 1)
	assert.Equal(t, core.NumberEdit(core.ParamCount, 50050), edits[0])
	assert.False(t, p.Pending())

	assert.Empty(t, p.Handle(Input{Action: ActionRelease}, now, params))
}

func TestPanel_NudgeClampsAndSnaps(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	now := time.Now()

	p.Handle(Input{Action: ActionRight}, now, params)
	assert.Equal(t, 0.18, p.Value(core.ParamSunScale))

	for i := 0; i < 30; i++ {
		p.Handle(Input{Action: ActionLeft, Coarse: true}, now, params)
	}
	assert.Equal(t, 0.01, p.Value(core.ParamSunScale))

	selectParam(t, p, core.ParamBranches)
	for i := 0; i < 40; i++ {
		p.Nudge(1, now)
	}
	assert.Equal(t, 20.0, p.Value(core.ParamBranches))
}

func TestPanel_SelectCommitsPending(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	now := time.Now()

	p.Handle(Input{Action: ActionRight}, now, params)
	edits := p.Handle(Input{Action: ActionDown}, now, params)
	require.Len(t, edits, 1)
	assert.Equal(t, core.ParamSunScale, edits[0].Name)
	assert.Equal(t, core.ParamCount, p.Selected().Param)

	p.Select(-2)
	assert.Equal(t, core.ParamOutsideColor, p.Selected().Param)
}

func TestPanel_CommitIdle(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	now := time.Now()

	p.Nudge(1, now)
	_, ok := p.CommitIdle(now.Add(100*time.Millisecond), 300*time.Millisecond)
	assert.False(t, ok)

	e, ok := p.CommitIdle(now.Add(400*time.Millisecond), 300*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, core.ParamSunScale, e.Name)
	assert.InDelta(t, 0.18, e.Value, 1e-12)
}

func TestPanel_ColorEdit(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	selectParam(t, p, core.ParamInsideColor)
	now := time.Now()

	assert.Empty(t, p.Handle(Input{Action: ActionEnter}, now, params))
	require.True(t, p.Editing())
	for i := 0; i < 6; i++ {
		p.Handle(Input{Action: ActionBackspace}, now, params)
	}
	for _, r := range "00ff00" {
		p.Handle(Input{Action: ActionChar, Rune: r}, now, params)
	}
	p.Handle(Input{Action: ActionChar, Rune: 'f'}, now, params)

	edits := p.Handle(Input{Action: ActionEnter}, now, params)
	require.Len(t, edits, 1)
	assert.Equal(t, core.ColorEdit(core.ParamInsideColor, "#00ff00"), edits[0])
	assert.False(t, p.Editing())
}

func TestPanel_CancelRestoresValues(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	now := time.Now()

	p.Handle(Input{Action: ActionRight, Coarse: true}, now, params)
	assert.Equal(t, 0.27, p.Value(core.ParamSunScale))
	assert.Empty(t, p.Handle(Input{Action: ActionEscape}, now, params))
	assert.Equal(t, 0.17, p.Value(core.ParamSunScale))
	assert.False(t, p.Pending())
}

func TestPanel_SyncKeepsInProgressValue(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	p.Nudge(5, time.Now())

	next := params
	next.SunScale = 1
	next.Count = 200
	p.Sync(next)
	assert.Equal(t, 0.22, p.Value(core.ParamSunScale))
	assert.Equal(t, 200.0, p.Value(core.ParamCount))
}

func TestPanel_Text(t *testing.T) {
	params := core.DefaultParameters()
	p := New(DefaultControls(), params)
	p.Err = errors.New("bad value")

	text := p.Text()
	assert.True(t, strings.HasPrefix(text, "> Sun Scale"))
	assert.Contains(t, text, "Galaxy Outside Color")
	assert.Contains(t, text, "! bad value")

	p.Handle(Input{Action: ActionToggle}, time.Now(), params)
	assert.Empty(t, p.Text())
}
