package galaxy

import (
	"time"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/panel"
)

const (
	defaultRepeatDelay    = 300 * time.Millisecond
	defaultRepeatInterval = 40 * time.Millisecond
)

// PanelModule drives the debug panel from window keyboard input. Holding
// left or right keeps adjusting; the value is committed on key release.
// Ctrl+S writes the current parameters to PresetPath.
type PanelModule struct {
	PresetPath     string
	RepeatDelay    time.Duration
	RepeatInterval time.Duration
}

type PanelState struct {
	Panel      *panel.Panel
	PresetPath string

	revision       uint64
	heldSince      time.Time
	lastRepeat     time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
}

func NewPanelState(params *Parameters, presetPath string) *PanelState {
	return &PanelState{
		Panel:          panel.New(panel.DefaultControls(), params.Snapshot()),
		PresetPath:     presetPath,
		revision:       params.Revision,
		repeatDelay:    defaultRepeatDelay,
		repeatInterval: defaultRepeatInterval,
	}
}

func (mod PanelModule) Install(app *App, cmd *Commands) {
	params, ok := Resource[Parameters](app)
	if !ok {
		panic("PanelModule requires ParametersModule")
	}
	ps := NewPanelState(params, mod.PresetPath)
	if mod.RepeatDelay > 0 {
		ps.repeatDelay = mod.RepeatDelay
	}
	if mod.RepeatInterval > 0 {
		ps.repeatInterval = mod.RepeatInterval
	}
	cmd.AddResources(ps)
	cmd.UseSystem(System(panelSystem).InStage(Update))
}

// translate turns this frame's keyboard state into panel inputs.
func (ps *PanelState) translate(input *Input, now time.Time) []panel.Input {
	var out []panel.Input
	if ps.Panel.Editing() {
		for _, r := range input.CharBuffer {
			out = append(out, panel.Input{Action: panel.ActionChar, Rune: r})
		}
		if input.JustPressed[KeyBackspace] {
			out = append(out, panel.Input{Action: panel.ActionBackspace})
		}
		if input.JustPressed[KeyEnter] {
			out = append(out, panel.Input{Action: panel.ActionEnter})
		}
		if input.JustPressed[KeyEscape] {
			out = append(out, panel.Input{Action: panel.ActionEscape})
		}
		return out
	}

	if input.JustPressed[KeyUp] {
		out = append(out, panel.Input{Action: panel.ActionUp})
	}
	if input.JustPressed[KeyDown] {
		out = append(out, panel.Input{Action: panel.ActionDown})
	}

	coarse := input.Pressed[KeyShift]
	for _, k := range [...]struct {
		key    int
		action panel.Action
	}{{KeyLeft, panel.ActionLeft}, {KeyRight, panel.ActionRight}} {
		switch {
		case input.JustPressed[k.key]:
			ps.heldSince, ps.lastRepeat = now, now
			out = append(out, panel.Input{Action: k.action, Coarse: coarse})
		case input.Pressed[k.key] && now.Sub(ps.heldSince) >= ps.repeatDelay && now.Sub(ps.lastRepeat) >= ps.repeatInterval:
			ps.lastRepeat = now
			out = append(out, panel.Input{Action: k.action, Coarse: coarse})
		case input.JustReleased[k.key]:
			out = append(out, panel.Input{Action: panel.ActionRelease})
		}
	}

	if input.JustPressed[KeyEnter] {
		out = append(out, panel.Input{Action: panel.ActionEnter})
	}
	if input.JustPressed[KeyEscape] {
		out = append(out, panel.Input{Action: panel.ActionEscape})
	}
	if input.JustPressed[KeyH] && !input.Pressed[KeyControl] {
		out = append(out, panel.Input{Action: panel.ActionToggle})
	}
	return out
}

// apply feeds inputs to the panel and queues every committed edit.
func (ps *PanelState) apply(inputs []panel.Input, now time.Time, params *Parameters) {
	for _, in := range inputs {
		for _, e := range ps.Panel.Handle(in, now, params.Snapshot()) {
			params.Commit(e)
		}
	}
}

// sync refreshes the panel after the parameters changed or an edit failed.
func (ps *PanelState) sync(params *Parameters) {
	if params.Revision == ps.revision {
		return
	}
	ps.revision = params.Revision
	ps.Panel.Sync(params.Snapshot())
	ps.Panel.Err = params.LastError
}

func (ps *PanelState) savePreset(params *Parameters, log Logger) {
	if ps.PresetPath == "" {
		log.Warnf("no preset path configured")
		return
	}
	if err := SavePreset(ps.PresetPath, params.Snapshot()); err != nil {
		log.Errorf("save preset %s: %v", ps.PresetPath, err)
		return
	}
	log.Infof("preset saved to %s", ps.PresetPath)
}

// TextItems lays out the panel as overlay text, one item per line.
func (ps *PanelState) TextItems(lineHeight float32) []core.TextItem {
	if ps.Panel.Hidden {
		return nil
	}
	var items []core.TextItem
	y := float32(10)
	for _, l := range ps.Panel.Lines() {
		c := [4]float32{0.85, 0.85, 0.85, 1}
		if l.Selected {
			c = [4]float32{1, 0.85, 0.3, 1}
		}
		items = append(items, core.TextItem{Text: l.String(), Position: [2]float32{10, y}, Scale: 1, Color: c})
		y += lineHeight
	}
	if ps.Panel.Err != nil {
		items = append(items, core.TextItem{Text: "! " + ps.Panel.Err.Error(), Position: [2]float32{10, y}, Scale: 1, Color: [4]float32{1, 0.3, 0.3, 1}})
	}
	return items
}

func panelSystem(input *Input, params *Parameters, ps *PanelState, t *Time, cmd *Commands) {
	if !ps.Panel.Editing() {
		if input.Pressed[KeyControl] && input.JustPressed[KeyS] {
			ps.savePreset(params, cmd.Logger())
		}
		if input.JustPressed[KeyQ] {
			cmd.Exit()
		}
	}
	ps.apply(ps.translate(input, t.Time), t.Time, params)
	ps.sync(params)
}
