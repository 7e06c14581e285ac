// Package panel implements the debug panel used to tune galaxy parameters.
//
// The panel is device independent: front ends translate their key events
// into Input values and forward the returned edits to the parameter store.
// Numeric values move in steps while a key is held and are only committed
// when the change finishes, never on intermediate values.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gekko3d/galaxy/galaxyrt/core"
)

type Kind int

const (
	KindNumber Kind = iota
	KindColor
)

type Control struct {
	Param string
	Label string
	Kind  Kind
	Min   float64
	Max   float64
	Step  float64
}

// DefaultControls mirrors the tuning ranges of the galaxy viewer.
func DefaultControls() []Control {
	return []Control{
		{Param: core.ParamSunScale, Label: "Sun Scale", Min: 0.01, Max: 2, Step: 0.01},
		{Param: core.ParamCount, Label: "Stars Number", Min: 100, Max: 100000, Step: 10},
		{Param: core.ParamSize, Label: "Stars Size", Min: 0.001, Max: 0.1, Step: 0.001},
		{Param: core.ParamRadius, Label: "Galaxy Size", Min: 1, Max: 20, Step: 0.1},
		{Param: core.ParamBranches, Label: "Galaxy Branches", Min: 2, Max: 20, Step: 1},
		{Param: core.ParamSpin, Label: "Galaxy Spin", Min: -5, Max: 5, Step: 0.1},
		{Param: core.ParamRandomness, Label: "Stars Randomness", Min: 0, Max: 2, Step: 0.01},
		{Param: core.ParamRandomnessPower, Label: "Stars Near Branch", Min: 1, Max: 10, Step: 0.01},
		{Param: core.ParamInsideColor, Label: "Galaxy Inside Color", Kind: KindColor},
		{Param: core.ParamOutsideColor, Label: "Galaxy Outside Color", Kind: KindColor},
	}
}

type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionRelease // end of a held adjustment
	ActionEnter
	ActionEscape
	ActionBackspace
	ActionChar
	ActionToggle
)

type Input struct {
	Action Action
	Rune   rune
	Coarse bool // ten steps instead of one
}

type Line struct {
	Label    string
	Value    string
	Selected bool
	Editing  bool
	Pending  bool
}

func (l Line) String() string {
	marker := "  "
	if l.Selected {
		marker = "> "
	}
	value := l.Value
	if l.Editing {
		value += "_"
	} else if l.Pending {
		value += " *"
	}
	return fmt.Sprintf("%s%-21s %s", marker, l.Label, value)
}

type Panel struct {
	controls []Control
	numbers  map[string]float64
	colors   map[string]string

	selected  int
	pending   bool
	lastNudge time.Time

	editing bool
	editBuf []rune

	Hidden bool
	Err    error
}

func New(controls []Control, params core.ParameterSet) *Panel {
	p := &Panel{
		controls: controls,
		numbers:  make(map[string]float64, len(controls)),
		colors:   make(map[string]string),
	}
	p.Sync(params)
	return p
}

func (p *Panel) Controls() []Control { return p.controls }

func (p *Panel) Selected() Control { return p.controls[p.selected] }

func (p *Panel) Pending() bool { return p.pending }

func (p *Panel) Editing() bool { return p.editing }

// Value returns the displayed value of a numeric control.
func (p *Panel) Value(param string) float64 { return p.numbers[param] }

// Sync refreshes displayed values from params. The control being adjusted
// or edited keeps its in-progress value.
func (p *Panel) Sync(params core.ParameterSet) {
	for i, c := range p.controls {
		if i == p.selected && (p.pending || p.editing) {
			continue
		}
		if c.Kind == KindColor {
			p.colors[c.Param] = colorOf(params, c.Param)
			continue
		}
		p.numbers[c.Param] = numberOf(params, c.Param)
	}
}

// Select moves the cursor, wrapping at both ends.
func (p *Panel) Select(delta int) {
	n := len(p.controls)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// Nudge moves the selected numeric control by steps without committing.
func (p *Panel) Nudge(steps float64, now time.Time) {
	c := p.Selected()
	if c.Kind != KindNumber || p.editing {
		return
	}
	v := snap(p.numbers[c.Param]+steps*c.Step, c)
	if v == p.numbers[c.Param] {
		return
	}
	p.numbers[c.Param] = v
	p.pending = true
	p.lastNudge = now
}

// Commit finishes a pending adjustment.
func (p *Panel) Commit() (core.Edit, bool) {
	if !p.pending {
		return core.Edit{}, false
	}
	p.pending = false
	c := p.Selected()
	return core.NumberEdit(c.Param, p.numbers[c.Param]), true
}

// CommitIdle commits when no nudge happened for idle. It serves front ends
// that never report key releases.
func (p *Panel) CommitIdle(now time.Time, idle time.Duration) (core.Edit, bool) {
	if !p.pending || now.Sub(p.lastNudge) < idle {
		return core.Edit{}, false
	}
	return p.Commit()
}

func (p *Panel) BeginEdit() bool {
	c := p.Selected()
	if c.Kind != KindColor || p.editing {
		return false
	}
	p.editing = true
	p.editBuf = []rune(p.colors[c.Param])
	return true
}

func (p *Panel) Type(r rune) {
	if !p.editing || len(p.editBuf) >= 7 {
		return
	}
	p.editBuf = append(p.editBuf, r)
}

func (p *Panel) Backspace() {
	if p.editing && len(p.editBuf) > 0 {
		p.editBuf = p.editBuf[:len(p.editBuf)-1]
	}
}

// Cancel drops a text edit or an uncommitted adjustment.
func (p *Panel) Cancel(params core.ParameterSet) {
	p.editing = false
	p.editBuf = nil
	p.pending = false
	p.Sync(params)
}

func (p *Panel) finishEdit() (core.Edit, bool) {
	if !p.editing {
		return core.Edit{}, false
	}
	p.editing = false
	c := p.Selected()
	text := string(p.editBuf)
	p.editBuf = nil
	p.colors[c.Param] = text
	return core.ColorEdit(c.Param, text), true
}

// Handle applies one input and returns the edits it committed. params is
// the current committed state, used when an adjustment is cancelled.
func (p *Panel) Handle(in Input, now time.Time, params core.ParameterSet) []core.Edit {
	var edits []core.Edit
	commit := func(e core.Edit, ok bool) {
		if ok {
			edits = append(edits, e)
		}
	}

	if p.editing {
		switch in.Action {
		case ActionEnter:
			commit(p.finishEdit())
		case ActionEscape:
			p.Cancel(params)
		case ActionBackspace:
			p.Backspace()
		case ActionChar:
			p.Type(in.Rune)
		}
		return edits
	}

	steps := 1.0
	if in.Coarse {
		steps = 10
	}

	switch in.Action {
	case ActionUp:
		commit(p.Commit())
		p.Select(-1)
	case ActionDown:
		commit(p.Commit())
		p.Select(1)
	case ActionLeft:
		p.Nudge(-steps, now)
	case ActionRight:
		p.Nudge(steps, now)
	case ActionRelease:
		commit(p.Commit())
	case ActionEnter:
		if p.Selected().Kind == KindColor {
			p.BeginEdit()
		} else {
			commit(p.Commit())
		}
	case ActionEscape:
		p.Cancel(params)
	case ActionToggle:
		p.Hidden = !p.Hidden
	}
	return edits
}

func (p *Panel) Lines() []Line {
	lines := make([]Line, 0, len(p.controls))
	for i, c := range p.controls {
		line := Line{Label: c.Label, Selected: i == p.selected}
		switch {
		case c.Kind == KindColor && line.Selected && p.editing:
			line.Value = string(p.editBuf)
			line.Editing = true
		case c.Kind == KindColor:
			line.Value = p.colors[c.Param]
		default:
			line.Value = formatValue(p.numbers[c.Param], c.Step)
			line.Pending = line.Selected && p.pending
		}
		lines = append(lines, line)
	}
	return lines
}

// Text renders the panel as plain lines, with the last error if any.
func (p *Panel) Text() string {
	if p.Hidden {
		return ""
	}
	var sb strings.Builder
	for _, l := range p.Lines() {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	if p.Err != nil {
		sb.WriteString("! ")
		sb.WriteString(p.Err.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func snap(v float64, c Control) float64 {
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
		v = roundTo(v, decimals(c.Step))
	}
	return math.Max(c.Min, math.Min(c.Max, v))
}

func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func formatValue(v, step float64) string {
	return strconv.FormatFloat(v, 'f', decimals(step), 64)
}

func numberOf(p core.ParameterSet, param string) float64 {
	switch param {
	case core.ParamCount:
		return float64(p.Count)
	case core.ParamSize:
		return p.Size
	case core.ParamRadius:
		return p.Radius
	case core.ParamBranches:
		return float64(p.Branches)
	case core.ParamSpin:
		return p.Spin
	case core.ParamRandomness:
		return p.Randomness
	case core.ParamRandomnessPower:
		return p.RandomnessPower
	case core.ParamSunScale:
		return p.SunScale
	}
	return 0
}

func colorOf(p core.ParameterSet, param string) string {
	if param == core.ParamOutsideColor {
		return p.OutsideColor
	}
	return p.InsideColor
}
