package galaxy

import (
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/panel"
)

const (
	defaultIdleCommit = 400 * time.Millisecond
	terminalPanelCols = 36
	// fraction of the view height one orbit key press covers
	terminalOrbitStep = 1.0 / 16
)

// TerminalModule shows the software raster in a terminal with half-block
// cells and the debug panel on the right. It needs RasterModule,
// OrbitCameraModule and ParametersModule. Terminals do not report key
// releases, so a nudged value commits once the keys have been idle for
// IdleCommit.
type TerminalModule struct {
	Screen     tcell.Screen
	PresetPath string
	IdleCommit time.Duration
}

type TerminalState struct {
	Screen tcell.Screen

	events chan tcell.Event
	idle   time.Duration
	closed bool
}

func (mod TerminalModule) Install(app *App, cmd *Commands) {
	params, ok := Resource[Parameters](app)
	if !ok {
		panic("TerminalModule requires ParametersModule")
	}
	if _, ok := Resource[RasterState](app); !ok {
		panic("TerminalModule requires RasterModule")
	}

	screen := mod.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			cmd.Logger().Errorf("terminal: %v", err)
			panic(err)
		}
	}
	if err := screen.Init(); err != nil {
		cmd.Logger().Errorf("terminal init: %v", err)
		panic(err)
	}

	idle := mod.IdleCommit
	if idle <= 0 {
		idle = defaultIdleCommit
	}
	ts := &TerminalState{Screen: screen, events: make(chan tcell.Event, 100), idle: idle}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalized
				close(ts.events)
				return
			}
			ts.events <- ev
		}
	}()

	if _, ok := Resource[PanelState](app); !ok {
		cmd.AddResources(NewPanelState(params, mod.PresetPath))
	}
	cmd.AddResources(ts)
	cmd.UseSystem(System(terminalInputSystem).InStage(PreUpdate).RunAlways())
	cmd.UseSystem(System(terminalDrawSystem).InStage(PostRender).RunAlways())
}

// Close restores the terminal.
func (ts *TerminalState) Close() {
	if ts.closed {
		return
	}
	ts.closed = true
	ts.Screen.Fini()
}

type terminalCommand struct {
	input  panel.Input
	quit   bool
	save   bool
	orbitX float64
	orbitY float64
	zoom   float64
}

// terminalAction maps one key press to what it does in the viewer.
func terminalAction(key tcell.Key, r rune, mod tcell.ModMask, editing bool) terminalCommand {
	var c terminalCommand
	if key == tcell.KeyCtrlC {
		c.quit = true
		return c
	}
	if editing {
		switch key {
		case tcell.KeyEnter:
			c.input.Action = panel.ActionEnter
		case tcell.KeyEscape:
			c.input.Action = panel.ActionEscape
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			c.input.Action = panel.ActionBackspace
		case tcell.KeyRune:
			c.input = panel.Input{Action: panel.ActionChar, Rune: r}
		}
		return c
	}

	coarse := mod&tcell.ModShift != 0
	switch key {
	case tcell.KeyUp:
		c.input.Action = panel.ActionUp
	case tcell.KeyDown:
		c.input.Action = panel.ActionDown
	case tcell.KeyLeft:
		c.input = panel.Input{Action: panel.ActionLeft, Coarse: coarse}
	case tcell.KeyRight:
		c.input = panel.Input{Action: panel.ActionRight, Coarse: coarse}
	case tcell.KeyEnter:
		c.input.Action = panel.ActionEnter
	case tcell.KeyEscape:
		c.input.Action = panel.ActionEscape
	case tcell.KeyCtrlS:
		c.save = true
	case tcell.KeyRune:
		switch r {
		case 'q':
			c.quit = true
		case 'h':
			c.input.Action = panel.ActionToggle
		case 'a':
			c.orbitX = -1
		case 'd':
			c.orbitX = 1
		case 'w':
			c.orbitY = -1
		case 's':
			c.orbitY = 1
		case '+', '=':
			c.zoom = 1
		case '-':
			c.zoom = -1
		}
	}
	return c
}

// terminalLayout returns the raster size in pixels for a screen of cols x rows
// cells. Each cell holds two vertically stacked pixels.
func terminalLayout(cols, rows int, panelHidden bool) (int, int) {
	if !panelHidden {
		cols -= terminalPanelCols
	}
	return max(cols, 0), max(rows, 0) * 2
}

func terminalInputSystem(ts *TerminalState, ps *PanelState, params *Parameters, cam *core.OrbitCamera, rs *RasterState, t *Time, cmd *Commands) {
	if ts.closed {
		cmd.Exit()
		return
	}
	log := cmd.Logger()
	_, h := rs.Renderer.Size()
drain:
	for {
		select {
		case ev, ok := <-ts.events:
			if !ok {
				cmd.Exit()
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				ts.Screen.Sync()
			case *tcell.EventKey:
				c := terminalAction(ev.Key(), ev.Rune(), ev.Modifiers(), ps.Panel.Editing())
				if c.quit {
					cmd.Exit()
				}
				if c.save {
					ps.savePreset(params, log)
				}
				if c.orbitX != 0 || c.orbitY != 0 {
					step := float64(h) * terminalOrbitStep
					cam.Drag(c.orbitX*step, c.orbitY*step, h)
				}
				cam.Scroll(c.zoom)
				if c.input.Action != panel.ActionNone {
					ps.apply([]panel.Input{c.input}, t.Time, params)
				}
			}
		default:
			break drain
		}
	}

	if e, ok := ps.Panel.CommitIdle(t.Time, ts.idle); ok {
		params.Commit(e)
	}
	ps.sync(params)

	cols, rows := ts.Screen.Size()
	w, hh := terminalLayout(cols, rows, ps.Panel.Hidden)
	if cw, ch := rs.Renderer.Size(); cw != w || ch != hh {
		rs.Renderer.Resize(w, hh)
	}
}

func terminalDrawSystem(ts *TerminalState, ps *PanelState, rs *RasterState) {
	if ts.closed {
		return
	}
	screen := ts.Screen
	screen.Clear()

	img := rs.Renderer.Image()
	w, h := rs.Renderer.Size()
	for y := 0; y+1 < h; y += 2 {
		for x := 0; x < w; x++ {
			top := terminalColor(img.RGBAAt(x, y))
			bottom := terminalColor(img.RGBAAt(x, y+1))
			screen.SetContent(x, y/2, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}

	if !ps.Panel.Hidden {
		x0 := w + 1
		row := 0
		for _, l := range ps.Panel.Lines() {
			style := tcell.StyleDefault
			if l.Selected {
				style = style.Foreground(tcell.ColorYellow)
			}
			drawString(screen, x0, row, l.String(), style)
			row++
		}
		if ps.Panel.Err != nil {
			drawString(screen, x0, row, "! "+ps.Panel.Err.Error(), tcell.StyleDefault.Foreground(tcell.ColorRed))
		}
	}
	screen.Show()
}

func terminalColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
