package galaxy

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/gekko3d/galaxy/galaxyrt/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminalApp(t *testing.T, screen tcell.Screen) *App {
	t.Helper()
	p := smallParameters()
	return NewApp().UseModules(
		TimeModule{Step: time.Second / 30},
		ParametersModule{Initial: &p},
		GalaxyModule{Source: core.NewSeededSource(3)},
		SunModule{},
		AnimationModule{},
		OrbitCameraModule{},
		RasterModule{},
		TerminalModule{Screen: screen},
	)
}

func screenRow(screen tcell.Screen, x0, y, n int) string {
	var sb strings.Builder
	for x := x0; x < x0+n; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestTerminalAction_Navigation(t *testing.T) {
	c := terminalAction(tcell.KeyRight, 0, tcell.ModShift, false)
	assert.Equal(t, panel.Input{Action: panel.ActionRight, Coarse: true}, c.input)

	c = terminalAction(tcell.KeyLeft, 0, tcell.ModNone, false)
	assert.Equal(t, panel.Input{Action: panel.ActionLeft}, c.input)

	c = terminalAction(tcell.KeyDown, 0, tcell.ModNone, false)
	assert.Equal(t, panel.ActionDown, c.input.Action)

	assert.True(t, terminalAction(tcell.KeyRune, 'q', tcell.ModNone, false).quit)
	assert.True(t, terminalAction(tcell.KeyCtrlC, 0, tcell.ModCtrl, true).quit)
	assert.True(t, terminalAction(tcell.KeyCtrlS, 0, tcell.ModCtrl, false).save)
	assert.Equal(t, panel.ActionToggle, terminalAction(tcell.KeyRune, 'h', tcell.ModNone, false).input.Action)
}

func TestTerminalAction_Camera(t *testing.T) {
	assert.Equal(t, -1.0, terminalAction(tcell.KeyRune, 'a', tcell.ModNone, false).orbitX)
	assert.Equal(t, 1.0, terminalAction(tcell.KeyRune, 's', tcell.ModNone, false).orbitY)
	assert.Equal(t, 1.0, terminalAction(tcell.KeyRune, '+', tcell.ModNone, false).zoom)
	assert.Equal(t, -1.0, terminalAction(tcell.KeyRune, '-', tcell.ModNone, false).zoom)
}

func TestTerminalAction_Editing(t *testing.T) {
	c := terminalAction(tcell.KeyRune, 'q', tcell.ModNone, true)
	assert.False(t, c.quit)
	assert.Equal(t, panel.Input{Action: panel.ActionChar, Rune: 'q'}, c.input)

	assert.Equal(t, panel.ActionBackspace, terminalAction(tcell.KeyBackspace2, 0, tcell.ModNone, true).input.Action)
	assert.Equal(t, panel.ActionEnter, terminalAction(tcell.KeyEnter, 0, tcell.ModNone, true).input.Action)
	assert.Equal(t, panel.ActionNone, terminalAction(tcell.KeyUp, 0, tcell.ModNone, true).input.Action)
}

func TestTerminalLayout(t *testing.T) {
	w, h := terminalLayout(100, 30, false)
	assert.Equal(t, 100-terminalPanelCols, w)
	assert.Equal(t, 60, h)

	w, _ = terminalLayout(100, 30, true)
	assert.Equal(t, 100, w)

	w, _ = terminalLayout(10, 30, false)
	assert.Equal(t, 0, w)
}

func TestTerminalModule_RequiresRaster(t *testing.T) {
	assert.Panics(t, func() {
		NewApp().UseModules(ParametersModule{}, TerminalModule{Screen: tcell.NewSimulationScreen("UTF-8")})
	})
}

func TestTerminalModule_DrawsFrameAndPanel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	app := newTerminalApp(t, screen)
	ts, ok := Resource[TerminalState](app)
	require.True(t, ok)
	defer ts.Close()
	screen.SetSize(80, 20)

	require.True(t, app.RunFrames(2))

	rs, _ := Resource[RasterState](app)
	w, h := rs.Renderer.Size()
	assert.Equal(t, 80-terminalPanelCols, w)
	assert.Equal(t, 40, h)

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '▀', r)
	assert.Contains(t, screenRow(screen, w+1, 0, terminalPanelCols-1), "> Sun Scale")
}

func TestTerminalModule_ExitsWhenScreenCloses(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	app := newTerminalApp(t, screen)
	ts, _ := Resource[TerminalState](app)

	require.True(t, app.RunFrames(1))
	ts.Close()
	assert.False(t, app.RunFrames(1))
}
