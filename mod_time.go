package galaxy

import (
	"time"
)

type Time struct {
	Start   time.Time
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// TimeModule advances Time once per frame. With Step set the clock is
// synthetic and moves by exactly Step each frame.
type TimeModule struct {
	Step time.Duration
}

type timeStep struct {
	step time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{Start: now, Time: now}, &timeStep{step: mod.Step})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(t *Time, step *timeStep) {
	now := time.Now()
	if step.step > 0 {
		now = t.Time.Add(step.step)
	}
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Elapsed = now.Sub(t.Start)
}

func (t *Time) ElapsedSeconds() float64 {
	return t.Elapsed.Seconds()
}
