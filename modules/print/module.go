// Package print is the demo module: a fixed-timestep schedule with three
// ordered steps that log as they run.
package print

import (
	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/declare"
	"github.com/specialistvlad/schedgrid/internal/host"
)

// Beat is sent each time the timed Test schedule completes a step.
type Beat struct {
	Step uint64
}

// Counter tracks how many beats were observed.
type Counter struct {
	Beats uint64
}

func init() {
	declare.Schedule(`
		Update(
			[run_every(1.5s)]
			Test(
				First,
				Second,
				Third,
			),
		)`)

	declare.Init[Beat](declare.Event, declare.Reflectable)
	declare.Init[Counter](declare.Resource, declare.Reflectable)

	declare.System("Startup", Hello)
	declare.System("Update::Test::First", First)
	declare.System("Update::Test::Second", Second)
	declare.System("Update::Test::Third", Third)
	declare.System("Update::Test", Random, FixedTimeStep)
	declare.System("Update", CountBeats)
}

// Hello runs once before the first update.
func Hello(w host.World) {
	app.Log(w).Info("👋 Hello world!")
}

func First(w host.World) {
	app.Log(w).Info("1")
}

func Second(w host.World) {
	app.Log(w).Info("2")
}

// Third closes a step and announces it.
func Third(w host.World) {
	c := host.MustResource[Counter](w)
	app.Log(w).Info("3")
	app.Send(w, Beat{Step: c.Beats + 1})
}

// Random runs on Test itself, after the ordered children.
func Random(w host.World) {
	app.Log(w).Debug("random")
}

// FixedTimeStep reports the delta seen inside the timed schedule, which is
// always its period.
func FixedTimeStep(w host.World) {
	app.Log(w).Info("Time's delta is fixed.", "delta_seconds", w.Delta().Seconds())
}

// CountBeats folds the beats of the current tick into Counter.
func CountBeats(w host.World) {
	c := host.MustResource[Counter](w)
	for _, b := range app.Read[Beat](w) {
		if b.Step > c.Beats {
			c.Beats = b.Step
		}
	}
}
