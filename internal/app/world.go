package app

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// RunSchedule implements host.World. Unknown schedules are a no-op.
func (a *App) RunSchedule(l label.Label) {
	for _, s := range a.schedules[l] {
		s(a)
	}
}

// Delta implements host.World.
func (a *App) Delta() time.Duration {
	return a.delta
}

// SetDelta implements host.World.
func (a *App) SetDelta(d time.Duration) {
	a.delta = d
}

// Resource implements host.World.
func (a *App) Resource(t reflect.Type) (any, bool) {
	v, ok := a.resources[t]
	return v, ok
}

// Elapsed is the sum of every tick delta so far.
func (a *App) Elapsed() time.Duration {
	return a.elapsed
}

// Ticks is the number of completed ticks.
func (a *App) Ticks() uint64 {
	return a.ticks.Load()
}

// Tick advances the world by delta: Startup on the first call, then Update,
// then the event buffers rotate.
func (a *App) Tick(delta time.Duration) error {
	if !a.built {
		return ErrNotBuilt
	}
	if delta < 0 {
		return fmt.Errorf("tick delta must be >= 0, got %s", delta)
	}

	if !a.startupRan {
		a.startupRan = true
		a.delta = 0
		a.logger.Debug("Running startup schedule.")
		a.RunSchedule(host.Startup)
	}

	a.delta = delta
	a.RunSchedule(host.Update)
	a.delta = delta
	a.elapsed += delta

	for _, q := range a.events {
		q.rotate()
	}
	a.ticks.Add(1)
	return nil
}

// Log returns the logger of the app behind w, or slog.Default for other
// worlds.
func Log(w host.World) *slog.Logger {
	if a, ok := w.(*App); ok {
		return a.logger
	}
	return slog.Default()
}
