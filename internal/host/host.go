// Package host defines the surface the registration core attaches to: the
// build-time state that registration entries mutate, and the per-tick world
// that systems and schedule runners operate on.
//
// The reference implementation lives
// in internal/app; any runtime exposing the same operations can drain a
// registry and run compiled schedules.
package host

import (
	"context"
	"reflect"
	"time"

	"github.com/specialistvlad/schedgrid/internal/label"
)

// Well-known top-level schedules every host provides.
const (
	Startup label.Label = "Startup"
	Update  label.Label = "Update"
)

// System is a unit of work attached to a schedule.
type System func(w World)

// BuildState is the application state mutated while plugins are built.
type BuildState interface {
	// InitResource stores init() under t unless a value is already present.
	// It reports whether a new value was stored.
	InitResource(t reflect.Type, init func() any) bool
	// AddEvent registers an event type. Registering twice is a no-op.
	AddEvent(t reflect.Type)
	// RegisterType records reflection metadata for t. Registering twice is a no-op.
	RegisterType(t reflect.Type)
	// AttachSystems appends systems to the schedule named l, creating it if needed.
	AttachSystems(l label.Label, systems ...System)
	// HasSchedule reports whether l names a schedule the host already knows.
	HasSchedule(l label.Label) bool
}

// World is the runtime state seen by systems during a tick.
type World interface {
	// RunSchedule runs every system attached to l, in attachment order.
	RunSchedule(l label.Label)
	// Delta is the elapsed time reported for the current step.
	Delta() time.Duration
	// SetDelta overrides the reported elapsed time.
	SetDelta(d time.Duration)
	// Resource returns the resource stored under t.
	Resource(t reflect.Type) (any, bool)
}

// Plugin is invoked once by the host while it builds itself.
type Plugin interface {
	Build(ctx context.Context, b BuildState)
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(ctx context.Context, b BuildState)

// Build calls f(ctx, b).
func (f PluginFunc) Build(ctx context.Context, b BuildState) {
	f(ctx, b)
}
