package app

import (
	"reflect"
	"sort"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// InitResource implements host.BuildState.
func (a *App) InitResource(t reflect.Type, init func() any) bool {
	if _, ok := a.resources[t]; ok {
		a.logger.Debug("Resource already present, keeping it.", "type", t.String())
		return false
	}
	a.resources[t] = init()
	a.logger.Debug("Resource initialized.", "type", t.String())
	return true
}

// AddEvent implements host.BuildState.
func (a *App) AddEvent(t reflect.Type) {
	if _, ok := a.events[t]; ok {
		return
	}
	a.events[t] = &eventQueue{}
	a.logger.Debug("Event registered.", "type", t.String())
}

// RegisterType implements host.BuildState.
func (a *App) RegisterType(t reflect.Type) {
	if _, ok := a.typeSet[t]; ok {
		return
	}
	a.typeSet[t] = struct{}{}
	a.types = append(a.types, t)
}

// AttachSystems implements host.BuildState.
func (a *App) AttachSystems(l label.Label, systems ...host.System) {
	a.schedules[l] = append(a.schedules[l], systems...)
}

// HasSchedule implements host.BuildState.
func (a *App) HasSchedule(l label.Label) bool {
	_, ok := a.schedules[l]
	return ok
}

// Schedules returns every known schedule label, sorted.
func (a *App) Schedules() []label.Label {
	out := make([]label.Label, 0, len(a.schedules))
	for l := range a.schedules {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Types returns the registered types in registration order.
func (a *App) Types() []reflect.Type {
	out := make([]reflect.Type, len(a.types))
	copy(out, a.types)
	return out
}
