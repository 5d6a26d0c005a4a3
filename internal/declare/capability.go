package declare

import (
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/registry"
)

// Capability selects what Init registers for a type.
type Capability int

const (
	// Resource initializes a singleton value of the type if absent.
	Resource Capability = iota + 1
	// Event registers the type as an event with a per-tick queue.
	Event
	// Reflectable records the type in the host's type registry.
	Reflectable
)

func (c Capability) String() string {
	switch c {
	case Resource:
		return "resource"
	case Event:
		return "event"
	case Reflectable:
		return "reflectable"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Init contributes one entry per capability of T to the default registry.
func Init[T any](caps ...Capability) {
	initTo[T](registry.Default(), registry.Caller(1), caps)
}

// InitTo is Init for a specific registry.
func InitTo[T any](r *registry.Registry, caps ...Capability) {
	initTo[T](r, registry.Caller(1), caps)
}

func initTo[T any](r *registry.Registry, source string, caps []Capability) {
	t := host.TypeOf[T]()
	for _, c := range caps {
		var e registry.Entry
		switch c {
		case Resource:
			e = registry.Entry{
				Name:  fmt.Sprintf("init resource %s", t),
				Apply: func(b host.BuildState) { host.InitResource[T](b) },
			}
		case Event:
			e = registry.Entry{
				Name:  fmt.Sprintf("add event %s", t),
				Apply: func(b host.BuildState) { b.AddEvent(t) },
			}
		case Reflectable:
			e = registry.Entry{
				Name:  fmt.Sprintf("register type %s", t),
				Apply: func(b host.BuildState) { b.RegisterType(t) },
			}
		default:
			// Unknown capabilities contribute nothing.
			continue
		}
		e.Source = source
		r.Contribute(e)
	}
}
