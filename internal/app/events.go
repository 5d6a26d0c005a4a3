package app

import (
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/host"
)

// eventQueue keeps the events of the previous tick readable while the
// current tick writes.
type eventQueue struct {
	previous []any
	current  []any
}

func (q *eventQueue) rotate() {
	q.previous = q.current
	q.current = nil
}

func (q *eventQueue) all() []any {
	out := make([]any, 0, len(q.previous)+len(q.current))
	out = append(out, q.previous...)
	return append(out, q.current...)
}

func queueFor[T any](w host.World) *eventQueue {
	a, ok := w.(*App)
	if !ok {
		panic(fmt.Sprintf("events need an *app.App world, got %T", w))
	}
	t := host.TypeOf[T]()
	q, ok := a.events[t]
	if !ok {
		panic(fmt.Sprintf("event %s is not registered", t))
	}
	return q
}

// Send queues ev for readers during this tick and the next one. It panics if
// T was not registered as an event.
func Send[T any](w host.World, ev T) {
	q := queueFor[T](w)
	q.current = append(q.current, ev)
}

// Read returns the events of type T sent during the previous tick and so far
// in this one, oldest first.
func Read[T any](w host.World) []T {
	q := queueFor[T](w)
	raw := q.all()
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(T))
	}
	return out
}
