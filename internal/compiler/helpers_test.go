package compiler

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/stretchr/testify/require"
)

// testWorld is both the build state and the world: just enough of a host to
// run compiled chains.
type testWorld struct {
	schedules map[label.Label][]host.System
	delta     time.Duration
	trace     []string
}

func newTestWorld() *testWorld {
	return &testWorld{schedules: map[label.Label][]host.System{}}
}

func (w *testWorld) InitResource(reflect.Type, func() any) bool { return false }

func (w *testWorld) AddEvent(reflect.Type) {}

func (w *testWorld) RegisterType(reflect.Type) {}

func (w *testWorld) AttachSystems(l label.Label, systems ...host.System) {
	w.schedules[l] = append(w.schedules[l], systems...)
}

func (w *testWorld) HasSchedule(l label.Label) bool {
	return l == host.Update || l == host.Startup
}

func (w *testWorld) RunSchedule(l label.Label) {
	for _, s := range w.schedules[l] {
		s(w)
	}
}

func (w *testWorld) Delta() time.Duration { return w.delta }

func (w *testWorld) SetDelta(d time.Duration) { w.delta = d }

func (w *testWorld) Resource(reflect.Type) (any, bool) { return nil, false }

// record attaches a system to l that appends name to the trace.
func (w *testWorld) record(l label.Label, name string) {
	w.AttachSystems(l, func(host.World) { w.trace = append(w.trace, name) })
}

func (w *testWorld) tick(delta time.Duration) {
	w.delta = delta
	w.RunSchedule(host.Update)
}

func mustCompile(t *testing.T, src string, opts ...Option) *Program {
	t.Helper()
	p, diags := CompileSource(context.Background(), "test.sched", []byte(src), opts...)
	require.False(t, diags.HasErrors(), diags.Error())
	require.NotNil(t, p)
	return p
}

func install(p *Program, w *testWorld) {
	for _, e := range p.Entries() {
		e.Apply(w)
	}
}
