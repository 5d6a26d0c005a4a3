package testutil

import (
	"sync"
	"time"

	"github.com/specialistvlad/schedgrid/internal/host"
)

// Call is one recorded system run.
type Call struct {
	Name  string
	Delta time.Duration
}

// Recorder hands out systems that record when they run.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// System returns a system that records name and the delta it observed.
func (r *Recorder) System(name string) host.System {
	return func(w host.World) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, Call{Name: name, Delta: w.Delta()})
	}
}

// Calls returns a copy of every recorded call.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Names returns the recorded system names in run order.
func (r *Recorder) Names() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Name
	}
	return out
}
