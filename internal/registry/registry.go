package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/host"
)

var (
	ErrDrained  = errors.New("registry already drained")
	ErrDraining = errors.New("registry is draining")
	ErrNoApply  = errors.New("registry entry has no Apply function")
)

// State is the lifecycle position of a Registry.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateDraining
	StateDrained
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateDraining:
		return "draining"
	case StateDrained:
		return "drained"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Registry collects entries until it is drained.
type Registry struct {
	mu      sync.Mutex
	state   State
	entries []Entry
}

// New creates an empty registry. Most code uses Default instead; separate
// registries are useful in tests.
func New() *Registry {
	return &Registry{}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry that package init functions
// contribute to.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Contribute adds e to the default registry.
func Contribute(e Entry) {
	Default().Contribute(e)
}

// Contribute adds an entry. It panics once the drain has started, because a
// late entry would never be applied.
func (r *Registry) Contribute(e Entry) {
	if e.Apply == nil {
		panic(fmt.Errorf("%w: %s", ErrNoApply, e))
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateDraining:
		panic(fmt.Errorf("%w: cannot contribute %s", ErrDraining, e))
	case StateDrained:
		panic(fmt.Errorf("%w: cannot contribute %s", ErrDrained, e))
	}
	r.entries = append(r.entries, e)
	r.state = StatePopulated
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Len returns the number of contributed entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns a copy of the contributed entries.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Drain validates and applies every entry to b, exactly once. It panics if
// the registry was already drained, if a required schedule label cannot be
// resolved, or if an entry panics. Entry panics are not recovered: the
// remaining entries are skipped and the registry still ends up Drained.
func (r *Registry) Drain(ctx context.Context, b host.BuildState) {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	switch r.state {
	case StateDraining:
		r.mu.Unlock()
		panic(ErrDraining)
	case StateDrained:
		r.mu.Unlock()
		panic(ErrDrained)
	}
	r.state = StateDraining
	entries := r.entries
	r.entries = nil
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.state = StateDrained
		r.mu.Unlock()
	}()

	logger.Debug("Draining registry.", "entries", len(entries))
	entries = dedupe(ctx, entries)
	if err := validate(entries, b); err != nil {
		logger.Error("Registry validation failed.", "error", err)
		panic(err)
	}

	for _, e := range entries {
		logger.Debug("Applying registry entry.", "entry", e.Name, "source", e.Source)
		e.Apply(b)
	}
	logger.Info("Registry drained.", "entries", len(entries))
}

// Validate checks entries against b without draining. It returns an
// *UnresolvedPathError when a required label is missing and a
// *DuplicateScheduleError when two different entries declare the same label.
func (r *Registry) Validate(b host.BuildState) error {
	r.mu.Lock()
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()
	return validate(dedupe(context.Background(), entries), b)
}
