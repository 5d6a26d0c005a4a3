package declare

import (
	"context"
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/compiler"
	"github.com/specialistvlad/schedgrid/internal/registry"
)

// Schedule compiles a schedule tree and contributes its chain runners to the
// default registry. Invalid trees panic with every diagnostic found.
func Schedule(src string, opts ...compiler.Option) {
	scheduleTo(registry.Default(), registry.Caller(1), src, opts)
}

// ScheduleTo is Schedule for a specific registry.
func ScheduleTo(r *registry.Registry, src string, opts ...compiler.Option) {
	scheduleTo(r, registry.Caller(1), src, opts)
}

// MustSchedule is Schedule, returning the compiled program so callers can
// resolve paths against it.
func MustSchedule(src string, opts ...compiler.Option) *compiler.Program {
	return scheduleTo(registry.Default(), registry.Caller(1), src, opts)
}

// MustScheduleTo is MustSchedule for a specific registry.
func MustScheduleTo(r *registry.Registry, src string, opts ...compiler.Option) *compiler.Program {
	return scheduleTo(r, registry.Caller(1), src, opts)
}

// ProgramTo contributes the chain runners of an already compiled program.
func ProgramTo(r *registry.Registry, p *compiler.Program) {
	for _, e := range p.Entries() {
		r.Contribute(e)
	}
}

func scheduleTo(r *registry.Registry, source, src string, opts []compiler.Option) *compiler.Program {
	p, diags := compiler.CompileSource(context.Background(), source, []byte(src), opts...)
	if diags.HasErrors() {
		panic(fmt.Errorf("schedule declared at %s: %w", source, diags))
	}
	for _, e := range p.Entries() {
		e.Source = source
		r.Contribute(e)
	}
	return p
}
