package declare

import (
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/specialistvlad/schedgrid/internal/registry"
)

// System attaches systems to the schedule addressed by path in the default
// registry. It panics if path is not a well-formed schedule path; whether
// the schedule exists is checked when the registry drains.
func System(path string, systems ...host.System) {
	systemTo(registry.Default(), registry.Caller(1), path, systems)
}

// SystemTo is System for a specific registry.
func SystemTo(r *registry.Registry, path string, systems ...host.System) {
	systemTo(r, registry.Caller(1), path, systems)
}

func systemTo(r *registry.Registry, source, path string, systems []host.System) {
	p, err := label.Parse(path)
	if err != nil {
		panic(fmt.Errorf("system declared at %s: %w", source, err))
	}
	target := p.Label()
	r.Contribute(registry.Entry{
		Name:     fmt.Sprintf("attach %d system(s) to %s", len(systems), target),
		Source:   source,
		Requires: []label.Label{target},
		Apply: func(b host.BuildState) {
			b.AttachSystems(target, systems...)
		},
	})
}
