package registry

import (
	"context"

	"github.com/specialistvlad/schedgrid/internal/host"
)

// Plugin drains a registry when the host builds it. A zero Plugin drains
// the default registry.
type Plugin struct {
	Registry *Registry
}

// Build implements host.Plugin.
func (p Plugin) Build(ctx context.Context, b host.BuildState) {
	r := p.Registry
	if r == nil {
		r = Default()
	}
	r.Drain(ctx, b)
}
