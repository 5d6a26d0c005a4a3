package app

import (
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/registry"
)

// DefaultPlugins returns the plugins every binary installs: the drain of
// whatever modules contributed to the default registry from init.
func DefaultPlugins() []host.Plugin {
	return []host.Plugin{registry.Plugin{}}
}
