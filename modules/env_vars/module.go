// Package env_vars snapshots the process environment into a resource at
// build time.
package env_vars

import (
	"os"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/declare"
	"github.com/specialistvlad/schedgrid/internal/host"
)

// Env is the environment as seen when the app was built.
type Env struct {
	All map[string]string
}

// Default implements host.Defaulter.
func (Env) Default() Env {
	all := make(map[string]string)
	for _, e := range os.Environ() {
		k, v, ok := strings.Cut(e, "=")
		if ok {
			all[k] = v
		}
	}
	return Env{All: all}
}

func init() {
	declare.Init[Env](declare.Resource, declare.Reflectable)
	declare.System("Startup", Check)
}

// Check fails loudly if the resource was not initialized.
func Check(w host.World) {
	env := host.MustResource[Env](w)
	app.Log(w).Debug("Environment captured.", "variables", len(env.All))
}
