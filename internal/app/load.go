package app

import (
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/compiler"
	"github.com/specialistvlad/schedgrid/internal/declare"
	"github.com/specialistvlad/schedgrid/internal/loader"
	"github.com/specialistvlad/schedgrid/internal/registry"
)

// LoadSchedules compiles the schedule files under paths, or under
// Options.SchedulePaths when none are given, and queues a plugin that
// attaches their chain runners. Call it before adding plugins whose systems
// target labels declared in those files.
func (a *App) LoadSchedules(paths ...string) error {
	if len(paths) == 0 {
		paths = a.options.SchedulePaths
	}
	if len(paths) == 0 {
		return nil
	}
	a.logger.Debug("Loading schedules...", "paths", paths)

	programs, diags := loader.Load(a.ctx, paths, compiler.WithMaxCatchUp(a.options.MaxCatchUp))
	if diags.HasErrors() {
		return fmt.Errorf("failed to load schedules:\n%w", &loader.DiagnosticsError{Diags: diags})
	}

	r := registry.New()
	for _, p := range programs {
		declare.ProgramTo(r, p)
	}
	a.AddPlugins(registry.Plugin{Registry: r})

	a.logger.Info("Schedules loaded.", "files", len(programs), "entries", r.Len())
	return nil
}
