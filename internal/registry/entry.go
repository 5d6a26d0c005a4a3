package registry

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// Entry is one deferred mutation of the host's build state.
type Entry struct {
	// Name describes the entry in logs, e.g. "init resource app.Score".
	Name string
	// Source is the file:line that contributed the entry.
	Source string
	// Requires lists schedule labels that must exist when the entry runs.
	Requires []label.Label
	// Provides lists schedule labels this entry makes available.
	Provides []label.Label
	// Key identifies semantically equivalent entries. Entries sharing a
	// non-empty Key are applied once; the first contribution wins.
	Key string
	// Apply performs the mutation.
	Apply func(b host.BuildState)
}

// Caller returns the file:line of the function skip frames above the
// caller of Caller. Processors use it to fill Entry.Source.
func Caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func (e Entry) String() string {
	if e.Source == "" {
		return e.Name
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Source)
}
