package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// Unresolved is one required label nobody provides.
type Unresolved struct {
	Label label.Label
	Entry string
}

// UnresolvedPathError lists every schedule label that entries require but
// neither another entry nor the host provides.
type UnresolvedPathError struct {
	Missing []Unresolved
}

func (e *UnresolvedPathError) Error() string {
	lines := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		lines = append(lines, fmt.Sprintf("unresolved schedule path %q required by %s", m.Label, m.Entry))
	}
	return "registry validation failed:\n- " + strings.Join(lines, "\n- ")
}

// Conflict is one schedule label provided by more than one entry.
type Conflict struct {
	Label   label.Label
	Entries []string
}

// DuplicateScheduleError lists schedule labels declared by entries that are
// not equivalent, e.g. the same child timed in one tree and untimed in
// another. Applying both would run the label once per declaration.
type DuplicateScheduleError struct {
	Conflicts []Conflict
}

func (e *DuplicateScheduleError) Error() string {
	lines := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		lines = append(lines, fmt.Sprintf("schedule %q declared by %s", c.Label, strings.Join(c.Entries, " and ")))
	}
	return "registry validation failed:\n- " + strings.Join(lines, "\n- ")
}

// dedupe drops entries whose Key matches an earlier entry.
func dedupe(ctx context.Context, entries []Entry) []Entry {
	seen := make(map[string]struct{})
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Key != "" {
			if _, dup := seen[e.Key]; dup {
				ctxlog.FromContext(ctx).Debug("Skipping equivalent registry entry.", "entry", e.Name, "source", e.Source)
				continue
			}
			seen[e.Key] = struct{}{}
		}
		out = append(out, e)
	}
	return out
}

// validate checks every Requires label against the union of all Provides
// and the host's own schedules, and that no label is provided twice. All
// problems are reported together.
func validate(entries []Entry, b host.BuildState) error {
	providers := make(map[label.Label][]string)
	for _, e := range entries {
		for _, l := range e.Provides {
			providers[l] = append(providers[l], e.String())
		}
	}

	var conflicts []Conflict
	for l, by := range providers {
		if len(by) > 1 {
			conflicts = append(conflicts, Conflict{Label: l, Entries: by})
		}
	}

	var missing []Unresolved
	for _, e := range entries {
		for _, l := range e.Requires {
			if _, ok := providers[l]; ok {
				continue
			}
			if b.HasSchedule(l) {
				continue
			}
			missing = append(missing, Unresolved{Label: l, Entry: e.String()})
		}
	}

	var errs []error
	if len(conflicts) > 0 {
		sort.Slice(conflicts, func(i, j int) bool {
			return conflicts[i].Label < conflicts[j].Label
		})
		errs = append(errs, &DuplicateScheduleError{Conflicts: conflicts})
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool {
			if missing[i].Label != missing[j].Label {
				return missing[i].Label < missing[j].Label
			}
			return missing[i].Entry < missing[j].Entry
		})
		errs = append(errs, &UnresolvedPathError{Missing: missing})
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
