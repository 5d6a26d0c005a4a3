package fixedstep

import (
	"log/slog"
	"time"

	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// Options tunes a Runner.
type Options struct {
	// MaxCatchUp caps how many times the child runs per invocation. Zero
	// means no cap: the child catches up fully in one call.
	MaxCatchUp int
	// Logger receives catch-up warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Runner returns a system that runs child once per elapsed period.
//
// The accumulator is created on the first invocation and lives as long as the
// returned system. During each child run the world reports period as its
// delta; the previous delta is restored right after.
func Runner(period time.Duration, child label.Label, opts Options) host.System {
	if period <= 0 {
		panic("fixedstep: period must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var acc *Accumulator
	return func(w host.World) {
		if acc == nil {
			acc = NewAccumulator(period)
		}
		acc.Advance(w.Delta())

		runs := 0
		for acc.Next() {
			step(w, period, child)
			runs++
			if opts.MaxCatchUp > 0 && runs >= opts.MaxCatchUp {
				if dropped := acc.Discard(); dropped > 0 {
					logger.Warn("Fixed timestep fell behind, dropping steps.",
						"schedule", child.String(),
						"period", period,
						"max_catch_up", opts.MaxCatchUp,
						"dropped", dropped,
					)
				}
				break
			}
		}
	}
}

func step(w host.World, period time.Duration, child label.Label) {
	prev := w.Delta()
	w.SetDelta(period)
	defer w.SetDelta(prev)
	w.RunSchedule(child)
}
