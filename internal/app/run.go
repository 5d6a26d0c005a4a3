package app

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
)

// Run ticks the app at Options.TickRate until ticks ticks have run or ctx is
// done. ticks <= 0 runs until ctx is done. The delta of each tick is the
// wall-clock time since the previous one.
func (a *App) Run(ctx context.Context, ticks int) error {
	if !a.built {
		return ErrNotBuilt
	}
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer func() {
		_ = a.closeHealthCheckServer()
	}()

	hz := a.options.TickRate
	limiter := rate.NewLimiter(rate.Limit(hz), 1)
	interval := time.Duration(float64(time.Second) / hz)

	a.logger.Info("🚀 Starting tick loop.", "tick_rate", hz, "ticks", ticks)
	var last time.Time
	for n := 0; ticks <= 0 || n < ticks; n++ {
		if err := limiter.Wait(ctx); err != nil {
			a.logger.Info("🛑 Tick loop stopped.", "reason", err.Error(), "ticks", a.Ticks())
			return nil
		}

		now := time.Now()
		delta := interval
		if !last.IsZero() {
			delta = now.Sub(last)
		}
		last = now

		if err := a.Tick(delta); err != nil {
			return err
		}
	}

	a.logger.Info("🏁 Tick loop finished.", "ticks", a.Ticks(), "elapsed", a.Elapsed().String())
	return nil
}
