// Package fixedstep implements fixed-timestep execution of a child schedule.
//
// An Accumulator collects real elapsed time and hands it out in whole
// periods. The Runner wraps one accumulator per timed schedule node: every
// time its parent chain runs, the runner adds the host's delta and runs the
// child once per due period, reporting exactly one period as the delta while
// the child runs.
package fixedstep

import "time"

// Accumulator holds the time not yet consumed by whole periods.
type Accumulator struct {
	period   time.Duration
	leftover time.Duration
}

// NewAccumulator returns an empty accumulator. period must be positive.
func NewAccumulator(period time.Duration) *Accumulator {
	if period <= 0 {
		panic("fixedstep: period must be positive")
	}
	return &Accumulator{period: period}
}

// Period returns the fixed step length.
func (a *Accumulator) Period() time.Duration {
	return a.period
}

// Leftover returns the accumulated time that has not formed a whole period yet.
func (a *Accumulator) Leftover() time.Duration {
	return a.leftover
}

// Advance adds elapsed time. Negative values are ignored.
func (a *Accumulator) Advance(elapsed time.Duration) {
	if elapsed > 0 {
		a.leftover += elapsed
	}
}

// Next consumes one period and reports true if a whole period was available.
func (a *Accumulator) Next() bool {
	if a.leftover < a.period {
		return false
	}
	a.leftover -= a.period
	return true
}

// Due returns how many whole periods are currently available.
func (a *Accumulator) Due() int64 {
	return int64(a.leftover / a.period)
}

// Discard drops every whole period still pending, keeping the remainder.
// It returns the number of periods dropped.
func (a *Accumulator) Discard() int64 {
	dropped := a.Due()
	a.leftover %= a.period
	return dropped
}
