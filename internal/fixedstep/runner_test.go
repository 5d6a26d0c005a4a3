package fixedstep

import (
	"bytes"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorld records schedule runs and the delta seen by each one.
type fakeWorld struct {
	delta  time.Duration
	runs   []label.Label
	deltas []time.Duration
}

func (w *fakeWorld) RunSchedule(l label.Label) {
	w.runs = append(w.runs, l)
	w.deltas = append(w.deltas, w.delta)
}

func (w *fakeWorld) Delta() time.Duration { return w.delta }

func (w *fakeWorld) SetDelta(d time.Duration) { w.delta = d }

func (w *fakeWorld) Resource(reflect.Type) (any, bool) { return nil, false }

func TestRunner_FiresOnWholePeriods(t *testing.T) {
	child := label.Of("Update", "Test")
	run := Runner(1500*time.Millisecond, child, Options{})
	w := &fakeWorld{}

	fired := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		w.delta = 500 * time.Millisecond
		run(w)
		fired = append(fired, len(w.runs))
	}

	// --- Assert ---
	assert.Equal(t, []int{0, 0, 1, 1, 1, 2}, fired)
	assert.Equal(t, []label.Label{child, child}, w.runs)
}

func TestRunner_OverridesAndRestoresDelta(t *testing.T) {
	period := 250 * time.Millisecond
	run := Runner(period, label.Of("Update", "Physics"), Options{})
	w := &fakeWorld{delta: time.Second}

	run(w)

	require.Len(t, w.deltas, 4)
	for _, d := range w.deltas {
		assert.Equal(t, period, d, "child must observe exactly one period")
	}
	assert.Equal(t, time.Second, w.delta, "outer delta restored after the loop")
}

func TestRunner_UnboundedCatchUp(t *testing.T) {
	run := Runner(time.Millisecond, label.Of("Update", "Fast"), Options{})
	w := &fakeWorld{delta: time.Second}

	run(w)

	assert.Len(t, w.runs, 1000)
}

func TestRunner_MaxCatchUpDropsBacklog(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	run := Runner(100*time.Millisecond, label.Of("Update", "Slow"), Options{MaxCatchUp: 3, Logger: logger})
	w := &fakeWorld{delta: 1050 * time.Millisecond}

	run(w)
	assert.Len(t, w.runs, 3)
	assert.Contains(t, logs.String(), "dropping steps")
	assert.Contains(t, logs.String(), "dropped=7")

	// The 50ms remainder survives; one more period fires exactly once.
	w.delta = 50 * time.Millisecond
	run(w)
	assert.Len(t, w.runs, 4)
}

func TestRunner_StateIsPerRunner(t *testing.T) {
	a := Runner(time.Second, label.Of("R", "A"), Options{})
	b := Runner(time.Second, label.Of("R", "B"), Options{})
	w := &fakeWorld{delta: 600 * time.Millisecond}

	a(w)
	a(w)
	b(w)

	assert.Equal(t, []label.Label{label.Of("R", "A")}, w.runs)
}

func TestRunner_RejectsNonPositivePeriod(t *testing.T) {
	assert.Panics(t, func() { Runner(0, label.Of("R"), Options{}) })
}
