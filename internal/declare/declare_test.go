package declare

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/specialistvlad/schedgrid/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	resources map[reflect.Type]any
	events    map[reflect.Type]bool
	types     map[reflect.Type]bool
	schedules map[label.Label][]host.System
	delta     time.Duration
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		resources: map[reflect.Type]any{},
		events:    map[reflect.Type]bool{},
		types:     map[reflect.Type]bool{},
		schedules: map[label.Label][]host.System{},
	}
}

func (h *fakeHost) InitResource(t reflect.Type, init func() any) bool {
	if _, ok := h.resources[t]; ok {
		return false
	}
	h.resources[t] = init()
	return true
}

func (h *fakeHost) AddEvent(t reflect.Type) { h.events[t] = true }

func (h *fakeHost) RegisterType(t reflect.Type) { h.types[t] = true }

func (h *fakeHost) AttachSystems(l label.Label, systems ...host.System) {
	h.schedules[l] = append(h.schedules[l], systems...)
}

func (h *fakeHost) HasSchedule(l label.Label) bool {
	return l == host.Update || l == host.Startup
}

func (h *fakeHost) RunSchedule(l label.Label) {
	for _, s := range h.schedules[l] {
		s(h)
	}
}

func (h *fakeHost) Delta() time.Duration { return h.delta }

func (h *fakeHost) SetDelta(d time.Duration) { h.delta = d }

func (h *fakeHost) Resource(t reflect.Type) (any, bool) {
	v, ok := h.resources[t]
	return v, ok
}

type counter struct {
	N int
}

type seeded struct {
	Value string
}

func (seeded) Default() seeded {
	return seeded{Value: "seed"}
}

type ping struct{}

func TestInit_Capabilities(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	h := newFakeHost()

	// --- Act ---
	InitTo[counter](r, Resource, Reflectable)
	InitTo[ping](r, Event, Capability(99))
	r.Drain(context.Background(), h)

	// --- Assert ---
	assert.Contains(t, h.resources, host.TypeOf[counter]())
	assert.True(t, h.types[host.TypeOf[counter]()])
	assert.True(t, h.events[host.TypeOf[ping]()])
	assert.NotContains(t, h.resources, host.TypeOf[ping]())
	assert.Len(t, h.types, 1)
}

func TestInit_UnknownCapabilityContributesNothing(t *testing.T) {
	// --- Arrange ---
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	r := registry.New()

	// --- Act ---
	InitTo[counter](r, Capability(0), Capability(42))

	// --- Assert ---
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, registry.StateEmpty, r.State())
	assert.Empty(t, logs.String(), "nothing is logged outside a build context")
}

func TestInit_ResourceIsIdempotent(t *testing.T) {
	r := registry.New()
	h := newFakeHost()

	InitTo[counter](r, Resource)
	InitTo[counter](r, Resource)
	require.NotPanics(t, func() { r.Drain(context.Background(), h) })

	assert.Len(t, h.resources, 1)
	c := h.resources[host.TypeOf[counter]()].(*counter)
	assert.Equal(t, 0, c.N)
}

func TestInit_DefaulterProvidesInitialValue(t *testing.T) {
	r := registry.New()
	h := newFakeHost()

	InitTo[seeded](r, Resource)
	r.Drain(context.Background(), h)

	s := h.resources[host.TypeOf[seeded]()].(*seeded)
	assert.Equal(t, "seed", s.Value)
}

func TestInit_SourcePointsAtCaller(t *testing.T) {
	r := registry.New()
	InitTo[counter](r, Resource)

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Source, "declare_test.go:"), entries[0].Source)
	assert.Equal(t, "init resource declare.counter", entries[0].Name)
}

func TestSystem_RejectsMalformedPath(t *testing.T) {
	r := registry.New()
	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, label.ErrInvalid)
		assert.Equal(t, 0, r.Len())
	}()
	SystemTo(r, "Update::", func(host.World) {})
}

func TestSchedule_EndToEnd(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	h := newFakeHost()
	var trace []string
	step := func(name string) host.System {
		return func(host.World) { trace = append(trace, name) }
	}

	// Systems are declared before the schedule that provides their labels.
	SystemTo(r, "Update::Test::Second", step("Second"))
	SystemTo(r, "Update::Test::First", step("First"))
	SystemTo(r, "Update.Test.Third", step("Third"))
	p := MustScheduleTo(r, `Update([run_every(1.5s)] Test(First, Second, Third))`)

	// --- Act ---
	r.Drain(context.Background(), h)
	var firedAfter []int
	for i := 1; i <= 6; i++ {
		before := len(trace)
		h.delta = 500 * time.Millisecond
		h.RunSchedule(host.Update)
		if len(trace) > before {
			firedAfter = append(firedAfter, i)
		}
	}

	// --- Assert ---
	assert.Equal(t, label.Label("Update"), p.Root())
	assert.Equal(t, []int{3, 6}, firedAfter)
	assert.Equal(t, []string{"First", "Second", "Third", "First", "Second", "Third"}, trace)
}

func TestSchedule_InvalidTreePanicsWithDiagnostics(t *testing.T) {
	r := registry.New()

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(error)
		require.True(t, ok)

		var diags hcl.Diagnostics
		require.True(t, errors.As(err, &diags))
		assert.Len(t, diags, 2)
		assert.Equal(t, 0, r.Len())
	}()
	ScheduleTo(r, `Update([run_every(1s)] [run_every(2s)] A, [nope(1)] B)`)
}

func TestSystem_UnresolvedPathPanicsAtDrain(t *testing.T) {
	r := registry.New()
	ScheduleTo(r, `Update(Test(First))`)
	SystemTo(r, "Update::Tset::First", func(host.World) {})

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		var unresolved *registry.UnresolvedPathError
		require.True(t, errors.As(rec.(error), &unresolved))
		require.Len(t, unresolved.Missing, 1)
		assert.Equal(t, label.Label("Update::Tset::First"), unresolved.Missing[0].Label)
	}()
	r.Drain(context.Background(), newFakeHost())
}

func TestProgramTo_ContributesEntries(t *testing.T) {
	r := registry.New()
	p := MustScheduleTo(registry.New(), `Update(A(B), C(D))`)

	ProgramTo(r, p)

	assert.Equal(t, 3, r.Len())
}

func TestSchedule_RepeatedDeclarationRunsOnce(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	h := newFakeHost()
	runs := 0
	ScheduleTo(r, `Update(Test(First))`)
	ScheduleTo(r, `Update(Test(First))`)
	SystemTo(r, "Update::Test::First", func(host.World) { runs++ })

	// --- Act ---
	r.Drain(context.Background(), h)
	h.delta = time.Second
	h.RunSchedule(host.Update)

	// --- Assert ---
	assert.Equal(t, 1, runs)
}

func TestSchedule_ConflictingDeclarationsPanicAtDrain(t *testing.T) {
	r := registry.New()
	ScheduleTo(r, `Update([run_every(1s)] Test(First))`)
	ScheduleTo(r, `Update(Test(First))`)

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		var dup *registry.DuplicateScheduleError
		require.True(t, errors.As(rec.(error), &dup))
		require.Len(t, dup.Conflicts, 1)
		assert.Equal(t, label.Label("Update::Test"), dup.Conflicts[0].Label)
	}()
	r.Drain(context.Background(), newFakeHost())
}
