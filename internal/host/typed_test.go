package host

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWorld struct {
	resources map[reflect.Type]any
}

func (w *stubWorld) RunSchedule(label.Label) {}

func (w *stubWorld) Delta() time.Duration { return 0 }

func (w *stubWorld) SetDelta(time.Duration) {}

func (w *stubWorld) Resource(t reflect.Type) (any, bool) {
	v, ok := w.resources[t]
	return v, ok
}

type stubBuild struct {
	stubWorld
}

func (b *stubBuild) InitResource(t reflect.Type, init func() any) bool {
	if _, ok := b.resources[t]; ok {
		return false
	}
	b.resources[t] = init()
	return true
}

func (b *stubBuild) AddEvent(reflect.Type) {}

func (b *stubBuild) RegisterType(reflect.Type) {}

func (b *stubBuild) AttachSystems(label.Label, ...System) {}

func (b *stubBuild) HasSchedule(label.Label) bool { return false }

type plain struct {
	N int
}

type preset struct {
	Name string
}

func (preset) Default() preset {
	return preset{Name: "preset"}
}

func TestNewDefault(t *testing.T) {
	assert.Equal(t, &plain{}, NewDefault[plain]())
	assert.Equal(t, &preset{Name: "preset"}, NewDefault[preset]())
}

func TestInitResource_KeepsExisting(t *testing.T) {
	b := &stubBuild{stubWorld{resources: map[reflect.Type]any{}}}

	require.True(t, InitResource[plain](b))
	r, ok := GetResource[plain](b)
	require.True(t, ok)
	r.N = 7

	assert.False(t, InitResource[plain](b))
	assert.Equal(t, 7, MustResource[plain](b).N)
}

func TestGetResource_Missing(t *testing.T) {
	w := &stubWorld{resources: map[reflect.Type]any{}}

	_, ok := GetResource[plain](w)
	assert.False(t, ok)
	assert.PanicsWithValue(t, "resource host.plain is not initialized", func() { MustResource[plain](w) })
}

func TestPluginFunc(t *testing.T) {
	called := false
	var p Plugin = PluginFunc(func(context.Context, BuildState) { called = true })
	p.Build(context.Background(), &stubBuild{})
	assert.True(t, called)
}
