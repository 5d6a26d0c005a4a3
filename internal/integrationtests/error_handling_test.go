package integrationtests

import (
	"testing"

	"github.com/specialistvlad/schedgrid/internal/compiler"
	"github.com/specialistvlad/schedgrid/internal/declare"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/registry"
	"github.com/specialistvlad/schedgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_InvalidScheduleFile(t *testing.T) {
	files := map[string]string{
		"bad.sched": `[run_every(1s)] Update([bogus(2)] A, A)`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed to load schedules")
	assert.Contains(t, result.Err.Error(), compiler.SummaryRootAttributes)
	assert.Contains(t, result.Err.Error(), compiler.SummaryUnknownAttribute)
	assert.Contains(t, result.Err.Error(), compiler.SummaryDuplicateName)
	assert.False(t, result.App.Built())
}

func TestErrors_UnresolvedSystemPath(t *testing.T) {
	r := registry.New()
	declare.ScheduleTo(r, `Update(Test(First))`)
	declare.SystemTo(r, "Update::Tset::First", func(host.World) {})

	result := testutil.RunIntegrationTest(t, nil, registry.Plugin{Registry: r})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), `unresolved schedule path "Update::Tset::First"`)
	assert.Equal(t, registry.StateDrained, r.State())
	assert.Contains(t, result.LogOutput(), "Registry validation failed.")
}

func TestErrors_ContributeAfterDrain(t *testing.T) {
	r := registry.New()
	result := testutil.RunIntegrationTest(t, nil, registry.Plugin{Registry: r})
	require.NoError(t, result.Err)

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, registry.ErrDrained)
	}()
	declare.SystemTo(r, "Update")
}
