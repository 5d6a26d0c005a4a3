package app_test

import (
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/declare"
	"github.com/specialistvlad/schedgrid/internal/registry"
	"github.com/specialistvlad/schedgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchedules_LeafLabelsAreDeclared(t *testing.T) {
	// --- Arrange ---
	rec := &testutil.Recorder{}
	r := registry.New()
	declare.SystemTo(r, "Update::Physics::Step", rec.System("Step"))

	files := map[string]string{
		"physics.sched": `Update([run_every(250ms)] Physics(Step))`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, registry.Plugin{Registry: r})
	require.NoError(t, result.Err)
	result.Tick(t, 4, 125*time.Millisecond)

	// --- Assert ---
	assert.Equal(t, []string{"Step", "Step"}, rec.Names())
	assert.True(t, result.App.HasSchedule("Update::Physics::Step"))
}

func TestLoadSchedules_NoPathsIsNoop(t *testing.T) {
	result := testutil.RunIntegrationTest(t, nil)
	require.NoError(t, result.Err)
	require.NoError(t, result.App.LoadSchedules())
}
