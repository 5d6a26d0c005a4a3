package print

import (
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_RunsDemoSchedule(t *testing.T) {
	// --- Arrange ---
	result := testutil.RunIntegrationTest(t, nil, app.DefaultPlugins()...)
	require.NoError(t, result.Err)

	// --- Act ---
	result.Tick(t, 6, 500*time.Millisecond)

	// --- Assert ---
	testutil.AssertLogCount(t, result, "Hello world!", 1)
	testutil.AssertLogCount(t, result, "msg=1", 2)
	testutil.AssertLogCount(t, result, "msg=2", 2)
	testutil.AssertLogCount(t, result, "msg=3", 2)
	testutil.AssertLogCount(t, result, "delta_seconds=1.5", 2)

	c := host.MustResource[Counter](result.App)
	assert.Equal(t, uint64(2), c.Beats)
}
