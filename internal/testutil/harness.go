package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of building an app for a test.
type HarnessResult struct {
	Logs *SafeBuffer
	Err  error
	App  *app.App
}

// LogOutput returns everything logged so far.
func (r *HarnessResult) LogOutput() string {
	return r.Logs.String()
}

// Tick advances the app n times by delta and fails the test on error.
func (r *HarnessResult) Tick(t *testing.T, n int, delta time.Duration) {
	t.Helper()
	require.NoError(t, r.Err, "app failed to build")
	for range n {
		require.NoError(t, r.App.Tick(delta))
	}
}

// RunIntegrationTest builds an app using a background context.
func RunIntegrationTest(t *testing.T, files map[string]string, plugins ...host.Plugin) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, plugins...)
}

// RunIntegrationTestWithContext writes files (relative path to content) into
// a temporary directory, loads every schedule file found there, adds the
// plugins and builds the app. Build panics are recovered into Err.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, plugins ...host.Plugin) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	logs := &SafeBuffer{}
	result := &HarnessResult{Logs: logs}
	t.Cleanup(func() {
		if os.Getenv("SCHEDGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	a, err := app.New(ctx, app.Options{
		Output:    logs,
		LogLevel:  "debug",
		LogFormat: "text",
		TickRate:  1000,
	})
	require.NoError(t, err)
	result.App = a

	if len(files) > 0 {
		if err := a.LoadSchedules(tmpDir); err != nil {
			result.Err = err
			return result
		}
	}
	a.AddPlugins(plugins...)

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.Err = a.Build()
	}()
	return result
}
