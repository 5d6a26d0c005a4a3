package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := LoadWithEnv("", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_Files(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "schedgrid.toml",
			content: `
log_level = "debug"
tick_rate = 30
max_catch_up = 5
schedules = ["schedules/main.sched", "schedules/extra"]
`,
		},
		{
			name: "yaml",
			file: "schedgrid.yaml",
			content: `
log_level: debug
tick_rate: 30
max_catch_up: 5
schedules:
  - schedules/main.sched
  - schedules/extra
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			path := writeConfig(t, tc.file, tc.content)

			// --- Act ---
			s, err := LoadWithEnv(path, map[string]string{})

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, "debug", s.LogLevel)
			assert.Equal(t, "text", s.LogFormat, "unset keys keep their default")
			assert.Equal(t, 30.0, s.TickRate)
			assert.Equal(t, 5, s.MaxCatchUp)
			assert.Equal(t, []string{"schedules/main.sched", "schedules/extra"}, s.Schedules)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "schedgrid.toml", "tick_rate = 30\nticks = 10\n")

	s, err := LoadWithEnv(path, map[string]string{
		"SCHEDGRID_TICKS":     "99",
		"SCHEDGRID_SCHEDULES": "a.sched,b.hcl",
		"TICKS":               "1",
	})

	require.NoError(t, err)
	assert.Equal(t, 30.0, s.TickRate)
	assert.Equal(t, 99, s.Ticks)
	assert.Equal(t, []string{"a.sched", "b.hcl"}, s.Schedules)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		path    func(t *testing.T) string
		environ map[string]string
		errText string
	}{
		{
			name:    "unknown toml key",
			path:    func(t *testing.T) string { return writeConfig(t, "c.toml", "tick_rat = 3\n") },
			errText: "unknown keys",
		},
		{
			name:    "unknown yaml key",
			path:    func(t *testing.T) string { return writeConfig(t, "c.yml", "tick_rat: 3\n") },
			errText: "config parse failed",
		},
		{
			name:    "unsupported extension",
			path:    func(t *testing.T) string { return writeConfig(t, "c.json", "{}") },
			errText: "unsupported extension",
		},
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.toml") },
			errText: "config load failed",
		},
		{
			name:    "bad env value",
			path:    func(*testing.T) string { return "" },
			environ: map[string]string{"SCHEDGRID_TICK_RATE": "fast"},
			errText: "parse env",
		},
		{
			name:    "invalid level",
			path:    func(*testing.T) string { return "" },
			environ: map[string]string{"SCHEDGRID_LOG_LEVEL": "loud"},
			errText: "invalid log level",
		},
		{
			name:    "negative catch-up",
			path:    func(*testing.T) string { return "" },
			environ: map[string]string{"SCHEDGRID_MAX_CATCH_UP": "-1"},
			errText: "max catch-up",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			environ := tc.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, err := LoadWithEnv(tc.path(t), environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}
