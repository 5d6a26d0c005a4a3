package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Help(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: "Usage:"},
		{name: "top-level help", args: []string{"-h"}, want: "Commands:"},
		{name: "check help", args: []string{"check", "-h"}, want: "-emit-hcl"},
		{name: "run help", args: []string{"run", "--help"}, want: "-max-catch-up"},
		{name: "check without paths", args: []string{"check"}, want: "schedgrid check [options] PATH..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cmd, exit, err := ParseWithEnv(tc.args, out, map[string]string{})
			require.NoError(t, err)
			assert.True(t, exit)
			assert.Nil(t, cmd)
			assert.Contains(t, out.String(), tc.want)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		environ map[string]string
		errText string
	}{
		{name: "unknown command", args: []string{"serve"}, errText: `unknown command "serve"`},
		{name: "unknown flag", args: []string{"run", "-workers", "3"}, errText: "flag provided but not defined: -workers"},
		{name: "bad level", args: []string{"check", "-log-level", "loud", "x.sched"}, errText: "invalid log level"},
		{name: "stray args", args: []string{"run", "extra"}, errText: "unexpected arguments: extra"},
		{name: "bad tick rate", args: []string{"run", "-tick-rate", "0"}, errText: "tick rate must be > 0"},
		{name: "bad env", args: []string{"run"}, environ: map[string]string{"SCHEDGRID_TICKS": "many"}, errText: "parse env"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			environ := tc.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, exit, err := ParseWithEnv(tc.args, &bytes.Buffer{}, environ)
			assert.False(t, exit)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errText)
		})
	}
}

func TestParse_Check(t *testing.T) {
	cmd, exit, err := ParseWithEnv([]string{"check", "-emit-hcl", "-log-format", "JSON", "a.sched", "dir"}, &bytes.Buffer{}, nil)

	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, CommandCheck, cmd.Name)
	assert.Equal(t, []string{"a.sched", "dir"}, cmd.Paths)
	assert.True(t, cmd.EmitHCL)
	assert.Equal(t, "json", cmd.Settings.LogFormat)
	assert.Equal(t, "warn", cmd.Settings.LogLevel)
}

func TestParse_RunPrecedence(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "schedgrid.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
tick_rate = 30
ticks = 10
max_catch_up = 2
schedules = ["from-file.sched"]
`), 0o600))
	environ := map[string]string{
		"SCHEDGRID_TICKS":        "20",
		"SCHEDGRID_MAX_CATCH_UP": "4",
	}

	// --- Act ---
	cmd, exit, err := ParseWithEnv([]string{
		"run",
		"-config", path,
		"-max-catch-up", "8",
		"-schedule", "a.sched",
		"-schedule", "more",
	}, &bytes.Buffer{}, environ)

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, CommandRun, cmd.Name)
	assert.Equal(t, 30.0, cmd.Settings.TickRate, "file")
	assert.Equal(t, 20, cmd.Settings.Ticks, "env over file")
	assert.Equal(t, 8, cmd.Settings.MaxCatchUp, "flag over env")
	assert.Equal(t, []string{"a.sched", "more"}, cmd.Settings.Schedules)
	assert.Equal(t, "info", cmd.Settings.LogLevel)
}
