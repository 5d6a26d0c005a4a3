package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/config"
)

// Subcommand names.
const (
	CommandCheck = "check"
	CommandRun   = "run"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command is a parsed invocation.
type Command struct {
	Name     string
	Settings config.Settings
	// Paths are the files or directories given to check.
	Paths []string
	// EmitHCL makes check print each tree as HCL blocks.
	EmitHCL bool
}

const usage = `
schedgrid - compile schedule trees and run them on a fixed-timestep host.

Usage:
  schedgrid check [options] PATH...
  schedgrid run [options]

Commands:
  check   Parse and compile schedule files (.sched, .hcl) and print their labels.
  run     Build the reference host with every registered module and tick it.

Run 'schedgrid COMMAND -h' for the options of a command.
`

// Parse processes command-line arguments using the process environment. It
// returns the parsed command, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	return ParseWithEnv(args, output, nil)
}

// ParseWithEnv is Parse with an explicit environment; nil means the process
// environment.
func ParseWithEnv(args []string, output io.Writer, environ map[string]string) (*Command, bool, error) {
	slog.Debug("CLI parser started.")
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	case CommandCheck:
		return parseCheck(args[1:], output)
	case CommandRun:
		return parseRun(args[1:], output, environ)
	default:
		fmt.Fprint(output, usage)
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", args[0])}
	}
}

func newFlagSet(name, synopsis string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("schedgrid "+name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  schedgrid %s\n\nOptions:\n", synopsis)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, &ExitError{Code: 2, Message: err.Error()}
	}
	return false, nil
}

func parseCheck(args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet(CommandCheck, "check [options] PATH...", output)
	logLevel := fs.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	emitHCL := fs.Bool("emit-hcl", false, "Print every compiled tree as HCL schedule blocks.")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	if fs.NArg() == 0 {
		slog.Debug("No schedule path provided, printing usage and exiting.")
		fs.Usage()
		return nil, true, nil
	}

	s := config.Default()
	s.LogLevel = strings.ToLower(*logLevel)
	s.LogFormat = strings.ToLower(*logFormat)
	if err := s.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return &Command{
		Name:     CommandCheck,
		Settings: s,
		Paths:    fs.Args(),
		EmitHCL:  *emitHCL,
	}, false, nil
}

func parseRun(args []string, output io.Writer, environ map[string]string) (*Command, bool, error) {
	fs := newFlagSet(CommandRun, "run [options]", output)
	configPath := fs.String("config", "", "Path to a .toml, .yaml or .yml settings file.")
	logLevel := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	ticks := fs.Int("ticks", 0, "Number of ticks to run. 0 runs until interrupted.")
	tickRate := fs.Float64("tick-rate", 60, "Ticks per second.")
	maxCatchUp := fs.Int("max-catch-up", 0, "Default cap on fixed-timestep catch-up runs per tick for schedule files. 0 is unbounded.")
	healthPort := fs.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	var schedules []string
	fs.Func("schedule", "Schedule file or directory to load. May be repeated.", func(v string) error {
		schedules = append(schedules, v)
		return nil
	})

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " "))}
	}

	s, err := config.LoadWithEnv(*configPath, environ)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Settings loaded.", "config", *configPath)

	// Explicit flags win over the file and the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			s.LogLevel = strings.ToLower(*logLevel)
		case "log-format":
			s.LogFormat = strings.ToLower(*logFormat)
		case "ticks":
			s.Ticks = *ticks
		case "tick-rate":
			s.TickRate = *tickRate
		case "max-catch-up":
			s.MaxCatchUp = *maxCatchUp
		case "healthcheck-port":
			s.HealthcheckPort = *healthPort
		case "schedule":
			s.Schedules = schedules
		}
	})
	if err := s.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "settings", s)
	return &Command{Name: CommandRun, Settings: s}, false, nil
}
