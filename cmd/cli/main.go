package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/cli"
	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/hclschedule"
	"github.com/specialistvlad/schedgrid/internal/loader"

	_ "github.com/specialistvlad/schedgrid/modules/env_vars"
	_ "github.com/specialistvlad/schedgrid/modules/print"
)

// main is the entrypoint for the schedgrid binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	cmd, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Registration problems surface as panics while the app builds.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	switch cmd.Name {
	case cli.CommandCheck:
		return check(ctx, outW, cmd)
	default:
		return runApp(ctx, outW, cmd)
	}
}

func check(ctx context.Context, outW io.Writer, cmd *cli.Command) error {
	logger := app.NewLogger(cmd.Settings.LogLevel, cmd.Settings.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)

	programs, diags := loader.Load(ctx, cmd.Paths)
	if diags.HasErrors() {
		wr := hcl.NewDiagnosticTextWriter(outW, nil, 78, false)
		if err := wr.WriteDiagnostics(diags); err != nil {
			return err
		}
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("%d schedule error(s) found", len(diags.Errs()))}
	}

	for _, p := range programs {
		fmt.Fprintf(outW, "%s\n", p.Tree().Filename)
		for _, n := range p.Nodes() {
			switch {
			case n.Timed() && n.MaxCatchUp > 0:
				fmt.Fprintf(outW, "  %s  every %s, at most %d per tick\n", n.Label, n.Period, n.MaxCatchUp)
			case n.Timed():
				fmt.Fprintf(outW, "  %s  every %s\n", n.Label, n.Period)
			default:
				fmt.Fprintf(outW, "  %s\n", n.Label)
			}
		}
		if cmd.EmitHCL {
			fmt.Fprintf(outW, "\n%s\n", hclschedule.Encode(p.Tree()))
		}
	}
	return nil
}

func runApp(ctx context.Context, outW io.Writer, cmd *cli.Command) error {
	s := cmd.Settings
	a, err := app.New(ctx, app.Options{
		Output:          outW,
		LogFormat:       s.LogFormat,
		LogLevel:        s.LogLevel,
		HealthcheckPort: s.HealthcheckPort,
		TickRate:        s.TickRate,
		MaxCatchUp:      s.MaxCatchUp,
		SchedulePaths:   s.Schedules,
	})
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	if err := a.LoadSchedules(); err != nil {
		return err
	}
	a.AddPlugins(app.DefaultPlugins()...)
	if err := a.Build(); err != nil {
		return err
	}
	return a.Run(ctx, s.Ticks)
}
