package app

import (
	"errors"
	"fmt"
	"io"
)

// Options holds everything an App needs besides its plugins.
type Options struct {
	Output io.Writer

	LogFormat string
	LogLevel  string

	// HealthcheckPort enables the /health endpoint while Run is active. 0 is disabled.
	HealthcheckPort int
	// TickRate is the number of ticks per second Run aims for.
	TickRate float64
	// MaxCatchUp caps fixed-timestep catch-up for schedules loaded from files. 0 is unbounded.
	MaxCatchUp int
	// SchedulePaths are schedule files or directories loaded by LoadSchedules.
	SchedulePaths []string
}

// DefaultTickRate is used when Options.TickRate is zero.
const DefaultTickRate = 60

// NewOptions validates opts and fills in defaults.
func NewOptions(opts Options) (*Options, error) {
	if opts.TickRate < 0 {
		return nil, fmt.Errorf("tick rate must be >= 0, got %v", opts.TickRate)
	}
	if opts.TickRate == 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.MaxCatchUp < 0 {
		return nil, fmt.Errorf("max catch-up must be >= 0, got %d", opts.MaxCatchUp)
	}
	if opts.HealthcheckPort < 0 || opts.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port out of range: %d", opts.HealthcheckPort)
	}
	switch opts.LogFormat {
	case "", "text", "json":
	default:
		return nil, errors.New("log format must be 'text' or 'json'")
	}
	if _, ok := ParseLevel(opts.LogLevel); !ok && opts.LogLevel != "" {
		return nil, fmt.Errorf("unknown log level %q", opts.LogLevel)
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	return &opts, nil
}
