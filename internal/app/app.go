package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
)

var (
	ErrAlreadyBuilt = errors.New("app is already built")
	ErrNotBuilt     = errors.New("app is not built")
)

// App is the reference host.
type App struct {
	ctx     context.Context
	logger  *slog.Logger
	options *Options

	plugins []host.Plugin
	built   bool

	schedules map[label.Label][]host.System
	resources map[reflect.Type]any
	events    map[reflect.Type]*eventQueue
	types     []reflect.Type
	typeSet   map[reflect.Type]struct{}

	delta      time.Duration
	elapsed    time.Duration
	startupRan bool
	ticks      atomic.Uint64

	httpServer *http.Server
}

var (
	_ host.BuildState = (*App)(nil)
	_ host.World      = (*App)(nil)
)

// New creates an App with its own logger and the Startup and Update
// schedules.
func New(ctx context.Context, opts Options) (*App, error) {
	o, err := NewOptions(opts)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := NewLogger(o.LogLevel, o.LogFormat, o.Output)
	logger.Debug("Logger configured successfully.")

	return &App{
		ctx:     ctxlog.WithLogger(ctx, logger),
		logger:  logger,
		options: o,
		schedules: map[label.Label][]host.System{
			host.Startup: nil,
			host.Update:  nil,
		},
		resources: map[reflect.Type]any{},
		events:    map[reflect.Type]*eventQueue{},
		typeSet:   map[reflect.Type]struct{}{},
	}, nil
}

// Context returns the app context carrying its logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Options returns the validated options.
func (a *App) Options() Options {
	return *a.options
}

// AddPlugins queues plugins for Build. It panics once the app is built.
func (a *App) AddPlugins(plugins ...host.Plugin) *App {
	if a.built {
		panic(fmt.Errorf("%w: cannot add plugins", ErrAlreadyBuilt))
	}
	a.plugins = append(a.plugins, plugins...)
	return a
}

// Build runs every plugin once, in the order added. Plugin panics propagate.
func (a *App) Build() error {
	if a.built {
		return ErrAlreadyBuilt
	}
	a.logger.Debug("Building app.", "plugins", len(a.plugins))
	for _, p := range a.plugins {
		p.Build(a.ctx, a)
	}
	a.built = true
	a.logger.Debug("App built.", "schedules", len(a.schedules), "resources", len(a.resources), "events", len(a.events), "types", len(a.types))
	return nil
}

// Built reports whether Build has completed.
func (a *App) Built() bool {
	return a.built
}
