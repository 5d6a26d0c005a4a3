package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	yaml "go.yaml.in/yaml/v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SCHEDGRID_"

// Settings are the runtime options of the reference host.
type Settings struct {
	LogLevel        string   `toml:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string   `toml:"log_format" yaml:"log_format" env:"LOG_FORMAT"`
	HealthcheckPort int      `toml:"healthcheck_port" yaml:"healthcheck_port" env:"HEALTHCHECK_PORT"`
	TickRate        float64  `toml:"tick_rate" yaml:"tick_rate" env:"TICK_RATE"`
	Ticks           int      `toml:"ticks" yaml:"ticks" env:"TICKS"`
	MaxCatchUp      int      `toml:"max_catch_up" yaml:"max_catch_up" env:"MAX_CATCH_UP"`
	Schedules       []string `toml:"schedules" yaml:"schedules" env:"SCHEDULES" envSeparator:","`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: "text",
		TickRate:  60,
	}
}

// Load reads path (if not empty) over the defaults and then applies the
// process environment.
func Load(path string) (Settings, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment; nil means the process
// environment.
func LoadWithEnv(path string, environ map[string]string) (Settings, error) {
	s := Default()
	if path != "" {
		if err := loadFile(path, &s); err != nil {
			return Settings{}, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func loadFile(path string, out *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.Decode(string(data), out)
		if err != nil {
			return fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("config parse failed (%s): unknown keys %v", path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	default:
		return fmt.Errorf("config load failed (%s): unsupported extension %q, want .toml, .yaml or .yml", path, ext)
	}
	return nil
}

// Validate checks ranges and enumerations.
func (s Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", s.LogLevel)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", s.LogFormat)
	}
	if s.HealthcheckPort < 0 || s.HealthcheckPort > 65535 {
		return fmt.Errorf("healthcheck port out of range: %d", s.HealthcheckPort)
	}
	if s.TickRate <= 0 {
		return fmt.Errorf("tick rate must be > 0, got %v", s.TickRate)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("ticks must be >= 0, got %d", s.Ticks)
	}
	if s.MaxCatchUp < 0 {
		return fmt.Errorf("max catch-up must be >= 0, got %d", s.MaxCatchUp)
	}
	return nil
}
