// Package config loads runtime settings for the schedgrid binary. Values are
// layered: built-in defaults, then an optional TOML or YAML file, then
// SCHEDGRID_* environment variables. Command-line flags are applied on top
// by the cli package.
package config
