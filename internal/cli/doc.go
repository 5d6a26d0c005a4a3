// Package cli parses the schedgrid command line into a Command. It owns
// flag definitions, help text and the precedence of flags over settings
// files and environment variables.
package cli
