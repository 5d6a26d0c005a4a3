package loader

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// DiagnosticsError carries every error diagnostic from a load. Unlike
// hcl.Diagnostics.Error, its message lists each one, one per line.
type DiagnosticsError struct {
	Diags hcl.Diagnostics
}

func (e *DiagnosticsError) Error() string {
	errs := e.Diags.Errs()
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the diagnostics for errors.As.
func (e *DiagnosticsError) Unwrap() error {
	return e.Diags
}
