// Package loader turns schedule files on disk into compiled programs.
// Files ending in .sched use the bracket syntax; files ending in .hcl use
// nested schedule blocks.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/compiler"
	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/fsutil"
	"github.com/specialistvlad/schedgrid/internal/grammar"
	"github.com/specialistvlad/schedgrid/internal/hclschedule"
)

// File extensions recognized by Load.
const (
	ExtSchedule = ".sched"
	ExtHCL      = ".hcl"
)

// Load compiles every schedule file named by paths; directories are searched
// recursively. Diagnostics from all files are returned together, and no
// programs are returned if any file has errors.
func Load(ctx context.Context, paths []string, opts ...compiler.Option) ([]*compiler.Program, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ExpandPaths(paths, ExtSchedule, ExtHCL)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to find schedule files",
			Detail:   err.Error(),
		}}
	}
	logger.Debug("Discovered schedule files.", "count", len(files))

	var programs []*compiler.Program
	var diags hcl.Diagnostics
	for _, file := range files {
		p, fileDiags := LoadFile(ctx, file, opts...)
		diags = append(diags, fileDiags...)
		if p != nil {
			programs = append(programs, p)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return programs, diags
}

// LoadFile parses and compiles a single schedule file.
func LoadFile(ctx context.Context, path string, opts ...compiler.Option) (*compiler.Program, hcl.Diagnostics) {
	tree, diags := ParseFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	p, more := compiler.Compile(ctx, tree, opts...)
	diags = append(diags, more...)
	if p != nil {
		ctxlog.FromContext(ctx).Debug("Schedule file compiled.", "file", path, "root", p.Root().String(), "labels", len(p.Labels()))
	}
	return p, diags
}

// ParseFile picks the front end by extension.
func ParseFile(path string) (*grammar.Tree, hcl.Diagnostics) {
	switch filepath.Ext(path) {
	case ExtHCL:
		return hclschedule.ParseFile(path)
	case ExtSchedule:
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Failed to read file",
				Detail:   fmt.Sprintf("The schedule file %q could not be read: %s.", path, err),
			}}
		}
		return grammar.Parse(path, src)
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported schedule file",
			Detail:   fmt.Sprintf("%q must end in %s or %s.", path, ExtSchedule, ExtHCL),
		}}
	}
}
