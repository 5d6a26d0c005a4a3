package hclschedule

import (
	"github.com/hashicorp/hcl/v2"
)

// BlockType is the block name for a schedule declaration.
const BlockType = "schedule"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: BlockType, LabelNames: []string{"name"}},
	},
}

// findUniqueBlock returns the single block of the given type. Every extra
// block is reported; a missing block is reported against the file range.
func findUniqueBlock(blocks hcl.Blocks, name string, missing hcl.Range) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one top-level \"" + name + "\" block is allowed per file; nest the others inside it.",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}

	if found == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing \"" + name + "\" block",
			Detail:   "A schedule file needs exactly one top-level \"" + name + "\" block.",
			Subject:  missing.Ptr(),
		})
	}
	return found, diags
}
