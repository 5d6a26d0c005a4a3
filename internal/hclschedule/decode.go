package hclschedule

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/schedgrid/internal/grammar"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// scheduleBody is the content of one schedule block. Everything that is not
// a nested schedule stays in Remain and becomes an attribute.
type scheduleBody struct {
	Children []*scheduleBlock `hcl:"schedule,block"`
	Remain   hcl.Body         `hcl:",remain"`
}

type scheduleBlock struct {
	Name   string   `hcl:"name,label"`
	Body   hcl.Body `hcl:",remain"`
	Source hcl.Range
}

// Parse reads one schedule file. On error the tree is nil.
func Parse(filename string, src []byte) (*grammar.Tree, hcl.Diagnostics) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decodeFile(filename, file, src)
}

// ParseFile reads and parses the schedule file at path.
func ParseFile(path string) (*grammar.Tree, hcl.Diagnostics) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to read file",
			Detail:   fmt.Sprintf("The schedule file %q could not be read: %s.", path, err),
		}}
	}
	return Parse(path, src)
}

func decodeFile(filename string, file *hcl.File, src []byte) (*grammar.Tree, hcl.Diagnostics) {
	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	root, more := findUniqueBlock(content.Blocks, BlockType, file.Body.MissingItemRange())
	diags = append(diags, more...)
	if diags.HasErrors() {
		return nil, diags
	}

	d := &decoder{tree: grammar.NewTree(filename), src: src}
	d.block(grammar.NoParent, &scheduleBlock{
		Name:   root.Labels[0],
		Body:   root.Body,
		Source: root.DefRange,
	})
	if d.diags.HasErrors() {
		return nil, d.diags
	}
	return d.tree, d.diags
}

type decoder struct {
	tree  *grammar.Tree
	src   []byte
	diags hcl.Diagnostics
}

// block adds b and then its children, so the arena stays in pre-order.
func (d *decoder) block(parent grammar.NodeID, b *scheduleBlock) {
	if !label.IsIdent(b.Name) {
		d.diags = append(d.diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid schedule name",
			Detail:   fmt.Sprintf("%q is not a valid identifier; names use letters, digits and underscores and cannot start with a digit.", b.Name),
			Subject:  b.Source.Ptr(),
		})
		return
	}

	var body scheduleBody
	diags := gohcl.DecodeBody(b.Body, nil, &body)
	d.diags = append(d.diags, diags...)
	if diags.HasErrors() {
		return
	}

	attrs, diags := remainAttributes(body.Remain)
	d.diags = append(d.diags, diags...)
	if diags.HasErrors() {
		return
	}

	id := d.tree.Add(parent, b.Name, b.Source, d.attrs(attrs))
	for _, child := range body.Children {
		child.Source = d.defRange(child)
		d.block(id, child)
	}
}

// remainAttributes returns the attributes left in a schedule body once its
// nested schedule blocks were decoded. hclsyntax's JustAttributes rejects
// every block, consumed ones included, so syntax bodies are read directly.
func remainAttributes(body hcl.Body) (hcl.Attributes, hcl.Diagnostics) {
	syn, ok := body.(*hclsyntax.Body)
	if !ok {
		return body.JustAttributes()
	}

	var diags hcl.Diagnostics
	for _, block := range syn.Blocks {
		if block.Type == BlockType {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Unexpected %q block", block.Type),
			Detail:   "Only nested \"" + BlockType + "\" blocks are allowed inside a schedule.",
			Subject:  block.TypeRange.Ptr(),
		})
	}

	attrs := make(hcl.Attributes, len(syn.Attributes))
	for name, attr := range syn.Attributes {
		attrs[name] = attr.AsHCLAttribute()
	}
	return attrs, diags
}

func (d *decoder) attrs(in hcl.Attributes) []grammar.Attr {
	list := make([]*hcl.Attribute, 0, len(in))
	for _, a := range in {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].NameRange.Start.Byte < list[j].NameRange.Start.Byte
	})

	out := make([]grammar.Attr, 0, len(list))
	for _, a := range list {
		rng := a.Expr.Range()
		out = append(out, grammar.Attr{
			Name:      a.Name,
			Expr:      string(rng.SliceBytes(d.src)),
			NameRange: a.NameRange,
			ExprRange: rng,
		})
	}
	return out
}

// defRange recovers the header range of a nested block; gohcl only hands
// back its body.
func (d *decoder) defRange(b *scheduleBlock) hcl.Range {
	rng := b.Body.MissingItemRange()
	if syn, ok := b.Body.(interface{ Range() hcl.Range }); ok {
		rng = syn.Range()
	}
	return rng
}
