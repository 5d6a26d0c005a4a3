package hclschedule

import (
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/schedgrid/internal/grammar"
	"github.com/zclconf/go-cty/cty"
)

// Encode writes tree as HCL blocks. Go duration literals become quoted
// strings; every other expression is copied as written.
func Encode(tree *grammar.Tree) []byte {
	f := hclwrite.NewEmptyFile()
	if tree == nil || tree.Len() == 0 {
		return f.Bytes()
	}
	encodeNode(f.Body(), tree, tree.Root())
	return hclwrite.Format(f.Bytes())
}

func encodeNode(parent *hclwrite.Body, tree *grammar.Tree, id grammar.NodeID) {
	n := tree.Node(id)
	block := parent.AppendNewBlock(BlockType, []string{n.Name})
	body := block.Body()

	for _, a := range n.Attrs {
		expr := strings.TrimSpace(a.Expr)
		if _, err := time.ParseDuration(expr); err == nil {
			body.SetAttributeValue(a.Name, cty.StringVal(expr))
			continue
		}
		body.SetAttributeRaw(a.Name, hclwrite.Tokens{
			{Type: hclsyntax.TokenIdent, Bytes: []byte(expr)},
		})
	}
	if len(n.Attrs) > 0 && !n.IsLeaf() {
		body.AppendNewline()
	}
	for _, child := range n.Children {
		encodeNode(body, tree, child)
	}
}
