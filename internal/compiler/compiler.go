package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/grammar"
	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/specialistvlad/schedgrid/internal/period"
)

// ErrUnresolved is returned by Program.Resolve for paths outside the tree.
var ErrUnresolved = errors.New("unresolved schedule path")

// Node is the compiled view of one schedule.
type Node struct {
	ID         grammar.NodeID
	Label      label.Label
	Path       label.Path
	Period     time.Duration
	MaxCatchUp int
	Children   []label.Label
}

// Timed reports whether the node runs on a fixed timestep.
func (n Node) Timed() bool {
	return n.Period > 0
}

// Option configures Compile.
type Option func(*options)

type options struct {
	maxCatchUp int
}

// WithMaxCatchUp sets the default catch-up cap for timed nodes that do not
// declare max_catch_up themselves. Zero keeps catch-up unbounded.
func WithMaxCatchUp(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxCatchUp = n
		}
	}
}

// Program is a compiled schedule tree.
type Program struct {
	tree    *grammar.Tree
	nodes   []Node
	symbols map[label.Label]grammar.NodeID
	logger  *slog.Logger
}

// Compile validates tree and builds its labels. All semantic problems are
// returned together; on any error the program is nil.
func Compile(ctx context.Context, tree *grammar.Tree, opts ...Option) (*Program, hcl.Diagnostics) {
	if tree == nil || tree.Len() == 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Empty schedule tree",
			Detail:   "A schedule tree needs at least a root schedule.",
		}}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	c := &compilation{tree: tree, opts: o}
	c.run()
	if c.diags.HasErrors() {
		return nil, c.diags
	}

	p := &Program{
		tree:    tree,
		nodes:   c.nodes,
		symbols: make(map[label.Label]grammar.NodeID, len(c.nodes)),
		logger:  ctxlog.FromContext(ctx),
	}
	for _, n := range c.nodes {
		p.symbols[n.Label] = n.ID
	}
	p.logger.Debug("Schedule tree compiled.", "root", p.Root().String(), "schedules", len(p.nodes))
	return p, c.diags
}

// CompileSource parses and compiles src in one step.
func CompileSource(ctx context.Context, filename string, src []byte, opts ...Option) (*Program, hcl.Diagnostics) {
	tree, diags := grammar.Parse(filename, src)
	if diags.HasErrors() {
		return nil, diags
	}
	return Compile(ctx, tree, opts...)
}

type compilation struct {
	tree  *grammar.Tree
	opts  options
	nodes []Node
	diags hcl.Diagnostics
}

func (c *compilation) run() {
	c.nodes = make([]Node, c.tree.Len())
	c.tree.Walk(func(n *grammar.Node) bool {
		path := c.tree.Path(n.ID)
		compiled := Node{
			ID:    n.ID,
			Label: path.Label(),
			Path:  path,
		}
		if n.Parent == grammar.NoParent {
			c.checkRoot(n)
		} else {
			c.checkAttrs(n, &compiled)
		}
		c.checkSiblings(n)
		for _, child := range n.Children {
			compiled.Children = append(compiled.Children, path.Child(c.tree.Node(child).Name).Label())
		}
		c.nodes[n.ID] = compiled
		return true
	})
}

func (c *compilation) checkRoot(n *grammar.Node) {
	if len(n.Attrs) == 0 {
		return
	}
	c.diags = append(c.diags, errorDiag(
		SummaryRootAttributes,
		fmt.Sprintf("The root schedule %q is driven by the host and cannot have attributes; found %d.", n.Name, len(n.Attrs)),
		hcl.RangeOver(n.Attrs[0].NameRange, n.Attrs[len(n.Attrs)-1].ExprRange),
	))
}

func (c *compilation) checkAttrs(n *grammar.Node, out *Node) {
	seen := make(map[string]bool, len(n.Attrs))
	var catchUp *grammar.Attr

	for i := range n.Attrs {
		attr := &n.Attrs[i]
		if _, ok := recognized[attr.Name]; !ok {
			c.diags = append(c.diags, errorDiag(SummaryUnknownAttribute, unknownAttrDetail(attr.Name), attr.NameRange))
			continue
		}
		if seen[attr.Name] {
			c.diags = append(c.diags, errorDiag(
				SummaryDuplicateAttr,
				fmt.Sprintf("The attribute %q is already set on schedule %q.", attr.Name, n.Name),
				attr.NameRange,
			))
			continue
		}
		seen[attr.Name] = true

		switch attr.Name {
		case AttrRunEvery:
			d, err := period.Duration(attr.Expr)
			if err != nil {
				c.diags = append(c.diags, errorDiag(SummaryInvalidValue, fmt.Sprintf("run_every(%s): %s", attr.Expr, err), attr.ExprRange))
				continue
			}
			out.Period = d
		case AttrMaxCatchUp:
			catchUp = attr
			count, err := period.Count(attr.Expr)
			if err != nil {
				c.diags = append(c.diags, errorDiag(SummaryInvalidValue, fmt.Sprintf("max_catch_up(%s): %s", attr.Expr, err), attr.ExprRange))
				continue
			}
			out.MaxCatchUp = count
		}
	}

	if catchUp != nil && !seen[AttrRunEvery] {
		c.diags = append(c.diags, errorDiag(
			SummaryRequiresRunEvery,
			fmt.Sprintf("max_catch_up on schedule %q has no effect without run_every.", n.Name),
			catchUp.NameRange,
		))
	}
	if out.Period > 0 && !seen[AttrMaxCatchUp] {
		out.MaxCatchUp = c.opts.maxCatchUp
	}
}

func (c *compilation) checkSiblings(n *grammar.Node) {
	seen := make(map[string]bool, len(n.Children))
	for _, id := range n.Children {
		child := c.tree.Node(id)
		if seen[child.Name] {
			c.diags = append(c.diags, errorDiag(
				SummaryDuplicateName,
				fmt.Sprintf("Schedule %q already has a child named %q.", c.tree.Path(n.ID), child.Name),
				child.Range,
			))
			continue
		}
		seen[child.Name] = true
	}
}
