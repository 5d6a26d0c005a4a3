package compiler

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/fixedstep"
	"github.com/specialistvlad/schedgrid/internal/grammar"
	"github.com/specialistvlad/schedgrid/internal/host"
	"github.com/specialistvlad/schedgrid/internal/label"
	"github.com/specialistvlad/schedgrid/internal/registry"
)

// Tree returns the source tree.
func (p *Program) Tree() *grammar.Tree {
	return p.tree
}

// Root returns the label of the root schedule.
func (p *Program) Root() label.Label {
	return p.nodes[p.tree.Root()].Label
}

// Labels returns every label in pre-order.
func (p *Program) Labels() []label.Label {
	out := make([]label.Label, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = n.Label
	}
	return out
}

// Nodes returns the compiled nodes in pre-order.
func (p *Program) Nodes() []Node {
	out := make([]Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Lookup returns the compiled node for l.
func (p *Program) Lookup(l label.Label) (Node, bool) {
	id, ok := p.symbols[l]
	if !ok {
		return Node{}, false
	}
	return p.nodes[id], true
}

// Resolve maps a written path (`Update::Test` or `Update.Test`) to the label
// it addresses in this tree.
func (p *Program) Resolve(raw string) (label.Label, error) {
	path, err := label.Parse(raw)
	if err != nil {
		return "", err
	}
	l := path.Label()
	if _, ok := p.symbols[l]; !ok {
		return "", fmt.Errorf("%w: %q is not declared under %q", ErrUnresolved, raw, p.Root())
	}
	return l, nil
}

// Entries returns one registry entry per schedule with children. Applying an
// entry attaches the chain runner and declares the child schedules on the
// host. Each call builds fresh runners, so fixed-timestep state is never
// shared between two sets of entries. Entries of equivalent chains share a
// Key, so declaring the same tree twice attaches each chain once.
func (p *Program) Entries() []registry.Entry {
	var entries []registry.Entry
	for _, n := range p.nodes {
		if len(n.Children) == 0 {
			continue
		}
		chain := p.Chain(n.Label)
		target := n.Label
		children := n.Children
		entries = append(entries, registry.Entry{
			Name:     fmt.Sprintf("attach schedule chain %s", target),
			Source:   p.source(n.ID),
			Requires: []label.Label{target},
			Provides: n.Children,
			Key:      p.chainKey(n),
			Apply: func(b host.BuildState) {
				b.AttachSystems(target, chain)
				for _, child := range children {
					b.AttachSystems(child)
				}
			},
		})
	}
	return entries
}

// Chain builds the runner that executes the children of l in declaration
// order. Timed children run through a fixed-timestep runner. It panics if l
// is not part of the program.
func (p *Program) Chain(l label.Label) host.System {
	n, ok := p.Lookup(l)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnresolved, l))
	}

	steps := make([]host.System, 0, len(n.Children))
	for _, childLabel := range n.Children {
		child, _ := p.Lookup(childLabel)
		steps = append(steps, p.slot(child))
	}
	return func(w host.World) {
		for _, step := range steps {
			step(w)
		}
	}
}

func (p *Program) slot(child Node) host.System {
	if child.Timed() {
		return fixedstep.Runner(child.Period, child.Label, fixedstep.Options{
			MaxCatchUp: child.MaxCatchUp,
			Logger:     p.logger,
		})
	}
	target := child.Label
	return func(w host.World) {
		w.RunSchedule(target)
	}
}

// chainKey describes what the chain for n runs. Two programs declaring the
// same children with the same timing produce the same key.
func (p *Program) chainKey(n Node) string {
	var sb strings.Builder
	sb.WriteString("schedule chain ")
	sb.WriteString(n.Label.String())
	for _, l := range n.Children {
		child, _ := p.Lookup(l)
		fmt.Fprintf(&sb, "|%s", l)
		if child.Timed() {
			fmt.Fprintf(&sb, "@%s/%d", child.Period, child.MaxCatchUp)
		}
	}
	return sb.String()
}

func (p *Program) source(id grammar.NodeID) string {
	rng := p.tree.Node(id).Range
	if rng.Filename == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", rng.Filename, rng.Start.Line)
}
