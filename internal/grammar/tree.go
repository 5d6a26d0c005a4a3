package grammar

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/label"
)

// NodeID addresses a node inside a Tree.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Attr is a single `[name(expr)]` attribute. Expr holds the raw source text
// between the parentheses; it is interpreted downstream.
type Attr struct {
	Name      string
	Expr      string
	NameRange hcl.Range
	ExprRange hcl.Range
}

// Node is one schedule declaration.
type Node struct {
	ID       NodeID
	Name     string
	Attrs    []Attr
	Children []NodeID
	Parent   NodeID
	Range    hcl.Range
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is an arena of nodes stored in pre-order. The root is always at index 0.
type Tree struct {
	Filename string
	nodes    []Node
}

// NewTree returns an empty tree for the given source file name.
func NewTree(filename string) *Tree {
	return &Tree{Filename: filename}
}

// Add appends a node under parent and returns its id. The first node added
// must use NoParent and becomes the root.
func (t *Tree) Add(parent NodeID, name string, rng hcl.Range, attrs []Attr) NodeID {
	id := NodeID(len(t.nodes))
	if parent == NoParent && id != 0 {
		panic("grammar: tree already has a root")
	}
	t.nodes = append(t.nodes, Node{
		ID:     id,
		Name:   name,
		Attrs:  attrs,
		Parent: parent,
		Range:  rng,
	})
	if parent != NoParent {
		p := &t.nodes[parent]
		p.Children = append(p.Children, id)
	}
	return id
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Path returns the identifiers from the root down to id.
func (t *Tree) Path(id NodeID) label.Path {
	var rev []string
	for cur := id; cur != NoParent; cur = t.nodes[cur].Parent {
		rev = append(rev, t.nodes[cur].Name)
	}
	path := make(label.Path, len(rev))
	for i, name := range rev {
		path[len(rev)-1-i] = name
	}
	return path
}

// Walk visits every node in pre-order. Returning false from fn skips the
// node's subtree.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(t.Root(), fn)
}

func (t *Tree) walk(id NodeID, fn func(n *Node) bool) {
	n := &t.nodes[id]
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		t.walk(child, fn)
	}
}

// String renders the tree back into the declaration language.
func (t *Tree) String() string {
	if len(t.nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	t.write(&sb, t.Root())
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	for _, a := range n.Attrs {
		sb.WriteString("[")
		sb.WriteString(a.Name)
		sb.WriteString("(")
		sb.WriteString(a.Expr)
		sb.WriteString(")] ")
	}
	sb.WriteString(n.Name)
	if n.IsLeaf() {
		return
	}
	sb.WriteString("(")
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		t.write(sb, child)
	}
	sb.WriteString(")")
}
