// internal/label/path.go
package label

import (
	"slices"
	"strings"
)

// Label returns the canonical label for the path.
func (p Path) Label() Label {
	return Label(strings.Join(p, Separator))
}

// String serializes the path into its canonical representation.
func (p Path) String() string {
	return string(p.Label())
}

// Parent returns the path without its last segment. The parent of a root
// path is empty.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// Child returns a new path extended by name.
func (p Path) Child(name string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, name)
}

// Equal reports whether both paths address the same node.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// Root returns the first segment, or "" for an empty path.
func (p Path) Root() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}
