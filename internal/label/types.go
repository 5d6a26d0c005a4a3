// internal/label/types.go
package label

// Separator joins path segments into a canonical label.
const Separator = "::"

// Label is the unique identifier of a schedule, derived from its path.
type Label string

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// Path is the ordered list of identifiers from the root schedule to a node.
type Path []string

// Of joins the given segments into a label. It does not validate them; use
// Parse for untrusted input.
func Of(segments ...string) Label {
	return Path(segments).Label()
}
