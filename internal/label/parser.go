// internal/label/parser.go
package label

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is wrapped by every error returned from Parse.
var ErrInvalid = errors.New("invalid schedule path")

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdent reports whether name is a valid schedule identifier.
func IsIdent(name string) bool {
	return identRegex.MatchString(name)
}

// Parse reads a schedule path written as `A::B::C` or `A.B.C`. Whitespace
// around segments is ignored, mixing both separators is not allowed.
func Parse(raw string) (Path, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrInvalid)
	}

	sep := Separator
	if !strings.Contains(s, Separator) && strings.Contains(s, ".") {
		sep = "."
	}
	if sep == Separator && strings.Contains(s, ".") {
		return nil, fmt.Errorf("%w: %q mixes '::' and '.' separators", ErrInvalid, raw)
	}

	parts := strings.Split(s, sep)
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: %q contains an empty segment", ErrInvalid, raw)
		}
		if !IsIdent(part) {
			return nil, fmt.Errorf("%w: invalid segment %q in %q", ErrInvalid, part, raw)
		}
		path = append(path, part)
	}
	return path, nil
}

// MustParse is like Parse but panics on error. It is meant for paths written
// as literals in package init code.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}
