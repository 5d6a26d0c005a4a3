package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Recognized attribute names.
const (
	AttrRunEvery   = "run_every"
	AttrMaxCatchUp = "max_catch_up"
)

var recognized = map[string]struct{}{
	AttrRunEvery:   {},
	AttrMaxCatchUp: {},
}

func recognizedList() string {
	names := make([]string, 0, len(recognized))
	for name := range recognized {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func unknownAttrDetail(name string) string {
	return fmt.Sprintf("The attribute %q does not exist. Supported attributes are: %s.", name, recognizedList())
}
