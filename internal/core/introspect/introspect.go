package introspect

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// procedures maps an analysis kind to its implementation.
var procedures = map[string]func(root string) (any, error){
	"package": func(root string) (any, error) {
		pkg, err := Package(root)
		if err != nil || pkg == nil {
			return struct{}{}, err
		}
		return pkg, nil
	},
	"structure": func(root string) (any, error) {
		return Structure(root)
	},
	"codebase": func(root string) (any, error) {
		return Codebase(root)
	},
	"architecture": func(root string) (any, error) {
		return Architecture(root)
	},
}

// Kinds returns the supported analysis kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(procedures))
	for k := range procedures {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Write runs the procedure for kind against root and writes its result to w
// as a single JSON object. A project without a manifest yields "{}" for the
// package kind.
func Write(w io.Writer, kind, root string) error {
	proc, ok := procedures[kind]
	if !ok {
		return fmt.Errorf("unknown analysis kind %q (want one of %v)", kind, Kinds())
	}
	result, err := proc(root)
	if err != nil {
		return fmt.Errorf("%s analysis of %s: %w", kind, root, err)
	}
	return json.NewEncoder(w).Encode(result)
}
