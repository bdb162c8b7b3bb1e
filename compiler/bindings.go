package compiler

import "slices"

// bindings is the ordered set of identifiers visible at a point of the
// template: loop variables, scope aliases and template arguments. Hoisted
// functions take them as leading parameters and their call sites bind them
// in the same order. The helpers never modify the receiver.
type bindings []string

// with returns b plus every name not already present.
func (b bindings) with(names ...string) bindings {
	out := slices.Clip(b)
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return slices.Clip(out)
}

// without returns b minus the given names.
func (b bindings) without(names ...string) bindings {
	var out bindings
	for _, n := range b {
		if !slices.Contains(names, n) {
			out = append(out, n)
		}
	}
	return out
}

// params returns the parameter list of a function hoisted at this point:
// the bound names followed by extra.
func (b bindings) params(extra ...string) []string {
	out := make([]string, 0, len(b)+len(extra))
	out = append(out, b...)
	return append(out, extra...)
}

func (b bindings) contains(name string) bool {
	return slices.Contains(b, name)
}
