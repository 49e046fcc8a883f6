// Package analyze builds diagram models from the statement trees the python
// facade produces: one class node per class definition, with classification,
// members, generic parameters, and inheritance and composition edges.
package analyze

import (
	"strings"

	"classmap/internal/python"
)

// builtinTypeNames are annotation names that never count as compositions.
var builtinTypeNames = map[string]struct{}{
	"int": {}, "str": {}, "float": {}, "bool": {}, "bytes": {},
	"dict": {}, "list": {}, "tuple": {}, "set": {}, "None": {},
}

// compositionTypes recursively extracts the user-defined type names an
// annotation refers to. Container subscripts recurse into every argument
// and | unions into both operands, so an annotation can contribute several
// names.
func compositionTypes(e *python.Expr, r *python.Resolver) []string {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case python.KindName:
		if _, ok := builtinTypeNames[e.Name]; ok {
			return nil
		}
		if segs, ok := r.Resolve(e); ok && isLibraryNamespace(segs) {
			return nil
		}
		return []string{e.Name}
	case python.KindAttribute:
		if segs, ok := r.Resolve(e); ok && isLibraryNamespace(segs) {
			return nil
		}
		return []string{e.Name}
	case python.KindSubscript:
		var names []string
		for _, elt := range e.Elts {
			names = append(names, compositionTypes(elt, r)...)
		}
		return names
	case python.KindBinOp:
		if e.Op != "|" {
			return nil
		}
		names := compositionTypes(e.Left, r)
		return append(names, compositionTypes(e.Right, r)...)
	}
	return nil
}

func isLibraryNamespace(segs []string) bool {
	if len(segs) == 0 {
		return false
	}
	return segs[0] == "" || segs[0] == "builtins" || segs[0] == "typing"
}

// lastSegment returns the final dotted-name segment, the short type name
// shown on a composition edge.
func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// typeParams finds a class's generic parameter text: an explicit [T, ...]
// header list wins, otherwise the argument text of a Generic[...] base.
func typeParams(class *python.ClassDef, r *python.Resolver) string {
	if class.TypeParams != "" {
		return class.TypeParams
	}
	for _, base := range class.Bases {
		if base.Kind != python.KindSubscript {
			continue
		}
		segs, ok := r.Resolve(base.Value)
		if !ok {
			continue
		}
		if !python.SegmentsMatch(segs, "typing", "Generic") &&
			!python.SegmentsMatch(segs, "typing_extensions", "Generic") {
			continue
		}
		open := strings.IndexByte(base.Text, '[')
		end := strings.LastIndexByte(base.Text, ']')
		if open >= 0 && end > open {
			return base.Text[open+1 : end]
		}
	}
	return ""
}
