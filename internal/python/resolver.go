package python

import "strings"

// Resolver maps names used in a module back to the qualified names they were
// imported under. Bindings come only from import statements; locally defined
// names stay unresolved, which is how callers tell user code apart from
// library references.
type Resolver struct {
	bindings map[string][]string
}

func NewResolver(stmts []Stmt) *Resolver {
	r := &Resolver{bindings: make(map[string][]string)}
	for _, stmt := range stmts {
		switch stmt.Kind {
		case StmtImport:
			r.seeImport(stmt.Import)
		case StmtImportFrom:
			r.seeImportFrom(stmt.ImportFrom)
		}
	}
	return r
}

func (r *Resolver) seeImport(imp *Import) {
	for _, alias := range imp.Names {
		if alias.AsName != "" {
			r.bindings[alias.AsName] = strings.Split(alias.Name, ".")
			continue
		}
		// import a.b.c binds only the top-level module name.
		top := alias.Name
		if i := strings.IndexByte(top, '.'); i >= 0 {
			top = top[:i]
		}
		r.bindings[top] = []string{top}
	}
}

func (r *Resolver) seeImportFrom(imp *ImportFrom) {
	if imp.Module == "__future__" {
		return
	}
	var moduleSegs []string
	if imp.Level > 0 {
		moduleSegs = append(moduleSegs, strings.Repeat(".", imp.Level))
	}
	if imp.Module != "" {
		moduleSegs = append(moduleSegs, strings.Split(imp.Module, ".")...)
	}
	for _, alias := range imp.Names {
		if alias.Name == "*" {
			continue
		}
		bound := alias.Name
		if alias.AsName != "" {
			bound = alias.AsName
		}
		qualified := make([]string, 0, len(moduleSegs)+1)
		qualified = append(qualified, moduleSegs...)
		qualified = append(qualified, alias.Name)
		r.bindings[bound] = qualified
	}
}

// Resolve returns the qualified name segments for an expression, or false if
// the expression does not trace back to an import or a builtin. Builtins
// resolve with an empty leading segment.
func (r *Resolver) Resolve(e *Expr) ([]string, bool) {
	if e == nil {
		return nil, false
	}
	switch e.Kind {
	case KindName:
		if segs, ok := r.bindings[e.Name]; ok {
			return segs, true
		}
		if IsBuiltin(e.Name) {
			return []string{"", e.Name}, true
		}
	case KindAttribute:
		parts := strings.Split(e.Name, ".")
		if len(parts) < 2 {
			return nil, false
		}
		head, ok := r.bindings[parts[0]]
		if !ok {
			return nil, false
		}
		segs := make([]string, 0, len(head)+len(parts)-1)
		segs = append(segs, head...)
		segs = append(segs, parts[1:]...)
		return segs, true
	}
	return nil, false
}

// ResolveDotted joins the resolved segments into a dotted display name.
// Relative import prefixes keep their dots glued to the following segment.
func (r *Resolver) ResolveDotted(e *Expr) (string, bool) {
	segs, ok := r.Resolve(e)
	if !ok {
		return "", false
	}
	if len(segs) > 1 && strings.HasPrefix(segs[0], ".") {
		return segs[0] + strings.Join(segs[1:], "."), true
	}
	return strings.Join(segs, "."), true
}

// SegmentsMatch reports whether the qualified segments name module.name for
// one of the given member names. A module of "" matches builtins.
func SegmentsMatch(segs []string, module string, names ...string) bool {
	if len(segs) != 2 {
		return false
	}
	if segs[0] != module && !(module == "" && segs[0] == "builtins") {
		return false
	}
	for _, name := range names {
		if segs[1] == name {
			return true
		}
	}
	return false
}
