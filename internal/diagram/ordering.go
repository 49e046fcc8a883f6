package diagram

import "sort"

// OrderedClasses returns the diagram's classes deduplicated by name (first
// insertion wins) in a deterministic topological order: a depth-first
// post-order traversal over the relationship and composition edges, started
// from all class names in lexicographic order, with each node's dependencies
// also visited in lexicographic order. A visited set guards against cycles,
// which are broken silently. The pass is read-only; it depends on insertion
// order only to break duplicate-name ties.
func (d *Diagram) OrderedClasses() []ClassNode {
	byName := make(map[string]int, len(d.Classes))
	for i, c := range d.Classes {
		if _, ok := byName[c.Name]; !ok {
			byName[c.Name] = i
		}
	}

	deps := make(map[string]map[string]struct{})
	addDep := func(from, to string) {
		set, ok := deps[from]
		if !ok {
			set = make(map[string]struct{})
			deps[from] = set
		}
		set[to] = struct{}{}
	}
	for _, rel := range d.Relationships {
		addDep(rel.From, rel.To)
	}
	for _, comp := range d.Compositions {
		addDep(comp.Container, comp.Contained)
	}

	visited := make(map[string]struct{})
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if _, ok := visited[name]; ok {
			return
		}
		visited[name] = struct{}{}

		if set, ok := deps[name]; ok {
			sorted := make([]string, 0, len(set))
			for dep := range set {
				sorted = append(sorted, dep)
			}
			sort.Strings(sorted)
			for _, dep := range sorted {
				visit(dep)
			}
		}

		order = append(order, name)
	}

	roots := make([]string, 0, len(byName))
	for name := range byName {
		roots = append(roots, name)
	}
	sort.Strings(roots)
	for _, name := range roots {
		visit(name)
	}

	classes := make([]ClassNode, 0, len(byName))
	for _, name := range order {
		if i, ok := byName[name]; ok {
			classes = append(classes, d.Classes[i])
		}
	}
	return classes
}
