package analyze

import (
	"context"
	"strings"

	"classmap/internal/diagram"
	"classmap/internal/python"
)

// Builder scans parsed source units into a diagram. One Builder accumulates
// one unit of work: a single file, or several files merged into one diagram.
type Builder struct {
	parser  *python.Parser
	diagram *diagram.Diagram
}

func NewBuilder(dir diagram.Direction) *Builder {
	return &Builder{
		parser:  python.NewParser(),
		diagram: diagram.New(dir),
	}
}

// SetTitle sets the diagram title rendered in the front-matter header.
func (b *Builder) SetTitle(title string) {
	b.diagram.Title = title
}

// Diagram returns the accumulated model.
func (b *Builder) Diagram() *diagram.Diagram {
	return b.diagram
}

// AddSource parses one Python source unit and scans its classes into the
// diagram.
func (b *Builder) AddSource(ctx context.Context, source []byte) error {
	stmts, err := b.parser.ParseModule(ctx, source)
	if err != nil {
		return err
	}
	b.AddStatements(stmts)
	return nil
}

// AddStatements scans an already-lowered statement tree. Import bindings are
// collected across the whole unit first, then each top-level class is added
// in order.
func (b *Builder) AddStatements(stmts []python.Stmt) {
	resolver := python.NewResolver(stmts)
	for _, stmt := range stmts {
		if stmt.Kind == python.StmtClassDef {
			b.addClass(stmt.ClassDef, resolver)
		}
	}
}

func (b *Builder) addClass(class *python.ClassDef, r *python.Resolver) {
	kind := classify(class, r)
	attrs, methods, annotations := extractMembers(class, r)

	node := diagram.ClassNode{
		Name:       class.Name,
		TypeParams: typeParams(class, r),
		Kind:       kind,
		Attributes: attrs,
		Methods:    methods,
	}

	// Relationship edges must see earlier classes' kinds, but not this
	// class's own node yet, so bases referring back to it resolve the same
	// way they would in source order.
	if kind != diagram.Enumeration {
		b.addRelationships(class, r)
	}
	b.addCompositions(class.Name, annotations, r)

	b.diagram.AddClass(node)
}

func (b *Builder) addRelationships(class *python.ClassDef, r *python.Resolver) {
	for _, base := range class.Bases {
		if isGenericCarrier(base, r) {
			continue
		}
		if segs, ok := r.Resolve(base); ok && isSkippedBase(segs) {
			continue
		}

		name, resolved := r.ResolveDotted(base)
		if !resolved {
			name = base.Text
		}
		lookup := baseLookupName(name)
		if lookup == "" {
			continue
		}

		relation := diagram.Inheritance
		if b.diagram.IsAbstractOrInterface(lookup) {
			relation = diagram.Implementation
		}
		b.diagram.AddRelationship(diagram.RelationshipEdge{
			From:     class.Name,
			To:       lookup,
			Relation: relation,
		})
	}
}

func (b *Builder) addCompositions(className string, annotations []*python.Expr, r *python.Resolver) {
	seen := make(map[string]struct{})
	for _, annotation := range annotations {
		for _, typeName := range compositionTypes(annotation, r) {
			contained := lastSegment(strings.Trim(typeName, "`"))
			if contained == "" {
				continue
			}
			if _, ok := seen[contained]; ok {
				continue
			}
			seen[contained] = struct{}{}
			b.diagram.AddComposition(diagram.CompositionEdge{
				Container: className,
				Contained: contained,
			})
		}
	}
}

// isGenericCarrier reports whether a base is a Generic[...] subscript, which
// carries type parameters rather than an inheritance relationship.
func isGenericCarrier(base *python.Expr, r *python.Resolver) bool {
	if base.Kind != python.KindSubscript {
		return false
	}
	segs, ok := r.Resolve(base.Value)
	if !ok {
		return false
	}
	return python.SegmentsMatch(segs, "typing", "Generic") ||
		python.SegmentsMatch(segs, "typing_extensions", "Generic")
}

// isSkippedBase filters marker bases that express classification, not
// inheritance.
func isSkippedBase(segs []string) bool {
	return python.SegmentsMatch(segs, "typing", "Generic", "Protocol", "ABC") ||
		python.SegmentsMatch(segs, "typing_extensions", "Generic", "Protocol") ||
		python.SegmentsMatch(segs, "abc", "ABC", "ABCMeta") ||
		python.SegmentsMatch(segs, "", "object")
}

// baseLookupName strips generic specialization and quoting from a base name
// so it can be compared against known class names and rendered as an edge
// target.
func baseLookupName(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.Trim(strings.TrimSpace(name), "`\"'")
}
