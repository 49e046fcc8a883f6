package mermaid

import (
	"strings"

	"classmap/internal/diagram"
)

const tab = "    "

// Renderer writes Mermaid classDiagram markup. The emitted whitespace is a
// compatibility contract: 4-space indentation inside class blocks, one blank
// line between blocks and between edge lines, trimmed end, exactly one
// trailing newline.
type Renderer struct {
	indentLevel int
}

// NewRenderer returns a renderer with the standard single indent level.
func NewRenderer() *Renderer {
	return &Renderer{indentLevel: 1}
}

func (r *Renderer) indent() string {
	return strings.Repeat(tab, r.indentLevel)
}

// Render serializes the diagram. The second return is false when the diagram
// holds no classes, relationships, or compositions; callers must emit
// nothing in that case.
func (r *Renderer) Render(d *diagram.Diagram) (string, bool) {
	if d.Empty() {
		return "", false
	}

	var out strings.Builder
	out.Grow(1024)

	out.WriteString(r.renderHeader(d.Title, d.Direction))

	for _, class := range d.OrderedClasses() {
		out.WriteString(r.renderClass(&class))
	}

	rels := dedupRelationships(d.Relationships)
	for i, rel := range rels {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(r.renderRelationship(rel))
	}

	comps := dedupCompositions(d.Compositions)
	for i, comp := range comps {
		if i > 0 || len(rels) > 0 {
			out.WriteString("\n")
		}
		out.WriteString(r.renderComposition(comp))
	}

	return strings.TrimRight(out.String(), " \t\n") + "\n", true
}

func (r *Renderer) renderHeader(title string, dir diagram.Direction) string {
	var out strings.Builder
	if title != "" {
		out.WriteString("---\n")
		out.WriteString("title: " + title + "\n")
		out.WriteString("---\n")
	}
	out.WriteString("classDiagram\n")
	if dir != "" && dir != diagram.DefaultDirection {
		out.WriteString(r.indent() + "direction " + string(dir) + "\n")
	}
	return out.String()
}

func (r *Renderer) renderClass(class *diagram.ClassNode) string {
	var out strings.Builder
	indent := r.indent()

	out.WriteString(indent)
	out.WriteString("class ")
	out.WriteString(class.Name)

	if class.TypeParams != "" {
		out.WriteString(" ~" + class.TypeParams + "~")
	}

	hasBody := len(class.Attributes) > 0 || len(class.Methods) > 0 || class.Kind != diagram.Regular

	if hasBody {
		out.WriteString(" {\n")

		if stereotype := class.Kind.Stereotype(); stereotype != "" {
			out.WriteString(indent + indent + stereotype + "\n")
		}

		for _, attr := range class.Attributes {
			out.WriteString(indent + indent)
			out.WriteString(attr.Visibility.Symbol())
			out.WriteString(" ")
			out.WriteString(attr.TypeAnnotation)
			out.WriteString(" ")
			out.WriteString(EscapeUnderscores(attr.Name))
			out.WriteString("\n")
		}

		for _, method := range class.Methods {
			out.WriteString(indent + indent)
			out.WriteString(r.renderMethod(&method))
			out.WriteString("\n")
		}

		out.WriteString(indent + "}")
	}

	out.WriteString("\n\n")
	return out.String()
}

func (r *Renderer) renderMethod(m *diagram.MethodSignature) string {
	var out strings.Builder

	out.WriteString(m.Visibility.Symbol())
	out.WriteString(" ")

	for _, decorator := range m.Decorators {
		out.WriteString(decorator + " ")
	}

	if m.Async {
		out.WriteString("async ")
	}

	out.WriteString(EscapeUnderscores(m.Name))
	out.WriteString("(" + m.Parameters + ")")

	if m.ReturnType != "" {
		out.WriteString(" " + m.ReturnType)
	}

	// Abstract takes precedence; the two classifiers are never both emitted.
	if m.Abstract {
		out.WriteString("*")
	} else if m.Static {
		out.WriteString("$")
	}

	return out.String()
}

func (r *Renderer) renderRelationship(rel diagram.RelationshipEdge) string {
	return r.indent() + rel.From + " " + rel.Relation.Arrow() + " " + rel.To + "\n"
}

func (r *Renderer) renderComposition(comp diagram.CompositionEdge) string {
	return r.indent() + comp.Container + " *-- " + comp.Contained + "\n"
}

func dedupRelationships(edges []diagram.RelationshipEdge) []diagram.RelationshipEdge {
	seen := make(map[diagram.RelationshipEdge]struct{}, len(edges))
	out := make([]diagram.RelationshipEdge, 0, len(edges))
	for _, e := range edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func dedupCompositions(edges []diagram.CompositionEdge) []diagram.CompositionEdge {
	seen := make(map[diagram.CompositionEdge]struct{}, len(edges))
	out := make([]diagram.CompositionEdge, 0, len(edges))
	for _, e := range edges {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
