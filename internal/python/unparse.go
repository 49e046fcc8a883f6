package python

import "strings"

// ExprString renders an expression back to display form. Annotations keep
// their subscript and union structure; anything else falls back to the
// original source text.
func ExprString(e *Expr) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindName, KindAttribute:
		return e.Name
	case KindSubscript:
		parts := make([]string, len(e.Elts))
		for i, elt := range e.Elts {
			parts[i] = ExprString(elt)
		}
		return ExprString(e.Value) + "[" + strings.Join(parts, ", ") + "]"
	case KindBinOp:
		return ExprString(e.Left) + " " + e.Op + " " + ExprString(e.Right)
	case KindTuple:
		parts := make([]string, len(e.Elts))
		for i, elt := range e.Elts {
			parts[i] = ExprString(elt)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindNone:
		return "None"
	case KindEllipsis:
		return "..."
	}
	return e.Text
}
