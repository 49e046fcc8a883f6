package analyze

import (
	"strings"

	"classmap/internal/diagram"
	"classmap/internal/python"
)

// extractMembers walks the direct class-body statements and collects
// attributes and method signatures. Annotated attribute expressions are
// returned as well so the caller can run composition detection over them.
func extractMembers(class *python.ClassDef, r *python.Resolver) (
	attrs []diagram.Attribute,
	methods []diagram.MethodSignature,
	annotations []*python.Expr,
) {
	for _, stmt := range class.Body {
		switch stmt.Kind {
		case python.StmtAnnAssign:
			// Every annotation feeds composition detection, even when the
			// target is not a plain name and produces no attribute.
			annotations = append(annotations, stmt.AnnAssign.Annotation)
			attr, ok := annotatedAttribute(stmt.AnnAssign)
			if !ok {
				continue
			}
			attrs = appendAttribute(attrs, attr)

		case python.StmtAssign:
			attr, ok := inferredAttribute(stmt.Assign)
			if !ok {
				continue
			}
			attrs = appendAttribute(attrs, attr)

		case python.StmtFunctionDef:
			method := methodSignature(stmt.FunctionDef, r)
			methods = appendMethod(methods, method)
		}
	}
	return attrs, methods, annotations
}

func annotatedAttribute(ann *python.AnnAssign) (diagram.Attribute, bool) {
	if !ann.Simple || ann.Target == nil || ann.Target.Kind != python.KindName {
		return diagram.Attribute{}, false
	}
	return diagram.Attribute{
		Name:           ann.Target.Name,
		TypeAnnotation: python.ExprString(ann.Annotation),
		Visibility:     nameVisibility(ann.Target.Name),
	}, true
}

func inferredAttribute(assign *python.Assign) (diagram.Attribute, bool) {
	if len(assign.Targets) == 0 || assign.Targets[0].Kind != python.KindName {
		return diagram.Attribute{}, false
	}
	return diagram.Attribute{
		Name:           assign.Targets[0].Name,
		TypeAnnotation: inferLiteralType(assign.Value),
		Visibility:     diagram.Public,
	}, true
}

// inferLiteralType maps a right-hand expression's literal shape to a display
// type. Anything unrecognized is Any.
func inferLiteralType(e *python.Expr) string {
	if e == nil {
		return "Any"
	}
	switch e.Kind {
	case python.KindBoolOp, python.KindBool:
		return "bool"
	case python.KindBinOp, python.KindUnaryOp, python.KindInt:
		return "int"
	case python.KindLambda:
		return "Callable"
	case python.KindDict, python.KindDictComp:
		return "dict"
	case python.KindSet, python.KindSetComp:
		return "set"
	case python.KindString, python.KindFString:
		return "str"
	case python.KindNone:
		return "None"
	case python.KindBytes:
		return "bytes"
	case python.KindEllipsis:
		return "..."
	case python.KindList, python.KindListComp:
		return "list"
	case python.KindTuple:
		return "tuple"
	case python.KindFloat:
		return "float"
	case python.KindComplex:
		return "complex"
	}
	return "Any"
}

func methodSignature(fn *python.FunctionDef, r *python.Resolver) diagram.MethodSignature {
	method := diagram.MethodSignature{
		Name:       fn.Name,
		Parameters: python.FormatParameters(fn.Params),
		Visibility: nameVisibility(fn.Name),
		Abstract:   r.IsAbstractMethod(fn.Decorators),
		Async:      fn.Async,
	}

	if fn.Returns != nil {
		method.ReturnType = python.ExprString(fn.Returns)
	} else if ret, ok := magicReturnTypes[fn.Name]; ok {
		method.ReturnType = ret
	}

	// classmethod wins over staticmethod when both somehow apply.
	classmethod := r.IsClassmethod(fn.Decorators)
	method.Static = r.IsStaticmethod(fn.Decorators) && !classmethod

	if r.IsFinal(fn.Decorators) {
		method.Decorators = append(method.Decorators, "@final")
	}
	if classmethod {
		method.Decorators = append(method.Decorators, "@classmethod")
	} else if method.Static {
		method.Decorators = append(method.Decorators, "@staticmethod")
	}
	if r.IsOverload(fn.Decorators) {
		method.Decorators = append(method.Decorators, "@overload")
	}
	if r.IsOverride(fn.Decorators) {
		method.Decorators = append(method.Decorators, "@override")
	}

	return method
}

func nameVisibility(name string) diagram.Visibility {
	if strings.HasPrefix(name, "_") {
		return diagram.Private
	}
	return diagram.Public
}

func appendAttribute(attrs []diagram.Attribute, attr diagram.Attribute) []diagram.Attribute {
	for _, existing := range attrs {
		if existing == attr {
			return attrs
		}
	}
	return append(attrs, attr)
}

// appendMethod drops exact duplicates, which collapses overload stub pairs
// into one rendered line.
func appendMethod(methods []diagram.MethodSignature, method diagram.MethodSignature) []diagram.MethodSignature {
	for _, existing := range methods {
		if existing.Equal(method) {
			return methods
		}
	}
	return append(methods, method)
}
