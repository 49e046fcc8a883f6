package python

// MapCallable unwraps a decorator or base used in call form, so that
// @dataclass and @dataclass(frozen=True) check the same way.
func MapCallable(e *Expr) *Expr {
	if e != nil && e.Kind == KindCall {
		return e.Value
	}
	return e
}

// MapSubscript unwraps a subscripted base, so Protocol[T] checks like
// Protocol.
func MapSubscript(e *Expr) *Expr {
	if e != nil && e.Kind == KindSubscript {
		return e.Value
	}
	return e
}

func segmentsEqual(segs []string, want ...string) bool {
	if len(segs) != len(want) {
		return false
	}
	for i := range segs {
		if segs[i] != want[i] {
			return false
		}
	}
	return true
}

func (r *Resolver) decoratorMatches(decorators []*Expr, match func([]string) bool) bool {
	for _, dec := range decorators {
		segs, ok := r.Resolve(MapCallable(dec))
		if ok && match(segs) {
			return true
		}
	}
	return false
}

// IsStaticmethod reports whether any decorator is the staticmethod builtin.
func (r *Resolver) IsStaticmethod(decorators []*Expr) bool {
	return r.decoratorMatches(decorators, func(segs []string) bool {
		return SegmentsMatch(segs, "", "staticmethod")
	})
}

// IsClassmethod reports whether any decorator is the classmethod builtin.
func (r *Resolver) IsClassmethod(decorators []*Expr) bool {
	return r.decoratorMatches(decorators, func(segs []string) bool {
		return SegmentsMatch(segs, "", "classmethod")
	})
}

// IsFinal reports whether any decorator is typing.final.
func (r *Resolver) IsFinal(decorators []*Expr) bool {
	return r.decoratorMatches(decorators, func(segs []string) bool {
		return SegmentsMatch(segs, "typing", "final") ||
			SegmentsMatch(segs, "typing_extensions", "final")
	})
}

// IsOverload reports whether any decorator is typing.overload.
func (r *Resolver) IsOverload(decorators []*Expr) bool {
	return r.decoratorMatches(decorators, func(segs []string) bool {
		return SegmentsMatch(segs, "typing", "overload") ||
			SegmentsMatch(segs, "typing_extensions", "overload")
	})
}

// IsOverride reports whether any decorator is typing.override.
func (r *Resolver) IsOverride(decorators []*Expr) bool {
	return r.decoratorMatches(decorators, func(segs []string) bool {
		return SegmentsMatch(segs, "typing", "override") ||
			SegmentsMatch(segs, "typing_extensions", "override")
	})
}

// IsAbstractMethod reports whether any decorator marks the function abstract.
func (r *Resolver) IsAbstractMethod(decorators []*Expr) bool {
	return r.decoratorMatches(decorators, func(segs []string) bool {
		return SegmentsMatch(segs, "abc",
			"abstractmethod", "abstractclassmethod",
			"abstractstaticmethod", "abstractproperty")
	})
}

// IsProtocol reports whether the class is declared as a typing Protocol:
// exactly one argument in the class header (base or keyword value), and
// that argument resolves to typing.Protocol (possibly subscripted).
func (r *Resolver) IsProtocol(class *ClassDef) bool {
	if len(class.Bases)+len(class.Keywords) != 1 {
		return false
	}
	args := make([]*Expr, 0, 1)
	args = append(args, class.Bases...)
	for _, kw := range class.Keywords {
		args = append(args, kw.Value)
	}
	for _, arg := range args {
		segs, ok := r.Resolve(MapSubscript(arg))
		if !ok {
			continue
		}
		if SegmentsMatch(segs, "typing", "Protocol") ||
			SegmentsMatch(segs, "typing_extensions", "Protocol") {
			return true
		}
	}
	return false
}

// IsDataclass reports whether the class carries a dataclass decorator from
// the standard library or pydantic.
func (r *Resolver) IsDataclass(class *ClassDef) bool {
	return r.decoratorMatches(class.Decorators, func(segs []string) bool {
		return segmentsEqual(segs, "dataclasses", "dataclass") ||
			segmentsEqual(segs, "pydantic", "dataclasses", "dataclass")
	})
}

// IsEnum reports whether the class inherits from one of the enum module's
// base classes.
func (r *Resolver) IsEnum(class *ClassDef) bool {
	for _, base := range class.Bases {
		segs, ok := r.Resolve(MapSubscript(base))
		if !ok {
			continue
		}
		if SegmentsMatch(segs, "enum",
			"Enum", "IntEnum", "StrEnum", "Flag", "IntFlag",
			"ReprEnum", "EnumMeta", "EnumType") {
			return true
		}
	}
	return false
}

// HasABCBase reports whether any base resolves to abc.ABC, abc.ABCMeta, or
// the typing module's ABC re-export.
func (r *Resolver) HasABCBase(class *ClassDef) bool {
	for _, base := range class.Bases {
		segs, ok := r.Resolve(MapSubscript(base))
		if !ok {
			continue
		}
		if SegmentsMatch(segs, "abc", "ABC", "ABCMeta") ||
			SegmentsMatch(segs, "typing", "ABC") {
			return true
		}
	}
	return false
}

// HasABCMetaclass reports whether the class header names metaclass=ABCMeta.
func (r *Resolver) HasABCMetaclass(class *ClassDef) bool {
	for _, kw := range class.Keywords {
		if kw.Arg != "metaclass" {
			continue
		}
		segs, ok := r.Resolve(kw.Value)
		if ok && SegmentsMatch(segs, "abc", "ABCMeta") {
			return true
		}
	}
	return false
}

// HasAbstractMethods reports whether any function in the class body carries
// an abstract decorator.
func (r *Resolver) HasAbstractMethods(class *ClassDef) bool {
	for _, stmt := range class.Body {
		if stmt.Kind == StmtFunctionDef && r.IsAbstractMethod(stmt.FunctionDef.Decorators) {
			return true
		}
	}
	return false
}
