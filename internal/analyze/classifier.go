package analyze

import (
	"classmap/internal/diagram"
	"classmap/internal/python"
)

// classify assigns a class its single kind. The checks run in strict
// precedence order, so a Protocol that also carries a dataclass decorator
// stays an Interface.
func classify(class *python.ClassDef, r *python.Resolver) diagram.ClassKind {
	switch {
	case r.IsProtocol(class):
		return diagram.Interface
	case r.IsDataclass(class):
		return diagram.Dataclass
	case isAbstract(class, r):
		return diagram.Abstract
	case r.IsEnum(class):
		return diagram.Enumeration
	case r.IsFinal(class.Decorators):
		return diagram.Final
	}
	return diagram.Regular
}

func isAbstract(class *python.ClassDef, r *python.Resolver) bool {
	return r.HasAbstractMethods(class) || r.HasABCBase(class) || r.HasABCMetaclass(class)
}
