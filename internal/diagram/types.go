// Package diagram holds the in-memory class diagram model: classes,
// inheritance/implementation relationships, and composition edges, plus the
// deterministic ordering pass consumed by the renderer.
package diagram

import (
	"fmt"
	"strings"
)

// Visibility marks a class member as public, private, or protected.
type Visibility int

const (
	Public Visibility = iota
	Private
	// Protected is reserved; Python has no true protected visibility.
	Protected
)

// Symbol returns the Mermaid visibility prefix for a member line.
func (v Visibility) Symbol() string {
	switch v {
	case Private:
		return "-"
	case Protected:
		return "#"
	default:
		return "+"
	}
}

// ClassKind classifies a class node for stereotype rendering.
type ClassKind int

const (
	Regular ClassKind = iota
	Abstract
	Interface
	Enumeration
	Dataclass
	Final
)

// Stereotype returns the stereotype line for the kind, or "" for Regular.
func (k ClassKind) Stereotype() string {
	switch k {
	case Abstract:
		return "<<abstract>>"
	case Interface:
		return "<<interface>>"
	case Enumeration:
		return "<<enumeration>>"
	case Dataclass:
		return "<<dataclass>>"
	case Final:
		return "<<final>>"
	default:
		return ""
	}
}

// Attribute is a single class field.
type Attribute struct {
	Name           string
	TypeAnnotation string
	Visibility     Visibility
}

// MethodSignature is a single method line. Parameters is the pre-joined
// display string (names only). ReturnType is empty when absent.
type MethodSignature struct {
	Name       string
	Parameters string
	ReturnType string
	Visibility Visibility
	Static     bool
	Abstract   bool
	Async      bool
	Decorators []string
}

// Equal reports full signature equality, used to drop duplicate overload
// stub lines.
func (m MethodSignature) Equal(other MethodSignature) bool {
	if m.Name != other.Name ||
		m.Parameters != other.Parameters ||
		m.ReturnType != other.ReturnType ||
		m.Visibility != other.Visibility ||
		m.Static != other.Static ||
		m.Abstract != other.Abstract ||
		m.Async != other.Async {
		return false
	}
	if len(m.Decorators) != len(other.Decorators) {
		return false
	}
	for i := range m.Decorators {
		if m.Decorators[i] != other.Decorators[i] {
			return false
		}
	}
	return true
}

// ClassNode is one class in the diagram. TypeParams holds the raw type
// parameter text ("T" or "T, U"), empty when the class is not generic.
type ClassNode struct {
	Name       string
	TypeParams string
	Kind       ClassKind
	Attributes []Attribute
	Methods    []MethodSignature
}

// RelationType distinguishes solid inheritance arrows from dotted
// implementation arrows.
type RelationType int

const (
	Inheritance    RelationType = iota // --|>
	Implementation                     // ..|>
)

// Arrow returns the Mermaid arrow for the relation.
func (r RelationType) Arrow() string {
	if r == Implementation {
		return "..|>"
	}
	return "--|>"
}

// RelationshipEdge links a class to a base by display name. To need not
// exist as a node; external bases render as bare names.
type RelationshipEdge struct {
	From     string
	To       string
	Relation RelationType
}

// CompositionEdge records that Container holds a value of Contained
// (short type name) in one of its attributes.
type CompositionEdge struct {
	Container string
	Contained string
}

// Direction is the diagram flow direction.
type Direction string

const (
	DirTB Direction = "TB"
	DirBT Direction = "BT"
	DirLR Direction = "LR"
	DirRL Direction = "RL"
)

// DefaultDirection is top-to-bottom and is omitted from rendered output.
const DefaultDirection = DirTB

// ParseDirection parses a direction string, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(s)) {
	case DirTB:
		return DirTB, nil
	case DirBT:
		return DirBT, nil
	case DirLR:
		return DirLR, nil
	case DirRL:
		return DirRL, nil
	}
	return "", fmt.Errorf("invalid direction: %s (expected TB, BT, LR, or RL)", s)
}

// Diagram accumulates classes and edges for one unit of work. Population is
// append-only; dedup and ordering happen in the read-only OrderedClasses
// pass at render time.
type Diagram struct {
	Title         string
	Direction     Direction
	Classes       []ClassNode
	Relationships []RelationshipEdge
	Compositions  []CompositionEdge
}

// New returns an empty diagram with the given direction.
func New(dir Direction) *Diagram {
	if dir == "" {
		dir = DefaultDirection
	}
	return &Diagram{Direction: dir}
}

// Empty reports whether the diagram has no classes and no edges.
func (d *Diagram) Empty() bool {
	return len(d.Classes) == 0 && len(d.Relationships) == 0 && len(d.Compositions) == 0
}

// AddClass appends a class node. Duplicate names are tolerated here; the
// ordering pass keeps the first insertion.
func (d *Diagram) AddClass(c ClassNode) {
	d.Classes = append(d.Classes, c)
}

// AddRelationship appends an inheritance or implementation edge.
func (d *Diagram) AddRelationship(e RelationshipEdge) {
	d.Relationships = append(d.Relationships, e)
}

// AddComposition appends a composition edge.
func (d *Diagram) AddComposition(e CompositionEdge) {
	d.Compositions = append(d.Compositions, e)
}

// IsAbstractOrInterface reports whether a class with the given name has been
// added as Abstract or Interface. Used to classify later base references.
func (d *Diagram) IsAbstractOrInterface(name string) bool {
	for _, c := range d.Classes {
		if c.Name == name && (c.Kind == Abstract || c.Kind == Interface) {
			return true
		}
	}
	return false
}

// Merge appends another diagram's classes and edges. Independent units can
// be scanned into separate diagrams and merged before the single ordering
// and render pass.
func (d *Diagram) Merge(other *Diagram) {
	d.Classes = append(d.Classes, other.Classes...)
	d.Relationships = append(d.Relationships, other.Relationships...)
	d.Compositions = append(d.Compositions, other.Compositions...)
}
