// Package python is the semantic facade over Python source: it parses one
// source unit into a small statement tree and answers best-effort
// qualified-name resolution and named semantic predicates against it. The
// diagram pipeline pattern-matches only on the identifiers this package
// returns; it never touches parser internals.
package python

// ExprKind tags a node in the expression tree. The tree is deliberately
// small: just the shapes the diagram pipeline inspects, with everything
// else collapsed to KindUnknown and its raw source text.
type ExprKind int

const (
	KindUnknown ExprKind = iota
	KindName
	KindAttribute // dotted access: a.b.c
	KindSubscript // value[slice, ...]
	KindCall
	KindTuple
	KindBinOp  // binary operator; Op holds the operator text
	KindBoolOp // "and" / "or" chains
	KindUnaryOp
	KindLambda
	KindDict
	KindDictComp
	KindSet
	KindSetComp
	KindString
	KindFString
	KindBytes
	KindNone
	KindBool
	KindEllipsis
	KindList
	KindListComp
	KindInt
	KindFloat
	KindComplex
)

// Expr is one node of the expression tree. Text always holds the raw source
// slice so unresolved shapes can fall back to literal text.
type Expr struct {
	Kind ExprKind
	Text string

	// Name holds the identifier for KindName and the full dotted path for
	// KindAttribute.
	Name string

	// Value is the subscripted value, call target, or unary operand.
	Value *Expr

	// Left and Right are binary operator operands.
	Left  *Expr
	Right *Expr

	// Op is the operator text for KindBinOp ("|", "+", ...).
	Op string

	// Elts are tuple, list, or multi-element subscript slice elements.
	Elts []*Expr
}

// Keyword is a keyword argument in a class header (e.g. metaclass=ABCMeta).
type Keyword struct {
	Arg   string
	Value *Expr
}

// Parameters holds a function's parameter names grouped by section, in
// declaration order. Defaults and annotations are dropped at lowering time;
// the diagram only shows names.
type Parameters struct {
	PosOnly []string
	Args    []string
	VarArg  string
	KwOnly  []string
	KwArg   string
}

// Stmt is a statement in a module or class body. Exactly one of the pointer
// fields is set, per Kind.
type Stmt struct {
	Kind StmtKind

	ClassDef    *ClassDef
	FunctionDef *FunctionDef
	AnnAssign   *AnnAssign
	Assign      *Assign
	Import      *Import
	ImportFrom  *ImportFrom
}

// StmtKind tags the statement shapes the facade surfaces.
type StmtKind int

const (
	StmtUnknown StmtKind = iota
	StmtClassDef
	StmtFunctionDef
	StmtAnnAssign
	StmtAssign
	StmtImport
	StmtImportFrom
)

// ClassDef is a class definition with its header and direct body statements.
type ClassDef struct {
	Name       string
	TypeParams string // raw text inside an explicit [T, ...] header list
	Bases      []*Expr
	Keywords   []Keyword
	Decorators []*Expr
	Body       []Stmt
}

// FunctionDef is a def/async def with its signature; the body is not kept.
type FunctionDef struct {
	Name       string
	Async      bool
	Params     Parameters
	Returns    *Expr
	Decorators []*Expr
}

// AnnAssign is an annotated assignment (x: T or x: T = v). Simple is true
// when the target is a plain name.
type AnnAssign struct {
	Target     *Expr
	Annotation *Expr
	Simple     bool
}

// Assign is a plain assignment. Targets holds the assignment chain's
// left-hand names; Value is the final right-hand expression.
type Assign struct {
	Targets []*Expr
	Value   *Expr
}

// Import is an `import a.b as m` statement's aliases.
type Import struct {
	Names []ImportAlias
}

// ImportFrom is a `from pkg import name as alias` statement.
type ImportFrom struct {
	Module string
	Level  int // leading-dot count for relative imports
	Names  []ImportAlias
}

// ImportAlias binds one imported name, with an optional `as` name.
type ImportAlias struct {
	Name   string
	AsName string
}
