//go:build cgo

package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// lowerModule converts a parsed module's top-level statements into the
// facade tree. Unrecognized statement shapes become StmtUnknown and are
// skipped by consumers.
func lowerModule(root *sitter.Node, source []byte) []Stmt {
	return lowerBlock(root, source)
}

func lowerBlock(block *sitter.Node, source []byte) []Stmt {
	var stmts []Stmt
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		stmts = append(stmts, lowerStmt(child, source, nil))
	}
	return stmts
}

func lowerStmt(node *sitter.Node, source []byte, decorators []*Expr) Stmt {
	switch node.Type() {
	case "decorated_definition":
		decorators = append(decorators, lowerDecorators(node, source)...)
		if def := node.ChildByFieldName("definition"); def != nil {
			return lowerStmt(def, source, decorators)
		}
		return Stmt{Kind: StmtUnknown}

	case "class_definition":
		return Stmt{Kind: StmtClassDef, ClassDef: lowerClassDef(node, source, decorators)}

	case "function_definition":
		return Stmt{Kind: StmtFunctionDef, FunctionDef: lowerFunctionDef(node, source, decorators)}

	case "expression_statement":
		if node.NamedChildCount() == 1 {
			inner := node.NamedChild(0)
			if inner != nil && inner.Type() == "assignment" {
				return lowerAssignment(inner, source)
			}
		}
		return Stmt{Kind: StmtUnknown}

	case "import_statement":
		return lowerImport(node, source)

	case "import_from_statement":
		return lowerImportFrom(node, source)

	case "future_import_statement":
		return Stmt{Kind: StmtUnknown}
	}
	return Stmt{Kind: StmtUnknown}
}

func lowerDecorators(node *sitter.Node, source []byte) []*Expr {
	var decorators []*Expr
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() != "decorator" {
			continue
		}
		if expr := child.NamedChild(0); expr != nil {
			decorators = append(decorators, lowerExpr(expr, source))
		}
	}
	return decorators
}

func lowerClassDef(node *sitter.Node, source []byte, decorators []*Expr) *ClassDef {
	class := &ClassDef{Decorators: decorators}

	if name := node.ChildByFieldName("name"); name != nil {
		class.Name = text(name, source)
	}

	// PEP 695 explicit type parameter lists (class Thing[T]). Older grammar
	// revisions do not expose the field; those sources degrade to the
	// Generic[...] base form.
	if params := node.ChildByFieldName("type_parameters"); params != nil {
		raw := text(params, source)
		class.TypeParams = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	}

	if super := node.ChildByFieldName("superclasses"); super != nil {
		for i := 0; i < int(super.NamedChildCount()); i++ {
			arg := super.NamedChild(i)
			if arg == nil || arg.Type() == "comment" {
				continue
			}
			if arg.Type() == "keyword_argument" {
				kw := Keyword{}
				if name := arg.ChildByFieldName("name"); name != nil {
					kw.Arg = text(name, source)
				}
				if value := arg.ChildByFieldName("value"); value != nil {
					kw.Value = lowerExpr(value, source)
				}
				class.Keywords = append(class.Keywords, kw)
				continue
			}
			class.Bases = append(class.Bases, lowerExpr(arg, source))
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		class.Body = lowerBlock(body, source)
	}

	return class
}

func lowerFunctionDef(node *sitter.Node, source []byte, decorators []*Expr) *FunctionDef {
	fn := &FunctionDef{Decorators: decorators}

	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = text(name, source)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && child.Type() == "async" {
			fn.Async = true
			break
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Params = lowerParameters(params, source)
	}
	if returns := node.ChildByFieldName("return_type"); returns != nil {
		fn.Returns = lowerExpr(returns, source)
	}

	return fn
}

func lowerParameters(node *sitter.Node, source []byte) Parameters {
	var p Parameters
	kwSection := false

	appendName := func(name string) {
		if name == "" {
			return
		}
		if kwSection {
			p.KwOnly = append(p.KwOnly, name)
		} else {
			p.Args = append(p.Args, name)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			appendName(text(child, source))
		case "typed_parameter":
			// The pattern is the first named child; it may itself be a
			// splat (*args: int, **kw: int).
			pattern := child.NamedChild(0)
			if pattern == nil {
				continue
			}
			switch pattern.Type() {
			case "list_splat_pattern":
				p.VarArg = patternName(pattern, source)
				kwSection = true
			case "dictionary_splat_pattern":
				p.KwArg = patternName(pattern, source)
			default:
				appendName(patternName(pattern, source))
			}
		case "default_parameter", "typed_default_parameter":
			if name := child.ChildByFieldName("name"); name != nil {
				appendName(text(name, source))
			}
		case "list_splat_pattern":
			p.VarArg = patternName(child, source)
			kwSection = true
		case "dictionary_splat_pattern":
			p.KwArg = patternName(child, source)
		case "positional_separator":
			p.PosOnly = p.Args
			p.Args = nil
		case "keyword_separator":
			kwSection = true
		}
	}

	return p
}

// patternName digs the identifier out of a parameter pattern node.
func patternName(node *sitter.Node, source []byte) string {
	if node.Type() == "identifier" {
		return text(node, source)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil && child.Type() == "identifier" {
			return text(child, source)
		}
	}
	return ""
}

// lowerAssignment handles both annotated (x: T = v) and plain (x = v)
// assignments, following chained plain assignments (a = b = v) down to the
// final value.
func lowerAssignment(node *sitter.Node, source []byte) Stmt {
	if annotation := node.ChildByFieldName("type"); annotation != nil {
		target := node.ChildByFieldName("left")
		if target == nil {
			return Stmt{Kind: StmtUnknown}
		}
		targetExpr := lowerExpr(target, source)
		return Stmt{Kind: StmtAnnAssign, AnnAssign: &AnnAssign{
			Target:     targetExpr,
			Annotation: lowerExpr(annotation, source),
			Simple:     targetExpr.Kind == KindName,
		}}
	}

	assign := &Assign{}
	current := node
	for current != nil && current.Type() == "assignment" && current.ChildByFieldName("type") == nil {
		if left := current.ChildByFieldName("left"); left != nil {
			assign.Targets = append(assign.Targets, lowerExpr(left, source))
		}
		right := current.ChildByFieldName("right")
		if right == nil {
			break
		}
		if right.Type() == "assignment" {
			current = right
			continue
		}
		assign.Value = lowerExpr(right, source)
		break
	}
	if len(assign.Targets) == 0 {
		return Stmt{Kind: StmtUnknown}
	}
	return Stmt{Kind: StmtAssign, Assign: assign}
}

func lowerImport(node *sitter.Node, source []byte) Stmt {
	imp := &Import{}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, ImportAlias{Name: text(child, source)})
		case "aliased_import":
			alias := ImportAlias{}
			if name := child.ChildByFieldName("name"); name != nil {
				alias.Name = text(name, source)
			}
			if as := child.ChildByFieldName("alias"); as != nil {
				alias.AsName = text(as, source)
			}
			imp.Names = append(imp.Names, alias)
		}
	}
	return Stmt{Kind: StmtImport, Import: imp}
}

func lowerImportFrom(node *sitter.Node, source []byte) Stmt {
	imp := &ImportFrom{}

	if module := node.ChildByFieldName("module_name"); module != nil {
		switch module.Type() {
		case "dotted_name":
			imp.Module = text(module, source)
		case "relative_import":
			raw := text(module, source)
			for _, r := range raw {
				if r != '.' {
					break
				}
				imp.Level++
			}
			imp.Module = strings.TrimLeft(raw, ".")
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		// The module_name field also appears among the named children.
		if module := node.ChildByFieldName("module_name"); module != nil &&
			child.StartByte() == module.StartByte() && child.EndByte() == module.EndByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, ImportAlias{Name: text(child, source)})
		case "aliased_import":
			alias := ImportAlias{}
			if name := child.ChildByFieldName("name"); name != nil {
				alias.Name = text(name, source)
			}
			if as := child.ChildByFieldName("alias"); as != nil {
				alias.AsName = text(as, source)
			}
			imp.Names = append(imp.Names, alias)
		case "wildcard_import":
			imp.Names = append(imp.Names, ImportAlias{Name: "*"})
		}
	}
	return Stmt{Kind: StmtImportFrom, ImportFrom: imp}
}

func lowerExpr(node *sitter.Node, source []byte) *Expr {
	e := &Expr{Kind: KindUnknown, Text: text(node, source)}

	switch node.Type() {
	case "identifier":
		e.Kind = KindName
		e.Name = e.Text

	case "attribute":
		e.Kind = KindAttribute
		e.Name = e.Text

	case "subscript":
		e.Kind = KindSubscript
		if value := node.ChildByFieldName("value"); value != nil {
			e.Value = lowerExpr(value, source)
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil || node.FieldNameForChild(i) != "subscript" {
				continue
			}
			e.Elts = append(e.Elts, lowerExpr(child, source))
		}

	case "call":
		e.Kind = KindCall
		if fn := node.ChildByFieldName("function"); fn != nil {
			e.Value = lowerExpr(fn, source)
		}

	case "tuple":
		e.Kind = KindTuple
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child != nil && child.Type() != "comment" {
				e.Elts = append(e.Elts, lowerExpr(child, source))
			}
		}

	case "binary_operator":
		e.Kind = KindBinOp
		if left := node.ChildByFieldName("left"); left != nil {
			e.Left = lowerExpr(left, source)
		}
		if right := node.ChildByFieldName("right"); right != nil {
			e.Right = lowerExpr(right, source)
		}
		if op := node.ChildByFieldName("operator"); op != nil {
			e.Op = text(op, source)
		}

	case "boolean_operator":
		e.Kind = KindBoolOp

	case "unary_operator", "not_operator":
		e.Kind = KindUnaryOp

	case "lambda":
		e.Kind = KindLambda

	case "dictionary":
		e.Kind = KindDict
	case "dictionary_comprehension":
		e.Kind = KindDictComp
	case "set":
		e.Kind = KindSet
	case "set_comprehension":
		e.Kind = KindSetComp
	case "list":
		e.Kind = KindList
	case "list_comprehension":
		e.Kind = KindListComp

	case "string", "concatenated_string":
		e.Kind = stringKind(e.Text)

	case "none":
		e.Kind = KindNone
	case "true", "false":
		e.Kind = KindBool
	case "ellipsis":
		e.Kind = KindEllipsis

	case "integer":
		e.Kind = numberKind(e.Text, KindInt)
	case "float":
		e.Kind = numberKind(e.Text, KindFloat)

	case "parenthesized_expression":
		if inner := node.NamedChild(0); inner != nil {
			return lowerExpr(inner, source)
		}
	}

	return e
}

// stringKind inspects the literal prefix to distinguish plain strings from
// f-strings and bytes literals.
func stringKind(raw string) ExprKind {
	for _, r := range raw {
		switch r {
		case 'f', 'F':
			return KindFString
		case 'b', 'B':
			return KindBytes
		case '"', '\'':
			return KindString
		}
	}
	return KindString
}

// numberKind promotes int/float literals with a j suffix to complex.
func numberKind(raw string, base ExprKind) ExprKind {
	if strings.HasSuffix(raw, "j") || strings.HasSuffix(raw, "J") {
		return KindComplex
	}
	return base
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
