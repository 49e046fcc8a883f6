package python

import "testing"

func TestFormatParameters(t *testing.T) {
	tests := []struct {
		name   string
		params Parameters
		want   string
	}{
		{"empty", Parameters{}, ""},
		{"plain", Parameters{Args: []string{"self", "x"}}, "self, x"},
		{"positional only", Parameters{PosOnly: []string{"a", "b"}}, "a, b, /"},
		{
			"positional only with regular",
			Parameters{PosOnly: []string{"cls", "first"}, Args: []string{"second"}},
			"cls, first, /, second",
		},
		{"vararg", Parameters{VarArg: "args"}, "*args"},
		{"kwarg", Parameters{KwArg: "kwargs"}, "**kwargs"},
		{
			"keyword only after separator",
			Parameters{Args: []string{"self"}, KwOnly: []string{"key"}},
			"self, *, key",
		},
		{
			"full signature",
			Parameters{
				PosOnly: []string{"cls", "first"},
				VarArg:  "second",
				KwOnly:  []string{"kwarg"},
				KwArg:   "unpack_this",
			},
			"cls, first, /, *second, kwarg, **unpack_this",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatParameters(tt.params); got != tt.want {
				t.Errorf("FormatParameters() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	subscript := &Expr{
		Kind:  KindSubscript,
		Value: nameExpr("dict"),
		Elts:  []*Expr{nameExpr("str"), nameExpr("int")},
	}
	if got := ExprString(subscript); got != "dict[str, int]" {
		t.Errorf("subscript = %q, want %q", got, "dict[str, int]")
	}

	union := &Expr{
		Kind:  KindBinOp,
		Op:    "|",
		Left:  nameExpr("str"),
		Right: &Expr{Kind: KindNone, Text: "None"},
	}
	if got := ExprString(union); got != "str | None" {
		t.Errorf("union = %q, want %q", got, "str | None")
	}

	nested := &Expr{
		Kind:  KindSubscript,
		Value: nameExpr("list"),
		Elts:  []*Expr{subscript},
	}
	if got := ExprString(nested); got != "list[dict[str, int]]" {
		t.Errorf("nested = %q, want %q", got, "list[dict[str, int]]")
	}
}
