package python

import "strings"

// FormatParameters renders a parameter list the way it reads in the source
// header, names only: positional-only names followed by "/", a "*" section
// introducing the vararg or bare keyword separator, then keyword-only names
// and the **kwargs name.
func FormatParameters(p Parameters) string {
	var b strings.Builder
	first := true
	delim := func() {
		if !first {
			b.WriteString(", ")
		}
		first = false
	}

	for i, name := range p.PosOnly {
		delim()
		b.WriteString(name)
		if i+1 == len(p.PosOnly) {
			b.WriteString(", /")
		}
	}
	for _, name := range p.Args {
		delim()
		b.WriteString(name)
	}
	if p.VarArg != "" || len(p.KwOnly) > 0 {
		delim()
		b.WriteString("*")
		b.WriteString(p.VarArg)
	}
	for _, name := range p.KwOnly {
		delim()
		b.WriteString(name)
	}
	if p.KwArg != "" {
		delim()
		b.WriteString("**")
		b.WriteString(p.KwArg)
	}

	return b.String()
}
