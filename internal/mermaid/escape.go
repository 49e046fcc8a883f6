// Package mermaid serializes an ordered diagram model into Mermaid
// classDiagram text.
package mermaid

import "strings"

// EscapeUnderscores escapes each leading underscore of an identifier with a
// backslash. Mermaid treats "__" as formatting markup, so "__init__" must
// become "\_\_init__". Trailing underscores are left untouched.
func EscapeUnderscores(name string) string {
	leading := 0
	for leading < len(name) && name[leading] == '_' {
		leading++
	}
	if leading == 0 {
		return name
	}
	return strings.Repeat(`\_`, leading) + name[leading:]
}
