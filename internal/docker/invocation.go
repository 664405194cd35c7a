package docker

import "strings"

// Invocation is one executable container-runtime command: a binary name and an ordered
// argument list. Arguments are discrete tokens; quoting happens only in String.
type Invocation struct {
	Name string
	Args []string
}

// String renders the invocation for display and logging. Tokens containing
// whitespace are double-quoted; the argv itself is never re-escaped.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.Name)
	for _, arg := range i.Args {
		if strings.ContainsAny(arg, " \t") {
			parts = append(parts, `"`+arg+`"`)
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}
